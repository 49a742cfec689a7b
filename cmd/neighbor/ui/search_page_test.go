package ui

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSearchPage_StaleFailureDropped(t *testing.T) {
	m := NewSearchPageModel(Deps{}, NewStyles(LightTheme()))
	stale := m.gens.Next()
	m.gens.Next() // a newer request is in flight
	m.searching = true

	m, _ = m.Update(searchResultsMsg{Gen: stale, Err: errors.New("timeout")})
	if !m.searching {
		t.Error("a stale failure must not clear the in-flight state")
	}
	if m.status != "" {
		t.Errorf("a stale failure must not surface a banner, got %q", m.status)
	}
}

func TestSearchPage_CurrentFailureShowsStatus(t *testing.T) {
	m := NewSearchPageModel(Deps{}, NewStyles(LightTheme()))
	gen := m.gens.Next()
	m.searching = true

	m, _ = m.Update(searchResultsMsg{Gen: gen, Err: errors.New("timeout")})
	if m.searching {
		t.Error("the newest request's failure must clear the in-flight state")
	}
	if m.status == "" {
		t.Error("the newest request's failure must surface a banner")
	}
}

func TestSearchPage_StaleResultsDropped(t *testing.T) {
	m := NewSearchPageModel(Deps{}, NewStyles(LightTheme()))
	stale := m.gens.Next()
	m.gens.Next()
	m.searching = true

	m, _ = m.Update(searchResultsMsg{Gen: stale})
	if !m.searching {
		t.Error("stale results must not clear the in-flight state")
	}
	if m.results != nil {
		t.Error("stale results must not become visible")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "short stays whole", in: "rice", max: 28, want: "rice"},
		{name: "long ascii", in: strings.Repeat("a", 30), max: 10, want: "aaaaaaa..."},
		{name: "multibyte", in: strings.Repeat("é", 30), max: 10, want: strings.Repeat("é", 7) + "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.max)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncate produced invalid UTF-8: %q", got)
			}
		})
	}
}

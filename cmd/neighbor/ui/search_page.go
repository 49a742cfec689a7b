package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"neighbor/internal/api"
	"neighbor/internal/location"
	"neighbor/internal/search"
)

// OpenProductMsg asks the app to open the product page for a search result.
// The full result row rides along so the product page can render prices even
// under a GPS scope, where the legacy by-city price endpoint does not apply.
type OpenProductMsg struct {
	Result api.PriceSearchResult
}

// searchResultsMsg carries one search outcome, success or failure, tagged
// with its generation. Stale failures must be dropped the same way stale
// results are, or a superseded request could flash an error over a live one.
type searchResultsMsg struct {
	Gen     uint64
	Results []api.PriceSearchResult
	Err     error
}

// barcodeResultMsg resolves a barcode entry. NotFound is the empty state, not
// a failure.
type barcodeResultMsg struct {
	Product  api.Product
	NotFound bool
}

// SearchPageModel is the product search screen: a query box over a result
// list, scoped by the active location.
type SearchPageModel struct {
	deps   Deps
	styles Styles

	input    textinput.Model
	scope    search.Context
	debounce *Debouncer
	gens     *search.Generations

	results   []api.PriceSearchResult
	cursor    int
	searching bool
	status    string
	barcode   bool

	width  int
	height int
}

// NewSearchPageModel creates the search page.
func NewSearchPageModel(deps Deps, styles Styles) SearchPageModel {
	input := textinput.New()
	input.Placeholder = "Search products (e.g. rice, garri, milk)"
	input.CharLimit = 120
	input.Focus()

	return SearchPageModel{
		deps:   deps,
		styles: styles,
		input:  input,
		scope: search.Context{
			Sort:     search.SortPriceAsc,
			RadiusKm: deps.Config.RadiusKm,
		},
		debounce: NewDebouncer(SearchDebounceDuration),
		gens:     &search.Generations{},
	}
}

// SetSize updates the page dimensions.
func (m *SearchPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.input.Width = w - 8
}

// SetScope feeds the page the current location and radius. Called by the app
// whenever either changes; an in-flight search for the old scope is
// invalidated by the generation bump of the re-issued one.
func (m *SearchPageModel) SetScope(loc location.ActiveLocation, radiusKm float64) tea.Cmd {
	m.scope.Location = loc
	m.scope.RadiusKm = radiusKm
	return m.fire()
}

// fire issues a search for the current context, or clears to idle when the
// context does not produce a query.
func (m *SearchPageModel) fire() tea.Cmd {
	m.scope.Query = m.input.Value()
	req, ok := m.scope.Build()
	if !ok {
		m.results = nil
		m.cursor = 0
		m.searching = false
		return nil
	}

	gen := m.gens.Next()
	m.searching = true
	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		results, err := deps.API.Search(ctx, req)
		if err != nil {
			deps.Log.Warn("search failed", zap.Error(err), zap.Uint64("gen", gen))
			if errors.Is(err, api.ErrUnauthorized) {
				// An expired session ends globally, stale or not.
				return ErrMsg{Err: err}
			}
			return searchResultsMsg{Gen: gen, Err: err}
		}
		return searchResultsMsg{Gen: gen, Results: results}
	}
}

// lookupBarcode resolves the typed barcode to a product.
func (m *SearchPageModel) lookupBarcode() tea.Cmd {
	code := strings.TrimSpace(m.input.Value())
	if code == "" {
		return nil
	}
	m.searching = true
	m.status = ""
	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		product, err := deps.API.ProductByBarcode(ctx, code)
		if err != nil {
			if api.IsNotFound(err) {
				return barcodeResultMsg{NotFound: true}
			}
			return ErrMsg{Err: err}
		}
		return barcodeResultMsg{Product: product}
	}
}

// Update handles messages.
func (m SearchPageModel) Update(msg tea.Msg) (SearchPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.results)-1 {
				m.cursor++
			}
			return m, nil
		case "ctrl+s":
			m.scope.Sort = m.scope.Sort.Next()
			return m, m.fire()
		case "ctrl+b":
			// Barcode entry is the terminal's stand-in for the camera.
			m.barcode = !m.barcode
			m.input.SetValue("")
			if m.barcode {
				m.input.Placeholder = "Enter a barcode"
			} else {
				m.input.Placeholder = "Search products (e.g. rice, garri, milk)"
			}
			return m, nil
		case "enter":
			if m.barcode {
				return m, m.lookupBarcode()
			}
			if len(m.results) == 0 {
				return m, nil
			}
			res := m.results[m.cursor]
			return m, func() tea.Msg { return OpenProductMsg{Result: res} }
		}

		var cmd tea.Cmd
		before := m.input.Value()
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != before && !m.barcode {
			m.status = ""
			return m, tea.Batch(cmd, m.debounce.Trigger())
		}
		return m, cmd

	case DebounceMsg:
		if !m.debounce.Current(msg) {
			return m, nil
		}
		return m, m.fire()

	case barcodeResultMsg:
		m.searching = false
		if msg.NotFound {
			m.status = m.styles.Muted.Render("No product matches that barcode.")
			return m, nil
		}
		// Found: leave barcode mode and search the product by name.
		m.barcode = false
		m.input.Placeholder = "Search products (e.g. rice, garri, milk)"
		m.input.SetValue(msg.Product.Name)
		return m, m.fire()

	case searchResultsMsg:
		// Outcomes of superseded requests are dropped unconditionally.
		if !m.gens.IsCurrent(msg.Gen) {
			return m, nil
		}
		m.searching = false
		if msg.Err != nil {
			m.status = m.styles.Error.Render(humanError(msg.Err))
			return m, nil
		}
		m.results = msg.Results
		if m.cursor >= len(m.results) {
			m.cursor = 0
		}
		return m, nil

	case ErrMsg:
		m.searching = false
		m.status = m.styles.Error.Render(humanError(msg.Err))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m SearchPageModel) scopeLine() string {
	loc := m.scope.Location
	var line string
	switch {
	case loc.IsNone():
		line = m.styles.Muted.Render("No location set. Press F3 to choose one.")
	default:
		if _, _, ok := loc.Coords(); ok {
			where := "current location"
			if name, have := m.deps.Advisor.StateName(); have {
				where = name
			}
			line = m.styles.Muted.Render(fmt.Sprintf("Near %s · %.0f km · %s", where, m.scope.RadiusKm, m.scope.Sort.Label()))
			if m.deps.Advisor.LeavingRegion(m.scope.RadiusKm) {
				line += "  " + m.styles.Warning.Render("⚠ radius may reach beyond your state")
			}
		} else {
			_, name, _ := loc.City()
			line = m.styles.Muted.Render(fmt.Sprintf("In %s · %s", name, m.scope.Sort.Label()))
		}
	}
	return line
}

// View renders the page.
func (m SearchPageModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Search"))
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	sb.WriteString(m.scopeLine())
	sb.WriteString("\n\n")

	switch {
	case m.searching:
		sb.WriteString(m.styles.Muted.Render("Searching..."))
	case m.status != "":
		sb.WriteString(m.status)
	case len(m.results) == 0:
		if strings.TrimSpace(m.input.Value()) == "" {
			sb.WriteString(m.styles.Muted.Render("Type to search nearby prices."))
		} else {
			sb.WriteString(m.styles.Muted.Render("No results."))
		}
	default:
		max := m.height - 10
		if max < 3 {
			max = 3
		}
		for i, r := range m.results {
			if i >= max {
				sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("  ... %d more", len(m.results)-max)))
				sb.WriteString("\n")
				break
			}
			fav := "  "
			if m.deps.Favorites.Contains(r.StoreID) {
				fav = m.styles.Favorite.Render("★ ")
			}
			line := fmt.Sprintf("%s%-28s %s  %s",
				fav,
				truncate(r.ProductName, 28),
				m.styles.Price.Render(fmt.Sprintf("₦%.2f", r.Price)),
				m.styles.Store.Render(fmt.Sprintf("%s, %s", r.StoreName, r.MarketArea)))
			if i == m.cursor {
				line = m.styles.Selected.Render("> " + line)
			} else {
				line = "  " + line
			}
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Footer.Render("enter open · ctrl+s sort · ctrl+b barcode · F2 list · F3 location · F4 profile"))
	return m.styles.Content.Render(sb.String())
}

func truncate(s string, l int) string {
	r := []rune(s)
	if len(r) > l {
		return string(r[:l-3]) + "..."
	}
	return s
}

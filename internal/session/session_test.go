package session

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	if s.Authenticated() {
		t.Fatal("fresh store must not be authenticated")
	}

	if err := s.Save("tok-123"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	tok, err := s.Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if tok != "tok-123" {
		t.Errorf("got %q", tok)
	}
	if !s.Authenticated() {
		t.Error("saved token must authenticate")
	}

	// A second store over the same dir sees the persisted token.
	s2 := NewStore(dir)
	if !s2.Authenticated() {
		t.Error("token must survive process restart")
	}
}

func TestStore_TokenFilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes not meaningful on windows")
	}
	dir := t.TempDir()
	s := NewStore(dir)
	if err := s.Save("secret"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "token"))
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("token file mode %o, want 600", perm)
	}
}

func TestStore_Clear(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	if err := s.Save("tok"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if s.Authenticated() {
		t.Error("cleared store must not be authenticated")
	}
	// Clearing twice is fine.
	if err := s.Clear(); err != nil {
		t.Errorf("second Clear: %v", err)
	}
}

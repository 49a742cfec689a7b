package main

import (
	"testing"

	"go.uber.org/zap"

	"neighbor/internal/api"
	"neighbor/internal/session"
)

func TestDashSessionExpiryClearsTokenAndRoutesToLogin(t *testing.T) {
	sess := session.NewStore(t.TempDir())
	if err := sess.Save("tok-owner"); err != nil {
		t.Fatalf("save token: %v", err)
	}

	m := newDashModel(deps{
		API:     api.New("http://localhost:0"),
		Session: sess,
		Log:     zap.NewNop(),
	})
	m.page = dashInventory

	next, _ := m.Update(errMsg{Err: api.ErrUnauthorized})
	dm := next.(dashModel)
	if dm.page != dashLogin {
		t.Errorf("expected login page after a 401, got page %d", dm.page)
	}
	if sess.Authenticated() {
		t.Error("the stored token must be cleared when the session expires")
	}
}

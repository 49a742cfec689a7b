package ui

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"neighbor/internal/api"
	"neighbor/internal/config"
	"neighbor/internal/favorites"
	"neighbor/internal/location"
	"neighbor/internal/session"
	"neighbor/internal/shoppinglist"
)

// requestTimeout bounds every command-issued backend call.
const requestTimeout = 15 * time.Second

// Deps is the shared dependency container handed to every page model. It is
// built once in main and passed down; pages never reach for globals.
type Deps struct {
	API       *api.Client
	Session   *session.Store
	Resolver  *location.Resolver
	Advisor   *location.Advisor
	List      *shoppinglist.Reconciler
	Favorites *favorites.Set
	Config    config.Config
	Log       *zap.Logger
}

// ErrMsg carries a failed command's error to the page that issued it.
type ErrMsg struct {
	Err error
}

func (e ErrMsg) Error() string { return e.Err.Error() }

// humanError rewords backend errors for the status line.
func humanError(err error) string {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return "Session expired. Please sign in again."
	case errors.Is(err, api.ErrNotFound):
		return "Not found."
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	var decErr *api.DecodeError
	if errors.As(err, &decErr) {
		return "The server sent an unexpected response."
	}
	return err.Error()
}

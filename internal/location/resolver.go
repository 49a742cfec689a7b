package location

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// ErrPermissionDenied is returned by a GPSProvider when the user refuses the
// location permission prompt.
var ErrPermissionDenied = errors.New("location: permission denied")

// GPSProvider abstracts the device position source. The permission request
// and the fix are awaited sequentially inside CurrentPosition, never raced.
type GPSProvider interface {
	CurrentPosition(ctx context.Context) (lat, lon float64, err error)
}

// State is the resolver's lifecycle state. There is no terminal state; the
// resolver stays live for the whole session.
type State int

const (
	StateUninitialized State = iota
	StateResolvingGPS
	StateGPSActive
	StateManualActive
	StateUnavailable
)

func (s State) String() string {
	switch s {
	case StateResolvingGPS:
		return "resolving-gps"
	case StateGPSActive:
		return "gps-active"
	case StateManualActive:
		return "manual-active"
	case StateUnavailable:
		return "unavailable"
	default:
		return "uninitialized"
	}
}

// Resolver establishes and mutates the ActiveLocation. It is the single
// writer; everything downstream reads values through Active.
//
// Fallback policy: a denied permission or a failed fix resolves to the
// configured default city rather than leaving the context empty. Search must
// keep working for users who never grant location access.
type Resolver struct {
	gps         GPSProvider
	defaultCity ActiveLocation
	log         *zap.Logger

	mu         sync.Mutex
	state      State
	active     ActiveLocation
	lastManual ActiveLocation // remembered across GPS toggles; None until a pick
}

// NewResolver builds a Resolver with the given fallback city.
func NewResolver(gps GPSProvider, defaultCityID int, defaultCityName string, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{
		gps:         gps,
		defaultCity: Manual(defaultCityID, defaultCityName),
		log:         log,
		state:       StateUninitialized,
		active:      None(),
	}
}

// RequestGPS asks for permission and a fix, updating the active location.
// On success the returned error is nil and the location is the GPS variant.
// On denial or failure the resolver falls back to the default city and
// returns the cause alongside the fallback, letting the UI explain why it is
// searching from the default; the returned location is never None.
func (r *Resolver) RequestGPS(ctx context.Context) (ActiveLocation, error) {
	r.mu.Lock()
	r.state = StateResolvingGPS
	r.mu.Unlock()

	lat, lon, err := r.gps.CurrentPosition(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.log.Warn("gps unavailable, falling back to default city",
			zap.Error(err),
			zap.String("fallback", r.defaultCity.String()))
		r.state = StateManualActive
		r.active = r.defaultCity
		return r.active, fmt.Errorf("resolve gps: %w", err)
	}

	r.state = StateGPSActive
	r.active = GPS(lat, lon)
	r.log.Info("gps fix acquired", zap.Float64("lat", lat), zap.Float64("lon", lon))
	return r.active, nil
}

// SelectManualCity records an explicit city pick, overriding any GPS state.
// The pick is remembered so a later GPS toggle-off can revert to it.
func (r *Resolver) SelectManualCity(cityID int, cityName string) ActiveLocation {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = StateManualActive
	r.active = Manual(cityID, cityName)
	r.lastManual = r.active
	r.log.Info("manual city selected", zap.Int("city_id", cityID), zap.String("city", cityName))
	return r.active
}

// ClearGPS handles the "use current location" toggle going off. If the user
// previously picked a city the resolver reverts to it; otherwise the context
// becomes unavailable rather than silently jumping to the default.
func (r *Resolver) ClearGPS() ActiveLocation {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.lastManual.IsNone() {
		r.state = StateManualActive
		r.active = r.lastManual
	} else {
		r.state = StateUnavailable
		r.active = None()
	}
	r.log.Info("gps cleared", zap.Stringer("now", r.active))
	return r.active
}

// Active returns the current location value.
func (r *Resolver) Active() ActiveLocation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// State returns the resolver's lifecycle state.
func (r *Resolver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

package location

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"neighbor/internal/api"
)

// StateInfoFetcher is the slice of the API client the advisor needs.
type StateInfoFetcher interface {
	StateInfo(ctx context.Context, lat, lon float64) (api.StateInfo, error)
}

// Advisor compares the chosen search radius against the largest radius that
// stays inside the current state. It is only live while the active location
// is a GPS fix; under a manual city or no location the warning is always off.
//
// The state info is refetched when the coordinates change, never on a radius
// change alone; radius moves only re-evaluate the comparison locally.
type Advisor struct {
	fetch StateInfoFetcher
	log   *zap.Logger

	mu       sync.Mutex
	active   bool
	lat, lon float64
	info     api.StateInfo
	haveInfo bool
}

// NewAdvisor builds an Advisor over the given fetcher.
func NewAdvisor(fetch StateInfoFetcher, log *zap.Logger) *Advisor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Advisor{fetch: fetch, log: log}
}

// Observe feeds the advisor a location change. For a GPS location it fetches
// state info if the coordinates moved; for anything else it goes dormant.
func (a *Advisor) Observe(ctx context.Context, loc ActiveLocation) error {
	lat, lon, ok := loc.Coords()
	if !ok {
		a.mu.Lock()
		a.active = false
		a.haveInfo = false
		a.mu.Unlock()
		return nil
	}

	a.mu.Lock()
	unchanged := a.active && a.haveInfo && a.lat == lat && a.lon == lon
	a.active = true
	a.lat, a.lon = lat, lon
	a.mu.Unlock()
	if unchanged {
		return nil
	}

	info, err := a.fetch.StateInfo(ctx, lat, lon)
	if err != nil {
		a.mu.Lock()
		a.haveInfo = false
		a.mu.Unlock()
		a.log.Warn("state info fetch failed", zap.Error(err))
		return fmt.Errorf("fetch state info: %w", err)
	}

	a.mu.Lock()
	// A newer fix may have superseded this fetch while it was in flight.
	if a.active && a.lat == lat && a.lon == lon {
		a.info = info
		a.haveInfo = true
	}
	a.mu.Unlock()
	a.log.Debug("state info updated",
		zap.String("state", info.StateName),
		zap.Float64("max_safe_radius_km", info.MaxSafeRadiusKm))
	return nil
}

// LeavingRegion reports whether radiusKm likely crosses out of the current
// state. Always false while dormant or before the first successful fetch.
func (a *Advisor) LeavingRegion(radiusKm float64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active && a.haveInfo && radiusKm > a.info.MaxSafeRadiusKm
}

// MaxSafeRadius returns the last fetched constraint. ok is false while
// dormant or before the first successful fetch.
func (a *Advisor) MaxSafeRadius() (float64, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.active || !a.haveInfo {
		return 0, false
	}
	return a.info.MaxSafeRadiusKm, true
}

// StateName returns the name of the state the GPS fix is in, for display.
func (a *Advisor) StateName() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.active || !a.haveInfo {
		return "", false
	}
	return a.info.StateName, true
}

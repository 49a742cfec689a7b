// Package search builds product search requests from the screen's ephemeral
// context and serializes the race between overlapping responses with a
// request generation counter.
package search

import (
	"strings"
	"sync/atomic"

	"neighbor/internal/api"
	"neighbor/internal/location"
)

// Sort is a search ordering accepted by the backend.
type Sort string

const (
	SortDistanceAsc Sort = "distance_asc"
	SortPriceAsc    Sort = "price_asc"
	SortPriceDesc   Sort = "price_desc"
	SortRatingDesc  Sort = "rating_desc"
)

// Next cycles to the following sort option, for the UI's sort toggle.
func (s Sort) Next() Sort {
	switch s {
	case SortPriceAsc:
		return SortPriceDesc
	case SortPriceDesc:
		return SortRatingDesc
	case SortRatingDesc:
		return SortDistanceAsc
	default:
		return SortPriceAsc
	}
}

// Label is the human-readable form for status lines.
func (s Sort) Label() string {
	switch s {
	case SortDistanceAsc:
		return "Distance"
	case SortPriceAsc:
		return "Price: Low to High"
	case SortPriceDesc:
		return "Price: High to Low"
	case SortRatingDesc:
		return "Rating"
	default:
		return string(s)
	}
}

// Context is the ephemeral state of the search screen: created fresh per
// mount, mutated by keystrokes and location updates, never persisted.
type Context struct {
	Query    string
	Location location.ActiveLocation
	Sort     Sort
	RadiusKm float64
}

// Build derives the single backend request from the context. ok is false
// when the trimmed query is empty or no location is resolved; that is the
// idle state, not an error, and the caller must not issue a request.
//
// The emitted query carries exactly one addressing mode: city id under a
// manual location, coordinates plus radius under GPS.
func (c Context) Build() (api.SearchQuery, bool) {
	q := strings.TrimSpace(c.Query)
	if q == "" || c.Location.IsNone() {
		return api.SearchQuery{}, false
	}

	req := api.SearchQuery{Q: q, SortBy: string(c.Sort)}
	if lat, lon, ok := c.Location.Coords(); ok {
		req.Geo = &api.GeoScope{Lat: lat, Lon: lon, RadiusKm: c.RadiusKm}
		return req, true
	}
	cityID, _, _ := c.Location.City()
	req.CityID = &cityID
	return req, true
}

// Generations hands out a monotonically increasing id per issued request and
// answers whether a given id is still the newest. Only the response tagged
// with the newest generation may update visible results; anything older is
// dropped on arrival. This closes the stale-response window a debounce alone
// leaves open.
type Generations struct {
	latest atomic.Uint64
}

// Next reserves the next generation id.
func (g *Generations) Next() uint64 {
	return g.latest.Add(1)
}

// Latest returns the most recently issued id.
func (g *Generations) Latest() uint64 {
	return g.latest.Load()
}

// IsCurrent reports whether gen is still the newest issued id.
func (g *Generations) IsCurrent(gen uint64) bool {
	return gen == g.latest.Load()
}

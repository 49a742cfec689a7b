// Package location owns the active search location: a tagged union of a GPS
// fix, a manually picked city, or nothing, plus the resolver state machine
// that mutates it and the radius advisor that warns when a GPS search radius
// likely crosses the state line.
package location

import "fmt"

// Mode discriminates the ActiveLocation union.
type Mode int

const (
	// ModeNone means no location has been resolved yet.
	ModeNone Mode = iota
	// ModeGPS means the search scope is a device coordinate fix.
	ModeGPS
	// ModeManual means the user picked a city explicitly.
	ModeManual
)

func (m Mode) String() string {
	switch m {
	case ModeGPS:
		return "gps"
	case ModeManual:
		return "manual"
	default:
		return "none"
	}
}

// ActiveLocation is the single location governing search scope. Exactly one
// variant is active at a time; the constructors are the only way to build a
// non-zero value, so a value can never carry both a city and coordinates.
type ActiveLocation struct {
	mode     Mode
	lat, lon float64
	cityID   int
	cityName string
}

// None returns the unresolved location.
func None() ActiveLocation {
	return ActiveLocation{}
}

// GPS returns a coordinate-based location.
func GPS(lat, lon float64) ActiveLocation {
	return ActiveLocation{mode: ModeGPS, lat: lat, lon: lon}
}

// Manual returns a city-based location.
func Manual(cityID int, cityName string) ActiveLocation {
	return ActiveLocation{mode: ModeManual, cityID: cityID, cityName: cityName}
}

// Mode reports which variant is active.
func (l ActiveLocation) Mode() Mode { return l.mode }

// IsNone reports whether no location is resolved.
func (l ActiveLocation) IsNone() bool { return l.mode == ModeNone }

// Coords returns the GPS fix. ok is false unless the GPS variant is active.
func (l ActiveLocation) Coords() (lat, lon float64, ok bool) {
	if l.mode != ModeGPS {
		return 0, 0, false
	}
	return l.lat, l.lon, true
}

// City returns the manual city. ok is false unless the manual variant is active.
func (l ActiveLocation) City() (id int, name string, ok bool) {
	if l.mode != ModeManual {
		return 0, "", false
	}
	return l.cityID, l.cityName, true
}

// String renders the location for status lines and logs.
func (l ActiveLocation) String() string {
	switch l.mode {
	case ModeGPS:
		return fmt.Sprintf("gps(%.4f,%.4f)", l.lat, l.lon)
	case ModeManual:
		return fmt.Sprintf("city(%d:%s)", l.cityID, l.cityName)
	default:
		return "none"
	}
}

package location

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvProvider reads the device position from the NEIGHBOR_GPS environment
// variable ("lat,lon"). A terminal has no location hardware, so granting the
// permission means exporting the variable; an unset variable is a denial.
type EnvProvider struct{}

// CurrentPosition implements GPSProvider.
func (EnvProvider) CurrentPosition(_ context.Context) (float64, float64, error) {
	raw := os.Getenv("NEIGHBOR_GPS")
	if raw == "" {
		return 0, 0, ErrPermissionDenied
	}
	parts := strings.SplitN(raw, ",", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("parse NEIGHBOR_GPS %q: want \"lat,lon\"", raw)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse NEIGHBOR_GPS latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse NEIGHBOR_GPS longitude: %w", err)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, fmt.Errorf("NEIGHBOR_GPS out of range: %q", raw)
	}
	return lat, lon, nil
}

// StaticProvider returns a fixed position, for tests and demos.
type StaticProvider struct {
	Lat, Lon float64
	Err      error
}

// CurrentPosition implements GPSProvider.
func (p StaticProvider) CurrentPosition(_ context.Context) (float64, float64, error) {
	if p.Err != nil {
		return 0, 0, p.Err
	}
	return p.Lat, p.Lon, nil
}

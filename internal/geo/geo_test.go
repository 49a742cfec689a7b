package geo

import (
	"math"
	"testing"
)

func TestDistanceKm(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
		tolerance              float64
	}{
		{name: "zero distance", lat1: 6.52, lon1: 3.37, lat2: 6.52, lon2: 3.37, want: 0, tolerance: 0.001},
		{name: "Lagos to Ibadan", lat1: 6.5244, lon1: 3.3792, lat2: 7.3775, lon2: 3.9470, want: 113, tolerance: 3},
		{name: "across the equator", lat1: 1, lon1: 0, lat2: -1, lon2: 0, want: 222.4, tolerance: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("DistanceKm = %.2f, want %.2f ± %.2f", got, tt.want, tt.tolerance)
			}
		})
	}
}

package location

import (
	"context"
	"errors"
	"testing"
)

func TestEnvProvider(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		lat     float64
		lon     float64
		wantErr bool
		denied  bool
	}{
		{name: "unset is a denial", value: "", denied: true},
		{name: "valid fix", value: "6.52,3.37", lat: 6.52, lon: 3.37},
		{name: "spaces tolerated", value: " 6.52 , 3.37 ", lat: 6.52, lon: 3.37},
		{name: "missing longitude", value: "6.52", wantErr: true},
		{name: "not numbers", value: "here,there", wantErr: true},
		{name: "latitude out of range", value: "91,0", wantErr: true},
		{name: "longitude out of range", value: "0,181", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NEIGHBOR_GPS", tt.value)

			lat, lon, err := EnvProvider{}.CurrentPosition(context.Background())
			switch {
			case tt.denied:
				if !errors.Is(err, ErrPermissionDenied) {
					t.Errorf("expected permission denial, got %v", err)
				}
			case tt.wantErr:
				if err == nil {
					t.Error("expected an error")
				}
			default:
				if err != nil {
					t.Fatalf("CurrentPosition: %v", err)
				}
				if lat != tt.lat || lon != tt.lon {
					t.Errorf("got (%v, %v), want (%v, %v)", lat, lon, tt.lat, tt.lon)
				}
			}
		})
	}
}

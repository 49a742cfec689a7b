package location

import (
	"context"
	"errors"
	"testing"
)

func TestResolver_GPSSuccess(t *testing.T) {
	r := NewResolver(StaticProvider{Lat: 6.52, Lon: 3.37}, 8, "Owerri", nil)

	loc, err := r.RequestGPS(context.Background())
	if err != nil {
		t.Fatalf("RequestGPS: %v", err)
	}
	lat, lon, ok := loc.Coords()
	if !ok || lat != 6.52 || lon != 3.37 {
		t.Errorf("expected GPS(6.52, 3.37), got %s", loc)
	}
	if r.State() != StateGPSActive {
		t.Errorf("expected gps-active, got %s", r.State())
	}
}

func TestResolver_DenialFallsBackToDefaultCity(t *testing.T) {
	r := NewResolver(StaticProvider{Err: ErrPermissionDenied}, 8, "Owerri", nil)

	loc, err := r.RequestGPS(context.Background())
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected permission denied cause, got %v", err)
	}
	// The fallback must be usable: never None.
	id, name, ok := loc.City()
	if !ok || id != 8 || name != "Owerri" {
		t.Errorf("expected fallback city Owerri(8), got %s", loc)
	}
	if r.State() != StateManualActive {
		t.Errorf("expected manual-active after fallback, got %s", r.State())
	}
}

func TestResolver_ManualOverridesGPS(t *testing.T) {
	r := NewResolver(StaticProvider{Lat: 6.52, Lon: 3.37}, 8, "Owerri", nil)
	if _, err := r.RequestGPS(context.Background()); err != nil {
		t.Fatalf("RequestGPS: %v", err)
	}

	loc := r.SelectManualCity(3, "Aba")
	id, name, ok := loc.City()
	if !ok || id != 3 || name != "Aba" {
		t.Errorf("expected city Aba(3), got %s", loc)
	}
	if _, _, ok := r.Active().Coords(); ok {
		t.Error("coordinates must not survive a manual pick")
	}
}

func TestResolver_ClearGPSRevertsToLastManual(t *testing.T) {
	r := NewResolver(StaticProvider{Lat: 6.52, Lon: 3.37}, 8, "Owerri", nil)
	r.SelectManualCity(3, "Aba")
	if _, err := r.RequestGPS(context.Background()); err != nil {
		t.Fatalf("RequestGPS: %v", err)
	}

	loc := r.ClearGPS()
	id, _, ok := loc.City()
	if !ok || id != 3 {
		t.Errorf("expected revert to Aba(3), got %s", loc)
	}
	if r.State() != StateManualActive {
		t.Errorf("expected manual-active, got %s", r.State())
	}
}

func TestResolver_ClearGPSWithoutManualGoesUnavailable(t *testing.T) {
	r := NewResolver(StaticProvider{Lat: 6.52, Lon: 3.37}, 8, "Owerri", nil)
	if _, err := r.RequestGPS(context.Background()); err != nil {
		t.Fatalf("RequestGPS: %v", err)
	}

	loc := r.ClearGPS()
	if !loc.IsNone() {
		t.Errorf("expected none, got %s", loc)
	}
	if r.State() != StateUnavailable {
		t.Errorf("expected unavailable, got %s", r.State())
	}
}

func TestActiveLocation_ExactlyOneVariant(t *testing.T) {
	gps := GPS(6.52, 3.37)
	if _, _, ok := gps.City(); ok {
		t.Error("gps location must not expose a city")
	}
	manual := Manual(8, "Owerri")
	if _, _, ok := manual.Coords(); ok {
		t.Error("manual location must not expose coordinates")
	}
	if !None().IsNone() {
		t.Error("zero value must be none")
	}
}

package location

import (
	"context"
	"errors"
	"testing"

	"neighbor/internal/api"
)

type fakeStateInfo struct {
	calls int
	info  api.StateInfo
	err   error
}

func (f *fakeStateInfo) StateInfo(_ context.Context, lat, lon float64) (api.StateInfo, error) {
	f.calls++
	if f.err != nil {
		return api.StateInfo{}, f.err
	}
	return f.info, nil
}

func TestAdvisor_WarnsWhenRadiusExceedsMaxSafe(t *testing.T) {
	fetch := &fakeStateInfo{info: api.StateInfo{StateID: 25, StateName: "Lagos", MaxSafeRadiusKm: 10}}
	a := NewAdvisor(fetch, nil)

	if err := a.Observe(context.Background(), GPS(6.52, 3.37)); err != nil {
		t.Fatalf("Observe: %v", err)
	}
	if !a.LeavingRegion(15) {
		t.Error("15 km against a 10 km limit must warn")
	}
	if a.LeavingRegion(10) {
		t.Error("radius equal to the limit must not warn")
	}
	if name, ok := a.StateName(); !ok || name != "Lagos" {
		t.Errorf("expected state Lagos, got %q ok=%v", name, ok)
	}
}

func TestAdvisor_FetchesOnCoordinateChangeOnly(t *testing.T) {
	fetch := &fakeStateInfo{info: api.StateInfo{StateID: 25, StateName: "Lagos", MaxSafeRadiusKm: 10}}
	a := NewAdvisor(fetch, nil)
	ctx := context.Background()

	if err := a.Observe(ctx, GPS(6.52, 3.37)); err != nil {
		t.Fatalf("Observe: %v", err)
	}
	// Same fix again: radius moves alone never refetch.
	if err := a.Observe(ctx, GPS(6.52, 3.37)); err != nil {
		t.Fatalf("Observe: %v", err)
	}
	a.LeavingRegion(5)
	a.LeavingRegion(50)
	if fetch.calls != 1 {
		t.Fatalf("expected 1 fetch, got %d", fetch.calls)
	}

	if err := a.Observe(ctx, GPS(6.53, 3.37)); err != nil {
		t.Fatalf("Observe: %v", err)
	}
	if fetch.calls != 2 {
		t.Fatalf("expected refetch on moved fix, got %d calls", fetch.calls)
	}
}

func TestAdvisor_DormantOutsideGPSMode(t *testing.T) {
	fetch := &fakeStateInfo{info: api.StateInfo{StateID: 25, StateName: "Lagos", MaxSafeRadiusKm: 10}}
	a := NewAdvisor(fetch, nil)
	ctx := context.Background()

	if err := a.Observe(ctx, Manual(8, "Owerri")); err != nil {
		t.Fatalf("Observe: %v", err)
	}
	if fetch.calls != 0 {
		t.Errorf("manual location must not fetch, got %d calls", fetch.calls)
	}
	if a.LeavingRegion(1000) {
		t.Error("advisor must stay silent under a manual city")
	}

	// Going GPS then back to manual resets the dormant state.
	if err := a.Observe(ctx, GPS(6.52, 3.37)); err != nil {
		t.Fatalf("Observe: %v", err)
	}
	if err := a.Observe(ctx, None()); err != nil {
		t.Fatalf("Observe: %v", err)
	}
	if a.LeavingRegion(1000) {
		t.Error("advisor must go dormant when GPS ends")
	}
}

func TestAdvisor_FetchFailureStaysSilent(t *testing.T) {
	fetch := &fakeStateInfo{err: errors.New("boom")}
	a := NewAdvisor(fetch, nil)

	if err := a.Observe(context.Background(), GPS(6.52, 3.37)); err == nil {
		t.Fatal("expected fetch error")
	}
	if a.LeavingRegion(1000) {
		t.Error("no constraint known, must not warn")
	}
	if _, ok := a.MaxSafeRadius(); ok {
		t.Error("MaxSafeRadius must report no data after a failed fetch")
	}
}

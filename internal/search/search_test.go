package search

import (
	"testing"

	"neighbor/internal/location"
)

func TestContextBuild_IdleStates(t *testing.T) {
	tests := []struct {
		name string
		ctx  Context
	}{
		{"empty query", Context{Query: "", Location: location.Manual(8, "Owerri")}},
		{"whitespace query", Context{Query: "   ", Location: location.Manual(8, "Owerri")}},
		{"no location", Context{Query: "rice", Location: location.None()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := tt.ctx.Build(); ok {
				t.Error("expected idle, got a request")
			}
		})
	}
}

func TestContextBuild_ManualUsesCityID(t *testing.T) {
	ctx := Context{Query: "rice", Location: location.Manual(8, "Owerri"), Sort: SortPriceAsc}
	req, ok := ctx.Build()
	if !ok {
		t.Fatal("expected a request")
	}
	if req.CityID == nil || *req.CityID != 8 {
		t.Errorf("expected city_id 8, got %v", req.CityID)
	}
	if req.Geo != nil {
		t.Error("manual scope must not carry coordinates")
	}
	if req.Q != "rice" || req.SortBy != "price_asc" {
		t.Errorf("unexpected request %+v", req)
	}
}

func TestContextBuild_GPSUsesGeoScope(t *testing.T) {
	ctx := Context{Query: " milk ", Location: location.GPS(6.52, 3.37), RadiusKm: 10}
	req, ok := ctx.Build()
	if !ok {
		t.Fatal("expected a request")
	}
	if req.CityID != nil {
		t.Error("gps scope must not carry a city id")
	}
	if req.Geo == nil || req.Geo.Lat != 6.52 || req.Geo.Lon != 3.37 || req.Geo.RadiusKm != 10 {
		t.Errorf("unexpected geo scope %+v", req.Geo)
	}
	if req.Q != "milk" {
		t.Errorf("query must be trimmed, got %q", req.Q)
	}
}

func TestSortCycle(t *testing.T) {
	order := []Sort{SortPriceAsc, SortPriceDesc, SortRatingDesc, SortDistanceAsc, SortPriceAsc}
	s := SortPriceAsc
	for i := 1; i < len(order); i++ {
		s = s.Next()
		if s != order[i] {
			t.Fatalf("step %d: expected %s, got %s", i, order[i], s)
		}
	}
}

func TestGenerations_StaleDetection(t *testing.T) {
	var g Generations

	first := g.Next()
	second := g.Next()

	if g.IsCurrent(first) {
		t.Error("first request must be stale once the second is issued")
	}
	if !g.IsCurrent(second) {
		t.Error("second request must be current")
	}
	if g.Latest() != second {
		t.Errorf("latest is %d, expected %d", g.Latest(), second)
	}
}

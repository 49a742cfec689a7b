package favorites

import (
	"context"
	"errors"
	"testing"

	"neighbor/internal/api"
)

type fakeSession bool

func (f fakeSession) Authenticated() bool { return bool(f) }

type fakeFavAPI struct {
	stores []api.StoreSimple
	fail   bool
}

func (f *fakeFavAPI) FavoriteStores(context.Context) ([]api.StoreSimple, error) {
	if f.fail {
		return nil, errors.New("backend down")
	}
	return f.stores, nil
}

func (f *fakeFavAPI) AddFavoriteStore(_ context.Context, storeID int) error {
	if f.fail {
		return errors.New("backend down")
	}
	f.stores = append(f.stores, api.StoreSimple{ID: storeID, Name: "store"})
	return nil
}

func (f *fakeFavAPI) RemoveFavoriteStore(_ context.Context, storeID int) error {
	if f.fail {
		return errors.New("backend down")
	}
	kept := f.stores[:0]
	for _, st := range f.stores {
		if st.ID != storeID {
			kept = append(kept, st)
		}
	}
	f.stores = kept
	return nil
}

func TestSet_SyncAndContains(t *testing.T) {
	backend := &fakeFavAPI{stores: []api.StoreSimple{{ID: 3, Name: "Mama Nkechi"}}}
	s := New(backend, fakeSession(true), nil)

	if s.Contains(3) {
		t.Error("must not answer true before the first sync")
	}
	if err := s.Sync(context.Background()); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if !s.Contains(3) || s.Contains(4) {
		t.Error("membership does not match the synced set")
	}
}

func TestSet_ToggleRoundTrip(t *testing.T) {
	backend := &fakeFavAPI{}
	s := New(backend, fakeSession(true), nil)
	ctx := context.Background()
	if err := s.Sync(ctx); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	if err := s.Toggle(ctx, 9); err != nil {
		t.Fatalf("Toggle on: %v", err)
	}
	if !s.Contains(9) {
		t.Fatal("store must be a favorite after toggle on")
	}
	if err := s.Toggle(ctx, 9); err != nil {
		t.Fatalf("Toggle off: %v", err)
	}
	if s.Contains(9) {
		t.Error("store must not be a favorite after toggle off")
	}
}

func TestSet_DormantWithoutSession(t *testing.T) {
	s := New(&fakeFavAPI{}, fakeSession(false), nil)
	ctx := context.Background()

	if err := s.Sync(ctx); !errors.Is(err, api.ErrUnauthorized) {
		t.Errorf("Sync: expected ErrUnauthorized, got %v", err)
	}
	if err := s.Add(ctx, 1); !errors.Is(err, api.ErrUnauthorized) {
		t.Errorf("Add: expected ErrUnauthorized, got %v", err)
	}
	if s.Contains(1) {
		t.Error("dormant set must answer false")
	}
}

func TestSet_ClearDropsEverything(t *testing.T) {
	backend := &fakeFavAPI{stores: []api.StoreSimple{{ID: 3, Name: "Mama Nkechi"}}}
	s := New(backend, fakeSession(true), nil)
	if err := s.Sync(context.Background()); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	s.Clear()
	if s.Contains(3) {
		t.Error("membership must be gone after Clear")
	}
	if _, ok := s.Stores(); ok {
		t.Error("Stores must report unloaded after Clear")
	}
}

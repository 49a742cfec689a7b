package shoppinglist

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"neighbor/internal/api"
)

type fakeSession bool

func (f fakeSession) Authenticated() bool { return bool(f) }

type call struct {
	op       string
	itemID   int
	quantity int
}

type fakeListAPI struct {
	list    api.ShoppingList
	calls   []call
	failOn  string
	fetches int
}

var errBackend = errors.New("backend down")

func (f *fakeListAPI) ShoppingList(context.Context) (api.ShoppingList, error) {
	if f.failOn == "fetch" {
		return api.ShoppingList{}, errBackend
	}
	f.fetches++
	return f.list, nil
}

func (f *fakeListAPI) AddListItem(_ context.Context, item api.ListItemCreate) (api.ListItem, error) {
	f.calls = append(f.calls, call{op: "add", quantity: item.Quantity})
	if f.failOn == "add" {
		return api.ListItem{}, errBackend
	}
	return api.ListItem{ID: 1, ProductID: item.ProductID, Quantity: item.Quantity}, nil
}

func (f *fakeListAPI) UpdateListItem(_ context.Context, itemID, quantity int) error {
	f.calls = append(f.calls, call{op: "update", itemID: itemID, quantity: quantity})
	if f.failOn == "update" {
		return errBackend
	}
	return nil
}

func (f *fakeListAPI) DeleteListItem(_ context.Context, itemID int) error {
	f.calls = append(f.calls, call{op: "delete", itemID: itemID})
	if f.failOn == "delete" {
		return errBackend
	}
	return nil
}

func TestReconciler_NoSession(t *testing.T) {
	r := New(&fakeListAPI{}, fakeSession(false), nil)
	ctx := context.Background()

	if err := r.Refresh(ctx); !errors.Is(err, ErrNoSession) {
		t.Errorf("Refresh: expected ErrNoSession, got %v", err)
	}
	if err := r.Add(ctx, api.ListItemCreate{ProductID: 1}); !errors.Is(err, ErrNoSession) {
		t.Errorf("Add: expected ErrNoSession, got %v", err)
	}
	if err := r.SetQuantity(ctx, 1, 2); !errors.Is(err, ErrNoSession) {
		t.Errorf("SetQuantity: expected ErrNoSession, got %v", err)
	}
}

func TestReconciler_AddRefetchesServerTotal(t *testing.T) {
	backend := &fakeListAPI{list: api.ShoppingList{
		ID:         7,
		Items:      []api.ListItem{{ID: 1, ProductID: 2, Quantity: 2, ProductName: "Rice 5kg", StoreID: 3, PriceAtAddition: 500}},
		TotalPrice: 1000,
	}}
	r := New(backend, fakeSession(true), nil)

	if err := r.Add(context.Background(), api.ListItemCreate{ProductID: 2, StoreID: 3, PriceAtAddition: 500, Quantity: 1}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	list, ok := r.List()
	if !ok {
		t.Fatal("cache must be populated after a successful add")
	}
	if diff := cmp.Diff(backend.list, list); diff != "" {
		t.Errorf("cache mismatch (-want +got):\n%s", diff)
	}
	if list.TotalPrice != 1000 {
		t.Errorf("total must come from the server, got %v", list.TotalPrice)
	}
	if backend.fetches != 1 {
		t.Errorf("expected exactly one refetch, got %d", backend.fetches)
	}
}

func TestReconciler_ZeroQuantityDeletes(t *testing.T) {
	backend := &fakeListAPI{}
	r := New(backend, fakeSession(true), nil)

	for _, q := range []int{0, -1} {
		backend.calls = nil
		if err := r.SetQuantity(context.Background(), 42, q); err != nil {
			t.Fatalf("SetQuantity(%d): %v", q, err)
		}
		if len(backend.calls) != 1 || backend.calls[0].op != "delete" || backend.calls[0].itemID != 42 {
			t.Errorf("quantity %d: expected a delete of item 42, got %+v", q, backend.calls)
		}
	}
}

func TestReconciler_PositiveQuantityUpdates(t *testing.T) {
	backend := &fakeListAPI{}
	r := New(backend, fakeSession(true), nil)

	if err := r.SetQuantity(context.Background(), 42, 3); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	want := call{op: "update", itemID: 42, quantity: 3}
	if len(backend.calls) != 1 || backend.calls[0] != want {
		t.Errorf("expected %+v, got %+v", want, backend.calls)
	}
}

func TestReconciler_FailedMutationLeavesCache(t *testing.T) {
	backend := &fakeListAPI{list: api.ShoppingList{
		Items:      []api.ListItem{{ID: 1, ProductID: 2, Quantity: 1, ProductName: "Rice 5kg", StoreID: 3, PriceAtAddition: 500}},
		TotalPrice: 500,
	}}
	r := New(backend, fakeSession(true), nil)
	if err := r.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	before, _ := r.List()

	backend.failOn = "update"
	if err := r.SetQuantity(context.Background(), 1, 5); err == nil {
		t.Fatal("expected mutation failure")
	}

	after, ok := r.List()
	if !ok {
		t.Fatal("cache must survive a failed mutation")
	}
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("cache changed on failure (-before +after):\n%s", diff)
	}
}

func TestReconciler_ClearDropsCache(t *testing.T) {
	backend := &fakeListAPI{list: api.ShoppingList{TotalPrice: 500}}
	r := New(backend, fakeSession(true), nil)
	if err := r.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	r.Clear()
	if _, ok := r.List(); ok {
		t.Error("cache must be empty after Clear")
	}
}

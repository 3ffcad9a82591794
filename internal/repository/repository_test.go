package repository

import (
	"context"
	"errors"
	"testing"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type failingAdapter struct{}

func (failingAdapter) Load(context.Context, Collection) (string, error) {
	return "", errors.New("disk on fire")
}

func (failingAdapter) Save(context.Context, Collection, string) error {
	return errors.New("disk on fire")
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	in := []record{{ID: "1", Name: "Cable"}, {ID: "2", Name: "Case"}}

	if err := SaveCollection(ctx, repo, Products, in); err != nil {
		t.Fatalf("SaveCollection() error = %v", err)
	}
	out := LoadCollection[record](ctx, repo, Products, nil)
	if len(out) != 2 || out[1].Name != "Case" {
		t.Errorf("LoadCollection() = %+v", out)
	}
}

func TestLoadCollection_ColdStart(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	_ = repo.Save(ctx, Budgets, "{not json")
	_ = repo.Save(ctx, Quotations, "null")

	testCases := []struct {
		name    string
		adapter Adapter
		coll    Collection
	}{
		{name: "absent", adapter: repo, coll: Products},
		{name: "corrupt", adapter: repo, coll: Budgets},
		{name: "null", adapter: repo, coll: Quotations},
		{name: "load error", adapter: failingAdapter{}, coll: Products},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := LoadCollection[record](ctx, tc.adapter, tc.coll, nil)
			if got == nil || len(got) != 0 {
				t.Errorf("LoadCollection() = %#v, want empty non-nil slice", got)
			}
		})
	}
}

func TestSaveCollection_Errors(t *testing.T) {
	err := SaveCollection(context.Background(), failingAdapter{}, StockOuts, []record{{ID: "1"}})
	if err == nil {
		t.Fatal("SaveCollection() error = nil")
	}

	repo := NewMemoryRepository()
	if err := SaveCollection[record](context.Background(), repo, StockOuts, nil); err != nil {
		t.Fatal(err)
	}
	if payload, _ := repo.Load(context.Background(), StockOuts); payload != "[]" {
		t.Errorf("payload = %q, want []", payload)
	}
}

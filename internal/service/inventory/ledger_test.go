package inventory

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

var baseTime = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestLedger(t *testing.T) (*Ledger, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: baseTime}
	l := NewLedger(nil)
	l.now = clock.now
	seq := 0
	l.newID = func() string {
		seq++
		return fmt.Sprintf("p-%d", seq)
	}
	return l, clock
}

func cable() models.ProductInput {
	return models.ProductInput{Name: "Cable", Category: "Cabos USB", CostPrice: 10, SalePrice: 20, Quantity: 3}
}

func TestLedger_CreateComputesMargin(t *testing.T) {
	testCases := []struct {
		name       string
		cost, sale float64
		wantMargin float64
	}{
		{name: "double", cost: 10, sale: 20, wantMargin: 100},
		{name: "thirty percent", cost: 10, sale: 13, wantMargin: 30},
		{name: "loss", cost: 20, sale: 15, wantMargin: -25},
		{name: "fractional", cost: 3, sale: 4, wantMargin: 33.333333},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l, _ := newTestLedger(t)
			created, err := l.Create(models.ProductInput{Name: "Case", Category: "Cases", CostPrice: tc.cost, SalePrice: tc.sale, Quantity: 10})
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			list := l.List()
			if len(list) != 1 {
				t.Fatalf("List() len = %d, want 1", len(list))
			}
			if list[0].ID != created.ID {
				t.Errorf("List()[0].ID = %q, want %q", list[0].ID, created.ID)
			}
			if math.Abs(list[0].ProfitMargin-tc.wantMargin) > 1e-4 {
				t.Errorf("ProfitMargin = %v, want %v", list[0].ProfitMargin, tc.wantMargin)
			}
			if !created.EntryDate.Equal(baseTime) {
				t.Errorf("EntryDate = %v, want %v", created.EntryDate, baseTime)
			}
		})
	}
}

func TestLedger_CreateValidation(t *testing.T) {
	valid := models.ProductInput{Name: "Charger", Category: "Chargers", CostPrice: 10, SalePrice: 15, Quantity: 1}
	testCases := []struct {
		name      string
		mutate    func(in *models.ProductInput)
		wantField string
	}{
		{name: "blank name", mutate: func(in *models.ProductInput) { in.Name = "   " }, wantField: "name"},
		{name: "unknown category", mutate: func(in *models.ProductInput) { in.Category = "Phones" }, wantField: "category"},
		{name: "zero cost", mutate: func(in *models.ProductInput) { in.CostPrice = 0 }, wantField: "costPrice"},
		{name: "zero sale", mutate: func(in *models.ProductInput) { in.SalePrice = 0 }, wantField: "salePrice"},
		{name: "negative sale", mutate: func(in *models.ProductInput) { in.SalePrice = -1 }, wantField: "salePrice"},
		{name: "negative quantity", mutate: func(in *models.ProductInput) { in.Quantity = -1 }, wantField: "quantity"},
		{name: "first failing field wins", mutate: func(in *models.ProductInput) { in.CostPrice = 0; in.SalePrice = 0 }, wantField: "costPrice"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l, _ := newTestLedger(t)
			in := valid
			tc.mutate(&in)
			_, err := l.Create(in)
			var verr *models.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Create() error = %v, want ValidationError", err)
			}
			if verr.Field != tc.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tc.wantField)
			}
			if got := len(l.List()); got != 0 {
				t.Errorf("collection size = %d, want 0", got)
			}
		})
	}
}

func TestLedger_UpdateKeepsEntryDate(t *testing.T) {
	l, clock := newTestLedger(t)
	created, err := l.Create(cable())
	if err != nil {
		t.Fatal(err)
	}

	clock.t = baseTime.Add(10*day + 5*time.Hour)
	in := cable()
	in.Name = "USB-C Cable"
	in.SalePrice = 25
	updated, err := l.Update(created.ID, in)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if !updated.EntryDate.Equal(created.EntryDate) {
		t.Errorf("EntryDate changed to %v", updated.EntryDate)
	}
	if updated.DaysInStock != 10 {
		t.Errorf("DaysInStock = %d, want 10", updated.DaysInStock)
	}
	if updated.ProfitMargin != 150 {
		t.Errorf("ProfitMargin = %v, want 150", updated.ProfitMargin)
	}
	if updated.Name != "USB-C Cable" {
		t.Errorf("Name = %q", updated.Name)
	}
}

func TestLedger_UpdateErrors(t *testing.T) {
	l, _ := newTestLedger(t)
	created, _ := l.Create(cable())

	if _, err := l.Update("missing", cable()); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrNotFound", err)
	}

	bad := cable()
	bad.CostPrice = 0
	var verr *models.ValidationError
	if _, err := l.Update(created.ID, bad); !errors.As(err, &verr) {
		t.Errorf("Update(invalid) error = %v, want ValidationError", err)
	}
	got, _ := l.Get(created.ID)
	if got.CostPrice != 10 {
		t.Errorf("CostPrice = %v after rejected update, want 10", got.CostPrice)
	}
}

func TestLedger_DeleteUnknownIsNoop(t *testing.T) {
	l, _ := newTestLedger(t)
	created, _ := l.Create(cable())

	if l.Delete("missing") {
		t.Error("Delete(missing) = true, want false")
	}
	if len(l.List()) != 1 {
		t.Fatal("collection changed after deleting unknown id")
	}
	if !l.Delete(created.ID) {
		t.Error("Delete(existing) = false, want true")
	}
	if len(l.List()) != 0 {
		t.Error("product still listed after delete")
	}
}

func TestLedger_AdjustQuantity(t *testing.T) {
	testCases := []struct {
		name     string
		start    int
		delta    int
		wantQty  int
		wantFail bool
	}{
		{name: "partial", start: 10, delta: -4, wantQty: 6},
		{name: "exact", start: 4, delta: -4, wantQty: 0},
		{name: "too many", start: 3, delta: -5, wantQty: 3, wantFail: true},
		{name: "magnitude of positive delta", start: 5, delta: 2, wantQty: 3},
		{name: "zero", start: 2, delta: 0, wantQty: 2},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l, _ := newTestLedger(t)
			in := cable()
			in.Quantity = tc.start
			p, _ := l.Create(in)

			_, err := l.AdjustQuantity(p.ID, tc.delta, "test")
			if tc.wantFail {
				var short *models.InsufficientStockError
				if !errors.As(err, &short) {
					t.Fatalf("AdjustQuantity() error = %v, want InsufficientStockError", err)
				}
				if !errors.Is(err, models.ErrInsufficientStock) {
					t.Error("error does not match ErrInsufficientStock")
				}
				if short.Available != tc.start {
					t.Errorf("Available = %d, want %d", short.Available, tc.start)
				}
			} else if err != nil {
				t.Fatalf("AdjustQuantity() error = %v", err)
			}
			got, _ := l.Get(p.ID)
			if got.Quantity != tc.wantQty {
				t.Errorf("Quantity = %d, want %d", got.Quantity, tc.wantQty)
			}
		})
	}
}

func TestLedger_AdjustUnknownProduct(t *testing.T) {
	l, _ := newTestLedger(t)
	if _, err := l.AdjustQuantity("nope", -1, "test"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestLedger_LowStockHook(t *testing.T) {
	l, _ := newTestLedger(t)
	var alerted []string
	l.OnLowStock(func(p models.Product) { alerted = append(alerted, fmt.Sprintf("%s:%d", p.Name, p.Quantity)) })

	in := cable()
	in.Quantity = 7
	p, _ := l.Create(in)
	if len(alerted) != 0 {
		t.Fatalf("alerted on healthy create: %v", alerted)
	}
	if _, err := l.AdjustQuantity(p.ID, -2, "sale"); err != nil {
		t.Fatal(err)
	}
	if _, err := l.AdjustQuantity(p.ID, -9, "sale"); err == nil {
		t.Fatal("expected rejection")
	}
	want := []string{"Cable:5"}
	if fmt.Sprint(alerted) != fmt.Sprint(want) {
		t.Errorf("alerts = %v, want %v", alerted, want)
	}
}

func TestLedger_EndToEndCable(t *testing.T) {
	l, _ := newTestLedger(t)
	p, err := l.Create(cable())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if p.Category != models.CategoryUSBCables {
		t.Errorf("Category = %q, want %q", p.Category, models.CategoryUSBCables)
	}
	if p.ProfitMargin != 100 || p.DaysInStock != 0 {
		t.Errorf("margin=%v days=%d, want 100 and 0", p.ProfitMargin, p.DaysInStock)
	}

	if _, err := l.AdjustQuantity(p.ID, -5, "sale"); !errors.Is(err, models.ErrInsufficientStock) {
		t.Fatalf("AdjustQuantity(-5) error = %v, want insufficient stock", err)
	}
	if got, _ := l.Get(p.ID); got.Quantity != 3 {
		t.Fatalf("Quantity = %d after rejection, want 3", got.Quantity)
	}

	after, err := l.AdjustQuantity(p.ID, -3, "sale")
	if err != nil {
		t.Fatalf("AdjustQuantity(-3) error = %v", err)
	}
	if after.Quantity != 0 {
		t.Errorf("Quantity = %d, want 0", after.Quantity)
	}
	health, err := l.Health(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !health.LowStock {
		t.Error("LowStock = false, want true")
	}
}

func TestLedger_SnapshotRestore(t *testing.T) {
	l, _ := newTestLedger(t)
	_, _ = l.Create(cable())
	snap := l.Snapshot()

	other, _ := newTestLedger(t)
	other.Restore(snap)
	if len(other.List()) != 1 || other.List()[0].Name != "Cable" {
		t.Errorf("restored list = %+v", other.List())
	}

	snap[0].Name = "mutated"
	if other.List()[0].Name != "Cable" {
		t.Error("Restore kept a reference to the caller's slice")
	}
}

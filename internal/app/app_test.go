package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/metrics"
	"github.com/mamadbah2/stockroom/internal/repository"
)

type countingAdapter struct {
	*repository.MemoryRepository
	saves   map[repository.Collection]int
	failing bool
}

func newCountingAdapter() *countingAdapter {
	return &countingAdapter{MemoryRepository: repository.NewMemoryRepository(), saves: map[repository.Collection]int{}}
}

func (c *countingAdapter) Save(ctx context.Context, name repository.Collection, payload string) error {
	c.saves[name]++
	if c.failing {
		return errors.New("disk full")
	}
	return c.MemoryRepository.Save(ctx, name, payload)
}

type recordingAlerts struct {
	products []models.Product
}

func (r *recordingAlerts) LowStock(_ context.Context, products []models.Product) {
	r.products = append(r.products, products...)
}

type recordingJournal struct {
	receipts  int
	stockOuts int
}

func (j *recordingJournal) AppendReceipt(context.Context, models.SalesReceipt) error {
	j.receipts++
	return nil
}

func (j *recordingJournal) AppendStockOut(context.Context, models.StockOut) error {
	j.stockOuts++
	return nil
}

func cable(qty int) models.ProductInput {
	return models.ProductInput{Name: "Cable", Category: "Cabos USB", CostPrice: 10, SalePrice: 20, Quantity: qty}
}

func TestApp_PersistsAndReloads(t *testing.T) {
	ctx := context.Background()
	adapter := newCountingAdapter()
	a := New(ctx, adapter, Options{Policy: models.AdjustBestEffort}, nil)

	p, err := a.CreateProduct(ctx, cable(10))
	if err != nil {
		t.Fatalf("CreateProduct() error = %v", err)
	}
	if _, err := a.RecordStockOut(ctx, models.StockOutInput{ProductID: p.ID, Quantity: 3, Reason: "sale"}); err != nil {
		t.Fatalf("RecordStockOut() error = %v", err)
	}
	if _, err := a.CreateBudget(ctx, models.BudgetInput{ClientName: "Ana", Items: []models.BudgetItemInput{{ProductName: "Cable", Quantity: 2, UnitPrice: 20}}}); err != nil {
		t.Fatalf("CreateBudget() error = %v", err)
	}
	if _, err := a.CreateQuotation(ctx, models.QuotationInput{ClientName: "Ana", DeviceModel: "X", PartType: "screen"}); err != nil {
		t.Fatalf("CreateQuotation() error = %v", err)
	}

	reloaded := New(ctx, adapter, Options{}, nil)
	got, err := reloaded.GetProduct(p.ID)
	if err != nil {
		t.Fatalf("GetProduct() after reload error = %v", err)
	}
	if got.Quantity != 7 || got.Category != models.CategoryUSBCables {
		t.Errorf("reloaded product = %+v", got)
	}
	if len(reloaded.ListStockOuts()) != 1 || len(reloaded.ListBudgets()) != 1 || len(reloaded.ListQuotations()) != 1 {
		t.Error("collections not reloaded")
	}
}

func TestApp_FailedMutationSavesNothing(t *testing.T) {
	ctx := context.Background()
	adapter := newCountingAdapter()
	a := New(ctx, adapter, Options{}, nil)

	if _, err := a.CreateProduct(ctx, models.ProductInput{Name: "Cable", Category: "Cases"}); err == nil {
		t.Fatal("CreateProduct() with zero prices succeeded")
	}
	if a.DeleteProduct(ctx, "missing") {
		t.Error("DeleteProduct(missing) = true")
	}
	if adapter.saves[repository.Products] != 0 {
		t.Errorf("products saved %d times", adapter.saves[repository.Products])
	}
}

func TestApp_SaveFailureIsNotSurfaced(t *testing.T) {
	ctx := context.Background()
	adapter := newCountingAdapter()
	adapter.failing = true
	a := New(ctx, adapter, Options{}, nil)

	p, err := a.CreateProduct(ctx, cable(8))
	if err != nil {
		t.Fatalf("CreateProduct() error = %v", err)
	}
	if _, err := a.GetProduct(p.ID); err != nil {
		t.Errorf("in-memory state lost: %v", err)
	}
	if adapter.saves[repository.Products] != 1 {
		t.Errorf("saves = %d", adapter.saves[repository.Products])
	}
}

func TestApp_LowStockAlertsAndJournal(t *testing.T) {
	ctx := context.Background()
	alerts := &recordingAlerts{}
	journal := &recordingJournal{}
	a := New(ctx, newCountingAdapter(), Options{Alerts: alerts, Journal: journal, Metrics: metrics.New()}, nil)

	p, _ := a.CreateProduct(ctx, cable(10))
	if len(alerts.products) != 0 {
		t.Fatalf("alert on healthy stock: %+v", alerts.products)
	}

	result, err := a.RecordReceipt(ctx, models.SalesReceiptInput{
		ClientName:    "Ana",
		PaymentMethod: "pix",
		Items:         []models.SalesItemInput{{ProductID: p.ID, Quantity: 6}},
	})
	if err != nil {
		t.Fatalf("RecordReceipt() error = %v", err)
	}
	if result.Receipt.TotalValue != 120 {
		t.Errorf("TotalValue = %v, want 120", result.Receipt.TotalValue)
	}
	if len(alerts.products) != 1 || alerts.products[0].Quantity != 4 {
		t.Errorf("alerts = %+v", alerts.products)
	}

	if _, err := a.RecordStockOut(ctx, models.StockOutInput{ProductID: p.ID, Quantity: 1, Reason: "disposal"}); err != nil {
		t.Fatalf("RecordStockOut() error = %v", err)
	}
	if journal.receipts != 1 || journal.stockOuts != 1 {
		t.Errorf("journal = %+v", journal)
	}
}

func TestApp_AllOrNothingRejects(t *testing.T) {
	ctx := context.Background()
	adapter := newCountingAdapter()
	a := New(ctx, adapter, Options{Policy: models.AdjustAllOrNothing}, nil)
	p, _ := a.CreateProduct(ctx, cable(2))
	saves := adapter.saves[repository.Products]

	_, err := a.RecordReceipt(ctx, models.SalesReceiptInput{
		PaymentMethod: "cash",
		Items:         []models.SalesItemInput{{ProductID: p.ID, Quantity: 5}},
	})
	var rejected *models.RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("RecordReceipt() error = %v, want RejectedError", err)
	}
	if len(a.ListReceipts()) != 0 || adapter.saves[repository.Products] != saves {
		t.Error("rejected receipt changed state")
	}
	if got, _ := a.GetProduct(p.ID); got.Quantity != 2 {
		t.Errorf("Quantity = %d, want 2", got.Quantity)
	}
}

func TestApp_AdjustAndDashboard(t *testing.T) {
	ctx := context.Background()
	a := New(ctx, newCountingAdapter(), Options{}, nil)
	p, _ := a.CreateProduct(ctx, cable(10))

	if _, err := a.AdjustProduct(ctx, p.ID, -11, "count"); !errors.Is(err, models.ErrInsufficientStock) {
		t.Errorf("AdjustProduct() error = %v", err)
	}
	if _, err := a.AdjustProduct(ctx, p.ID, 3, "count"); err != nil {
		t.Fatalf("AdjustProduct() error = %v", err)
	}

	summary := a.Dashboard()
	if summary.TotalProducts != 1 || summary.TotalQuantity != 7 || summary.AverageProfitMargin != 100 {
		t.Errorf("Dashboard() = %+v", summary)
	}
	if found := a.SearchProducts(models.ProductFilter{Query: "cab", Stock: models.StockFilterAll}); len(found) != 1 {
		t.Errorf("SearchProducts() = %d results", len(found))
	}

	buf, name, err := a.ExportProducts()
	if err != nil {
		t.Fatalf("ExportProducts() error = %v", err)
	}
	if buf.Len() == 0 || name == "" {
		t.Errorf("ExportProducts() = %d bytes, %q", buf.Len(), name)
	}
}

func TestApp_Digest(t *testing.T) {
	ctx := context.Background()
	a := New(ctx, newCountingAdapter(), Options{}, nil)
	p, _ := a.CreateProduct(ctx, cable(10))

	now := time.Now()
	_, _ = a.RecordReceipt(ctx, models.SalesReceiptInput{PaymentMethod: "cash", SaleDate: now, Items: []models.SalesItemInput{{ProductID: p.ID, Quantity: 1}}})
	_, _ = a.RecordReceipt(ctx, models.SalesReceiptInput{PaymentMethod: "cash", SaleDate: now.AddDate(0, 0, -2), Items: []models.SalesItemInput{{ProductID: p.ID, Quantity: 1}}})

	d := a.Digest(now)
	if d.ReceiptCount != 1 || d.SalesAmount != 20 {
		t.Errorf("Digest() = %+v", d)
	}
	if d.Inventory.TotalQuantity != 8 {
		t.Errorf("TotalQuantity = %d, want 8", d.Inventory.TotalQuantity)
	}
}

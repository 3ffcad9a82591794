package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/metrics"
	"github.com/mamadbah2/stockroom/internal/repository"
	"github.com/mamadbah2/stockroom/internal/repository/sheets"
	"github.com/mamadbah2/stockroom/internal/service/budgets"
	"github.com/mamadbah2/stockroom/internal/service/inventory"
	"github.com/mamadbah2/stockroom/internal/service/quotations"
	"github.com/mamadbah2/stockroom/internal/service/reporting"
	"github.com/mamadbah2/stockroom/internal/service/sales"
	"github.com/mamadbah2/stockroom/internal/service/stockout"
)

// LowStockNotifier receives the products that crossed the low stock threshold
// during one mutation.
type LowStockNotifier interface {
	LowStock(ctx context.Context, products []models.Product)
}

// Options carries the optional collaborators of the workspace.
type Options struct {
	Policy    models.AdjustPolicy
	Journal   sheets.Journal
	Alerts    LowStockNotifier
	Metrics   *metrics.Metrics
	Reporting *reporting.Service
	// Location defines calendar days for plain dates and digests. Defaults to time.Local.
	Location *time.Location
}

// App is the workspace shared by the HTTP layer and the scheduler. It owns
// the ledger and the recorders, serializes every operation and saves the
// touched collections after each successful mutation.
type App struct {
	mu      sync.Mutex
	adapter repository.Adapter

	ledger     *inventory.Ledger
	stockOuts  *stockout.Service
	sales      *sales.Service
	budgets    *budgets.Service
	quotations *quotations.Service

	journal   sheets.Journal
	alerts    LowStockNotifier
	metrics   *metrics.Metrics
	reporting *reporting.Service
	location  *time.Location
	logger    *zap.Logger

	pendingLow []models.Product
}

// New builds the workspace and loads every collection from the adapter.
// Collections that cannot be loaded start empty.
func New(ctx context.Context, adapter repository.Adapter, opts Options, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Reporting == nil {
		opts.Reporting = reporting.NewService("", logger.Named("reporting"))
	}

	ledger := inventory.NewLedger(logger.Named("inventory"))
	a := &App{
		adapter:    adapter,
		ledger:     ledger,
		stockOuts:  stockout.NewService(ledger, opts.Policy, logger.Named("stockout")),
		sales:      sales.NewService(ledger, opts.Policy, logger.Named("sales")),
		budgets:    budgets.NewService(logger.Named("budgets")),
		quotations: quotations.NewService(logger.Named("quotations")),
		journal:    opts.Journal,
		alerts:     opts.Alerts,
		metrics:    opts.Metrics,
		reporting:  opts.Reporting,
		location:   opts.Location,
		logger:     logger,
	}
	ledger.OnLowStock(func(p models.Product) {
		a.pendingLow = append(a.pendingLow, p)
	})

	a.load(ctx)
	return a
}

func (a *App) load(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.ledger.Restore(repository.LoadCollection[models.Product](ctx, a.adapter, repository.Products, a.logger))
	a.stockOuts.Restore(repository.LoadCollection[models.StockOut](ctx, a.adapter, repository.StockOuts, a.logger))
	a.sales.Restore(repository.LoadCollection[models.SalesReceipt](ctx, a.adapter, repository.SalesReceipts, a.logger))
	a.budgets.Restore(repository.LoadCollection[models.Budget](ctx, a.adapter, repository.Budgets, a.logger))
	a.quotations.Restore(repository.LoadCollection[models.Quotation](ctx, a.adapter, repository.Quotations, a.logger))

	a.metrics.Inventory(a.ledger.Summary())
	a.logger.Info("workspace loaded",
		zap.Int("products", len(a.ledger.Snapshot())),
		zap.Int("stock_outs", len(a.stockOuts.Snapshot())),
		zap.Int("receipts", len(a.sales.Snapshot())),
		zap.Int("budgets", len(a.budgets.Snapshot())),
		zap.Int("quotations", len(a.quotations.Snapshot())))
}

// read runs fn under the workspace lock without saving anything.
func (a *App) read(fn func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn()
}

// mutate runs fn under the workspace lock. When fn succeeds the touched
// collections are saved; low stock alerts go out after the lock is released.
func (a *App) mutate(ctx context.Context, fn func() error, touched ...repository.Collection) error {
	a.mu.Lock()
	a.pendingLow = nil
	err := fn()
	if err == nil {
		a.persist(ctx, touched...)
		a.metrics.Inventory(a.ledger.Summary())
	}
	low := a.pendingLow
	a.pendingLow = nil
	a.mu.Unlock()

	if len(low) > 0 && a.alerts != nil {
		a.alerts.LowStock(ctx, low)
	}
	return err
}

// persist saves each collection. Failures are logged and never surface to
// the caller: the in-memory state stays authoritative.
func (a *App) persist(ctx context.Context, touched ...repository.Collection) {
	for _, name := range touched {
		var err error
		switch name {
		case repository.Products:
			err = repository.SaveCollection(ctx, a.adapter, name, a.ledger.Snapshot())
		case repository.StockOuts:
			err = repository.SaveCollection(ctx, a.adapter, name, a.stockOuts.Snapshot())
		case repository.SalesReceipts:
			err = repository.SaveCollection(ctx, a.adapter, name, a.sales.Snapshot())
		case repository.Budgets:
			err = repository.SaveCollection(ctx, a.adapter, name, a.budgets.Snapshot())
		case repository.Quotations:
			err = repository.SaveCollection(ctx, a.adapter, name, a.quotations.Snapshot())
		}
		if err != nil {
			a.logger.Error("failed to save collection", zap.String("collection", string(name)), zap.Error(err))
		}
	}
}

// Location returns the zone calendar days are counted in.
func (a *App) Location() *time.Location {
	return a.location
}

// Digest summarizes the inventory and the receipts of the calendar day of
// now in the workspace location.
func (a *App) Digest(now time.Time) models.DailyDigest {
	now = now.In(a.location)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)

	var digest models.DailyDigest
	a.read(func() {
		digest = a.reporting.BuildDigest(now, a.ledger.Snapshot(), a.sales.Between(start, end))
	})
	return digest
}

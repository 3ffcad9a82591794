package app

import (
	"bytes"
	"context"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/repository"
	"github.com/mamadbah2/stockroom/internal/service/export"
)

func (a *App) ListProducts() []models.Product {
	var out []models.Product
	a.read(func() { out = a.ledger.List() })
	return out
}

func (a *App) GetProduct(id string) (models.Product, error) {
	var (
		p   models.Product
		err error
	)
	a.read(func() { p, err = a.ledger.Get(id) })
	return p, err
}

func (a *App) CreateProduct(ctx context.Context, input models.ProductInput) (models.Product, error) {
	var p models.Product
	err := a.mutate(ctx, func() error {
		var err error
		p, err = a.ledger.Create(input)
		return err
	}, repository.Products)
	if err == nil {
		a.metrics.Mutation(string(repository.Products), "create")
	}
	return p, err
}

func (a *App) UpdateProduct(ctx context.Context, id string, input models.ProductInput) (models.Product, error) {
	var p models.Product
	err := a.mutate(ctx, func() error {
		var err error
		p, err = a.ledger.Update(id, input)
		return err
	}, repository.Products)
	if err == nil {
		a.metrics.Mutation(string(repository.Products), "update")
	}
	return p, err
}

// DeleteProduct removes a product. Unknown ids report false and save nothing.
func (a *App) DeleteProduct(ctx context.Context, id string) bool {
	var deleted bool
	_ = a.mutate(ctx, func() error {
		deleted = a.ledger.Delete(id)
		if !deleted {
			return errUnchanged
		}
		return nil
	}, repository.Products)
	if deleted {
		a.metrics.Mutation(string(repository.Products), "delete")
	}
	return deleted
}

// AdjustProduct removes |delta| units from a product outside any recorder.
func (a *App) AdjustProduct(ctx context.Context, id string, delta int, note string) (models.Product, error) {
	var p models.Product
	err := a.mutate(ctx, func() error {
		var err error
		p, err = a.ledger.AdjustQuantity(id, delta, note)
		return err
	}, repository.Products)
	if err == nil {
		a.metrics.Mutation(string(repository.Products), "adjust")
	} else if r, ok := models.RejectionFromError(1, id, "", abs(delta), err); ok {
		a.metrics.Rejections([]models.Rejection{r})
	}
	return p, err
}

func (a *App) ProductHealth(id string) (models.StockHealth, error) {
	var (
		h   models.StockHealth
		err error
	)
	a.read(func() { h, err = a.ledger.Health(id) })
	return h, err
}

func (a *App) SearchProducts(filter models.ProductFilter) []models.Product {
	var out []models.Product
	a.read(func() { out = a.ledger.Search(filter) })
	return out
}

func (a *App) Dashboard() models.InventorySummary {
	var s models.InventorySummary
	a.read(func() { s = a.ledger.Summary() })
	return s
}

// ExportProducts renders the catalog as an xlsx workbook and returns it with its file name.
func (a *App) ExportProducts() (*bytes.Buffer, string, error) {
	var (
		products []models.Product
		now      = a.ledger.Now()
	)
	a.read(func() { products = a.ledger.Snapshot() })
	buf, err := export.ProductsWorkbook(products, now)
	if err != nil {
		return nil, "", err
	}
	return buf, export.FileName(now), nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

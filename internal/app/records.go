package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/repository"
)

// errUnchanged aborts a mutation that turned out to be a no-op.
var errUnchanged = errors.New("unchanged")

func (a *App) ListStockOuts() []models.StockOut {
	var out []models.StockOut
	a.read(func() { out = a.stockOuts.List() })
	return out
}

// RecordStockOut logs a stock-out and adjusts the product quantity.
func (a *App) RecordStockOut(ctx context.Context, input models.StockOutInput) (models.StockOutResult, error) {
	var result models.StockOutResult
	err := a.mutate(ctx, func() error {
		var err error
		result, err = a.stockOuts.Record(input)
		return err
	}, repository.StockOuts, repository.Products)

	a.observeRejections(result.Rejections, err)
	if err != nil {
		return result, err
	}
	a.metrics.Mutation(string(repository.StockOuts), "create")

	if a.journal != nil {
		if jerr := a.journal.AppendStockOut(ctx, result.StockOut); jerr != nil {
			a.logger.Error("failed to journal stock-out", zap.String("stock_out_id", result.StockOut.ID), zap.Error(jerr))
		}
	}
	return result, nil
}

// DeleteStockOut removes the log entry only; quantities are left as they are.
func (a *App) DeleteStockOut(ctx context.Context, id string) bool {
	var deleted bool
	_ = a.mutate(ctx, func() error {
		if deleted = a.stockOuts.Delete(id); !deleted {
			return errUnchanged
		}
		return nil
	}, repository.StockOuts)
	if deleted {
		a.metrics.Mutation(string(repository.StockOuts), "delete")
	}
	return deleted
}

func (a *App) ListReceipts() []models.SalesReceipt {
	var out []models.SalesReceipt
	a.read(func() { out = a.sales.List() })
	return out
}

func (a *App) GetReceipt(id string) (models.SalesReceipt, error) {
	var (
		r   models.SalesReceipt
		err error
	)
	a.read(func() { r, err = a.sales.Get(id) })
	return r, err
}

// RecordReceipt writes a sales receipt and decrements stock per line.
func (a *App) RecordReceipt(ctx context.Context, input models.SalesReceiptInput) (models.SalesReceiptResult, error) {
	var result models.SalesReceiptResult
	err := a.mutate(ctx, func() error {
		var err error
		result, err = a.sales.Record(input)
		return err
	}, repository.SalesReceipts, repository.Products)

	a.observeRejections(result.Rejections, err)
	if err != nil {
		return result, err
	}
	a.metrics.Mutation(string(repository.SalesReceipts), "create")
	a.metrics.Sale(result.Receipt.TotalValue)

	if a.journal != nil {
		if jerr := a.journal.AppendReceipt(ctx, result.Receipt); jerr != nil {
			a.logger.Error("failed to journal receipt", zap.String("receipt_id", result.Receipt.ID), zap.Error(jerr))
		}
	}
	return result, nil
}

// DeleteReceipt removes a receipt without restoring stock.
func (a *App) DeleteReceipt(ctx context.Context, id string) bool {
	var deleted bool
	_ = a.mutate(ctx, func() error {
		if deleted = a.sales.Delete(id); !deleted {
			return errUnchanged
		}
		return nil
	}, repository.SalesReceipts)
	if deleted {
		a.metrics.Mutation(string(repository.SalesReceipts), "delete")
	}
	return deleted
}

func (a *App) observeRejections(rejections []models.Rejection, err error) {
	var rejected *models.RejectedError
	if errors.As(err, &rejected) {
		rejections = rejected.Rejections
	}
	a.metrics.Rejections(rejections)
}

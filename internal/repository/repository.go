// Package repository defines the persistence boundary for the shop collections.
// Each collection is stored as one JSON text blob keyed by its logical name.
package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Collection is the logical key of a persisted collection.
type Collection string

const (
	Products      Collection = "products"
	StockOuts     Collection = "stock_outs"
	SalesReceipts Collection = "sales_receipts"
	Budgets       Collection = "budgets"
	Quotations    Collection = "quotations"
)

// Collections lists every collection the application persists.
var Collections = []Collection{Products, StockOuts, SalesReceipts, Budgets, Quotations}

// Adapter loads and saves serialized collections. Load returns "" with a nil
// error when nothing was stored yet. Save overwrites the whole collection.
type Adapter interface {
	Load(ctx context.Context, name Collection) (string, error)
	Save(ctx context.Context, name Collection, payload string) error
}

// LoadCollection decodes a collection. Missing, unreadable or corrupt data
// yields an empty collection; the cause is logged and not returned.
func LoadCollection[T any](ctx context.Context, adapter Adapter, name Collection, logger *zap.Logger) []T {
	if logger == nil {
		logger = zap.NewNop()
	}
	payload, err := adapter.Load(ctx, name)
	if err != nil {
		logger.Warn("collection load failed, starting empty", zap.String("collection", string(name)), zap.Error(err))
		return []T{}
	}
	if payload == "" {
		return []T{}
	}
	var records []T
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		logger.Warn("collection data corrupt, starting empty", zap.String("collection", string(name)), zap.Error(err))
		return []T{}
	}
	if records == nil {
		records = []T{}
	}
	return records
}

// SaveCollection encodes records and overwrites the stored collection.
func SaveCollection[T any](ctx context.Context, adapter Adapter, name Collection, records []T) error {
	if records == nil {
		records = []T{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := adapter.Save(ctx, name, string(payload)); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

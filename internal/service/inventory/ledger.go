package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// LowStockHook is invoked with the fresh product state whenever a mutation
// leaves a product at or below the low-stock threshold.
type LowStockHook func(product models.Product)

// Ledger owns the product collection and the rules that mutate it.
// It is not safe for concurrent use; callers serialize access.
type Ledger struct {
	products   []models.Product
	logger     *zap.Logger
	now        func() time.Time
	newID      func() string
	onLowStock LowStockHook
}

// NewLedger builds an empty ledger.
func NewLedger(logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// OnLowStock registers the low-stock hook, replacing any previous one.
func (l *Ledger) OnLowStock(hook LowStockHook) {
	l.onLowStock = hook
}

// Restore replaces the collection with previously persisted records.
func (l *Ledger) Restore(products []models.Product) {
	l.products = append([]models.Product(nil), products...)
}

// Snapshot returns a copy of the stored records, in insertion order, for persistence.
func (l *Ledger) Snapshot() []models.Product {
	return append([]models.Product{}, l.products...)
}

// List returns every product with derived fields recomputed against now.
func (l *Ledger) List() []models.Product {
	now := l.now()
	out := make([]models.Product, 0, len(l.products))
	for _, p := range l.products {
		out = append(out, withDerived(p, now))
	}
	return out
}

// Get returns one product with derived fields recomputed.
func (l *Ledger) Get(id string) (models.Product, error) {
	idx := l.indexOf(id)
	if idx < 0 {
		return models.Product{}, fmt.Errorf("product %s: %w", id, models.ErrNotFound)
	}
	return withDerived(l.products[idx], l.now()), nil
}

// FindByName looks a product up by exact (trimmed, case-insensitive) name.
// The first match in insertion order wins.
func (l *Ledger) FindByName(name string) (models.Product, bool) {
	name = strings.TrimSpace(name)
	for _, p := range l.products {
		if strings.EqualFold(p.Name, name) {
			return withDerived(p, l.now()), true
		}
	}
	return models.Product{}, false
}

// Create validates input and appends a new product.
func (l *Ledger) Create(input models.ProductInput) (models.Product, error) {
	clean, category, err := validateInput(input)
	if err != nil {
		return models.Product{}, err
	}

	product := models.Product{
		ID:           l.newID(),
		Name:         clean.Name,
		Category:     category,
		CostPrice:    clean.CostPrice,
		SalePrice:    clean.SalePrice,
		ProfitMargin: ProfitMargin(clean.CostPrice, clean.SalePrice),
		EntryDate:    l.now(),
		Quantity:     clean.Quantity,
		DaysInStock:  0,
	}
	l.products = append(l.products, product)

	l.logger.Info("product created",
		zap.String("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Int("quantity", product.Quantity))
	l.checkLowStock(product)
	return product, nil
}

// Update replaces the editable fields of an existing product. The entry date
// is preserved and days in stock are measured from it.
func (l *Ledger) Update(id string, input models.ProductInput) (models.Product, error) {
	clean, category, err := validateInput(input)
	if err != nil {
		return models.Product{}, err
	}

	idx := l.indexOf(id)
	if idx < 0 {
		return models.Product{}, fmt.Errorf("product %s: %w", id, models.ErrNotFound)
	}

	product := l.products[idx]
	product.Name = clean.Name
	product.Category = category
	product.CostPrice = clean.CostPrice
	product.SalePrice = clean.SalePrice
	product.Quantity = clean.Quantity
	product = withDerived(product, l.now())
	l.products[idx] = product

	l.logger.Info("product updated", zap.String("product_id", id), zap.Int("quantity", product.Quantity))
	l.checkLowStock(product)
	return product, nil
}

// Delete removes a product. Unknown ids are ignored and reported as false.
func (l *Ledger) Delete(id string) bool {
	idx := l.indexOf(id)
	if idx < 0 {
		l.logger.Debug("delete of unknown product ignored", zap.String("product_id", id))
		return false
	}
	l.products = append(l.products[:idx], l.products[idx+1:]...)
	l.logger.Info("product deleted", zap.String("product_id", id))
	return true
}

// AdjustQuantity removes |delta| units from a product. When the result would
// be negative the product is left untouched and an *InsufficientStockError
// is returned.
func (l *Ledger) AdjustQuantity(id string, delta int, note string) (models.Product, error) {
	idx := l.indexOf(id)
	if idx < 0 {
		return models.Product{}, fmt.Errorf("product %s: %w", id, models.ErrNotFound)
	}

	removed := delta
	if removed < 0 {
		removed = -removed
	}

	product := l.products[idx]
	next := product.Quantity - removed
	if next < 0 {
		l.logger.Warn("stock adjustment rejected",
			zap.String("product_id", id),
			zap.String("note", note),
			zap.Int("requested", removed),
			zap.Int("available", product.Quantity))
		return withDerived(product, l.now()), &models.InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   removed,
			Available:   product.Quantity,
		}
	}

	product.Quantity = next
	l.products[idx] = product

	l.logger.Info("stock adjusted",
		zap.String("product_id", id),
		zap.String("note", note),
		zap.Int("removed", removed),
		zap.Int("quantity", next))
	product = withDerived(product, l.now())
	l.checkLowStock(product)
	return product, nil
}

// Health classifies a stored product against the ledger clock.
func (l *Ledger) Health(id string) (models.StockHealth, error) {
	idx := l.indexOf(id)
	if idx < 0 {
		return models.StockHealth{}, fmt.Errorf("product %s: %w", id, models.ErrNotFound)
	}
	return Classify(l.products[idx], l.now()), nil
}

// Summary aggregates the current collection.
func (l *Ledger) Summary() models.InventorySummary {
	return Aggregate(l.products, l.now())
}

// Search filters the current collection.
func (l *Ledger) Search(filter models.ProductFilter) []models.Product {
	return Search(l.products, filter, l.now())
}

// Now exposes the ledger clock so collaborators share one notion of "now".
func (l *Ledger) Now() time.Time {
	return l.now()
}

func (l *Ledger) indexOf(id string) int {
	for i, p := range l.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (l *Ledger) checkLowStock(product models.Product) {
	if product.Quantity > LowStockThreshold || l.onLowStock == nil {
		return
	}
	l.onLowStock(product)
}

func validateInput(input models.ProductInput) (models.ProductInput, models.Category, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return input, "", models.Invalid("name", "must not be empty")
	}
	category, ok := models.ParseCategory(input.Category)
	if !ok {
		return input, "", models.Invalid("category", fmt.Sprintf("unknown category %q", input.Category))
	}
	if input.CostPrice <= 0 {
		return input, "", models.Invalid("costPrice", "must be greater than zero")
	}
	if input.SalePrice <= 0 {
		return input, "", models.Invalid("salePrice", "must be greater than zero")
	}
	if input.Quantity < 0 {
		return input, "", models.Invalid("quantity", "must not be negative")
	}
	return input, category, nil
}

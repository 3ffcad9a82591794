package inventory

import (
	"strings"
	"time"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

const (
	// LowStockThreshold is the inclusive quantity at which a product is low on stock.
	LowStockThreshold = 5
	// AgedAfterDays is the number of whole days after which stock counts as aged.
	AgedAfterDays = 90
)

const day = 24 * time.Hour

// ProfitMargin returns (sale-cost)/cost as a percentage, or 0 when cost is not positive.
func ProfitMargin(costPrice, salePrice float64) float64 {
	if costPrice <= 0 {
		return 0
	}
	return (salePrice - costPrice) / costPrice * 100
}

// DaysInStock counts whole days elapsed since entry. Partial days truncate.
func DaysInStock(entry, now time.Time) int {
	elapsed := now.Sub(entry)
	if elapsed < 0 {
		return 0
	}
	return int(elapsed / day)
}

// Classify reports the stock health of p at now. It does not mutate p.
func Classify(p models.Product, now time.Time) models.StockHealth {
	days := DaysInStock(p.EntryDate, now)
	return models.StockHealth{
		ProductID:   p.ID,
		DaysInStock: days,
		LowStock:    p.Quantity <= LowStockThreshold,
		Aged:        days > AgedAfterDays,
	}
}

// Aggregate computes dashboard totals. An empty collection yields zero values.
func Aggregate(products []models.Product, now time.Time) models.InventorySummary {
	summary := models.InventorySummary{TotalProducts: len(products)}
	if len(products) == 0 {
		return summary
	}

	var marginSum float64
	for _, p := range products {
		summary.TotalQuantity += p.Quantity
		health := Classify(p, now)
		if health.LowStock {
			summary.LowStockCount++
		}
		if health.Aged {
			summary.AgedStockCount++
		}
		marginSum += ProfitMargin(p.CostPrice, p.SalePrice)
	}
	summary.AverageProfitMargin = marginSum / float64(len(products))
	return summary
}

// Search returns the products matching every criterion of filter, with derived
// fields recomputed. Results keep insertion order.
func Search(products []models.Product, filter models.ProductFilter, now time.Time) []models.Product {
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	category := strings.TrimSpace(filter.Category)
	if strings.EqualFold(category, "all") {
		category = ""
	}
	var wantCategory models.Category
	if category != "" {
		parsed, ok := models.ParseCategory(category)
		if !ok {
			return []models.Product{}
		}
		wantCategory = parsed
	}

	out := []models.Product{}
	for _, p := range products {
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		if wantCategory != "" && p.Category != wantCategory {
			continue
		}
		health := Classify(p, now)
		switch filter.Stock {
		case models.StockFilterLow:
			if !health.LowStock {
				continue
			}
		case models.StockFilterAged:
			if !health.Aged {
				continue
			}
		}
		out = append(out, withDerived(p, now))
	}
	return out
}

func withDerived(p models.Product, now time.Time) models.Product {
	p.ProfitMargin = ProfitMargin(p.CostPrice, p.SalePrice)
	p.DaysInStock = DaysInStock(p.EntryDate, now)
	return p
}

package models

import (
	"strings"
	"time"
)

// Category enumerates the fixed product categories of the shop.
type Category string

const (
	CategoryChargers         Category = "Chargers"
	CategoryUSBCables        Category = "USB Cables"
	CategoryCases            Category = "Cases"
	CategoryScreenProtectors Category = "Screen Protectors"
	CategoryAccessories      Category = "Accessories"
	CategoryMiscellaneous    Category = "Miscellaneous"
)

// Categories lists every supported category in display order.
var Categories = []Category{
	CategoryChargers,
	CategoryUSBCables,
	CategoryCases,
	CategoryScreenProtectors,
	CategoryAccessories,
	CategoryMiscellaneous,
}

// legacy labels still found in older spreadsheets and stored data.
var categoryAliases = map[string]Category{
	"carregadores": CategoryChargers,
	"cabos usb":    CategoryUSBCables,
	"capinhas":     CategoryCases,
	"películas":    CategoryScreenProtectors,
	"peliculas":    CategoryScreenProtectors,
	"acessórios":   CategoryAccessories,
	"acessorios":   CategoryAccessories,
	"diversos":     CategoryMiscellaneous,
}

// ParseCategory resolves a category from its canonical name or a legacy label.
func ParseCategory(value string) (Category, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return "", false
	}
	for _, c := range Categories {
		if strings.ToLower(string(c)) == normalized {
			return c, true
		}
	}
	c, ok := categoryAliases[normalized]
	return c, ok
}

// Product is a catalog entry held by the inventory ledger.
type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     Category  `json:"category"`
	CostPrice    float64   `json:"costPrice"`
	SalePrice    float64   `json:"salePrice"`
	ProfitMargin float64   `json:"profitMargin"`
	EntryDate    time.Time `json:"entryDate"`
	Quantity     int       `json:"quantity"`
	DaysInStock  int       `json:"daysInStock"`
}

// ProductInput carries the user editable product fields.
type ProductInput struct {
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	CostPrice float64 `json:"costPrice"`
	SalePrice float64 `json:"salePrice"`
	Quantity  int     `json:"quantity"`
}

// StockHealth is the classification of a product at a given instant.
type StockHealth struct {
	ProductID   string `json:"productId"`
	DaysInStock int    `json:"daysInStock"`
	LowStock    bool   `json:"lowStock"`
	Aged        bool   `json:"aged"`
}

// StockFilter narrows a product search by stock status.
type StockFilter string

const (
	StockFilterAll  StockFilter = "all"
	StockFilterLow  StockFilter = "low"
	StockFilterAged StockFilter = "aged"
)

// ParseStockFilter maps user input to a StockFilter. "old" is accepted for aged.
func ParseStockFilter(value string) (StockFilter, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(StockFilterAll):
		return StockFilterAll, true
	case string(StockFilterLow):
		return StockFilterLow, true
	case string(StockFilterAged), "old":
		return StockFilterAged, true
	default:
		return "", false
	}
}

// ProductFilter composes the search criteria with logical AND.
type ProductFilter struct {
	Query    string
	Category string // empty or "all" matches any category
	Stock    StockFilter
}

// InventorySummary aggregates the product collection for the dashboard.
type InventorySummary struct {
	TotalProducts       int     `json:"totalProducts"`
	TotalQuantity       int     `json:"totalQuantity"`
	LowStockCount       int     `json:"lowStockCount"`
	AgedStockCount      int     `json:"agedStockCount"`
	AverageProfitMargin float64 `json:"averageProfitMargin"`
}

package reporting

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/service/inventory"
	"github.com/mamadbah2/stockroom/pkg/money"
)

const dateLayout = "2006-01-02"

// Service builds the owner-facing summaries of stock and sales.
type Service struct {
	currency string
	logger   *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(currency string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if currency == "" {
		currency = "BRL"
	}
	return &Service{currency: currency, logger: logger}
}

// BuildDigest summarizes the inventory at now and the receipts passed in,
// which the caller has already restricted to the reported day.
func (s *Service) BuildDigest(now time.Time, products []models.Product, receipts []models.SalesReceipt) models.DailyDigest {
	digest := models.DailyDigest{
		Date:          now,
		Inventory:     inventory.Aggregate(products, now),
		LowStock:      []string{},
		AgedStock:     []string{},
		SalesByMethod: map[models.PaymentMethod]float64{},
	}

	for _, p := range products {
		health := inventory.Classify(p, now)
		if health.LowStock {
			digest.LowStock = append(digest.LowStock, fmt.Sprintf("%s (%d)", p.Name, p.Quantity))
		}
		if health.Aged {
			digest.AgedStock = append(digest.AgedStock, fmt.Sprintf("%s (%d days)", p.Name, health.DaysInStock))
		}
	}

	totals := make([]float64, 0, len(receipts))
	for _, r := range receipts {
		totals = append(totals, r.TotalValue)
		digest.SalesByMethod[r.PaymentMethod] = money.Sum(digest.SalesByMethod[r.PaymentMethod], r.TotalValue)
	}
	digest.ReceiptCount = len(receipts)
	digest.SalesAmount = money.Sum(totals...)

	s.logger.Debug("digest built",
		zap.Int("products", digest.Inventory.TotalProducts),
		zap.Int("receipts", digest.ReceiptCount))
	return digest
}

// FormatDigest renders a digest as a plain-text message.
func (s *Service) FormatDigest(d models.DailyDigest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Stock report %s\n", d.Date.Format(dateLayout))
	fmt.Fprintf(&b, "Products: %d (%d units)\n", d.Inventory.TotalProducts, d.Inventory.TotalQuantity)
	fmt.Fprintf(&b, "Average margin: %.1f%%\n", d.Inventory.AverageProfitMargin)
	fmt.Fprintf(&b, "Low stock: %d", d.Inventory.LowStockCount)
	if len(d.LowStock) > 0 {
		fmt.Fprintf(&b, " - %s", strings.Join(d.LowStock, ", "))
	}
	fmt.Fprintf(&b, "\nAged stock (> %d days): %d", inventory.AgedAfterDays, d.Inventory.AgedStockCount)
	if len(d.AgedStock) > 0 {
		fmt.Fprintf(&b, " - %s", strings.Join(d.AgedStock, ", "))
	}

	if d.ReceiptCount == 0 {
		b.WriteString("\nSales: no receipts today.")
		return b.String()
	}
	fmt.Fprintf(&b, "\nSales: %s across %d receipts", money.Format(d.SalesAmount, s.currency), d.ReceiptCount)

	methods := make([]string, 0, len(d.SalesByMethod))
	for m := range d.SalesByMethod {
		methods = append(methods, string(m))
	}
	sort.Strings(methods)
	for _, m := range methods {
		fmt.Fprintf(&b, "\n  %s: %s", m, money.Format(d.SalesByMethod[models.PaymentMethod(m)], s.currency))
	}
	return b.String()
}

// LowStockMessage is the alert text for a product at or below the threshold.
func (s *Service) LowStockMessage(p models.Product) string {
	return fmt.Sprintf("%s has only %d units in stock!", p.Name, p.Quantity)
}

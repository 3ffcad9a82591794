package sales

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/pkg/money"
)

// Ledger is the slice of the inventory ledger the recorder depends on.
type Ledger interface {
	Get(id string) (models.Product, error)
	FindByName(name string) (models.Product, bool)
	AdjustQuantity(id string, delta int, note string) (models.Product, error)
}

// Service records sales receipts and decrements stock line by line.
type Service struct {
	ledger   Ledger
	policy   models.AdjustPolicy
	receipts []models.SalesReceipt
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

// NewService wires a sales recorder. An invalid policy falls back to best effort.
func NewService(ledger Ledger, policy models.AdjustPolicy, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !policy.Valid() {
		policy = models.AdjustBestEffort
	}
	return &Service{
		ledger: ledger,
		policy: policy,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

type resolvedLine struct {
	input   models.SalesItemInput
	product models.Product
	found   bool
}

// Record builds a receipt and applies every line to the ledger in order.
// A later line for the same product sees the quantity left by earlier lines.
//
// Under best effort the receipt is written with the requested quantities even
// when lines are refused; refused lines come back in the result. Under
// all-or-nothing any refused line returns a *models.RejectedError and neither
// the receipt nor any quantity changes.
func (s *Service) Record(input models.SalesReceiptInput) (models.SalesReceiptResult, error) {
	method, err := validate(input)
	if err != nil {
		return models.SalesReceiptResult{}, err
	}

	lines := make([]resolvedLine, len(input.Items))
	for i, item := range input.Items {
		lines[i] = s.resolve(item)
	}

	if s.policy == models.AdjustAllOrNothing {
		if rejections := precheck(lines); len(rejections) > 0 {
			s.logger.Warn("receipt rejected", zap.String("client", input.ClientName), zap.Int("rejections", len(rejections)))
			return models.SalesReceiptResult{}, &models.RejectedError{Rejections: rejections}
		}
	}

	saleDate := input.SaleDate
	if saleDate.IsZero() {
		saleDate = s.now()
	}
	receipt := models.SalesReceipt{
		ID:            s.newID(),
		ClientName:    strings.TrimSpace(input.ClientName),
		PaymentMethod: method,
		SaleDate:      saleDate,
		Items:         make([]models.SalesItem, 0, len(lines)),
	}

	var result models.SalesReceiptResult
	totals := make([]float64, 0, len(lines))
	for i, line := range lines {
		item := buildItem(s.newID(), line)
		receipt.Items = append(receipt.Items, item)
		totals = append(totals, item.TotalPrice)

		lineNo := i + 1
		if !line.found {
			rejection, _ := models.RejectionFromError(lineNo, line.input.ProductID, item.ProductName, item.Quantity,
				fmt.Errorf("product %s: %w", item.ProductName, models.ErrNotFound))
			result.Rejections = append(result.Rejections, rejection)
			continue
		}
		note := fmt.Sprintf("receipt %s line %d", receipt.ID, lineNo)
		if _, err := s.ledger.AdjustQuantity(line.product.ID, -item.Quantity, note); err != nil {
			rejection, ok := models.RejectionFromError(lineNo, line.product.ID, item.ProductName, item.Quantity, err)
			if !ok {
				return models.SalesReceiptResult{}, err
			}
			result.Rejections = append(result.Rejections, rejection)
		}
	}
	receipt.TotalValue = money.Sum(totals...)

	s.receipts = append(s.receipts, receipt)
	result.Receipt = receipt

	s.logger.Info("receipt recorded",
		zap.String("receipt_id", receipt.ID),
		zap.String("client", receipt.ClientName),
		zap.Int("lines", len(receipt.Items)),
		zap.Float64("total", receipt.TotalValue),
		zap.Int("rejections", len(result.Rejections)))
	return result, nil
}

// List returns receipts in recording order.
func (s *Service) List() []models.SalesReceipt {
	out := make([]models.SalesReceipt, 0, len(s.receipts))
	for _, r := range s.receipts {
		out = append(out, clone(r))
	}
	return out
}

// Get returns one receipt.
func (s *Service) Get(id string) (models.SalesReceipt, error) {
	for _, r := range s.receipts {
		if r.ID == id {
			return clone(r), nil
		}
	}
	return models.SalesReceipt{}, fmt.Errorf("receipt %s: %w", id, models.ErrNotFound)
}

// Between returns receipts whose sale date falls in [start, end).
func (s *Service) Between(start, end time.Time) []models.SalesReceipt {
	var out []models.SalesReceipt
	for _, r := range s.receipts {
		if r.SaleDate.Before(start) || !r.SaleDate.Before(end) {
			continue
		}
		out = append(out, clone(r))
	}
	return out
}

// Delete drops a receipt without restoring stock.
func (s *Service) Delete(id string) bool {
	for i, r := range s.receipts {
		if r.ID == id {
			s.receipts = append(s.receipts[:i], s.receipts[i+1:]...)
			s.logger.Info("receipt deleted", zap.String("receipt_id", id))
			return true
		}
	}
	return false
}

// Restore replaces the collection with persisted receipts.
func (s *Service) Restore(receipts []models.SalesReceipt) {
	s.receipts = make([]models.SalesReceipt, 0, len(receipts))
	for _, r := range receipts {
		s.receipts = append(s.receipts, clone(r))
	}
}

// Snapshot returns the collection for persistence.
func (s *Service) Snapshot() []models.SalesReceipt {
	return s.List()
}

func (s *Service) resolve(item models.SalesItemInput) resolvedLine {
	line := resolvedLine{input: item}
	if id := strings.TrimSpace(item.ProductID); id != "" {
		if p, err := s.ledger.Get(id); err == nil {
			line.product, line.found = p, true
		}
		return line
	}
	line.product, line.found = s.ledger.FindByName(item.ProductName)
	return line
}

// precheck sums the demand per product so repeated lines are checked together.
func precheck(lines []resolvedLine) []models.Rejection {
	demand := map[string]int{}
	var rejections []models.Rejection
	for i, line := range lines {
		if !line.found {
			name := strings.TrimSpace(line.input.ProductName)
			if name == "" {
				name = line.input.ProductID
			}
			rejections = append(rejections, models.Rejection{
				Line:        i + 1,
				ProductID:   line.input.ProductID,
				ProductName: name,
				Requested:   line.input.Quantity,
				Reason:      models.RejectedUnknownProduct,
			})
			continue
		}
		demand[line.product.ID] += line.input.Quantity
		if demand[line.product.ID] > line.product.Quantity {
			rejections = append(rejections, models.Rejection{
				Line:        i + 1,
				ProductID:   line.product.ID,
				ProductName: line.product.Name,
				Requested:   line.input.Quantity,
				Available:   line.product.Quantity - (demand[line.product.ID] - line.input.Quantity),
				Reason:      models.RejectedInsufficientStock,
			})
		}
	}
	return rejections
}

func buildItem(id string, line resolvedLine) models.SalesItem {
	name := strings.TrimSpace(line.input.ProductName)
	unitPrice := line.input.UnitPrice
	productID := strings.TrimSpace(line.input.ProductID)
	if line.found {
		name = line.product.Name
		productID = line.product.ID
		if unitPrice == 0 {
			unitPrice = line.product.SalePrice
		}
	}
	return models.SalesItem{
		ID:          id,
		ProductID:   productID,
		ProductName: name,
		Quantity:    line.input.Quantity,
		UnitPrice:   unitPrice,
		TotalPrice:  money.LineTotal(line.input.Quantity, unitPrice),
	}
}

func validate(input models.SalesReceiptInput) (models.PaymentMethod, error) {
	if len(input.Items) == 0 {
		return "", models.Invalid("items", "at least one item is required")
	}
	for i, item := range input.Items {
		if strings.TrimSpace(item.ProductID) == "" && strings.TrimSpace(item.ProductName) == "" {
			return "", models.Invalid(fmt.Sprintf("items[%d].productName", i), "must not be empty")
		}
		if item.Quantity <= 0 {
			return "", models.Invalid(fmt.Sprintf("items[%d].quantity", i), "must be greater than zero")
		}
		if item.UnitPrice < 0 {
			return "", models.Invalid(fmt.Sprintf("items[%d].unitPrice", i), "must not be negative")
		}
	}
	method, ok := models.ParsePaymentMethod(input.PaymentMethod)
	if !ok {
		return "", models.Invalid("paymentMethod", fmt.Sprintf("unknown payment method %q", input.PaymentMethod))
	}
	return method, nil
}

func clone(r models.SalesReceipt) models.SalesReceipt {
	r.Items = append([]models.SalesItem(nil), r.Items...)
	return r
}

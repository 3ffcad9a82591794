package stockout

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// Ledger is the slice of the inventory ledger the recorder depends on.
type Ledger interface {
	Get(id string) (models.Product, error)
	AdjustQuantity(id string, delta int, note string) (models.Product, error)
}

// Service records stock-outs and applies them to the ledger.
type Service struct {
	ledger  Ledger
	policy  models.AdjustPolicy
	records []models.StockOut
	logger  *zap.Logger
	now     func() time.Time
	newID   func() string
}

// NewService wires a stock-out recorder. An invalid policy falls back to best effort.
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

// Record validates the input, adjusts the product quantity and appends the log entry.
//
// Under best effort the entry is written even when the ledger refuses the
// adjustment; the refusal is returned in the result. Under all-or-nothing a
// refusal returns a *models.RejectedError and nothing is written.
func (s *Service) Record(input models.StockOutInput) (models.StockOutResult, error) {
	reason, err := validate(input)
	if err != nil {
		return models.StockOutResult{}, err
	}

	product, err := s.ledger.Get(input.ProductID)
	if err != nil {
		return models.StockOutResult{}, err
	}

	date := input.Date
	if date.IsZero() {
		date = s.now()
	}

	record := models.StockOut{
		ID:          s.newID(),
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    input.Quantity,
		Reason:      reason,
		Date:        date,
		Responsible: strings.TrimSpace(input.Responsible),
	}

	if s.policy == models.AdjustAllOrNothing && product.Quantity < input.Quantity {
		rejection, _ := models.RejectionFromError(1, product.ID, product.Name, input.Quantity, &models.InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   input.Quantity,
			Available:   product.Quantity,
		})
		s.logger.Warn("stock-out rejected", zap.String("product_id", product.ID), zap.Int("quantity", input.Quantity))
		return models.StockOutResult{}, &models.RejectedError{Rejections: []models.Rejection{rejection}}
	}

	result := models.StockOutResult{StockOut: record}
	note := fmt.Sprintf("stock-out %s (%s)", record.ID, reason)
	if _, err := s.ledger.AdjustQuantity(product.ID, -input.Quantity, note); err != nil {
		rejection, ok := models.RejectionFromError(1, product.ID, product.Name, input.Quantity, err)
		if !ok {
			return models.StockOutResult{}, err
		}
		result.Rejections = append(result.Rejections, rejection)
	}

	s.records = append(s.records, record)
	s.logger.Info("stock-out recorded",
		zap.String("stock_out_id", record.ID),
		zap.String("product_id", record.ProductID),
		zap.Int("quantity", record.Quantity),
		zap.String("reason", string(record.Reason)),
		zap.Int("rejections", len(result.Rejections)))
	return result, nil
}

// List returns the log in recording order.
func (s *Service) List() []models.StockOut {
	return append([]models.StockOut{}, s.records...)
}

// Get returns one log entry.
func (s *Service) Get(id string) (models.StockOut, error) {
	for _, r := range s.records {
		if r.ID == id {
			return r, nil
		}
	}
	return models.StockOut{}, fmt.Errorf("stock-out %s: %w", id, models.ErrNotFound)
}

// Delete drops a log entry. The quantity it removed is not restored.
func (s *Service) Delete(id string) bool {
	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			s.logger.Info("stock-out deleted", zap.String("stock_out_id", id))
			return true
		}
	}
	return false
}

// Restore replaces the log with persisted records.
func (s *Service) Restore(records []models.StockOut) {
	s.records = append([]models.StockOut(nil), records...)
}

// Snapshot returns the log for persistence.
func (s *Service) Snapshot() []models.StockOut {
	return s.List()
}

func validate(input models.StockOutInput) (models.StockOutReason, error) {
	if strings.TrimSpace(input.ProductID) == "" {
		return "", models.Invalid("productId", "must not be empty")
	}
	if input.Quantity <= 0 {
		return "", models.Invalid("quantity", "must be greater than zero")
	}
	reason, ok := models.ParseStockOutReason(input.Reason)
	if !ok {
		return "", models.Invalid("reason", fmt.Sprintf("unknown reason %q", input.Reason))
	}
	return reason, nil
}


package quotations

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// Service keeps supplier price requests. Quotations never touch stock levels.
type Service struct {
	quotations []models.Quotation
	logger     *zap.Logger
	now        func() time.Time
	newID      func() string
}

// NewService wires a quotation recorder.
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger, now: time.Now, newID: uuid.NewString}
}

// Create stores a new quotation. A zero request date defaults to now.
func (s *Service) Create(input models.QuotationInput) (models.Quotation, error) {
	status, ok := models.ParseQuotationStatus(input.Status)
	if !ok {
		return models.Quotation{}, models.Invalid("status", fmt.Sprintf("unknown status %q", input.Status))
	}

	q := models.Quotation{ID: s.newID(), Status: status, RequestDate: s.now()}
	s.apply(&q, input)
	s.quotations = append(s.quotations, q)

	s.logger.Info("quotation created", zap.String("quotation_id", q.ID), zap.Int("suppliers", len(q.Suppliers)))
	return clone(q), nil
}

// Update replaces the editable fields of a quotation. An empty status keeps the current one.
func (s *Service) Update(id string, input models.QuotationInput) (models.Quotation, error) {
	status, ok := models.ParseQuotationStatus(input.Status)
	if !ok {
		return models.Quotation{}, models.Invalid("status", fmt.Sprintf("unknown status %q", input.Status))
	}
	idx := s.indexOf(id)
	if idx < 0 {
		return models.Quotation{}, fmt.Errorf("quotation %s: %w", id, models.ErrNotFound)
	}

	q := s.quotations[idx]
	if strings.TrimSpace(input.Status) != "" {
		q.Status = status
	}
	s.apply(&q, input)
	s.quotations[idx] = q

	s.logger.Info("quotation updated", zap.String("quotation_id", id))
	return clone(q), nil
}

// SetStatus moves a quotation to another status.
func (s *Service) SetStatus(id, status string) (models.Quotation, error) {
	parsed, ok := models.ParseQuotationStatus(status)
	if !ok || strings.TrimSpace(status) == "" {
		return models.Quotation{}, models.Invalid("status", fmt.Sprintf("unknown status %q", status))
	}
	idx := s.indexOf(id)
	if idx < 0 {
		return models.Quotation{}, fmt.Errorf("quotation %s: %w", id, models.ErrNotFound)
	}
	s.quotations[idx].Status = parsed
	s.logger.Info("quotation status changed", zap.String("quotation_id", id), zap.String("status", string(parsed)))
	return clone(s.quotations[idx]), nil
}

// BestOffer returns the cheapest supplier offer of a quotation. Offers without
// a positive price are ignored; ties keep the first offer received.
func (s *Service) BestOffer(id string) (models.Supplier, bool, error) {
	q, err := s.Get(id)
	if err != nil {
		return models.Supplier{}, false, err
	}
	var best models.Supplier
	found := false
	for _, offer := range q.Suppliers {
		if offer.QuotedPrice <= 0 {
			continue
		}
		if !found || offer.QuotedPrice < best.QuotedPrice {
			best, found = offer, true
		}
	}
	return best, found, nil
}

// Delete removes a quotation regardless of status. Unknown ids are ignored.
func (s *Service) Delete(id string) bool {
	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	s.quotations = append(s.quotations[:idx], s.quotations[idx+1:]...)
	s.logger.Info("quotation deleted", zap.String("quotation_id", id))
	return true
}

// Get returns one quotation.
func (s *Service) Get(id string) (models.Quotation, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return models.Quotation{}, fmt.Errorf("quotation %s: %w", id, models.ErrNotFound)
	}
	return clone(s.quotations[idx]), nil
}

// List returns quotations in creation order.
func (s *Service) List() []models.Quotation {
	out := make([]models.Quotation, 0, len(s.quotations))
	for _, q := range s.quotations {
		out = append(out, clone(q))
	}
	return out
}

// Restore replaces the collection with persisted quotations.
func (s *Service) Restore(quotations []models.Quotation) {
	s.quotations = make([]models.Quotation, 0, len(quotations))
	for _, q := range quotations {
		s.quotations = append(s.quotations, clone(q))
	}
}

// Snapshot returns the collection for persistence.
func (s *Service) Snapshot() []models.Quotation {
	return s.List()
}

func (s *Service) apply(q *models.Quotation, input models.QuotationInput) {
	q.ClientName = strings.TrimSpace(input.ClientName)
	q.DeviceModel = strings.TrimSpace(input.DeviceModel)
	q.PartType = strings.TrimSpace(input.PartType)
	if !input.RequestDate.IsZero() {
		q.RequestDate = input.RequestDate
	}
	q.Suppliers = make([]models.Supplier, 0, len(input.Suppliers))
	for _, offer := range input.Suppliers {
		q.Suppliers = append(q.Suppliers, models.Supplier{
			ID:           s.newID(),
			Name:         strings.TrimSpace(offer.Name),
			QuotedPrice:  offer.QuotedPrice,
			DeliveryTime: strings.TrimSpace(offer.DeliveryTime),
			Observations: offer.Observations,
		})
	}
}

func (s *Service) indexOf(id string) int {
	for i, q := range s.quotations {
		if q.ID == id {
			return i
		}
	}
	return -1
}

func clone(q models.Quotation) models.Quotation {
	q.Suppliers = append([]models.Supplier(nil), q.Suppliers...)
	return q
}

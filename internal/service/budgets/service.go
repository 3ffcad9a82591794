package budgets

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/pkg/money"
)

// Service keeps client budgets. Budgets never touch stock levels.
type Service struct {
	budgets []models.Budget
	logger  *zap.Logger
	now     func() time.Time
	newID   func() string
}

// NewService wires a budget recorder.
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger, now: time.Now, newID: uuid.NewString}
}

// Create stores a new budget with computed totals.
func (s *Service) Create(input models.BudgetInput) (models.Budget, error) {
	status, ok := models.ParseBudgetStatus(input.Status)
	if !ok {
		return models.Budget{}, models.Invalid("status", fmt.Sprintf("unknown status %q", input.Status))
	}

	budget := models.Budget{
		ID:        s.newID(),
		Status:    status,
		CreatedAt: s.now(),
	}
	s.apply(&budget, input)
	s.budgets = append(s.budgets, budget)

	s.logger.Info("budget created", zap.String("budget_id", budget.ID), zap.Float64("total", budget.TotalValue))
	return clone(budget), nil
}

// Update replaces the editable fields of a budget, keeping id and creation time.
// An empty status leaves the current one in place.
func (s *Service) Update(id string, input models.BudgetInput) (models.Budget, error) {
	status, ok := models.ParseBudgetStatus(input.Status)
	if !ok {
		return models.Budget{}, models.Invalid("status", fmt.Sprintf("unknown status %q", input.Status))
	}
	idx := s.indexOf(id)
	if idx < 0 {
		return models.Budget{}, fmt.Errorf("budget %s: %w", id, models.ErrNotFound)
	}

	budget := s.budgets[idx]
	if strings.TrimSpace(input.Status) != "" {
		budget.Status = status
	}
	s.apply(&budget, input)
	s.budgets[idx] = budget

	s.logger.Info("budget updated", zap.String("budget_id", id))
	return clone(budget), nil
}

// SetStatus moves a budget to another status.
func (s *Service) SetStatus(id, status string) (models.Budget, error) {
	parsed, ok := models.ParseBudgetStatus(status)
	if !ok || strings.TrimSpace(status) == "" {
		return models.Budget{}, models.Invalid("status", fmt.Sprintf("unknown status %q", status))
	}
	idx := s.indexOf(id)
	if idx < 0 {
		return models.Budget{}, fmt.Errorf("budget %s: %w", id, models.ErrNotFound)
	}
	s.budgets[idx].Status = parsed
	s.logger.Info("budget status changed", zap.String("budget_id", id), zap.String("status", string(parsed)))
	return clone(s.budgets[idx]), nil
}

// Delete removes a budget regardless of status. Unknown ids are ignored.
func (s *Service) Delete(id string) bool {
	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	s.budgets = append(s.budgets[:idx], s.budgets[idx+1:]...)
	s.logger.Info("budget deleted", zap.String("budget_id", id))
	return true
}

// Get returns one budget.
func (s *Service) Get(id string) (models.Budget, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return models.Budget{}, fmt.Errorf("budget %s: %w", id, models.ErrNotFound)
	}
	return clone(s.budgets[idx]), nil
}

// List returns budgets in creation order.
func (s *Service) List() []models.Budget {
	out := make([]models.Budget, 0, len(s.budgets))
	for _, b := range s.budgets {
		out = append(out, clone(b))
	}
	return out
}

// Restore replaces the collection with persisted budgets.
func (s *Service) Restore(budgets []models.Budget) {
	s.budgets = make([]models.Budget, 0, len(budgets))
	for _, b := range budgets {
		s.budgets = append(s.budgets, clone(b))
	}
}

// Snapshot returns the collection for persistence.
func (s *Service) Snapshot() []models.Budget {
	return s.List()
}

func (s *Service) apply(budget *models.Budget, input models.BudgetInput) {
	budget.ClientName = strings.TrimSpace(input.ClientName)
	budget.Contact = strings.TrimSpace(input.Contact)
	budget.ValidUntil = strings.TrimSpace(input.ValidUntil)
	budget.Items = make([]models.BudgetItem, 0, len(input.Items))

	totals := make([]float64, 0, len(input.Items))
	for _, item := range input.Items {
		line := models.BudgetItem{
			ID:          s.newID(),
			ProductName: strings.TrimSpace(item.ProductName),
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  money.LineTotal(item.Quantity, item.UnitPrice),
		}
		budget.Items = append(budget.Items, line)
		totals = append(totals, line.TotalPrice)
	}
	budget.TotalValue = money.Sum(totals...)
}

func (s *Service) indexOf(id string) int {
	for i, b := range s.budgets {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func clone(b models.Budget) models.Budget {
	b.Items = append([]models.BudgetItem(nil), b.Items...)
	return b
}

package app

import (
	"context"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/repository"
)

func (a *App) ListBudgets() []models.Budget {
	var out []models.Budget
	a.read(func() { out = a.budgets.List() })
	return out
}

func (a *App) GetBudget(id string) (models.Budget, error) {
	var (
		b   models.Budget
		err error
	)
	a.read(func() { b, err = a.budgets.Get(id) })
	return b, err
}

func (a *App) CreateBudget(ctx context.Context, input models.BudgetInput) (models.Budget, error) {
	return a.saveBudget(ctx, "create", func() (models.Budget, error) { return a.budgets.Create(input) })
}

func (a *App) UpdateBudget(ctx context.Context, id string, input models.BudgetInput) (models.Budget, error) {
	return a.saveBudget(ctx, "update", func() (models.Budget, error) { return a.budgets.Update(id, input) })
}

func (a *App) SetBudgetStatus(ctx context.Context, id, status string) (models.Budget, error) {
	return a.saveBudget(ctx, "status", func() (models.Budget, error) { return a.budgets.SetStatus(id, status) })
}

func (a *App) DeleteBudget(ctx context.Context, id string) bool {
	var deleted bool
	_ = a.mutate(ctx, func() error {
		if deleted = a.budgets.Delete(id); !deleted {
			return errUnchanged
		}
		return nil
	}, repository.Budgets)
	if deleted {
		a.metrics.Mutation(string(repository.Budgets), "delete")
	}
	return deleted
}

func (a *App) saveBudget(ctx context.Context, op string, fn func() (models.Budget, error)) (models.Budget, error) {
	var b models.Budget
	err := a.mutate(ctx, func() error {
		var err error
		b, err = fn()
		return err
	}, repository.Budgets)
	if err == nil {
		a.metrics.Mutation(string(repository.Budgets), op)
	}
	return b, err
}

func (a *App) ListQuotations() []models.Quotation {
	var out []models.Quotation
	a.read(func() { out = a.quotations.List() })
	return out
}

func (a *App) GetQuotation(id string) (models.Quotation, error) {
	var (
		q   models.Quotation
		err error
	)
	a.read(func() { q, err = a.quotations.Get(id) })
	return q, err
}

func (a *App) CreateQuotation(ctx context.Context, input models.QuotationInput) (models.Quotation, error) {
	return a.saveQuotation(ctx, "create", func() (models.Quotation, error) { return a.quotations.Create(input) })
}

func (a *App) UpdateQuotation(ctx context.Context, id string, input models.QuotationInput) (models.Quotation, error) {
	return a.saveQuotation(ctx, "update", func() (models.Quotation, error) { return a.quotations.Update(id, input) })
}

func (a *App) SetQuotationStatus(ctx context.Context, id, status string) (models.Quotation, error) {
	return a.saveQuotation(ctx, "status", func() (models.Quotation, error) { return a.quotations.SetStatus(id, status) })
}

func (a *App) DeleteQuotation(ctx context.Context, id string) bool {
	var deleted bool
	_ = a.mutate(ctx, func() error {
		if deleted = a.quotations.Delete(id); !deleted {
			return errUnchanged
		}
		return nil
	}, repository.Quotations)
	if deleted {
		a.metrics.Mutation(string(repository.Quotations), "delete")
	}
	return deleted
}

// BestOffer returns the cheapest supplier offer of a quotation, if any.
func (a *App) BestOffer(id string) (models.Supplier, bool, error) {
	var (
		s     models.Supplier
		found bool
		err   error
	)
	a.read(func() { s, found, err = a.quotations.BestOffer(id) })
	return s, found, err
}

func (a *App) saveQuotation(ctx context.Context, op string, fn func() (models.Quotation, error)) (models.Quotation, error) {
	var q models.Quotation
	err := a.mutate(ctx, func() error {
		var err error
		q, err = fn()
		return err
	}, repository.Quotations)
	if err == nil {
		a.metrics.Mutation(string(repository.Quotations), op)
	}
	return q, err
}

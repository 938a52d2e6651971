package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/yacouba/Boutique-api/internal/domain/entity"
	"github.com/yacouba/Boutique-api/internal/domain/metrics"
	"github.com/yacouba/Boutique-api/internal/domain/period"
	"github.com/yacouba/Boutique-api/internal/domain/scope"
)

// ExpenseRepository define el puerto de persistencia para gastos (DIP).
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, id string) (*entity.Expense, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f scope.Filter, rng period.Range, limit, offset int) ([]*entity.Expense, error)

	// Total suma de gastos del rango dentro del alcance.
	Total(ctx context.Context, f scope.Filter, rng period.Range) (decimal.Decimal, error)

	// GroupByCategory filas por categoría para metrics.TopGroups.
	GroupByCategory(ctx context.Context, f scope.Filter, rng period.Range) ([]metrics.GroupRow, error)
}

package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/yacouba/Boutique-api/internal/domain/entity"
	"github.com/yacouba/Boutique-api/internal/domain/metrics"
	"github.com/yacouba/Boutique-api/internal/domain/period"
	"github.com/yacouba/Boutique-api/internal/domain/scope"
)

// SaleRepository define el puerto de lectura sobre ventas (DIP).
// Las ventas se escriben desde el punto de venta; aquí solo se consultan.
// Todas las operaciones cuentan únicamente ventas completadas.
type SaleRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Sale, error)

	List(ctx context.Context, f scope.Filter, rng period.Range, limit, offset int) ([]*entity.Sale, error)

	// Totals ingreso total y número de ventas del rango.
	Totals(ctx context.Context, f scope.Filter, rng period.Range) (revenue decimal.Decimal, count int64, err error)

	// GroupByProduct / GroupBySeller / GroupByStore filas crudas por dimensión
	// para que metrics.TopGroups haga la reducción y el corte top-N.
	GroupByProduct(ctx context.Context, f scope.Filter, rng period.Range) ([]metrics.GroupRow, error)
	GroupBySeller(ctx context.Context, f scope.Filter, rng period.Range) ([]metrics.GroupRow, error)
	GroupByStore(ctx context.Context, f scope.Filter, rng period.Range) ([]metrics.GroupRow, error)
}

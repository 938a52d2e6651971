package repository

import (
	"context"
	"time"

	"github.com/yacouba/Boutique-api/internal/domain/entity"
	"github.com/yacouba/Boutique-api/internal/domain/scope"
)

// ReturnRepository define el puerto de persistencia para devoluciones (DIP).
type ReturnRepository interface {
	// CreateWithItems inserta la devolución y sus líneas en una transacción.
	CreateWithItems(ctx context.Context, ret *entity.Return) error

	GetByID(ctx context.Context, id string) (*entity.Return, error)

	List(ctx context.Context, f scope.Filter, status string, limit, offset int) ([]*entity.Return, error)

	// UpdateStatus transiciona pending -> approved|rejected con UPDATE
	// condicional sobre el estado actual. Devuelve false si la fila ya no
	// estaba en from (doble aprobación concurrente: el segundo pierde limpio).
	UpdateStatus(ctx context.Context, id, from, to string, resolvedAt time.Time) (bool, error)
}

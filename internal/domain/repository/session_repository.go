package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yacouba/Boutique-api/internal/domain/entity"
	"github.com/yacouba/Boutique-api/internal/domain/scope"
)

// SessionRepository define el puerto de persistencia para sesiones de
// inventario y sus artículos (DIP).
type SessionRepository interface {
	// CreateWithItems inserta la sesión y siembra sus artículos en UNA
	// transacción. Si la tienda ya tiene una sesión activa retorna
	// domain.ErrActiveSessionExists (violación del índice único parcial).
	CreateWithItems(ctx context.Context, session *entity.InventorySession) error

	// GetByID devuelve la sesión con sus artículos; nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.InventorySession, error)

	List(ctx context.Context, f scope.Filter, status string, limit, offset int) ([]*entity.InventorySession, error)

	// UpdateItemCount fija cantidad contada y diferencia de un artículo.
	UpdateItemCount(ctx context.Context, sessionID, itemID string, counted, difference decimal.Decimal) error

	// MarkItemAdjusted marca el artículo como conciliado con el stock.
	MarkItemAdjusted(ctx context.Context, sessionID, itemID string) error

	// UpdateStatus transiciona la sesión solo si su estado actual es from
	// (UPDATE condicional). Devuelve false si no hubo transición.
	UpdateStatus(ctx context.Context, id, from, to string, completedAt *time.Time) (bool, error)
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/yacouba/Boutique-api/internal/domain"
	"github.com/yacouba/Boutique-api/internal/domain/entity"
	"github.com/yacouba/Boutique-api/internal/domain/repository"
	"github.com/yacouba/Boutique-api/internal/domain/scope"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo implementación de SessionRepository sobre PostgreSQL (usable con pool o tx).
//
// El invariante "una sesión activa por tienda" lo garantiza el índice
//
//	CREATE UNIQUE INDEX inventory_sessions_one_active
//	    ON inventory_sessions (store_id) WHERE status = 'active';
//
// el INSERT concurrente pierde con 23505, no hay ventana read-then-insert.
type SessionRepo struct {
	q Querier
}

// NewSessionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSessionRepository(q Querier) *SessionRepo {
	return &SessionRepo{q: q}
}

// CreateWithItems inserta la cabecera y los artículos sembrados.
// El caller la invoca dentro de TxRunner.Run: cabecera y artículos quedan en
// la misma transacción (nunca una sesión con cero artículos por fallo a medias).
func (r *SessionRepo) CreateWithItems(ctx context.Context, session *entity.InventorySession) error {
	query := `
		INSERT INTO inventory_sessions (id, store_id, status, created_by, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		session.ID, session.StoreID, session.Status, session.CreatedBy,
		session.CreatedAt, session.CompletedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrActiveSessionExists
		}
		return fmt.Errorf("insert session: %w", err)
	}
	for i := range session.Items {
		it := &session.Items[i]
		itemQuery := `
			INSERT INTO inventory_items (id, session_id, product_id, product_name, sku, expected_qty, counted_qty, difference, is_adjusted)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
		if _, err := r.q.Exec(ctx, itemQuery,
			it.ID, it.SessionID, it.ProductID, it.ProductName, it.SKU,
			it.ExpectedQty, it.CountedQty, it.Difference, it.IsAdjusted,
		); err != nil {
			return fmt.Errorf("insert session item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la sesión con sus artículos; nil si no existe.
func (r *SessionRepo) GetByID(ctx context.Context, id string) (*entity.InventorySession, error) {
	query := `
		SELECT id, store_id, status, created_by, created_at, completed_at
		FROM inventory_sessions WHERE id = $1`
	var s entity.InventorySession
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.StoreID, &s.Status, &s.CreatedBy, &s.CreatedAt, &s.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	itemsQuery := `
		SELECT id, session_id, product_id, product_name, sku, expected_qty, counted_qty, difference, is_adjusted
		FROM inventory_items WHERE session_id = $1 ORDER BY product_name ASC`
	rows, err := r.q.Query(ctx, itemsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get session items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.InventoryItem
		if err := rows.Scan(&it.ID, &it.SessionID, &it.ProductID, &it.ProductName, &it.SKU,
			&it.ExpectedQty, &it.CountedQty, &it.Difference, &it.IsAdjusted); err != nil {
			return nil, fmt.Errorf("scan session item: %w", err)
		}
		s.Items = append(s.Items, it)
	}
	return &s, rows.Err()
}

// List lista sesiones dentro del alcance, con filtro opcional por estado,
// más recientes primero.
func (r *SessionRepo) List(ctx context.Context, f scope.Filter, status string, limit, offset int) ([]*entity.InventorySession, error) {
	query := `
		SELECT id, store_id, status, created_by, created_at, completed_at
		FROM inventory_sessions WHERE 1=1`
	var args []any
	query, args = appendScope(query, args, f, "store_id", "created_by")
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", len(args)+1)
		args = append(args, status)
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventorySession
	for rows.Next() {
		var s entity.InventorySession
		if err := rows.Scan(&s.ID, &s.StoreID, &s.Status, &s.CreatedBy, &s.CreatedAt, &s.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// UpdateItemCount fija cantidad contada y diferencia de un artículo.
// El UPDATE solo toca sesiones activas: si la sesión se completó o canceló
// entre la lectura del caller y esta escritura, no afecta filas.
func (r *SessionRepo) UpdateItemCount(ctx context.Context, sessionID, itemID string, counted, difference decimal.Decimal) error {
	query := `
		UPDATE inventory_items SET counted_qty = $3, difference = $4
		WHERE id = $2 AND session_id = $1
		  AND EXISTS (
			SELECT 1 FROM inventory_sessions WHERE id = $1 AND status = 'active'
		  )`
	cmd, err := r.q.Exec(ctx, query, sessionID, itemID, counted, difference)
	if err != nil {
		return fmt.Errorf("update item count: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		// El caller ya verificó que el artículo existe en la sesión leída:
		// cero filas significa que la sesión dejó de estar activa.
		return domain.ErrInvalidTransition
	}
	return nil
}

// MarkItemAdjusted marca el artículo como conciliado con el stock.
// No toca artículos de sesiones canceladas.
func (r *SessionRepo) MarkItemAdjusted(ctx context.Context, sessionID, itemID string) error {
	query := `
		UPDATE inventory_items SET is_adjusted = TRUE
		WHERE id = $2 AND session_id = $1
		  AND EXISTS (
			SELECT 1 FROM inventory_sessions WHERE id = $1 AND status <> 'cancelled'
		  )`
	cmd, err := r.q.Exec(ctx, query, sessionID, itemID)
	if err != nil {
		return fmt.Errorf("mark item adjusted: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

// UpdateStatus transiciona la sesión solo si su estado actual es from.
// El UPDATE condicional hace la transición atómica: dos completar/cancelar
// concurrentes no pueden ganar ambos.
func (r *SessionRepo) UpdateStatus(ctx context.Context, id, from, to string, completedAt *time.Time) (bool, error) {
	query := `
		UPDATE inventory_sessions SET status = $3, completed_at = $4
		WHERE id = $1 AND status = $2`
	cmd, err := r.q.Exec(ctx, query, id, from, to, completedAt)
	if err != nil {
		return false, fmt.Errorf("update session status: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

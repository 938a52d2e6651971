package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/yacouba/Boutique-api/internal/domain/entity"
	"github.com/yacouba/Boutique-api/internal/domain/repository"
	"github.com/yacouba/Boutique-api/internal/domain/scope"
)

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo implementación de ReturnRepository sobre PostgreSQL (usable con pool o tx).
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

// CreateWithItems inserta la devolución y sus líneas (llamar dentro de una tx).
func (r *ReturnRepo) CreateWithItems(ctx context.Context, ret *entity.Return) error {
	query := `
		INSERT INTO returns (id, sale_id, store_id, processed_by, status, reason, total_amount, created_at, resolved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		ret.ID, ret.SaleID, ret.StoreID, ret.ProcessedBy, ret.Status,
		ret.Reason, ret.TotalAmount, ret.CreatedAt, ret.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("insert return: %w", err)
	}
	for i := range ret.Items {
		it := &ret.Items[i]
		itemQuery := `
			INSERT INTO return_items (id, return_id, product_id, quantity, unit_price, total)
			VALUES ($1, $2, $3, $4, $5, $6)`
		if _, err := r.q.Exec(ctx, itemQuery,
			it.ID, it.ReturnID, it.ProductID, it.Quantity, it.UnitPrice, it.Total,
		); err != nil {
			return fmt.Errorf("insert return item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la devolución con sus líneas; nil si no existe.
func (r *ReturnRepo) GetByID(ctx context.Context, id string) (*entity.Return, error) {
	query := `
		SELECT id, sale_id, store_id, processed_by, status, reason, total_amount, created_at, resolved_at
		FROM returns WHERE id = $1`
	var ret entity.Return
	err := r.q.QueryRow(ctx, query, id).Scan(
		&ret.ID, &ret.SaleID, &ret.StoreID, &ret.ProcessedBy, &ret.Status,
		&ret.Reason, &ret.TotalAmount, &ret.CreatedAt, &ret.ResolvedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get return: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, return_id, product_id, quantity, unit_price, total
		FROM return_items WHERE return_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get return items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.ReturnItem
		if err := rows.Scan(&it.ID, &it.ReturnID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Total); err != nil {
			return nil, fmt.Errorf("scan return item: %w", err)
		}
		ret.Items = append(ret.Items, it)
	}
	return &ret, rows.Err()
}

// List lista devoluciones dentro del alcance, con filtro opcional por estado,
// más recientes primero. Para seller el alcance incluye processed_by = user.
func (r *ReturnRepo) List(ctx context.Context, f scope.Filter, status string, limit, offset int) ([]*entity.Return, error) {
	query := `
		SELECT id, sale_id, store_id, processed_by, status, reason, total_amount, created_at, resolved_at
		FROM returns WHERE 1=1`
	var args []any
	query, args = appendScope(query, args, f, "store_id", "processed_by")
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", len(args)+1)
		args = append(args, status)
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	defer rows.Close()
	var list []*entity.Return
	for rows.Next() {
		var ret entity.Return
		if err := rows.Scan(&ret.ID, &ret.SaleID, &ret.StoreID, &ret.ProcessedBy, &ret.Status,
			&ret.Reason, &ret.TotalAmount, &ret.CreatedAt, &ret.ResolvedAt); err != nil {
			return nil, fmt.Errorf("scan return: %w", err)
		}
		list = append(list, &ret)
	}
	return list, rows.Err()
}

// UpdateStatus transiciona pending -> approved|rejected. El estado actual va
// en el WHERE: si otro actor resolvió primero, RowsAffected es 0 y se
// devuelve false sin tocar la fila (los estados terminales nunca retroceden).
func (r *ReturnRepo) UpdateStatus(ctx context.Context, id, from, to string, resolvedAt time.Time) (bool, error) {
	query := `
		UPDATE returns SET status = $3, resolved_at = $4
		WHERE id = $1 AND status = $2`
	cmd, err := r.q.Exec(ctx, query, id, from, to, resolvedAt)
	if err != nil {
		return false, fmt.Errorf("update return status: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

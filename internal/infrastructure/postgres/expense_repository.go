package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/yacouba/Boutique-api/internal/domain/entity"
	"github.com/yacouba/Boutique-api/internal/domain/metrics"
	"github.com/yacouba/Boutique-api/internal/domain/period"
	"github.com/yacouba/Boutique-api/internal/domain/repository"
	"github.com/yacouba/Boutique-api/internal/domain/scope"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo implementación de ExpenseRepository sobre PostgreSQL.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador de persistencia para gastos. Pasar pool o tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

// Create persiste un gasto.
func (r *ExpenseRepo) Create(ctx context.Context, expense *entity.Expense) error {
	query := `
		INSERT INTO expenses (id, store_id, category, amount, notes, date, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		expense.ID, expense.StoreID, expense.Category, expense.Amount,
		expense.Notes, expense.Date, expense.CreatedBy, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// GetByID obtiene un gasto por ID; nil si no existe.
func (r *ExpenseRepo) GetByID(ctx context.Context, id string) (*entity.Expense, error) {
	query := `
		SELECT id, store_id, category, amount, notes, date, created_by, created_at
		FROM expenses WHERE id = $1`
	var e entity.Expense
	err := r.q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.StoreID, &e.Category, &e.Amount, &e.Notes, &e.Date, &e.CreatedBy, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return &e, nil
}

// Delete elimina un gasto por ID.
func (r *ExpenseRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

// List lista gastos del rango dentro del alcance, más recientes primero.
func (r *ExpenseRepo) List(ctx context.Context, f scope.Filter, rng period.Range, limit, offset int) ([]*entity.Expense, error) {
	query := `
		SELECT id, store_id, category, amount, notes, date, created_by, created_at
		FROM expenses WHERE date >= $1 AND date < $2`
	args := []any{rng.Start, rng.End}
	query, args = appendScope(query, args, f, "store_id", "created_by")
	query += fmt.Sprintf(" ORDER BY date DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Expense
	for rows.Next() {
		var e entity.Expense
		if err := rows.Scan(&e.ID, &e.StoreID, &e.Category, &e.Amount, &e.Notes,
			&e.Date, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Total suma de gastos del rango dentro del alcance (cero si no hay filas).
func (r *ExpenseRepo) Total(ctx context.Context, f scope.Filter, rng period.Range) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses WHERE date >= $1 AND date < $2`
	args := []any{rng.Start, rng.End}
	query, args = appendScope(query, args, f, "store_id", "created_by")

	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("expenses total: %w", err)
	}
	return total, nil
}

// GroupByCategory filas (categoría, número de gastos, monto) del rango.
func (r *ExpenseRepo) GroupByCategory(ctx context.Context, f scope.Filter, rng period.Range) ([]metrics.GroupRow, error) {
	query := `
		SELECT category, category, COUNT(*)::NUMERIC AS quantity, SUM(amount) AS revenue
		FROM expenses WHERE date >= $1 AND date < $2`
	args := []any{rng.Start, rng.End}
	query, args = appendScope(query, args, f, "store_id", "created_by")
	query += ` GROUP BY category ORDER BY revenue DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("group expenses: %w", err)
	}
	defer rows.Close()
	var list []metrics.GroupRow
	for rows.Next() {
		var row metrics.GroupRow
		if err := rows.Scan(&row.Key, &row.Label, &row.Quantity, &row.Revenue); err != nil {
			return nil, fmt.Errorf("group expenses scan: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo consultas de solo lectura sobre ventas para reportes y finanzas.
// Todas las consultas cuentan únicamente ventas completadas; las fechas
// llegan como rango semiabierto [start, end).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de lectura de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// GetByID obtiene una venta con sus líneas; nil si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	query := `
		SELECT id, store_id, seller_id, status, total, date
		FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(ctx, query, id).Scan(&s.ID, &s.StoreID, &s.SellerID, &s.Status, &s.Total, &s.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, product_id, product_name, sku, quantity, unit_price, subtotal
		FROM sale_items WHERE sale_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.ProductName, &it.SKU,
			&it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		s.Items = append(s.Items, it)
	}
	return &s, rows.Err()
}

// List lista ventas completadas del rango dentro del alcance, más recientes primero.
func (r *SaleRepo) List(ctx context.Context, f scope.Filter, rng period.Range, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT id, store_id, seller_id, status, total, date
		FROM sales
		WHERE status = $1 AND date >= $2 AND date < $3`
	args := []any{entity.SaleStatusCompleted, rng.Start, rng.End}
	query, args = appendScope(query, args, f, "store_id", "seller_id")
	query += fmt.Sprintf(" ORDER BY date DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.StoreID, &s.SellerID, &s.Status, &s.Total, &s.Date); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Totals ingreso total y número de ventas completadas del rango.
// COALESCE devuelve cero en períodos sin ventas.
func (r *SaleRepo) Totals(ctx context.Context, f scope.Filter, rng period.Range) (decimal.Decimal, int64, error) {
	query := `
		SELECT COALESCE(SUM(total), 0) AS revenue, COUNT(*) AS sale_count
		FROM sales
		WHERE status = $1 AND date >= $2 AND date < $3`
	args := []any{entity.SaleStatusCompleted, rng.Start, rng.End}
	query, args = appendScope(query, args, f, "store_id", "seller_id")

	var revenue decimal.Decimal
	var count int64
	if err := r.q.QueryRow(ctx, query, args...).Scan(&revenue, &count); err != nil {
		return decimal.Zero, 0, fmt.Errorf("sales totals: %w", err)
	}
	return revenue, count, nil
}

// GroupByProduct filas (producto, cantidad, ingreso) del rango.
// La reducción final y el corte top-N los hace metrics.TopGroups.
func (r *SaleRepo) GroupByProduct(ctx context.Context, f scope.Filter, rng period.Range) ([]metrics.GroupRow, error) {
	query := `
		SELECT d.product_id, d.product_name, SUM(d.quantity) AS quantity, SUM(d.subtotal) AS revenue
		FROM sale_items d
		JOIN sales s ON s.id = d.sale_id
		WHERE s.status = $1 AND s.date >= $2 AND s.date < $3`
	args := []any{entity.SaleStatusCompleted, rng.Start, rng.End}
	query, args = appendScope(query, args, f, "s.store_id", "s.seller_id")
	query += ` GROUP BY d.product_id, d.product_name ORDER BY revenue DESC`
	return r.groupRows(ctx, query, args, "group by product")
}

// GroupBySeller filas (vendedor, número de ventas, ingreso) del rango.
func (r *SaleRepo) GroupBySeller(ctx context.Context, f scope.Filter, rng period.Range) ([]metrics.GroupRow, error) {
	query := `
		SELECT s.seller_id, COALESCE(u.name, s.seller_id) AS seller_name, COUNT(*)::NUMERIC AS quantity, SUM(s.total) AS revenue
		FROM sales s
		LEFT JOIN users u ON u.id = s.seller_id
		WHERE s.status = $1 AND s.date >= $2 AND s.date < $3`
	args := []any{entity.SaleStatusCompleted, rng.Start, rng.End}
	query, args = appendScope(query, args, f, "s.store_id", "s.seller_id")
	query += ` GROUP BY s.seller_id, u.name ORDER BY revenue DESC`
	return r.groupRows(ctx, query, args, "group by seller")
}

// GroupByStore filas (tienda, número de ventas, ingreso) del rango.
func (r *SaleRepo) GroupByStore(ctx context.Context, f scope.Filter, rng period.Range) ([]metrics.GroupRow, error) {
	query := `
		SELECT s.store_id, COALESCE(st.name, s.store_id) AS store_name, COUNT(*)::NUMERIC AS quantity, SUM(s.total) AS revenue
		FROM sales s
		LEFT JOIN stores st ON st.id = s.store_id
		WHERE s.status = $1 AND s.date >= $2 AND s.date < $3`
	args := []any{entity.SaleStatusCompleted, rng.Start, rng.End}
	query, args = appendScope(query, args, f, "s.store_id", "s.seller_id")
	query += ` GROUP BY s.store_id, st.name ORDER BY revenue DESC`
	return r.groupRows(ctx, query, args, "group by store")
}

func (r *SaleRepo) groupRows(ctx context.Context, query string, args []any, op string) ([]metrics.GroupRow, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []metrics.GroupRow
	for rows.Next() {
		var row metrics.GroupRow
		if err := rows.Scan(&row.Key, &row.Label, &row.Quantity, &row.Revenue); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

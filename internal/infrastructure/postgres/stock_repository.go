package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/yacouba/Boutique-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo acceso al stock autoritativo por tienda (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// ListByStore snapshot del stock vigente de la tienda, ordenado por nombre.
// Es la cantidad esperada con la que se siembran las sesiones de inventario.
func (r *StockRepo) ListByStore(ctx context.Context, storeID string) ([]repository.StockLine, error) {
	query := `
		SELECT product_id, product_name, sku, quantity
		FROM store_stock WHERE store_id = $1 ORDER BY product_name ASC`
	rows, err := r.q.Query(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []repository.StockLine
	for rows.Next() {
		var line repository.StockLine
		if err := rows.Scan(&line.ProductID, &line.ProductName, &line.SKU, &line.Quantity); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, line)
	}
	return list, rows.Err()
}

// SetQuantity escribe la cantidad contada de vuelta al stock (ajuste de conteo).
func (r *StockRepo) SetQuantity(ctx context.Context, storeID, productID string, qty decimal.Decimal) error {
	query := `
		UPDATE store_stock SET quantity = $3, updated_at = NOW()
		WHERE store_id = $1 AND product_id = $2`
	cmd, err := r.q.Exec(ctx, query, storeID, productID, qty)
	if err != nil {
		return fmt.Errorf("set stock quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("set stock quantity: producto %s sin fila de stock en tienda %s", productID, storeID)
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yacouba/Boutique-api/internal/application/inventory"
	"github.com/yacouba/Boutique-api/internal/application/returns"
	"github.com/yacouba/Boutique-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Los casos de uso lo usan para las escrituras multi-paso: crear sesión +
// sembrar artículos, y ajustar stock + marcar artículo conciliado.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Un error de fn se propaga sin envolver para que el
// caller distinga errores de dominio (ErrActiveSessionExists, etc.).
func (r *TxRunner) Run(ctx context.Context, fn func(
	sessions repository.SessionRepository,
	stock repository.StockRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewSessionRepository(tx), NewStockRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

var _ returns.TxRunner = (*ReturnTxRunner)(nil)

// ReturnTxRunner ejecuta el alta de devoluciones dentro de una transacción:
// la cabecera y sus líneas se confirman juntas o no se confirma nada.
type ReturnTxRunner struct {
	pool *pgxpool.Pool
}

// NewReturnTxRunner construye el runner con el pool.
func NewReturnTxRunner(pool *pgxpool.Pool) *ReturnTxRunner {
	return &ReturnTxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con el repositorio atado a la tx
// y hace Commit o Rollback. El error de fn se propaga sin envolver.
func (r *ReturnTxRunner) Run(ctx context.Context, fn func(returns repository.ReturnRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewReturnRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

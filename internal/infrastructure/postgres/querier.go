package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yacouba/Boutique-api/internal/domain/scope"
)

// Querier abstrae pool y transacción: los repositorios funcionan igual con
// ambos. *pgxpool.Pool y pgx.Tx lo satisfacen.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// nullIfEmpty convierte string vacío a NULL.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// appendScope añade al query las condiciones de alcance por rol:
// tienda (store_id = ANY(...)) y dueño (ownerCol = user) cuando aplican.
// Con Filter sin restricción (admin) no añade nada; con StoreIDs vacío no
// nil, ANY sobre un array vacío no matchea ninguna fila (default cerrado).
func appendScope(query string, args []any, f scope.Filter, storeCol, ownerCol string) (string, []any) {
	if f.StoreIDs != nil {
		query += fmt.Sprintf(" AND %s = ANY($%d)", storeCol, len(args)+1)
		args = append(args, f.StoreIDs)
	}
	if f.OwnerID != "" && ownerCol != "" {
		query += fmt.Sprintf(" AND %s = $%d", ownerCol, len(args)+1)
		args = append(args, f.OwnerID)
	}
	return query, args
}

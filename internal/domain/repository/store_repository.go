package repository

import (
	"context"

	"github.com/yacouba/Boutique-api/internal/domain/entity"
	"github.com/yacouba/Boutique-api/internal/domain/scope"
)

// StoreRepository define el puerto de persistencia para Store (DIP).
// List aplica el filtro de alcance: con Filter sin restricción devuelve todo;
// con StoreIDs vacío no nil devuelve cero filas. search filtra por nombre o
// email (substring, case-insensitive).
type StoreRepository interface {
	Create(ctx context.Context, store *entity.Store) error
	GetByID(ctx context.Context, id string) (*entity.Store, error)
	Update(ctx context.Context, store *entity.Store) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f scope.Filter, search string, limit, offset int) ([]*entity.Store, error)
}

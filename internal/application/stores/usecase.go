// Package stores implementa la gestión de tiendas: CRUD para admin y
// edición limitada a la tienda asignada para manager.
package stores

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yacouba/Boutique-api/internal/application/dto"
	"github.com/yacouba/Boutique-api/internal/application/presentation"
	"github.com/yacouba/Boutique-api/internal/application/reports"
	"github.com/yacouba/Boutique-api/internal/domain"
	"github.com/yacouba/Boutique-api/internal/domain/entity"
	"github.com/yacouba/Boutique-api/internal/domain/repository"
	"github.com/yacouba/Boutique-api/internal/domain/scope"
	"github.com/yacouba/Boutique-api/pkg/logger"
)

// UseCase casos de uso de tiendas.
type UseCase struct {
	stores repository.StoreRepository
	cache  reports.Cache
	log    *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(stores repository.StoreRepository, cache reports.Cache, log *logger.Logger) *UseCase {
	return &UseCase{stores: stores, cache: cache, log: log}
}

// Create da de alta una tienda. Solo admin.
func (uc *UseCase) Create(ctx context.Context, ac scope.AccessContext, req dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	if !ac.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if req.Name == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	store := &entity.Store{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Address:   req.Address,
		Phone:     req.Phone,
		Email:     req.Email,
		IsActive:  true,
		ManagerID: req.ManagerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.stores.Create(ctx, store); err != nil {
		return nil, err
	}

	uc.log.Info().Str("store_id", store.ID).Str("name", store.Name).Msg("tienda creada")

	resp := toStoreResponse(store)
	resp.Message = presentation.Confirmation(ac.Role, "store_created")
	return resp, nil
}

// Get devuelve una tienda dentro del alcance de lectura del usuario.
func (uc *UseCase) Get(ctx context.Context, ac scope.AccessContext, id string) (*dto.StoreResponse, error) {
	if !ac.CanAccessStore(id) {
		return nil, domain.ErrStoreOutOfScope
	}
	store, err := uc.stores.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	return toStoreResponse(store), nil
}

// List lista las tiendas del alcance, con búsqueda por nombre o email.
func (uc *UseCase) List(ctx context.Context, ac scope.AccessContext, search string, page dto.PageRequest) (*dto.StoreListResponse, error) {
	page.DefaultPage()
	stores, err := uc.stores.List(ctx, ac.QueryFilter(false), search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StoreResponse, 0, len(stores))
	for _, s := range stores {
		items = append(items, *toStoreResponse(s))
	}
	return &dto.StoreListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update edita una tienda. Admin edita cualquiera; manager solo las suyas;
// seller nunca. Los campos nil del request no se tocan.
func (uc *UseCase) Update(ctx context.Context, ac scope.AccessContext, id string, req dto.UpdateStoreRequest) (*dto.StoreResponse, error) {
	if !ac.CanWriteStore(id) {
		return nil, domain.ErrForbidden
	}
	store, err := uc.stores.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}

	if req.Name != nil {
		store.Name = *req.Name
	}
	if req.Address != nil {
		store.Address = *req.Address
	}
	if req.Phone != nil {
		store.Phone = *req.Phone
	}
	if req.Email != nil {
		store.Email = *req.Email
	}
	// Activación y reasignación de manager son decisiones de admin.
	if req.IsActive != nil {
		if !ac.IsAdmin() {
			return nil, domain.ErrForbidden
		}
		store.IsActive = *req.IsActive
	}
	if req.ManagerID != nil {
		if !ac.IsAdmin() {
			return nil, domain.ErrForbidden
		}
		store.ManagerID = *req.ManagerID
	}
	store.UpdatedAt = time.Now().UTC()

	if err := uc.stores.Update(ctx, store); err != nil {
		return nil, err
	}
	if err := uc.cache.InvalidateStore(ctx, id); err != nil {
		uc.log.Warn().Err(err).Str("store_id", id).Msg("no se pudo invalidar el caché")
	}

	resp := toStoreResponse(store)
	resp.Message = presentation.Confirmation(ac.Role, "store_updated")
	return resp, nil
}

// Delete elimina una tienda. Solo admin.
func (uc *UseCase) Delete(ctx context.Context, ac scope.AccessContext, id string) (*dto.MessageResponse, error) {
	if !ac.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	store, err := uc.stores.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.stores.Delete(ctx, id); err != nil {
		return nil, err
	}
	if err := uc.cache.InvalidateStore(ctx, id); err != nil {
		uc.log.Warn().Err(err).Str("store_id", id).Msg("no se pudo invalidar el caché")
	}
	return &dto.MessageResponse{Message: "Boutique supprimée"}, nil
}

func toStoreResponse(s *entity.Store) *dto.StoreResponse {
	return &dto.StoreResponse{
		ID:        s.ID,
		Name:      s.Name,
		Address:   s.Address,
		Phone:     s.Phone,
		Email:     s.Email,
		IsActive:  s.IsActive,
		ManagerID: s.ManagerID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

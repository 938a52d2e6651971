// Package returns implementa los casos de uso de devoluciones: alta con
// topes por rol, aprobación y rechazo con máquina de estados estricta.
package returns

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yacouba/Boutique-api/internal/application/dto"
	"github.com/yacouba/Boutique-api/internal/application/presentation"
	"github.com/yacouba/Boutique-api/internal/application/reports"
	"github.com/yacouba/Boutique-api/internal/domain"
	"github.com/yacouba/Boutique-api/internal/domain/entity"
	"github.com/yacouba/Boutique-api/internal/domain/repository"
	"github.com/yacouba/Boutique-api/internal/domain/scope"
	"github.com/yacouba/Boutique-api/pkg/logger"
)

// UseCase casos de uso de devoluciones.
type UseCase struct {
	returns repository.ReturnRepository
	sales   repository.SaleRepository
	tx      TxRunner
	cache   reports.Cache
	pres    *presentation.Table
	log     *logger.Logger
}

// NewUseCase construye el caso de uso. Los topes por rol vienen de la
// tabla de presentación, que a su vez los toma de configuración.
func NewUseCase(
	returns repository.ReturnRepository,
	sales repository.SaleRepository,
	tx TxRunner,
	cache reports.Cache,
	pres *presentation.Table,
	log *logger.Logger,
) *UseCase {
	return &UseCase{returns: returns, sales: sales, tx: tx, cache: cache, pres: pres, log: log}
}

// Create registra una devolución sobre una venta. El monto total se deriva
// de las líneas, nunca del cliente. Reglas por rol:
//   - el tope del rol (XOF) limita el monto; excederlo es ErrReturnOverCap
//   - admin no tiene tope y su devolución nace aprobada
//   - manager y seller crean devoluciones pendientes de validación
func (uc *UseCase) Create(ctx context.Context, ac scope.AccessContext, req dto.CreateReturnRequest) (*dto.ReturnResponse, error) {
	if req.SaleID == "" || len(req.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	sale, err := uc.sales.GetByID(ctx, req.SaleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if !ac.CanAccessStore(sale.StoreID) {
		return nil, domain.ErrStoreOutOfScope
	}
	if ac.IsSeller() && !ac.OwnsRecord(sale.SellerID) {
		return nil, domain.ErrForbidden
	}

	ret := &entity.Return{
		ID:          uuid.New().String(),
		SaleID:      sale.ID,
		StoreID:     sale.StoreID,
		ProcessedBy: ac.UserID,
		Status:      entity.ReturnStatusPending,
		Reason:      req.Reason,
		CreatedAt:   time.Now().UTC(),
	}

	total := decimal.Zero
	for _, it := range req.Items {
		if it.Quantity.IsNegative() || it.Quantity.IsZero() || it.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		lineTotal := it.Quantity.Mul(it.UnitPrice)
		total = total.Add(lineTotal)
		ret.Items = append(ret.Items, entity.ReturnItem{
			ID:        uuid.New().String(),
			ReturnID:  ret.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Total:     lineTotal,
		})
	}
	ret.TotalAmount = total

	maxAmount := uc.pres.ReturnCapFor(ac.Role)
	if !maxAmount.IsZero() && total.GreaterThan(maxAmount) {
		return nil, domain.ErrReturnOverCap
	}

	// La devolución de un admin no espera a nadie que la valide.
	if ac.IsAdmin() {
		now := ret.CreatedAt
		ret.Status = entity.ReturnStatusApproved
		ret.ResolvedAt = &now
	}

	// Cabecera y líneas se confirman juntas; un fallo a mitad no deja
	// una devolución huérfana con total pero sin líneas.
	err = uc.tx.Run(ctx, func(returns repository.ReturnRepository) error {
		return returns.CreateWithItems(ctx, ret)
	})
	if err != nil {
		return nil, err
	}
	uc.invalidateCache(ctx, ret.StoreID)

	uc.log.Info().
		Str("return_id", ret.ID).
		Str("sale_id", ret.SaleID).
		Str("status", ret.Status).
		Str("total", ret.TotalAmount.String()).
		Msg("devolución registrada")

	resp := toReturnResponse(ret)
	resp.Message = presentation.Confirmation(ac.Role, "return_created")
	return resp, nil
}

// Get devuelve la devolución dentro del alcance del usuario.
func (uc *UseCase) Get(ctx context.Context, ac scope.AccessContext, id string) (*dto.ReturnResponse, error) {
	ret, err := uc.loadInScope(ctx, ac, id)
	if err != nil {
		return nil, err
	}
	return toReturnResponse(ret), nil
}

// List lista devoluciones del alcance; un seller solo ve las suyas.
func (uc *UseCase) List(ctx context.Context, ac scope.AccessContext, status string, page dto.PageRequest) (*dto.ReturnListResponse, error) {
	page.DefaultPage()
	rets, err := uc.returns.List(ctx, ac.QueryFilter(true), status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReturnResponse, 0, len(rets))
	for _, r := range rets {
		items = append(items, *toReturnResponse(r))
	}
	return &dto.ReturnListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Approve transiciona pending -> approved. Solo manager de la tienda o admin.
func (uc *UseCase) Approve(ctx context.Context, ac scope.AccessContext, id string) (*dto.ReturnResponse, error) {
	return uc.resolve(ctx, ac, id, entity.ReturnStatusApproved, "return_approved")
}

// Reject transiciona pending -> rejected. Solo manager de la tienda o admin.
func (uc *UseCase) Reject(ctx context.Context, ac scope.AccessContext, id string) (*dto.ReturnResponse, error) {
	return uc.resolve(ctx, ac, id, entity.ReturnStatusRejected, "return_rejected")
}

func (uc *UseCase) resolve(ctx context.Context, ac scope.AccessContext, id, to, action string) (*dto.ReturnResponse, error) {
	ret, err := uc.loadInScope(ctx, ac, id)
	if err != nil {
		return nil, err
	}
	if !ac.CanWriteStore(ret.StoreID) {
		return nil, domain.ErrForbidden
	}
	if !ret.CanTransitionTo(to) {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now().UTC()
	ok, err := uc.returns.UpdateStatus(ctx, id, entity.ReturnStatusPending, to, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Otra resolución llegó primero; el estado ya no es pending.
		return nil, domain.ErrInvalidTransition
	}
	ret.Status = to
	ret.ResolvedAt = &now
	uc.invalidateCache(ctx, ret.StoreID)

	uc.log.Info().Str("return_id", id).Str("status", to).Msg("devolución resuelta")

	resp := toReturnResponse(ret)
	resp.Message = presentation.Confirmation(ac.Role, action)
	return resp, nil
}

func (uc *UseCase) invalidateCache(ctx context.Context, storeID string) {
	if err := uc.cache.InvalidateStore(ctx, storeID); err != nil {
		uc.log.Warn().Err(err).Str("store_id", storeID).Msg("no se pudo invalidar el caché")
	}
}

func (uc *UseCase) loadInScope(ctx context.Context, ac scope.AccessContext, id string) (*entity.Return, error) {
	ret, err := uc.returns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, domain.ErrNotFound
	}
	if !ac.CanAccessStore(ret.StoreID) {
		return nil, domain.ErrStoreOutOfScope
	}
	if ac.IsSeller() && !ac.OwnsRecord(ret.ProcessedBy) {
		return nil, domain.ErrForbidden
	}
	return ret, nil
}

func toReturnResponse(r *entity.Return) *dto.ReturnResponse {
	items := make([]dto.ReturnItemResponse, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, dto.ReturnItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Total:     it.Total,
		})
	}
	return &dto.ReturnResponse{
		ID:          r.ID,
		SaleID:      r.SaleID,
		StoreID:     r.StoreID,
		ProcessedBy: r.ProcessedBy,
		Status:      r.Status,
		Reason:      r.Reason,
		TotalAmount: r.TotalAmount,
		Items:       items,
		CreatedAt:   r.CreatedAt,
		ResolvedAt:  r.ResolvedAt,
	}
}

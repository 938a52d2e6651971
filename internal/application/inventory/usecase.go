// Package inventory implementa los casos de uso de sesiones de conteo
// físico: apertura con sembrado desde el stock vigente, registro de
// conteos, ajuste del stock y cierre o anulación de la sesión.
package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yacouba/Boutique-api/internal/application/dto"
	"github.com/yacouba/Boutique-api/internal/application/presentation"
	"github.com/yacouba/Boutique-api/internal/domain"
	"github.com/yacouba/Boutique-api/internal/domain/entity"
	"github.com/yacouba/Boutique-api/internal/domain/metrics"
	"github.com/yacouba/Boutique-api/internal/domain/repository"
	"github.com/yacouba/Boutique-api/internal/domain/scope"
	"github.com/yacouba/Boutique-api/pkg/logger"
)

// UseCase casos de uso de sesiones de inventario.
type UseCase struct {
	sessions repository.SessionRepository
	stores   repository.StoreRepository
	tx       TxRunner
	pdf      SessionPDFGenerator
	log      *logger.Logger
}

// NewUseCase construye el caso de uso con sus dependencias.
func NewUseCase(
	sessions repository.SessionRepository,
	stores repository.StoreRepository,
	tx TxRunner,
	pdf SessionPDFGenerator,
	log *logger.Logger,
) *UseCase {
	return &UseCase{sessions: sessions, stores: stores, tx: tx, pdf: pdf, log: log}
}

// CreateSession abre una sesión de conteo sobre la tienda y siembra un
// artículo por cada línea del stock vigente, todo en una transacción.
// El invariante "una sesión activa por tienda" lo garantiza el índice
// único parcial: un duplicado concurrente vuelve como ErrActiveSessionExists.
func (uc *UseCase) CreateSession(ctx context.Context, ac scope.AccessContext, req dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	if req.StoreID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !ac.CanWriteStore(req.StoreID) {
		return nil, domain.ErrStoreOutOfScope
	}

	session := &entity.InventorySession{
		ID:        uuid.New().String(),
		StoreID:   req.StoreID,
		Status:    entity.SessionStatusActive,
		CreatedBy: ac.UserID,
		CreatedAt: time.Now().UTC(),
	}

	err := uc.tx.Run(ctx, func(sessions repository.SessionRepository, stock repository.StockRepository) error {
		lines, err := stock.ListByStore(ctx, req.StoreID)
		if err != nil {
			return err
		}
		session.Items = make([]entity.InventoryItem, 0, len(lines))
		for _, ln := range lines {
			session.Items = append(session.Items, entity.InventoryItem{
				ID:          uuid.New().String(),
				SessionID:   session.ID,
				ProductID:   ln.ProductID,
				ProductName: ln.ProductName,
				SKU:         ln.SKU,
				ExpectedQty: ln.Quantity,
			})
		}
		return sessions.CreateWithItems(ctx, session)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("session_id", session.ID).
		Str("store_id", session.StoreID).
		Int("items", len(session.Items)).
		Msg("sesión de inventario abierta")

	resp := toSessionResponse(session)
	resp.Message = presentation.Confirmation(ac.Role, "session_created")
	return resp, nil
}

// GetSession devuelve la sesión con sus artículos y precisión derivada.
func (uc *UseCase) GetSession(ctx context.Context, ac scope.AccessContext, id string) (*dto.SessionResponse, error) {
	session, err := uc.loadInScope(ctx, ac, id)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

// ListSessions lista las sesiones dentro del alcance del usuario,
// opcionalmente filtradas por estado.
func (uc *UseCase) ListSessions(ctx context.Context, ac scope.AccessContext, status string, page dto.PageRequest) (*dto.SessionListResponse, error) {
	page.DefaultPage()
	sessions, err := uc.sessions.List(ctx, ac.QueryFilter(false), status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		items = append(items, *toSessionResponse(s))
	}
	return &dto.SessionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// UpdateCount registra la cantidad contada de un artículo. La diferencia
// se deriva siempre vía SetCounted; nunca se acepta del cliente.
func (uc *UseCase) UpdateCount(ctx context.Context, ac scope.AccessContext, sessionID, itemID string, req dto.UpdateCountRequest) (*dto.SessionResponse, error) {
	if req.CountedQty.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	session, err := uc.loadInScope(ctx, ac, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != entity.SessionStatusActive {
		return nil, domain.ErrInvalidTransition
	}

	item := findItem(session, itemID)
	if item == nil {
		return nil, domain.ErrNotFound
	}
	item.SetCounted(req.CountedQty)

	if err := uc.sessions.UpdateItemCount(ctx, sessionID, itemID, *item.CountedQty, item.Difference); err != nil {
		return nil, err
	}

	resp := toSessionResponse(session)
	resp.Message = presentation.Confirmation(ac.Role, "count_updated")
	return resp, nil
}

// AdjustStock escribe la cantidad contada de un artículo de vuelta al stock
// autoritativo y marca el artículo como conciliado, en una transacción.
// Un artículo sin contar no se puede ajustar (ErrItemNotCounted).
func (uc *UseCase) AdjustStock(ctx context.Context, ac scope.AccessContext, sessionID, itemID string) (*dto.SessionResponse, error) {
	session, err := uc.loadInScope(ctx, ac, sessionID)
	if err != nil {
		return nil, err
	}
	if !ac.CanWriteStore(session.StoreID) {
		return nil, domain.ErrForbidden
	}
	if session.Status == entity.SessionStatusCancelled {
		return nil, domain.ErrInvalidTransition
	}

	item := findItem(session, itemID)
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.CountedQty == nil {
		return nil, domain.ErrItemNotCounted
	}

	err = uc.tx.Run(ctx, func(sessions repository.SessionRepository, stock repository.StockRepository) error {
		if err := stock.SetQuantity(ctx, session.StoreID, item.ProductID, *item.CountedQty); err != nil {
			return err
		}
		return sessions.MarkItemAdjusted(ctx, sessionID, itemID)
	})
	if err != nil {
		return nil, err
	}
	item.IsAdjusted = true

	uc.log.Info().
		Str("session_id", sessionID).
		Str("product_id", item.ProductID).
		Str("counted", item.CountedQty.String()).
		Msg("stock ajustado al conteo")

	resp := toSessionResponse(session)
	resp.Message = presentation.Confirmation(ac.Role, "stock_adjusted")
	return resp, nil
}

// Complete cierra la sesión. Solo active -> completed; el UPDATE condicional
// en la capa de datos hace que dos cierres concurrentes no compitan.
func (uc *UseCase) Complete(ctx context.Context, ac scope.AccessContext, id string) (*dto.SessionResponse, error) {
	return uc.transition(ctx, ac, id, entity.SessionStatusCompleted, "session_completed")
}

// Cancel anula la sesión sin aplicar ajustes. Solo active -> cancelled.
func (uc *UseCase) Cancel(ctx context.Context, ac scope.AccessContext, id string) (*dto.SessionResponse, error) {
	return uc.transition(ctx, ac, id, entity.SessionStatusCancelled, "session_cancelled")
}

func (uc *UseCase) transition(ctx context.Context, ac scope.AccessContext, id, to, action string) (*dto.SessionResponse, error) {
	session, err := uc.loadInScope(ctx, ac, id)
	if err != nil {
		return nil, err
	}
	if !ac.CanWriteStore(session.StoreID) {
		return nil, domain.ErrForbidden
	}

	var completedAt *time.Time
	if to == entity.SessionStatusCompleted {
		now := time.Now().UTC()
		completedAt = &now
	}
	ok, err := uc.sessions.UpdateStatus(ctx, id, entity.SessionStatusActive, to, completedAt)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidTransition
	}
	session.Status = to
	session.CompletedAt = completedAt

	uc.log.Info().Str("session_id", id).Str("status", to).Msg("sesión transicionada")

	resp := toSessionResponse(session)
	resp.Message = presentation.Confirmation(ac.Role, action)
	return resp, nil
}

// loadInScope carga la sesión y valida que su tienda esté dentro del
// alcance de lectura del usuario.
func (uc *UseCase) loadInScope(ctx context.Context, ac scope.AccessContext, id string) (*entity.InventorySession, error) {
	session, err := uc.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}
	if !ac.CanAccessStore(session.StoreID) {
		return nil, domain.ErrStoreOutOfScope
	}
	return session, nil
}

func findItem(session *entity.InventorySession, itemID string) *entity.InventoryItem {
	for i := range session.Items {
		if session.Items[i].ID == itemID {
			return &session.Items[i]
		}
	}
	return nil
}

func toSessionResponse(s *entity.InventorySession) *dto.SessionResponse {
	items := make([]dto.SessionItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SessionItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			SKU:         it.SKU,
			ExpectedQty: it.ExpectedQty,
			CountedQty:  it.CountedQty,
			Difference:  it.Difference,
			IsAdjusted:  it.IsAdjusted,
		})
	}
	resp := &dto.SessionResponse{
		ID:          s.ID,
		StoreID:     s.StoreID,
		Status:      s.Status,
		CreatedBy:   s.CreatedBy,
		CreatedAt:   s.CreatedAt,
		CompletedAt: s.CompletedAt,
		Items:       items,
	}
	if pct, ok := metrics.SessionAccuracy(s.Items); ok {
		resp.Accuracy = &pct
	}
	return resp
}

package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacouba/Boutique-api/internal/application/dto"
	"github.com/yacouba/Boutique-api/internal/application/inventory"
	"github.com/yacouba/Boutique-api/internal/domain"
	"github.com/yacouba/Boutique-api/internal/domain/entity"
	"github.com/yacouba/Boutique-api/internal/domain/repository"
	"github.com/yacouba/Boutique-api/internal/domain/scope"
	"github.com/yacouba/Boutique-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeSessionRepo struct {
	sessions map[string]*entity.InventorySession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*entity.InventorySession)}
}

func (r *fakeSessionRepo) CreateWithItems(_ context.Context, s *entity.InventorySession) error {
	for _, existing := range r.sessions {
		if existing.StoreID == s.StoreID && existing.Status == entity.SessionStatusActive {
			return domain.ErrActiveSessionExists
		}
	}
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id string) (*entity.InventorySession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	cp.Items = append([]entity.InventoryItem(nil), s.Items...)
	return &cp, nil
}

func (r *fakeSessionRepo) List(_ context.Context, f scope.Filter, status string, _, _ int) ([]*entity.InventorySession, error) {
	var out []*entity.InventorySession
	for _, s := range r.sessions {
		if status != "" && s.Status != status {
			continue
		}
		if !f.Unrestricted() {
			found := false
			for _, id := range f.StoreIDs {
				if id == s.StoreID {
					found = true
				}
			}
			if !found {
				continue
			}
		}
		out = append(out, s)
	}
	return out, nil
}

// UpdateItemCount replica la guarda de estado del UPDATE real: solo
// escribe sobre sesiones activas según el almacén, no según la lectura
// que hizo el caller.
func (r *fakeSessionRepo) UpdateItemCount(_ context.Context, sessionID, itemID string, counted, difference decimal.Decimal) error {
	s := r.sessions[sessionID]
	if s == nil || s.Status != entity.SessionStatusActive {
		return domain.ErrInvalidTransition
	}
	for i := range s.Items {
		if s.Items[i].ID == itemID {
			c := counted
			s.Items[i].CountedQty = &c
			s.Items[i].Difference = difference
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeSessionRepo) MarkItemAdjusted(_ context.Context, sessionID, itemID string) error {
	s := r.sessions[sessionID]
	if s == nil || s.Status == entity.SessionStatusCancelled {
		return domain.ErrInvalidTransition
	}
	for i := range s.Items {
		if s.Items[i].ID == itemID {
			s.Items[i].IsAdjusted = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeSessionRepo) UpdateStatus(_ context.Context, id, from, to string, completedAt *time.Time) (bool, error) {
	s, ok := r.sessions[id]
	if !ok || s.Status != from {
		return false, nil
	}
	s.Status = to
	s.CompletedAt = completedAt
	return true, nil
}

type fakeStockRepo struct {
	lines   map[string][]repository.StockLine
	written map[string]decimal.Decimal // productID -> cantidad escrita
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{
		lines:   make(map[string][]repository.StockLine),
		written: make(map[string]decimal.Decimal),
	}
}

func (r *fakeStockRepo) ListByStore(_ context.Context, storeID string) ([]repository.StockLine, error) {
	return r.lines[storeID], nil
}

func (r *fakeStockRepo) SetQuantity(_ context.Context, _, productID string, qty decimal.Decimal) error {
	r.written[productID] = qty
	return nil
}

type fakeStoreRepo struct {
	stores map[string]*entity.Store
}

func (r *fakeStoreRepo) Create(_ context.Context, s *entity.Store) error { r.stores[s.ID] = s; return nil }
func (r *fakeStoreRepo) GetByID(_ context.Context, id string) (*entity.Store, error) {
	return r.stores[id], nil
}
func (r *fakeStoreRepo) Update(_ context.Context, s *entity.Store) error { r.stores[s.ID] = s; return nil }
func (r *fakeStoreRepo) Delete(_ context.Context, id string) error       { delete(r.stores, id); return nil }
func (r *fakeStoreRepo) List(_ context.Context, _ scope.Filter, _ string, _, _ int) ([]*entity.Store, error) {
	return nil, nil
}

// fakeTxRunner ejecuta el callback directamente, sin transacción real.
type fakeTxRunner struct {
	sessions repository.SessionRepository
	stock    repository.StockRepository
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(repository.SessionRepository, repository.StockRepository) error) error {
	return fn(r.sessions, r.stock)
}

type fakePDF struct{}

func (fakePDF) GenerateSessionPDF(context.Context, *entity.InventorySession, *entity.Store) ([]byte, error) {
	return []byte("%PDF-fake"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc       *inventory.UseCase
	sessions *fakeSessionRepo
	stock    *fakeStockRepo
}

func newFixture() *fixture {
	sessions := newFakeSessionRepo()
	stock := newFakeStockRepo()
	stock.lines["s1"] = []repository.StockLine{
		{ProductID: "p1", ProductName: "Riz parfumé, sac 25kg", SKU: "RIZ-25", Quantity: decimal.NewFromInt(40)},
		{ProductID: "p2", ProductName: "Huile végétale", SKU: "HUI-01", Quantity: decimal.NewFromInt(12)},
	}
	stores := &fakeStoreRepo{stores: map[string]*entity.Store{
		"s1": {ID: "s1", Name: "Boutique Plateau"},
	}}
	tx := &fakeTxRunner{sessions: sessions, stock: stock}
	uc := inventory.NewUseCase(sessions, stores, tx, fakePDF{}, logger.Nop())
	return &fixture{uc: uc, sessions: sessions, stock: stock}
}

var (
	adminCtx   = scope.AccessContext{UserID: "admin-1", Role: entity.RoleAdmin}
	managerCtx = scope.AccessContext{UserID: "mgr-1", Role: entity.RoleManager, StoreIDs: []string{"s1"}}
	sellerCtx  = scope.AccessContext{UserID: "sel-1", Role: entity.RoleSeller, StoreIDs: []string{"s1"}}
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSession_SiembraDesdeElStock(t *testing.T) {
	fx := newFixture()

	out, err := fx.uc.CreateSession(context.Background(), managerCtx, dto.CreateSessionRequest{StoreID: "s1"})

	require.NoError(t, err)
	assert.Equal(t, entity.SessionStatusActive, out.Status)
	require.Len(t, out.Items, 2, "un artículo por línea de stock")
	assert.True(t, out.Items[0].ExpectedQty.Equal(decimal.NewFromInt(40)))
	assert.Nil(t, out.Items[0].CountedQty, "nada está contado al abrir")
	assert.NotEmpty(t, out.Message)
}

func TestCreateSession_SegundaActivaRechazada(t *testing.T) {
	fx := newFixture()
	_, err := fx.uc.CreateSession(context.Background(), managerCtx, dto.CreateSessionRequest{StoreID: "s1"})
	require.NoError(t, err)

	_, err = fx.uc.CreateSession(context.Background(), adminCtx, dto.CreateSessionRequest{StoreID: "s1"})

	assert.ErrorIs(t, err, domain.ErrActiveSessionExists)
}

func TestCreateSession_SellerNoPuede(t *testing.T) {
	fx := newFixture()

	_, err := fx.uc.CreateSession(context.Background(), sellerCtx, dto.CreateSessionRequest{StoreID: "s1"})

	assert.ErrorIs(t, err, domain.ErrStoreOutOfScope)
}

func TestUpdateCount_DerivaLaDiferencia(t *testing.T) {
	fx := newFixture()
	created, err := fx.uc.CreateSession(context.Background(), managerCtx, dto.CreateSessionRequest{StoreID: "s1"})
	require.NoError(t, err)
	itemID := created.Items[0].ID

	out, err := fx.uc.UpdateCount(context.Background(), sellerCtx, created.ID, itemID, dto.UpdateCountRequest{
		CountedQty: decimal.NewFromInt(37),
	})

	require.NoError(t, err)
	var item *dto.SessionItemResponse
	for i := range out.Items {
		if out.Items[i].ID == itemID {
			item = &out.Items[i]
		}
	}
	require.NotNil(t, item)
	require.NotNil(t, item.CountedQty)
	assert.True(t, item.CountedQty.Equal(decimal.NewFromInt(37)))
	assert.True(t, item.Difference.Equal(decimal.NewFromInt(-3)), "diferencia = contado - esperado")
}

func TestUpdateCount_CantidadNegativaInvalida(t *testing.T) {
	fx := newFixture()
	created, err := fx.uc.CreateSession(context.Background(), managerCtx, dto.CreateSessionRequest{StoreID: "s1"})
	require.NoError(t, err)

	_, err = fx.uc.UpdateCount(context.Background(), managerCtx, created.ID, created.Items[0].ID, dto.UpdateCountRequest{
		CountedQty: decimal.NewFromInt(-1),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateCount_SesionCerradaRechaza(t *testing.T) {
	fx := newFixture()
	created, err := fx.uc.CreateSession(context.Background(), managerCtx, dto.CreateSessionRequest{StoreID: "s1"})
	require.NoError(t, err)
	_, err = fx.uc.Complete(context.Background(), managerCtx, created.ID)
	require.NoError(t, err)

	_, err = fx.uc.UpdateCount(context.Background(), managerCtx, created.ID, created.Items[0].ID, dto.UpdateCountRequest{
		CountedQty: decimal.NewFromInt(5),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// staleSessionRepo devuelve lecturas que siempre dicen "activa" aunque el
// almacén ya tenga otro estado, simulando una sesión completada entre la
// lectura del caso de uso y la escritura del conteo.
type staleSessionRepo struct {
	*fakeSessionRepo
}

func (r *staleSessionRepo) GetByID(ctx context.Context, id string) (*entity.InventorySession, error) {
	s, err := r.fakeSessionRepo.GetByID(ctx, id)
	if s != nil {
		s.Status = entity.SessionStatusActive
	}
	return s, err
}

func TestUpdateCount_SesionCompletadaEnParaleloRechaza(t *testing.T) {
	fx := newFixture()
	created, err := fx.uc.CreateSession(context.Background(), managerCtx, dto.CreateSessionRequest{StoreID: "s1"})
	require.NoError(t, err)
	_, err = fx.uc.Complete(context.Background(), managerCtx, created.ID)
	require.NoError(t, err)

	// La lectura ve la sesión activa; el almacén ya la tiene completada.
	// La guarda del repositorio, no la verificación previa, rechaza el conteo.
	stale := &staleSessionRepo{fakeSessionRepo: fx.sessions}
	stores := &fakeStoreRepo{stores: map[string]*entity.Store{"s1": {ID: "s1", Name: "Boutique Plateau"}}}
	uc := inventory.NewUseCase(stale, stores, &fakeTxRunner{sessions: stale, stock: fx.stock}, fakePDF{}, logger.Nop())

	_, err = uc.UpdateCount(context.Background(), managerCtx, created.ID, created.Items[0].ID, dto.UpdateCountRequest{
		CountedQty: decimal.NewFromInt(5),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	final, err := fx.sessions.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, final.Items[0].CountedQty, "la sesión completada no recibe conteos")
}

func TestAdjustStock_SinContarRechaza(t *testing.T) {
	fx := newFixture()
	created, err := fx.uc.CreateSession(context.Background(), managerCtx, dto.CreateSessionRequest{StoreID: "s1"})
	require.NoError(t, err)

	_, err = fx.uc.AdjustStock(context.Background(), managerCtx, created.ID, created.Items[0].ID)

	assert.ErrorIs(t, err, domain.ErrItemNotCounted)
}

func TestAdjustStock_EscribeElConteoAlStock(t *testing.T) {
	fx := newFixture()
	created, err := fx.uc.CreateSession(context.Background(), managerCtx, dto.CreateSessionRequest{StoreID: "s1"})
	require.NoError(t, err)
	itemID := created.Items[0].ID
	_, err = fx.uc.UpdateCount(context.Background(), managerCtx, created.ID, itemID, dto.UpdateCountRequest{
		CountedQty: decimal.NewFromInt(37),
	})
	require.NoError(t, err)

	out, err := fx.uc.AdjustStock(context.Background(), managerCtx, created.ID, itemID)

	require.NoError(t, err)
	written, ok := fx.stock.written["p1"]
	require.True(t, ok, "el ajuste debe escribir al stock autoritativo")
	assert.True(t, written.Equal(decimal.NewFromInt(37)))
	for _, it := range out.Items {
		if it.ID == itemID {
			assert.True(t, it.IsAdjusted)
		}
	}
}

func TestAdjustStock_SellerNoPuede(t *testing.T) {
	fx := newFixture()
	created, err := fx.uc.CreateSession(context.Background(), managerCtx, dto.CreateSessionRequest{StoreID: "s1"})
	require.NoError(t, err)
	_, err = fx.uc.UpdateCount(context.Background(), sellerCtx, created.ID, created.Items[0].ID, dto.UpdateCountRequest{
		CountedQty: decimal.NewFromInt(37),
	})
	require.NoError(t, err)

	_, err = fx.uc.AdjustStock(context.Background(), sellerCtx, created.ID, created.Items[0].ID)

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestComplete_FijaCompletedAt(t *testing.T) {
	fx := newFixture()
	created, err := fx.uc.CreateSession(context.Background(), managerCtx, dto.CreateSessionRequest{StoreID: "s1"})
	require.NoError(t, err)

	out, err := fx.uc.Complete(context.Background(), managerCtx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, entity.SessionStatusCompleted, out.Status)
	assert.NotNil(t, out.CompletedAt)
}

func TestComplete_DobleCierreRechazado(t *testing.T) {
	fx := newFixture()
	created, err := fx.uc.CreateSession(context.Background(), managerCtx, dto.CreateSessionRequest{StoreID: "s1"})
	require.NoError(t, err)
	_, err = fx.uc.Complete(context.Background(), managerCtx, created.ID)
	require.NoError(t, err)

	_, err = fx.uc.Complete(context.Background(), managerCtx, created.ID)

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCancel_NoFijaCompletedAt(t *testing.T) {
	fx := newFixture()
	created, err := fx.uc.CreateSession(context.Background(), managerCtx, dto.CreateSessionRequest{StoreID: "s1"})
	require.NoError(t, err)

	out, err := fx.uc.Cancel(context.Background(), managerCtx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, entity.SessionStatusCancelled, out.Status)
	assert.Nil(t, out.CompletedAt)
}

func TestGetSession_FueraDeAlcance(t *testing.T) {
	fx := newFixture()
	created, err := fx.uc.CreateSession(context.Background(), managerCtx, dto.CreateSessionRequest{StoreID: "s1"})
	require.NoError(t, err)

	otherSeller := scope.AccessContext{UserID: "sel-9", Role: entity.RoleSeller, StoreIDs: []string{"s9"}}
	_, err = fx.uc.GetSession(context.Background(), otherSeller, created.ID)

	assert.ErrorIs(t, err, domain.ErrStoreOutOfScope)
}

package returns_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacouba/Boutique-api/internal/application/dto"
	"github.com/yacouba/Boutique-api/internal/application/presentation"
	"github.com/yacouba/Boutique-api/internal/application/returns"
	"github.com/yacouba/Boutique-api/internal/domain"
	"github.com/yacouba/Boutique-api/internal/domain/entity"
	"github.com/yacouba/Boutique-api/internal/domain/metrics"
	"github.com/yacouba/Boutique-api/internal/domain/period"
	"github.com/yacouba/Boutique-api/internal/domain/repository"
	"github.com/yacouba/Boutique-api/internal/domain/scope"
	"github.com/yacouba/Boutique-api/pkg/config"
	"github.com/yacouba/Boutique-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeReturnRepo struct {
	returns map[string]*entity.Return
}

func newFakeReturnRepo() *fakeReturnRepo {
	return &fakeReturnRepo{returns: make(map[string]*entity.Return)}
}

func (r *fakeReturnRepo) CreateWithItems(_ context.Context, ret *entity.Return) error {
	cp := *ret
	r.returns[ret.ID] = &cp
	return nil
}

func (r *fakeReturnRepo) GetByID(_ context.Context, id string) (*entity.Return, error) {
	ret, ok := r.returns[id]
	if !ok {
		return nil, nil
	}
	cp := *ret
	return &cp, nil
}

func (r *fakeReturnRepo) List(_ context.Context, f scope.Filter, status string, _, _ int) ([]*entity.Return, error) {
	var out []*entity.Return
	for _, ret := range r.returns {
		if status != "" && ret.Status != status {
			continue
		}
		if f.OwnerID != "" && ret.ProcessedBy != f.OwnerID {
			continue
		}
		out = append(out, ret)
	}
	return out, nil
}

func (r *fakeReturnRepo) UpdateStatus(_ context.Context, id, from, to string, resolvedAt time.Time) (bool, error) {
	ret, ok := r.returns[id]
	if !ok || ret.Status != from {
		return false, nil
	}
	ret.Status = to
	ret.ResolvedAt = &resolvedAt
	return true, nil
}

// fakeTxRunner ejecuta el callback directamente, sin transacción real,
// y cuenta las ejecuciones.
type fakeTxRunner struct {
	repo repository.ReturnRepository
	runs int
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(repository.ReturnRepository) error) error {
	r.runs++
	return fn(r.repo)
}

// explodingReturnRepo falla el alta, simulando una transacción abortada.
type explodingReturnRepo struct {
	*fakeReturnRepo
}

func (r *explodingReturnRepo) CreateWithItems(context.Context, *entity.Return) error {
	return errors.New("conexión perdida")
}

type recordingCache struct {
	invalidated []string
}

func (c *recordingCache) Get(context.Context, string) ([]byte, error) { return nil, nil }
func (c *recordingCache) Set(context.Context, string, []byte) error   { return nil }
func (c *recordingCache) InvalidateStore(_ context.Context, storeID string) error {
	c.invalidated = append(c.invalidated, storeID)
	return nil
}

type fakeSaleRepo struct {
	sales map[string]*entity.Sale
}

func (r *fakeSaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	return r.sales[id], nil
}
func (r *fakeSaleRepo) List(_ context.Context, _ scope.Filter, _ period.Range, _, _ int) ([]*entity.Sale, error) {
	return nil, nil
}
func (r *fakeSaleRepo) Totals(_ context.Context, _ scope.Filter, _ period.Range) (decimal.Decimal, int64, error) {
	return decimal.Zero, 0, nil
}
func (r *fakeSaleRepo) GroupByProduct(_ context.Context, _ scope.Filter, _ period.Range) ([]metrics.GroupRow, error) {
	return nil, nil
}
func (r *fakeSaleRepo) GroupBySeller(_ context.Context, _ scope.Filter, _ period.Range) ([]metrics.GroupRow, error) {
	return nil, nil
}
func (r *fakeSaleRepo) GroupByStore(_ context.Context, _ scope.Filter, _ period.Range) ([]metrics.GroupRow, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

var (
	adminCtx   = scope.AccessContext{UserID: "admin-1", Role: entity.RoleAdmin}
	managerCtx = scope.AccessContext{UserID: "mgr-1", Role: entity.RoleManager, StoreIDs: []string{"s1"}}
	sellerCtx  = scope.AccessContext{UserID: "sel-1", Role: entity.RoleSeller, StoreIDs: []string{"s1"}}
)

type fixture struct {
	uc    *returns.UseCase
	repo  *fakeReturnRepo
	tx    *fakeTxRunner
	cache *recordingCache
}

func newFixture() *fixture {
	repo := newFakeReturnRepo()
	sales := &fakeSaleRepo{sales: map[string]*entity.Sale{
		"v1": {ID: "v1", StoreID: "s1", SellerID: "sel-1", Status: entity.SaleStatusCompleted},
	}}
	table := presentation.NewTable(config.CapsConfig{
		SellerReturnCap:  dec("50000"),
		ManagerReturnCap: dec("200000"),
	})
	tx := &fakeTxRunner{repo: repo}
	cache := &recordingCache{}
	uc := returns.NewUseCase(repo, sales, tx, cache, table, logger.Nop())
	return &fixture{uc: uc, repo: repo, tx: tx, cache: cache}
}

// reqFor arma una devolución de una línea con el monto total indicado.
func reqFor(amount string) dto.CreateReturnRequest {
	return dto.CreateReturnRequest{
		SaleID: "v1",
		Reason: "article défectueux",
		Items: []dto.ReturnItemRequest{
			{ProductID: "p1", Quantity: dec("1"), UnitPrice: dec(amount)},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de topes por rol
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_SellerSobreElTopeRechazado(t *testing.T) {
	fx := newFixture()

	_, err := fx.uc.Create(context.Background(), sellerCtx, reqFor("60000"))

	assert.ErrorIs(t, err, domain.ErrReturnOverCap, "60 000 XOF supera el tope de 50 000 del seller")
}

func TestCreate_SellerBajoElTopeQuedaPendiente(t *testing.T) {
	fx := newFixture()

	out, err := fx.uc.Create(context.Background(), sellerCtx, reqFor("45000"))

	require.NoError(t, err)
	assert.Equal(t, entity.ReturnStatusPending, out.Status)
	assert.Nil(t, out.ResolvedAt)
}

func TestCreate_ManagerBajoSuTopeQuedaPendiente(t *testing.T) {
	fx := newFixture()

	out, err := fx.uc.Create(context.Background(), managerCtx, reqFor("150000"))

	require.NoError(t, err)
	assert.Equal(t, entity.ReturnStatusPending, out.Status)
}

func TestCreate_ManagerSobreSuTopeRechazado(t *testing.T) {
	fx := newFixture()

	_, err := fx.uc.Create(context.Background(), managerCtx, reqFor("250000"))

	assert.ErrorIs(t, err, domain.ErrReturnOverCap)
}

func TestCreate_AdminSinTopeNaceAprobada(t *testing.T) {
	fx := newFixture()

	out, err := fx.uc.Create(context.Background(), adminCtx, reqFor("500000"))

	require.NoError(t, err)
	assert.Equal(t, entity.ReturnStatusApproved, out.Status)
	assert.NotNil(t, out.ResolvedAt, "la devolución del admin no espera validación")
}

func TestCreate_MontoDerivadoDeLasLineas(t *testing.T) {
	fx := newFixture()
	req := dto.CreateReturnRequest{
		SaleID: "v1",
		Items: []dto.ReturnItemRequest{
			{ProductID: "p1", Quantity: dec("2"), UnitPrice: dec("1500")},
			{ProductID: "p2", Quantity: dec("1"), UnitPrice: dec("700")},
		},
	}

	out, err := fx.uc.Create(context.Background(), sellerCtx, req)

	require.NoError(t, err)
	assert.True(t, out.TotalAmount.Equal(dec("3700")), "total = suma de cantidad*precio por línea")
}

func TestCreate_SellerSoloSobreSusVentas(t *testing.T) {
	fx := newFixture()
	otherSeller := scope.AccessContext{UserID: "sel-2", Role: entity.RoleSeller, StoreIDs: []string{"s1"}}

	_, err := fx.uc.Create(context.Background(), otherSeller, reqFor("1000"))

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de atomicidad y caché
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_EscribeDentroDeUnaTransaccion(t *testing.T) {
	fx := newFixture()

	_, err := fx.uc.Create(context.Background(), sellerCtx, reqFor("1000"))

	require.NoError(t, err)
	assert.Equal(t, 1, fx.tx.runs, "cabecera y líneas van por el runner transaccional")
}

func TestCreate_FalloEnLaTransaccionNoDejaNada(t *testing.T) {
	fx := newFixture()
	fx.tx.repo = &explodingReturnRepo{fakeReturnRepo: fx.repo}

	_, err := fx.uc.Create(context.Background(), sellerCtx, reqFor("1000"))

	require.Error(t, err)
	assert.Empty(t, fx.repo.returns, "una transacción abortada no persiste la devolución")
	assert.Empty(t, fx.cache.invalidated, "sin escritura no hay invalidación")
}

func TestCreate_InvalidaElCacheDeLaTienda(t *testing.T) {
	fx := newFixture()

	_, err := fx.uc.Create(context.Background(), sellerCtx, reqFor("1000"))

	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, fx.cache.invalidated)
}

func TestApprove_InvalidaElCacheDeLaTienda(t *testing.T) {
	fx := newFixture()
	created, err := fx.uc.Create(context.Background(), sellerCtx, reqFor("1000"))
	require.NoError(t, err)
	fx.cache.invalidated = nil

	_, err = fx.uc.Approve(context.Background(), managerCtx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, fx.cache.invalidated)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de la máquina de estados
// ──────────────────────────────────────────────────────────────────────────────

func TestApprove_PendingAprobada(t *testing.T) {
	fx := newFixture()
	created, err := fx.uc.Create(context.Background(), sellerCtx, reqFor("1000"))
	require.NoError(t, err)

	out, err := fx.uc.Approve(context.Background(), managerCtx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, entity.ReturnStatusApproved, out.Status)
	assert.NotNil(t, out.ResolvedAt)
}

func TestApprove_EstadoTerminalRechazado(t *testing.T) {
	fx := newFixture()
	created, err := fx.uc.Create(context.Background(), sellerCtx, reqFor("1000"))
	require.NoError(t, err)
	_, err = fx.uc.Reject(context.Background(), managerCtx, created.ID)
	require.NoError(t, err)

	_, err = fx.uc.Approve(context.Background(), managerCtx, created.ID)

	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "rejected es terminal")
}

func TestApprove_SellerNoPuedeResolver(t *testing.T) {
	fx := newFixture()
	created, err := fx.uc.Create(context.Background(), sellerCtx, reqFor("1000"))
	require.NoError(t, err)

	_, err = fx.uc.Approve(context.Background(), sellerCtx, created.ID)

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestList_SellerSoloVeLasSuyas(t *testing.T) {
	fx := newFixture()
	_, err := fx.uc.Create(context.Background(), sellerCtx, reqFor("1000"))
	require.NoError(t, err)
	_, err = fx.uc.Create(context.Background(), managerCtx, reqFor("2000"))
	require.NoError(t, err)

	out, err := fx.uc.List(context.Background(), sellerCtx, "", dto.PageRequest{})

	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "sel-1", out.Items[0].ProcessedBy)
}

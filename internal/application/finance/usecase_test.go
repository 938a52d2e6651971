package finance_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacouba/Boutique-api/internal/application/dto"
	"github.com/yacouba/Boutique-api/internal/application/finance"
	"github.com/yacouba/Boutique-api/internal/domain"
	"github.com/yacouba/Boutique-api/internal/domain/entity"
	"github.com/yacouba/Boutique-api/internal/domain/metrics"
	"github.com/yacouba/Boutique-api/internal/domain/period"
	"github.com/yacouba/Boutique-api/internal/domain/scope"
	"github.com/yacouba/Boutique-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// Cifras fijas: actual vende 300 000 y gasta 120 000; el período anterior
// vende 200 000 y gasta 100 000. El corte separa ambos rangos.
type fakeSaleRepo struct {
	cutoff time.Time
}

func (r *fakeSaleRepo) GetByID(context.Context, string) (*entity.Sale, error) { return nil, nil }
func (r *fakeSaleRepo) List(context.Context, scope.Filter, period.Range, int, int) ([]*entity.Sale, error) {
	return nil, nil
}
func (r *fakeSaleRepo) Totals(_ context.Context, _ scope.Filter, rng period.Range) (decimal.Decimal, int64, error) {
	if rng.End.After(r.cutoff) {
		return decimal.NewFromInt(300000), 5, nil
	}
	return decimal.NewFromInt(200000), 4, nil
}
func (r *fakeSaleRepo) GroupByProduct(context.Context, scope.Filter, period.Range) ([]metrics.GroupRow, error) {
	return nil, nil
}
func (r *fakeSaleRepo) GroupBySeller(context.Context, scope.Filter, period.Range) ([]metrics.GroupRow, error) {
	return nil, nil
}
func (r *fakeSaleRepo) GroupByStore(context.Context, scope.Filter, period.Range) ([]metrics.GroupRow, error) {
	return nil, nil
}

type fakeExpenseRepo struct {
	cutoff   time.Time
	created  []*entity.Expense
	expenses map[string]*entity.Expense
}

func (r *fakeExpenseRepo) Create(_ context.Context, e *entity.Expense) error {
	r.created = append(r.created, e)
	r.expenses[e.ID] = e
	return nil
}
func (r *fakeExpenseRepo) GetByID(_ context.Context, id string) (*entity.Expense, error) {
	return r.expenses[id], nil
}
func (r *fakeExpenseRepo) Delete(_ context.Context, id string) error {
	delete(r.expenses, id)
	return nil
}
func (r *fakeExpenseRepo) List(context.Context, scope.Filter, period.Range, int, int) ([]*entity.Expense, error) {
	return nil, nil
}
func (r *fakeExpenseRepo) Total(_ context.Context, _ scope.Filter, rng period.Range) (decimal.Decimal, error) {
	if rng.End.After(r.cutoff) {
		return decimal.NewFromInt(120000), nil
	}
	return decimal.NewFromInt(100000), nil
}
func (r *fakeExpenseRepo) GroupByCategory(context.Context, scope.Filter, period.Range) ([]metrics.GroupRow, error) {
	return []metrics.GroupRow{
		{Key: "loyer", Label: "Loyer", Revenue: decimal.NewFromInt(80000)},
		{Key: "transport", Label: "Transport", Revenue: decimal.NewFromInt(40000)},
	}, nil
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

// ──────────────────────────────────────────────────────────────────────────────
// Fixture y tests
// ──────────────────────────────────────────────────────────────────────────────

var (
	adminCtx   = scope.AccessContext{UserID: "admin-1", Role: entity.RoleAdmin}
	managerCtx = scope.AccessContext{UserID: "mgr-1", Role: entity.RoleManager, StoreIDs: []string{"s1"}}
	sellerCtx  = scope.AccessContext{UserID: "sel-1", Role: entity.RoleSeller, StoreIDs: []string{"s1"}}
)

type fixture struct {
	uc       *finance.UseCase
	cache    *recordingCache
	expenses *fakeExpenseRepo
}

func newFixture() *fixture {
	cutoff := time.Now().UTC().AddDate(0, 0, -15)
	expenses := &fakeExpenseRepo{cutoff: cutoff, expenses: make(map[string]*entity.Expense)}
	cache := &recordingCache{}
	uc := finance.NewUseCase(&fakeSaleRepo{cutoff: cutoff}, expenses, cache, logger.Nop())
	return &fixture{uc: uc, cache: cache, expenses: expenses}
}

func TestSummary_UtilidadDerivadaDelMismoResumen(t *testing.T) {
	fx := newFixture()

	out, err := fx.uc.Summary(context.Background(), adminCtx, period.Last30Days)

	require.NoError(t, err)
	assert.True(t, out.Profit.Current.Equal(decimal.NewFromInt(180000)), "300k - 120k")
	assert.True(t, out.Profit.Previous.Equal(decimal.NewFromInt(100000)), "200k - 100k")
	assert.True(t, out.Profit.Percentage.Equal(decimal.NewFromInt(80)), "de 100k a 180k es +80%%")
	require.Len(t, out.ExpensesByCategory, 2)
	assert.Equal(t, "loyer", out.ExpensesByCategory[0].Key, "categorías ordenadas por monto")
	assert.NotEmpty(t, out.ProfitLabel)
}

func TestSummary_SellerNoAccede(t *testing.T) {
	fx := newFixture()

	_, err := fx.uc.Summary(context.Background(), sellerCtx, period.Last30Days)

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAddExpense_InvalidaElCacheDeLaTienda(t *testing.T) {
	fx := newFixture()

	out, err := fx.uc.AddExpense(context.Background(), managerCtx, dto.AddExpenseRequest{
		StoreID:  "s1",
		Category: "transport",
		Amount:   decimal.NewFromInt(5000),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, out.Message)
	require.Len(t, fx.expenses.created, 1)
	assert.Equal(t, []string{"s1"}, fx.cache.invalidated)
}

func TestAddExpense_TiendaFueraDeAlcance(t *testing.T) {
	fx := newFixture()

	_, err := fx.uc.AddExpense(context.Background(), managerCtx, dto.AddExpenseRequest{
		StoreID:  "s9",
		Category: "loyer",
		Amount:   decimal.NewFromInt(5000),
	})

	assert.ErrorIs(t, err, domain.ErrStoreOutOfScope)
}

func TestAddExpense_MontoNoPositivoInvalido(t *testing.T) {
	fx := newFixture()

	_, err := fx.uc.AddExpense(context.Background(), adminCtx, dto.AddExpenseRequest{
		StoreID:  "s1",
		Category: "loyer",
		Amount:   decimal.Zero,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddExpense_FechaISOParseada(t *testing.T) {
	fx := newFixture()

	_, err := fx.uc.AddExpense(context.Background(), adminCtx, dto.AddExpenseRequest{
		StoreID:  "s1",
		Category: "loyer",
		Amount:   decimal.NewFromInt(1000),
		Date:     "2026-08-01",
	})

	require.NoError(t, err)
	require.Len(t, fx.expenses.created, 1)
	assert.Equal(t, 2026, fx.expenses.created[0].Date.Year())
	assert.Equal(t, time.August, fx.expenses.created[0].Date.Month())
}

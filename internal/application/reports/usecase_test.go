package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacouba/Boutique-api/internal/application/reports"
	"github.com/yacouba/Boutique-api/internal/domain/entity"
	"github.com/yacouba/Boutique-api/internal/domain/metrics"
	"github.com/yacouba/Boutique-api/internal/domain/period"
	"github.com/yacouba/Boutique-api/internal/domain/scope"
	"github.com/yacouba/Boutique-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// fakeSaleRepo devuelve cifras fijas: el período actual vende 150 000 en 3
// ventas, el anterior 100 000 en 2. Distingue actual/anterior comparando el
// fin del rango contra un corte a mitad del período de 30 días.
type fakeSaleRepo struct {
	cutoff   time.Time
	products []metrics.GroupRow
	calls    int
}

func (r *fakeSaleRepo) GetByID(context.Context, string) (*entity.Sale, error) { return nil, nil }

func (r *fakeSaleRepo) List(context.Context, scope.Filter, period.Range, int, int) ([]*entity.Sale, error) {
	return nil, nil
}

func (r *fakeSaleRepo) Totals(_ context.Context, _ scope.Filter, rng period.Range) (decimal.Decimal, int64, error) {
	r.calls++
	if rng.End.After(r.cutoff) {
		return decimal.NewFromInt(150000), 3, nil
	}
	return decimal.NewFromInt(100000), 2, nil
}

func (r *fakeSaleRepo) GroupByProduct(context.Context, scope.Filter, period.Range) ([]metrics.GroupRow, error) {
	return r.products, nil
}

func (r *fakeSaleRepo) GroupBySeller(context.Context, scope.Filter, period.Range) ([]metrics.GroupRow, error) {
	return nil, nil
}

func (r *fakeSaleRepo) GroupByStore(context.Context, scope.Filter, period.Range) ([]metrics.GroupRow, error) {
	return nil, nil
}

// memCache caché en memoria que cuenta hits y sets.
type memCache struct {
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, error) { return c.data[key], nil }
func (c *memCache) Set(_ context.Context, key string, v []byte) error {
	c.sets++
	c.data[key] = v
	return nil
}
func (c *memCache) InvalidateStore(context.Context, string) error { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

var adminCtx = scope.AccessContext{UserID: "admin-1", Role: entity.RoleAdmin}

func newRepo(t *testing.T) *fakeSaleRepo {
	t.Helper()
	return &fakeSaleRepo{
		cutoff: time.Now().UTC().AddDate(0, 0, -15),
		products: []metrics.GroupRow{
			{Key: "p1", Label: "Riz", Revenue: decimal.NewFromInt(90000)},
			{Key: "p2", Label: "Huile", Revenue: decimal.NewFromInt(40000)},
			{Key: "p3", Label: "Savon", Revenue: decimal.NewFromInt(20000)},
		},
	}
}

func TestSalesSummary_CrecimientoYTops(t *testing.T) {
	repo := newRepo(t)
	uc := reports.NewUseCase(repo, newMemCache(), logger.Nop())

	out, err := uc.SalesSummary(context.Background(), adminCtx, period.Last30Days, 2)

	require.NoError(t, err)
	assert.True(t, out.Revenue.Current.Equal(decimal.NewFromInt(150000)))
	assert.True(t, out.Revenue.Percentage.Equal(decimal.NewFromInt(50)), "de 100k a 150k es +50%%")
	assert.True(t, out.SaleCount.Delta.Equal(decimal.NewFromInt(1)))
	require.Len(t, out.TopProducts, 2, "el top respeta el topN del llamador")
	assert.Equal(t, "p1", out.TopProducts[0].Key)
	assert.NotEmpty(t, out.RevenueLabel)
}

func TestSalesSummary_SegundaLecturaSaleDelCache(t *testing.T) {
	repo := newRepo(t)
	cache := newMemCache()
	uc := reports.NewUseCase(repo, cache, logger.Nop())

	_, err := uc.SalesSummary(context.Background(), adminCtx, period.Last30Days, 5)
	require.NoError(t, err)
	callsAfterFirst := repo.calls
	require.Equal(t, 1, cache.sets)

	out, err := uc.SalesSummary(context.Background(), adminCtx, period.Last30Days, 5)

	require.NoError(t, err)
	assert.Equal(t, callsAfterFirst, repo.calls, "la segunda lectura no toca el repositorio")
	assert.True(t, out.Revenue.Current.Equal(decimal.NewFromInt(150000)))
}

func TestSalesSummary_PeriodoInvalido(t *testing.T) {
	uc := reports.NewUseCase(newRepo(t), newMemCache(), logger.Nop())

	_, err := uc.SalesSummary(context.Background(), adminCtx, "fortnight", 5)

	assert.Error(t, err)
}

package metrics_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacouba/Boutique-api/internal/domain/entity"
	"github.com/yacouba/Boutique-api/internal/domain/metrics"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestGrowthPercentage_CasoNormal(t *testing.T) {
	pct := metrics.GrowthPercentage(d("150"), d("100"))

	assert.True(t, pct.Equal(d("50")), "de 100 a 150 es +50%%, fue %s", pct)
}

func TestGrowthPercentage_Decrecimiento(t *testing.T) {
	pct := metrics.GrowthPercentage(d("50"), d("100"))

	assert.True(t, pct.Equal(d("-50")))
}

func TestGrowthPercentage_BaseCeroConActividad(t *testing.T) {
	// Sin base de comparación y con actividad la señal estable es 100.
	pct := metrics.GrowthPercentage(d("1234"), decimal.Zero)

	assert.True(t, pct.Equal(d("100")))
}

func TestGrowthPercentage_BaseCeroSinActividad(t *testing.T) {
	pct := metrics.GrowthPercentage(decimal.Zero, decimal.Zero)

	assert.True(t, pct.IsZero())
}

func TestNewGrowth_DeltaYRedondeo(t *testing.T) {
	g := metrics.NewGrowth(d("110"), d("30"))

	assert.True(t, g.Delta.Equal(d("80")))
	assert.True(t, g.Percentage.Equal(d("266.67")), "porcentaje redondeado a 2 decimales, fue %s", g.Percentage)
}

func TestTopGroups_AcumulaOrdenaYCorta(t *testing.T) {
	rows := []metrics.GroupRow{
		{Key: "a", Label: "Savon", Quantity: d("2"), Revenue: d("1000")},
		{Key: "b", Label: "Riz", Quantity: d("1"), Revenue: d("5000")},
		{Key: "a", Label: "Savon", Quantity: d("3"), Revenue: d("1500")},
		{Key: "c", Label: "Huile", Quantity: d("1"), Revenue: d("200")},
	}

	top := metrics.TopGroups(rows, 2)

	require.Len(t, top, 2)
	assert.Equal(t, "b", top[0].Key, "ordenado por ingreso descendente")
	assert.Equal(t, "a", top[1].Key)
	assert.True(t, top[1].Revenue.Equal(d("2500")), "las filas de la misma clave se acumulan")
	assert.True(t, top[1].Quantity.Equal(d("5")))
}

func TestTopGroups_TopNCeroNoCorta(t *testing.T) {
	rows := []metrics.GroupRow{
		{Key: "a", Revenue: d("1")},
		{Key: "b", Revenue: d("2")},
		{Key: "c", Revenue: d("3")},
	}

	assert.Len(t, metrics.TopGroups(rows, 0), 3)
}

func TestTopGroups_Vacio(t *testing.T) {
	assert.Empty(t, metrics.TopGroups(nil, 5))
}

func counted(expected, countedQty string) entity.InventoryItem {
	it := entity.InventoryItem{ExpectedQty: d(expected)}
	it.SetCounted(d(countedQty))
	return it
}

func TestSessionAccuracy_ConteoPerfecto(t *testing.T) {
	items := []entity.InventoryItem{counted("10", "10"), counted("4", "4")}

	pct, ok := metrics.SessionAccuracy(items)

	require.True(t, ok)
	assert.True(t, pct.Equal(d("100")))
}

func TestSessionAccuracy_PromedioConDesvio(t *testing.T) {
	// 10/10 = 100%% y |8-10|/10 = 80%%: promedio 90%%.
	items := []entity.InventoryItem{counted("10", "10"), counted("10", "8")}

	pct, ok := metrics.SessionAccuracy(items)

	require.True(t, ok)
	assert.True(t, pct.Equal(d("90")), "fue %s", pct)
}

func TestSessionAccuracy_ExcluyeEsperadoCeroYSinContar(t *testing.T) {
	items := []entity.InventoryItem{
		counted("0", "3"),      // esperado cero: sin precisión definida
		{ExpectedQty: d("10")}, // sin contar
		counted("10", "10"),
	}

	pct, ok := metrics.SessionAccuracy(items)

	require.True(t, ok)
	assert.True(t, pct.Equal(d("100")), "solo el artículo con precisión definida promedia")
}

func TestSessionAccuracy_SinArticulosDefinidos(t *testing.T) {
	items := []entity.InventoryItem{counted("0", "5"), {ExpectedQty: d("2")}}

	_, ok := metrics.SessionAccuracy(items)

	assert.False(t, ok)
}

package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/yacouba/Boutique-api/internal/domain/entity"
)

// SessionAccuracy promedia la precisión de los artículos contados de una
// sesión, expresada como porcentaje. Precisión por artículo:
// 1 - |diferencia| / esperado. Los artículos con esperado == 0 no tienen
// precisión definida y se excluyen del promedio (no dividen por cero).
// ok=false cuando ningún artículo contado tiene precisión definida.
func SessionAccuracy(items []entity.InventoryItem) (pct decimal.Decimal, ok bool) {
	sum := decimal.Zero
	n := 0
	for _, it := range items {
		if it.CountedQty == nil || it.ExpectedQty.IsZero() {
			continue
		}
		acc := decimal.NewFromInt(1).Sub(it.Difference.Abs().Div(it.ExpectedQty))
		sum = sum.Add(acc)
		n++
	}
	if n == 0 {
		return decimal.Zero, false
	}
	return sum.Div(decimal.NewFromInt(int64(n))).Mul(hundred).Round(2), true
}

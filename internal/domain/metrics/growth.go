// Package metrics concentra las fórmulas de agregación compartidas por
// reportes, finanzas y analítica. Una sola implementación por fórmula:
// los casos de uso no reimplementan crecimiento, agrupación ni precisión.
package metrics

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Growth variación absoluta y porcentual entre el período actual y el anterior.
type Growth struct {
	Current    decimal.Decimal
	Previous   decimal.Decimal
	Delta      decimal.Decimal
	Percentage decimal.Decimal
}

// GrowthPercentage calcula el porcentaje de crecimiento respecto al período
// anterior. Con previous == 0: 100 si current > 0, 0 en caso contrario
// (evita división por cero y da una señal estable en períodos sin base).
func GrowthPercentage(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.GreaterThan(decimal.Zero) {
			return hundred
		}
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(hundred)
}

// NewGrowth empaqueta los dos valores con su delta y porcentaje.
func NewGrowth(current, previous decimal.Decimal) Growth {
	return Growth{
		Current:    current,
		Previous:   previous,
		Delta:      current.Sub(previous),
		Percentage: GrowthPercentage(current, previous).Round(2),
	}
}

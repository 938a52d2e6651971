package dto

import (
	"github.com/shopspring/decimal"

	"github.com/yacouba/Boutique-api/internal/domain/metrics"
)

// GrowthDTO métrica con su comparación contra el período anterior.
type GrowthDTO struct {
	Current    decimal.Decimal `json:"current"`
	Previous   decimal.Decimal `json:"previous"`
	Delta      decimal.Decimal `json:"delta"`
	Percentage decimal.Decimal `json:"percentage"`
}

// SalesSummaryDTO resumen de ventas del período para el alcance del usuario.
type SalesSummaryDTO struct {
	Period       string               `json:"period"`
	Revenue      GrowthDTO            `json:"revenue"`
	SaleCount    GrowthDTO            `json:"sale_count"`
	TopProducts  []metrics.GroupTotal `json:"top_products"`
	TopSellers   []metrics.GroupTotal `json:"top_sellers"`
	StoreTotals  []metrics.GroupTotal `json:"store_totals"`
	RevenueLabel string               `json:"revenue_label"` // monto formateado XOF, solo display
}

// FinanceSummaryDTO resumen financiero: ingreso - gastos = utilidad.
type FinanceSummaryDTO struct {
	Period             string               `json:"period"`
	Revenue            GrowthDTO            `json:"revenue"`
	Expenses           GrowthDTO            `json:"expenses"`
	Profit             GrowthDTO            `json:"profit"`
	ExpensesByCategory []metrics.GroupTotal `json:"expenses_by_category"`
	ProfitLabel        string               `json:"profit_label"` // monto formateado XOF, solo display
}

// AddExpenseRequest alta de gasto.
type AddExpenseRequest struct {
	StoreID  string          `json:"store_id"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Notes    string          `json:"notes"`
	Date     string          `json:"date"` // ISO-8601; vacío = hoy
}

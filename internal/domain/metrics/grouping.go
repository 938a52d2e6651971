package metrics

import (
	"sort"

	"github.com/shopspring/decimal"
)

// GroupRow fila de entrada para una agrupación: una dimensión (producto,
// vendedor, tienda, categoría de gasto) con cantidad e ingreso.
type GroupRow struct {
	Key      string
	Label    string
	Quantity decimal.Decimal
	Revenue  decimal.Decimal
}

// GroupTotal resultado acumulado por dimensión.
type GroupTotal struct {
	Key      string          `json:"key"`
	Label    string          `json:"label"`
	Quantity decimal.Decimal `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// TopGroups reduce filas a totales por clave, ordena por ingreso descendente
// y corta al top-N. topN <= 0 desactiva el corte. El top-N llega siempre como
// parámetro del llamador (widget 5, reporte 10), nunca como literal interno.
func TopGroups(rows []GroupRow, topN int) []GroupTotal {
	acc := make(map[string]*GroupTotal)
	order := make([]string, 0)
	for _, row := range rows {
		g, ok := acc[row.Key]
		if !ok {
			g = &GroupTotal{Key: row.Key, Label: row.Label}
			acc[row.Key] = g
			order = append(order, row.Key)
		}
		g.Quantity = g.Quantity.Add(row.Quantity)
		g.Revenue = g.Revenue.Add(row.Revenue)
	}

	totals := make([]GroupTotal, 0, len(acc))
	for _, key := range order {
		totals = append(totals, *acc[key])
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Revenue.GreaterThan(totals[j].Revenue)
	})
	if topN > 0 && len(totals) > topN {
		totals = totals[:topN]
	}
	return totals
}

// Sum suma los ingresos de un conjunto de totales.
func Sum(totals []GroupTotal) decimal.Decimal {
	s := decimal.Zero
	for _, t := range totals {
		s = s.Add(t.Revenue)
	}
	return s
}

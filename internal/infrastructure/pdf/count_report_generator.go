// Package pdf genera el acta PDF de una sesión de conteo de inventario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda + estado  │  Fecha de apertura/cierre       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Produit | SKU | Attendue | Comptée | Écart | Ajusté │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: artículos contados / precisión del conteo         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/yacouba/Boutique-api/internal/domain/entity"
	"github.com/yacouba/Boutique-api/internal/domain/metrics"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// CountReportGenerator implementa inventory.SessionPDFGenerator usando Maroto v2.
type CountReportGenerator struct{}

// NewCountReportGenerator construye el generador.
func NewCountReportGenerator() *CountReportGenerator { return &CountReportGenerator{} }

// GenerateSessionPDF genera el acta de conteo y devuelve sus bytes.
func (g *CountReportGenerator) GenerateSessionPDF(
	_ context.Context,
	session *entity.InventorySession,
	store *entity.Store,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Rapport d'inventaire", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(session, store))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(session.Items) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(session))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: tienda + estado (izq), fechas (der).
func headerRow(session *entity.InventorySession, store *entity.Store) core.Row {
	opened := session.CreatedAt.Format("02/01/2006")
	closed := "—"
	if session.CompletedAt != nil {
		closed = session.CompletedAt.Format("02/01/2006")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(store.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Inventaire physique — "+statusLabel(session.Status), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RAPPORT D'INVENTAIRE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Ouvert le : "+opened, props.Text{Size: 8, Align: align.Right, Top: 8, Color: colorGray}),
			text.New("Clôturé le : "+closed, props.Text{Size: 8, Align: align.Right, Top: 13, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de artículos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Produit", 4, align.Left),
		h("SKU", 2, align.Left),
		h("Attendue", 2, align.Right),
		h("Comptée", 2, align.Right),
		h("Écart", 1, align.Right),
		h("Ajusté", 1, align.Center),
	)
}

// tableItemRows: una fila por artículo de la sesión.
func tableItemRows(items []entity.InventoryItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		counted := "—"
		diff := "—"
		if it.CountedQty != nil {
			counted = it.CountedQty.StringFixed(0)
			diff = it.Difference.StringFixed(0)
		}
		adjusted := "non"
		if it.IsAdjusted {
			adjusted = "oui"
		}
		result = append(result, row.New(6).Add(
			col.New(4).Add(text.New(it.ProductName, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(it.SKU, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(it.ExpectedQty.StringFixed(0), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New(counted, props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(1).Add(text.New(diff, props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(1).Add(text.New(adjusted, props.Text{Size: 8, Align: align.Center, Top: 1})),
		))
	}
	return result
}

// summaryRow: artículos contados y precisión del conteo.
func summaryRow(session *entity.InventorySession) core.Row {
	counted := 0
	for _, it := range session.Items {
		if it.CountedQty != nil {
			counted++
		}
	}
	accuracy := "non disponible"
	if pct, ok := metrics.SessionAccuracy(session.Items); ok {
		accuracy = pct.StringFixed(2) + " %"
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Articles comptés : %d / %d", counted, len(session.Items)), props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 2,
			}),
			text.New("Précision du comptage : "+accuracy, props.Text{Size: 9, Top: 8, Color: colorGray}),
		),
	)
}

func statusLabel(status string) string {
	switch status {
	case entity.SessionStatusActive:
		return "en cours"
	case entity.SessionStatusCompleted:
		return "clôturé"
	case entity.SessionStatusCancelled:
		return "annulé"
	}
	return status
}

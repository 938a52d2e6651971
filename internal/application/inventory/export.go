package inventory

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"github.com/yacouba/Boutique-api/internal/domain"
	"github.com/yacouba/Boutique-api/internal/domain/scope"
)

// csvHeader cabecera del export CSV de una sesión, en el orden del acta.
var csvHeader = []string{"Produit", "SKU", "Quantité attendue", "Quantité comptée", "Différence", "Ajusté"}

// ExportCSV serializa la sesión como CSV: cabecera + una línea por artículo.
// encoding/csv se encarga del quoting de comas, comillas y saltos de línea
// en los nombres de producto. Artículo sin contar: campos vacíos.
func (uc *UseCase) ExportCSV(ctx context.Context, ac scope.AccessContext, id string) ([]byte, error) {
	session, err := uc.loadInScope(ctx, ac, id)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("export csv: %w", err)
	}
	for _, it := range session.Items {
		counted, diff := "", ""
		if it.CountedQty != nil {
			counted = it.CountedQty.String()
			diff = it.Difference.String()
		}
		adjusted := "non"
		if it.IsAdjusted {
			adjusted = "oui"
		}
		record := []string{it.ProductName, it.SKU, it.ExpectedQty.String(), counted, diff, adjusted}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("export csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportJSON serializa la sesión completa (con métricas derivadas) como
// JSON indentado, apto para descarga.
func (uc *UseCase) ExportJSON(ctx context.Context, ac scope.AccessContext, id string) ([]byte, error) {
	session, err := uc.loadInScope(ctx, ac, id)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(toSessionResponse(session), "", "  ")
}

// ExportPDF genera el acta PDF de la sesión vía el generador inyectado.
func (uc *UseCase) ExportPDF(ctx context.Context, ac scope.AccessContext, id string) ([]byte, error) {
	session, err := uc.loadInScope(ctx, ac, id)
	if err != nil {
		return nil, err
	}
	store, err := uc.stores.GetByID(ctx, session.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	return uc.pdf.GenerateSessionPDF(ctx, session, store)
}

// ExportFilename nombre de archivo sugerido para la descarga.
func ExportFilename(sessionID, ext string) string {
	short := sessionID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("inventaire-%s.%s", short, ext)
}

// Package reports implementa los resúmenes de ventas por período y alcance:
// ingreso con crecimiento, conteo de ventas, top de productos y vendedores.
// Los resúmenes se cachean por alcance+período; el caché es best-effort.
package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yacouba/Boutique-api/internal/application/dto"
	"github.com/yacouba/Boutique-api/internal/domain/metrics"
	"github.com/yacouba/Boutique-api/internal/domain/period"
	"github.com/yacouba/Boutique-api/internal/domain/repository"
	"github.com/yacouba/Boutique-api/internal/domain/scope"
	"github.com/yacouba/Boutique-api/pkg/logger"
	"github.com/yacouba/Boutique-api/pkg/money"
)

// UseCase casos de uso de reportes de ventas.
type UseCase struct {
	sales repository.SaleRepository
	cache Cache
	log   *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(sales repository.SaleRepository, cache Cache, log *logger.Logger) *UseCase {
	return &UseCase{sales: sales, cache: cache, log: log}
}

// SalesSummary arma el resumen de ventas del período para el alcance del
// usuario. topN viene del llamador (5 para el widget, 10 para el reporte).
// Las cinco consultas del resumen corren en paralelo.
func (uc *UseCase) SalesSummary(ctx context.Context, ac scope.AccessContext, tok period.Token, topN int) (*dto.SalesSummaryDTO, error) {
	rng, err := period.Resolve(tok, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	f := ac.QueryFilter(true)

	key := summaryKey("sales", f, tok, topN)
	if cached, err := uc.cache.Get(ctx, key); err == nil && cached != nil {
		var out dto.SalesSummaryDTO
		if err := json.Unmarshal(cached, &out); err == nil {
			return &out, nil
		}
	} else if err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("caché de reportes no disponible")
	}

	type totalsResult struct {
		revenue decimal.Decimal
		count   int64
		err     error
	}
	type groupResult struct {
		rows []metrics.GroupRow
		err  error
	}

	curCh := make(chan totalsResult, 1)
	prevCh := make(chan totalsResult, 1)
	prodCh := make(chan groupResult, 1)
	sellerCh := make(chan groupResult, 1)
	storeCh := make(chan groupResult, 1)

	go func() {
		rev, n, err := uc.sales.Totals(ctx, f, rng)
		curCh <- totalsResult{rev, n, err}
	}()
	go func() {
		rev, n, err := uc.sales.Totals(ctx, f, rng.Previous())
		prevCh <- totalsResult{rev, n, err}
	}()
	go func() {
		rows, err := uc.sales.GroupByProduct(ctx, f, rng)
		prodCh <- groupResult{rows, err}
	}()
	go func() {
		rows, err := uc.sales.GroupBySeller(ctx, f, rng)
		sellerCh <- groupResult{rows, err}
	}()
	go func() {
		rows, err := uc.sales.GroupByStore(ctx, f, rng)
		storeCh <- groupResult{rows, err}
	}()

	cur, prev := <-curCh, <-prevCh
	prod, seller, store := <-prodCh, <-sellerCh, <-storeCh
	for _, err := range []error{cur.err, prev.err, prod.err, seller.err, store.err} {
		if err != nil {
			return nil, err
		}
	}

	out := &dto.SalesSummaryDTO{
		Period:       string(tok),
		Revenue:      toGrowthDTO(metrics.NewGrowth(cur.revenue, prev.revenue)),
		SaleCount:    toGrowthDTO(metrics.NewGrowth(decimal.NewFromInt(cur.count), decimal.NewFromInt(prev.count))),
		TopProducts:  metrics.TopGroups(prod.rows, topN),
		TopSellers:   metrics.TopGroups(seller.rows, topN),
		StoreTotals:  metrics.TopGroups(store.rows, 0),
		RevenueLabel: money.FormatXOF(cur.revenue),
	}

	if body, err := json.Marshal(out); err == nil {
		if err := uc.cache.Set(ctx, key, body); err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("no se pudo cachear el resumen")
		}
	}
	return out, nil
}

// toGrowthDTO convierte la métrica de dominio al DTO de la API.
func toGrowthDTO(g metrics.Growth) dto.GrowthDTO {
	return dto.GrowthDTO{
		Current:    g.Current,
		Previous:   g.Previous,
		Delta:      g.Delta,
		Percentage: g.Percentage,
	}
}

// summaryKey clave de caché por alcance+período. Las tiendas del alcance se
// separan con ':' para que la invalidación por tienda matchee ":<storeID>:";
// el alcance sin restricción usa "all". El dueño entra a la clave para que
// dos sellers de la misma tienda no compartan resumen.
func summaryKey(kind string, f scope.Filter, tok period.Token, topN int) string {
	scopeSeg := "all"
	if !f.Unrestricted() {
		if len(f.StoreIDs) == 0 {
			scopeSeg = "none"
		} else {
			scopeSeg = strings.Join(f.StoreIDs, ":")
		}
	}
	ownerSeg := "-"
	if f.OwnerID != "" {
		ownerSeg = f.OwnerID
	}
	return fmt.Sprintf("%s:%s:%s:%s:top%d", kind, scopeSeg, ownerSeg, tok, topN)
}

// Package finance implementa el resumen financiero (ingreso - gastos =
// utilidad, con crecimiento por rubro) y la gestión de gastos. Es terreno
// de manager y admin; la capa HTTP no expone estas rutas a sellers.
package finance

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yacouba/Boutique-api/internal/application/dto"
	"github.com/yacouba/Boutique-api/internal/application/presentation"
	"github.com/yacouba/Boutique-api/internal/application/reports"
	"github.com/yacouba/Boutique-api/internal/domain"
	"github.com/yacouba/Boutique-api/internal/domain/entity"
	"github.com/yacouba/Boutique-api/internal/domain/metrics"
	"github.com/yacouba/Boutique-api/internal/domain/period"
	"github.com/yacouba/Boutique-api/internal/domain/repository"
	"github.com/yacouba/Boutique-api/internal/domain/scope"
	"github.com/yacouba/Boutique-api/pkg/logger"
	"github.com/yacouba/Boutique-api/pkg/money"
)

// UseCase casos de uso financieros.
type UseCase struct {
	sales    repository.SaleRepository
	expenses repository.ExpenseRepository
	cache    reports.Cache
	log      *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	sales repository.SaleRepository,
	expenses repository.ExpenseRepository,
	cache reports.Cache,
	log *logger.Logger,
) *UseCase {
	return &UseCase{sales: sales, expenses: expenses, cache: cache, log: log}
}

// Summary arma el resumen financiero del período: ingreso, gastos y
// utilidad con crecimiento contra el período anterior, más el desglose de
// gastos por categoría. La utilidad se deriva siempre de las otras dos
// cifras del mismo resumen, nunca de una consulta aparte.
func (uc *UseCase) Summary(ctx context.Context, ac scope.AccessContext, tok period.Token) (*dto.FinanceSummaryDTO, error) {
	if ac.IsSeller() {
		return nil, domain.ErrForbidden
	}
	rng, err := period.Resolve(tok, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	f := ac.QueryFilter(false)

	key := financeKey(f, tok)
	if cached, err := uc.cache.Get(ctx, key); err == nil && cached != nil {
		var out dto.FinanceSummaryDTO
		if err := json.Unmarshal(cached, &out); err == nil {
			return &out, nil
		}
	}

	type moneyResult struct {
		amount decimal.Decimal
		err    error
	}
	type groupResult struct {
		rows []metrics.GroupRow
		err  error
	}

	revCurCh := make(chan moneyResult, 1)
	revPrevCh := make(chan moneyResult, 1)
	expCurCh := make(chan moneyResult, 1)
	expPrevCh := make(chan moneyResult, 1)
	catCh := make(chan groupResult, 1)

	go func() {
		rev, _, err := uc.sales.Totals(ctx, f, rng)
		revCurCh <- moneyResult{rev, err}
	}()
	go func() {
		rev, _, err := uc.sales.Totals(ctx, f, rng.Previous())
		revPrevCh <- moneyResult{rev, err}
	}()
	go func() {
		total, err := uc.expenses.Total(ctx, f, rng)
		expCurCh <- moneyResult{total, err}
	}()
	go func() {
		total, err := uc.expenses.Total(ctx, f, rng.Previous())
		expPrevCh <- moneyResult{total, err}
	}()
	go func() {
		rows, err := uc.expenses.GroupByCategory(ctx, f, rng)
		catCh <- groupResult{rows, err}
	}()

	revCur, revPrev := <-revCurCh, <-revPrevCh
	expCur, expPrev := <-expCurCh, <-expPrevCh
	cat := <-catCh
	for _, err := range []error{revCur.err, revPrev.err, expCur.err, expPrev.err, cat.err} {
		if err != nil {
			return nil, err
		}
	}

	profitCur := revCur.amount.Sub(expCur.amount)
	profitPrev := revPrev.amount.Sub(expPrev.amount)

	out := &dto.FinanceSummaryDTO{
		Period:             string(tok),
		Revenue:            toGrowthDTO(metrics.NewGrowth(revCur.amount, revPrev.amount)),
		Expenses:           toGrowthDTO(metrics.NewGrowth(expCur.amount, expPrev.amount)),
		Profit:             toGrowthDTO(metrics.NewGrowth(profitCur, profitPrev)),
		ExpensesByCategory: metrics.TopGroups(cat.rows, 0),
		ProfitLabel:        money.FormatXOF(profitCur),
	}

	if body, err := json.Marshal(out); err == nil {
		_ = uc.cache.Set(ctx, key, body)
	}
	return out, nil
}

// AddExpense registra un gasto sobre una tienda del alcance de escritura
// del usuario e invalida los resúmenes cacheados de esa tienda.
func (uc *UseCase) AddExpense(ctx context.Context, ac scope.AccessContext, req dto.AddExpenseRequest) (*dto.MessageResponse, error) {
	if req.StoreID == "" || req.Category == "" {
		return nil, domain.ErrInvalidInput
	}
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if !ac.CanWriteStore(req.StoreID) {
		return nil, domain.ErrStoreOutOfScope
	}

	date := time.Now().UTC()
	if req.Date != "" {
		d, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			d, err = time.Parse("2006-01-02", req.Date)
			if err != nil {
				return nil, domain.ErrInvalidInput
			}
		}
		date = d
	}

	expense := &entity.Expense{
		ID:        uuid.New().String(),
		StoreID:   req.StoreID,
		Category:  req.Category,
		Amount:    req.Amount,
		Notes:     req.Notes,
		Date:      date,
		CreatedBy: ac.UserID,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.expenses.Create(ctx, expense); err != nil {
		return nil, err
	}

	if err := uc.cache.InvalidateStore(ctx, req.StoreID); err != nil {
		uc.log.Warn().Err(err).Str("store_id", req.StoreID).Msg("no se pudo invalidar el caché")
	}

	uc.log.Info().
		Str("expense_id", expense.ID).
		Str("store_id", expense.StoreID).
		Str("amount", expense.Amount.String()).
		Msg("gasto registrado")

	return &dto.MessageResponse{Message: presentation.Confirmation(ac.Role, "expense_added")}, nil
}

// DeleteExpense elimina un gasto dentro del alcance de escritura.
func (uc *UseCase) DeleteExpense(ctx context.Context, ac scope.AccessContext, id string) (*dto.MessageResponse, error) {
	expense, err := uc.expenses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, domain.ErrNotFound
	}
	if !ac.CanWriteStore(expense.StoreID) {
		return nil, domain.ErrStoreOutOfScope
	}
	if err := uc.expenses.Delete(ctx, id); err != nil {
		return nil, err
	}
	if err := uc.cache.InvalidateStore(ctx, expense.StoreID); err != nil {
		uc.log.Warn().Err(err).Str("store_id", expense.StoreID).Msg("no se pudo invalidar el caché")
	}
	return &dto.MessageResponse{Message: "Dépense supprimée"}, nil
}

func toGrowthDTO(g metrics.Growth) dto.GrowthDTO {
	return dto.GrowthDTO{
		Current:    g.Current,
		Previous:   g.Previous,
		Delta:      g.Delta,
		Percentage: g.Percentage,
	}
}

// financeKey clave de caché del resumen financiero, mismo esquema de
// segmentos que los reportes de ventas para compartir la invalidación.
func financeKey(f scope.Filter, tok period.Token) string {
	return "finance:" + scopeSegment(f) + ":" + string(tok)
}

func scopeSegment(f scope.Filter) string {
	if f.Unrestricted() {
		return "all"
	}
	if len(f.StoreIDs) == 0 {
		return "none"
	}
	seg := f.StoreIDs[0]
	for _, id := range f.StoreIDs[1:] {
		seg += ":" + id
	}
	return seg
}

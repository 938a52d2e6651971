package reports

import (
	"context"
	"time"

	"github.com/yacouba/Boutique-api/internal/application/dto"
	"github.com/yacouba/Boutique-api/internal/domain"
	"github.com/yacouba/Boutique-api/internal/domain/entity"
	"github.com/yacouba/Boutique-api/internal/domain/period"
	"github.com/yacouba/Boutique-api/internal/domain/scope"
)

// ListSales lista las ventas del período dentro del alcance del usuario.
// Un seller solo ve sus propias ventas; el listado no se cachea porque
// pagina y el resumen agregado ya cubre la lectura caliente.
func (uc *UseCase) ListSales(ctx context.Context, ac scope.AccessContext, tok period.Token, page dto.PageRequest) (*dto.SaleListResponse, error) {
	rng, err := period.Resolve(tok, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	page.DefaultPage()

	sales, err := uc.sales.List(ctx, ac.QueryFilter(true), rng, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		items = append(items, toSaleResponse(s, false))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// GetSale devuelve una venta con sus líneas, validando alcance y dueño.
func (uc *UseCase) GetSale(ctx context.Context, ac scope.AccessContext, id string) (*dto.SaleResponse, error) {
	sale, err := uc.sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if !ac.CanAccessStore(sale.StoreID) {
		return nil, domain.ErrStoreOutOfScope
	}
	if ac.IsSeller() && !ac.OwnsRecord(sale.SellerID) {
		return nil, domain.ErrForbidden
	}
	resp := toSaleResponse(sale, true)
	return &resp, nil
}

func toSaleResponse(s *entity.Sale, withItems bool) dto.SaleResponse {
	resp := dto.SaleResponse{
		ID:       s.ID,
		StoreID:  s.StoreID,
		SellerID: s.SellerID,
		Status:   s.Status,
		Total:    s.Total,
		Date:     s.Date,
	}
	if withItems {
		resp.Items = make([]dto.SaleItemResponse, 0, len(s.Items))
		for _, it := range s.Items {
			resp.Items = append(resp.Items, dto.SaleItemResponse{
				ID:          it.ID,
				ProductID:   it.ProductID,
				ProductName: it.ProductName,
				SKU:         it.SKU,
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
				Subtotal:    it.Subtotal,
			})
		}
	}
	return resp
}

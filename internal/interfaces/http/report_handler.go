package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yacouba/Boutique-api/internal/application/dto"
	"github.com/yacouba/Boutique-api/internal/application/reports"
	"github.com/yacouba/Boutique-api/internal/domain/period"
)

// ReportHandler maneja los reportes de ventas y los listados de ventas.
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// SalesSummary godoc
// @Summary      Resumen de ventas del período (con crecimiento y tops)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "7days | 30days | 90days | 12months | today | week | month | quarter | year"  default(30days)
// @Param        top     query  int     false  "Tamaño del top de productos/vendedores"  default(5)
// @Success      200  {object}  dto.SalesSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse  "Período no reconocido"
// @Router       /api/reports/sales [get]
func (h *ReportHandler) SalesSummary(c *fiber.Ctx) error {
	tok := period.Token(c.Query("period", string(period.Last30Days)))
	topN := c.QueryInt("top", 5)
	out, err := h.uc.SalesSummary(c.Context(), GetAccess(c), tok, topN)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListSales godoc
// @Summary      Listar ventas del período dentro del alcance
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "Token de período"  default(30days)
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *ReportHandler) ListSales(c *fiber.Ctx) error {
	tok := period.Token(c.Query("period", string(period.Last30Days)))
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListSales(c.Context(), GetAccess(c), tok, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetSale godoc
// @Summary      Obtener venta con sus líneas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *ReportHandler) GetSale(c *fiber.Ctx) error {
	out, err := h.uc.GetSale(c.Context(), GetAccess(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

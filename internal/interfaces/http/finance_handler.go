package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yacouba/Boutique-api/internal/application/dto"
	"github.com/yacouba/Boutique-api/internal/application/finance"
	"github.com/yacouba/Boutique-api/internal/domain/period"
)

// FinanceHandler maneja el resumen financiero y los gastos.
// Las rutas van detrás de RequireRole(admin, manager).
type FinanceHandler struct {
	uc *finance.UseCase
}

// NewFinanceHandler construye el handler.
func NewFinanceHandler(uc *finance.UseCase) *FinanceHandler {
	return &FinanceHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen financiero del período (ingreso, gastos, utilidad)
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "Token de período"  default(month)
// @Success      200  {object}  dto.FinanceSummaryDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/finance/summary [get]
func (h *FinanceHandler) Summary(c *fiber.Ctx) error {
	tok := period.Token(c.Query("period", string(period.Month)))
	out, err := h.uc.Summary(c.Context(), GetAccess(c), tok)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddExpense godoc
// @Summary      Registrar gasto
// @Tags         finance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddExpenseRequest  true  "Gasto"
// @Success      201   {object}  dto.MessageResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/finance/expenses [post]
func (h *FinanceHandler) AddExpense(c *fiber.Ctx) error {
	var in dto.AddExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddExpense(c.Context(), GetAccess(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteExpense godoc
// @Summary      Eliminar gasto
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del gasto"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/finance/expenses/{id} [delete]
func (h *FinanceHandler) DeleteExpense(c *fiber.Ctx) error {
	out, err := h.uc.DeleteExpense(c.Context(), GetAccess(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

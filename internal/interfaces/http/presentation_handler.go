package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yacouba/Boutique-api/internal/application/presentation"
)

// PresentationHandler expone la configuración de interfaz del rol autenticado.
type PresentationHandler struct {
	table *presentation.Table
}

// NewPresentationHandler construye el handler.
func NewPresentationHandler(table *presentation.Table) *PresentationHandler {
	return &PresentationHandler{table: table}
}

// UIConfig godoc
// @Summary      Configuración de interfaz según el rol
// @Tags         presentation
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  presentation.Copy
// @Router       /api/ui-config [get]
func (h *PresentationHandler) UIConfig(c *fiber.Ctx) error {
	ac := GetAccess(c)
	return c.JSON(h.table.For(ac.Role))
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yacouba/Boutique-api/internal/application/dto"
	"github.com/yacouba/Boutique-api/internal/application/inventory"
)

// SessionHandler maneja las sesiones de conteo de inventario.
type SessionHandler struct {
	uc *inventory.UseCase
}

// NewSessionHandler construye el handler.
func NewSessionHandler(uc *inventory.UseCase) *SessionHandler {
	return &SessionHandler{uc: uc}
}

// Create godoc
// @Summary      Abrir sesión de inventario
// @Tags         sessions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSessionRequest  true  "Tienda a contar"
// @Success      201   {object}  dto.SessionResponse
// @Failure      409   {object}  dto.ErrorResponse  "Ya hay una sesión activa"
// @Router       /api/sessions [post]
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateSession(c.Context(), GetAccess(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener sesión con artículos y precisión
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id} [get]
func (h *SessionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetSession(c.Context(), GetAccess(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar sesiones del alcance
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "active | completed | cancelled"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.SessionListResponse
// @Router       /api/sessions [get]
func (h *SessionHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListSessions(c.Context(), GetAccess(c), c.Query("status"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateCount godoc
// @Summary      Registrar cantidad contada de un artículo
// @Tags         sessions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string  true  "ID de la sesión"
// @Param        itemId  path  string  true  "ID del artículo"
// @Param        body    body  dto.UpdateCountRequest  true  "Cantidad contada"
// @Success      200  {object}  dto.SessionResponse
// @Failure      409  {object}  dto.ErrorResponse  "Sesión no activa"
// @Router       /api/sessions/{id}/items/{itemId}/count [put]
func (h *SessionHandler) UpdateCount(c *fiber.Ctx) error {
	var in dto.UpdateCountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateCount(c.Context(), GetAccess(c), c.Params("id"), c.Params("itemId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AdjustStock godoc
// @Summary      Ajustar el stock al conteo de un artículo
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID de la sesión"
// @Param        itemId  path  string  true  "ID del artículo"
// @Success      200  {object}  dto.SessionResponse
// @Failure      422  {object}  dto.ErrorResponse  "Artículo sin contar"
// @Router       /api/sessions/{id}/items/{itemId}/adjust [post]
func (h *SessionHandler) AdjustStock(c *fiber.Ctx) error {
	out, err := h.uc.AdjustStock(c.Context(), GetAccess(c), c.Params("id"), c.Params("itemId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Complete godoc
// @Summary      Cerrar la sesión (active -> completed)
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.SessionResponse
// @Failure      409  {object}  dto.ErrorResponse  "Transición inválida"
// @Router       /api/sessions/{id}/complete [post]
func (h *SessionHandler) Complete(c *fiber.Ctx) error {
	out, err := h.uc.Complete(c.Context(), GetAccess(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Anular la sesión (active -> cancelled)
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.SessionResponse
// @Failure      409  {object}  dto.ErrorResponse  "Transición inválida"
// @Router       /api/sessions/{id}/cancel [post]
func (h *SessionHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.Context(), GetAccess(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar la sesión (csv, json o pdf)
// @Tags         sessions
// @Security     Bearer
// @Produce      octet-stream
// @Param        id      path   string  true   "ID de la sesión"
// @Param        format  query  string  false  "csv | json | pdf"  default(csv)
// @Success      200  {file}  binary
// @Router       /api/sessions/{id}/export [get]
func (h *SessionHandler) Export(c *fiber.Ctx) error {
	id := c.Params("id")
	format := c.Query("format", "csv")
	ac := GetAccess(c)

	var (
		body        []byte
		err         error
		contentType string
	)
	switch format {
	case "csv":
		body, err = h.uc.ExportCSV(c.Context(), ac, id)
		contentType = "text/csv; charset=utf-8"
	case "json":
		body, err = h.uc.ExportJSON(c.Context(), ac, id)
		contentType = "application/json; charset=utf-8"
	case "pdf":
		body, err = h.uc.ExportPDF(c.Context(), ac, id)
		contentType = "application/pdf"
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "format debe ser csv, json o pdf"})
	}
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+inventory.ExportFilename(id, format)+`"`)
	return c.Send(body)
}

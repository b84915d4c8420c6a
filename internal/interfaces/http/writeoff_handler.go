package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// WriteOffHandler maneja las peticiones HTTP de actas de baja (protegido).
type WriteOffHandler struct {
	uc *usecase.WriteOffUseCase
}

// NewWriteOffHandler construye el handler.
func NewWriteOffHandler(uc *usecase.WriteOffUseCase) *WriteOffHandler {
	return &WriteOffHandler{uc: uc}
}

// Create godoc
// @Summary      Crear acta de baja
// @Tags         writeoff-acts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWriteOffActRequest  true  "Acta completa; is_draft=true admite acta sin líneas"
// @Success      201   {object}  dto.WriteOffActResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/writeoff-acts [post]
func (h *WriteOffHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWriteOffActRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.CreatedBy == "" {
		in.CreatedBy = GetUserName(c)
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "act_number, act_date (YYYY-MM-DD) e items son requeridos"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el número de acta ya existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar actas de baja
// @Tags         writeoff-acts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.WriteOffActListResponse
// @Router       /api/v1/writeoff-acts [get]
func (h *WriteOffHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener acta por ID
// @Tags         writeoff-acts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del acta"
// @Success      200  {object}  dto.WriteOffActResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/writeoff-acts/{id} [get]
func (h *WriteOffHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "acta no encontrada"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar acta
// @Tags         writeoff-acts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del acta"
// @Success      200  {object}  dto.SuccessResponse
// @Router       /api/v1/writeoff-acts/{id} [delete]
func (h *WriteOffHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// PDF godoc
// @Summary      Descargar acta en PDF
// @Tags         writeoff-acts
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del acta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/writeoff-acts/{id}/pdf [get]
func (h *WriteOffHandler) PDF(c *fiber.Ctx) error {
	id := c.Params("id")
	doc, err := h.uc.RenderPDF(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "acta no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="acta-`+id+`.pdf"`)
	return c.Send(doc)
}

// HTML godoc
// @Summary      Versión imprimible del acta
// @Tags         writeoff-acts
// @Security     Bearer
// @Produce      html
// @Param        id  path  string  true  "ID del acta"
// @Success      200  {string}  string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/writeoff-acts/{id}/print [get]
func (h *WriteOffHandler) HTML(c *fiber.Ctx) error {
	id := c.Params("id")
	doc, err := h.uc.RenderHTML(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "acta no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(doc)
}

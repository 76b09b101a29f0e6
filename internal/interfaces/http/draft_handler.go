package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-contable/internal/application/billing"
	"github.com/jhoicas/tienda-contable/internal/application/dto"
	"github.com/jhoicas/tienda-contable/pkg/logger"
)

// DraftHandler formularios de captura y su finalización.
type DraftHandler struct {
	drafts   *billing.DraftUseCase
	finalize *billing.FinalizeInvoiceUseCase
	log      *logger.Logger
}

// NewDraftHandler construye el handler.
func NewDraftHandler(drafts *billing.DraftUseCase, finalize *billing.FinalizeInvoiceUseCase, log *logger.Logger) *DraftHandler {
	return &DraftHandler{drafts: drafts, finalize: finalize, log: log}
}

// Open godoc
// @Summary      Abrir formulario
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenDraftRequest  true  "Modo del formulario"
// @Success      201   {object}  dto.DraftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/drafts [post]
func (h *DraftHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenDraftRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.drafts.Open(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Estado del formulario
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del formulario"
// @Success      200  {object}  dto.DraftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id} [get]
func (h *DraftHandler) Get(c *fiber.Ctx) error {
	out, err := h.drafts.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Apply godoc
// @Summary      Aplicar una acción al formulario
// @Description  Los totales se recalculan después de cada acción.
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del formulario"
// @Param        body  body  dto.DraftActionRequest  true  "Acción"
// @Success      200   {object}  dto.DraftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/actions [post]
func (h *DraftHandler) Apply(c *fiber.Ctx) error {
	var in dto.DraftActionRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.drafts.Apply(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Reset POST /api/drafts/:id/reset
func (h *DraftHandler) Reset(c *fiber.Ctx) error {
	out, err := h.drafts.Reset(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Discard DELETE /api/drafts/:id
func (h *DraftHandler) Discard(c *fiber.Ctx) error {
	if err := h.drafts.Discard(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Finalize godoc
// @Summary      Finalizar formulario
// @Description  Valida, asigna ID y consecutivo y registra el documento. En error de validación el formulario queda intacto.
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del formulario"
// @Success      201  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ValidationErrorResponse
// @Router       /api/drafts/{id}/finalize [post]
func (h *DraftHandler) Finalize(c *fiber.Ctx) error {
	out, err := h.finalize.Finalize(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

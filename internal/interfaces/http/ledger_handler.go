package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-contable/internal/application/ledger"
	"github.com/jhoicas/tienda-contable/pkg/logger"
)

// LedgerHandler estado de cuenta de clientes y proveedores.
type LedgerHandler struct {
	uc  *ledger.LedgerUseCase
	log *logger.Logger
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *ledger.LedgerUseCase, log *logger.Logger) *LedgerHandler {
	return &LedgerHandler{uc: uc, log: log}
}

// Statement godoc
// @Summary      Estado de cuenta
// @Description  Líneas ordenadas por fecha con saldo acumulado. Saldo positivo: el tercero nos debe.
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        personType  path   string  true   "customer | supplier"
// @Param        personID    path   int     true   "ID del tercero"
// @Param        from        query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Success      200  {object}  dto.LedgerResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ledger/{personType}/{personID} [get]
func (h *LedgerHandler) Statement(c *fiber.Ctx) error {
	personID, ok := paramInt64(c, "personID")
	if !ok {
		return nil
	}
	from, to, ok := dateRange(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Statement(c.UserContext(), c.Params("personType"), personID, from, to)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// StatementPDF GET /api/ledger/:personType/:personID/pdf
func (h *LedgerHandler) StatementPDF(c *fiber.Ctx) error {
	personID, ok := paramInt64(c, "personID")
	if !ok {
		return nil
	}
	from, to, ok := dateRange(c)
	if !ok {
		return nil
	}
	body, filename, err := h.uc.StatementPDF(c.UserContext(), c.Params("personType"), personID, from, to)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return sendPDF(c, body, filename)
}

// DeleteEntry godoc
// @Summary      Borrar el registro de una línea
// @Description  sale, purchase, return y purchaseReturn borran el documento; payment borra el recibo/pago y revierte el saldo bancario.
// @Tags         ledger
// @Security     Bearer
// @Param        entryType  path  string  true  "Tipo de línea"
// @Param        id         path  string  true  "ID del registro"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ledger/entries/{entryType}/{id} [delete]
func (h *LedgerHandler) DeleteEntry(c *fiber.Ctx) error {
	if err := h.uc.DeleteEntry(c.UserContext(), c.Params("entryType"), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

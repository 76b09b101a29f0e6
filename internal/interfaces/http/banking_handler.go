package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-contable/internal/application/banking"
	"github.com/jhoicas/tienda-contable/internal/application/dto"
	"github.com/jhoicas/tienda-contable/pkg/logger"
)

// BankingHandler cuentas bancarias, recibos y pagos.
type BankingHandler struct {
	uc  *banking.BankingUseCase
	log *logger.Logger
}

// NewBankingHandler construye el handler.
func NewBankingHandler(uc *banking.BankingUseCase, log *logger.Logger) *BankingHandler {
	return &BankingHandler{uc: uc, log: log}
}

// CreateAccount godoc
// @Summary      Crear cuenta bancaria
// @Tags         banking
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBankAccountRequest  true  "Datos de la cuenta"
// @Success      201   {object}  dto.BankAccountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/accounts [post]
func (h *BankingHandler) CreateAccount(c *fiber.Ctx) error {
	var in dto.CreateBankAccountRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.CreateAccount(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListAccounts GET /api/accounts
func (h *BankingHandler) ListAccounts(c *fiber.Ctx) error {
	out, err := h.uc.ListAccounts(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetAccount GET /api/accounts/:id
func (h *BankingHandler) GetAccount(c *fiber.Ctx) error {
	id, ok := paramInt64(c, "id")
	if !ok {
		return nil
	}
	out, err := h.uc.GetAccount(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListTransactions GET /api/accounts/:id/transactions
func (h *BankingHandler) ListTransactions(c *fiber.Ctx) error {
	id, ok := paramInt64(c, "id")
	if !ok {
		return nil
	}
	out, err := h.uc.ListTransactions(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// CreateTransaction godoc
// @Summary      Registrar recibo o pago
// @Description  receipt suma al saldo de la cuenta; payment resta.
// @Tags         banking
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransactionRequest  true  "Movimiento"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *BankingHandler) CreateTransaction(c *fiber.Ctx) error {
	var in dto.TransactionRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.CreateTransaction(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateTransaction PUT /api/transactions/:id
func (h *BankingHandler) UpdateTransaction(c *fiber.Ctx) error {
	var in dto.TransactionRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.UpdateTransaction(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// DeleteTransaction DELETE /api/transactions/:id
func (h *BankingHandler) DeleteTransaction(c *fiber.Ctx) error {
	if err := h.uc.DeleteTransaction(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

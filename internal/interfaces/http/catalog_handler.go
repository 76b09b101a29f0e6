package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-contable/internal/application/catalog"
	"github.com/jhoicas/tienda-contable/pkg/logger"
)

// CatalogHandler listados de solo lectura para los selectores del formulario.
type CatalogHandler struct {
	uc  *catalog.CatalogUseCase
	log *logger.Logger
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.CatalogUseCase, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{uc: uc, log: log}
}

// Products GET /api/products
func (h *CatalogHandler) Products(c *fiber.Ctx) error {
	out, err := h.uc.ListProducts(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Customers GET /api/customers
func (h *CatalogHandler) Customers(c *fiber.Ctx) error {
	out, err := h.uc.ListCustomers(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Suppliers GET /api/suppliers
func (h *CatalogHandler) Suppliers(c *fiber.Ctx) error {
	out, err := h.uc.ListSuppliers(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Warehouses GET /api/warehouses
func (h *CatalogHandler) Warehouses(c *fiber.Ctx) error {
	out, err := h.uc.ListWarehouses(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

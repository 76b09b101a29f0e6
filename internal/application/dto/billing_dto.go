package dto

import "github.com/shopspring/decimal"

// DateLayout formato de fechas en la API (día calendario).
const DateLayout = "2006-01-02"

// InvoiceItemRequest línea de documento (producto, cantidad, precio unitario).
type InvoiceItemRequest struct {
	ProductID int64           `json:"product_id" validate:"gt=0"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// UpdateInvoiceRequest body para PUT /api/invoices/:id.
// Tipo, número e ID no se editan; los totales se recalculan.
type UpdateInvoiceRequest struct {
	CustomerID      int64                `json:"customer_id" validate:"gte=0"`
	SupplierID      int64                `json:"supplier_id" validate:"gte=0"`
	IssueDate       string               `json:"issue_date" validate:"omitempty,datetime=2006-01-02"`
	Items           []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
	DiscountAmount  decimal.Decimal      `json:"discount_amount"`
	DiscountPercent decimal.Decimal      `json:"discount_percent"`
	Tax             decimal.Decimal      `json:"tax"`
}

// InvoiceResponse documento con sus líneas y nombres resueltos.
type InvoiceResponse struct {
	ID              string                `json:"id"`
	Kind            string                `json:"kind"`
	InvoiceNumber   int64                 `json:"invoice_number,omitempty"`
	CustomerID      int64                 `json:"customer_id,omitempty"`
	SupplierID      int64                 `json:"supplier_id,omitempty"`
	PersonName      string                `json:"person_name"`
	IssueDate       string                `json:"issue_date"`
	Items           []InvoiceItemResponse `json:"items"`
	Subtotal        decimal.Decimal       `json:"subtotal"`
	DiscountAmount  decimal.Decimal       `json:"discount_amount"`
	DiscountPercent decimal.Decimal       `json:"discount_percent"`
	Tax             decimal.Decimal       `json:"tax"`
	GrandTotal      decimal.Decimal       `json:"grand_total"`
}

// InvoiceItemResponse línea en la respuesta.
type InvoiceItemResponse struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// InvoiceListResponse listado paginado por tipo.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

package dto

import "github.com/shopspring/decimal"

// Tipos de acción aceptados por POST /api/drafts/:id/actions.
const (
	ActionSetPerson          = "set_person"
	ActionAddItem            = "add_item"
	ActionAddEmptyRow        = "add_empty_row"
	ActionRemoveItem         = "remove_item"
	ActionUpdateItemProduct  = "update_item_product"
	ActionUpdateItemQuantity = "update_item_quantity"
	ActionUpdateItemPrice    = "update_item_price"
	ActionSetDiscountAmount  = "set_discount_amount"
	ActionSetDiscountPercent = "set_discount_percent"
	ActionSetTax             = "set_tax"
	ActionSetIssueDate       = "set_issue_date"
	ActionRecalculateTotals  = "recalculate_totals"
	ActionResetForm          = "reset_form"
)

// OpenDraftRequest body para POST /api/drafts.
// ReturnPersonType solo aplica al modo return (customer = devolución de venta, supplier = de compra).
type OpenDraftRequest struct {
	Mode             string `json:"mode" validate:"required,oneof=sale purchase return proforma"`
	ReturnPersonType string `json:"return_person_type,omitempty" validate:"omitempty,oneof=customer supplier"`
}

// DraftActionRequest una acción sobre el formulario. Los campos usados dependen de Type.
type DraftActionRequest struct {
	Type       string          `json:"type" validate:"required,oneof=set_person add_item add_empty_row remove_item update_item_product update_item_quantity update_item_price set_discount_amount set_discount_percent set_tax set_issue_date recalculate_totals reset_form"`
	RowID      string          `json:"row_id,omitempty"`
	ProductID  int64           `json:"product_id,omitempty" validate:"gte=0"`
	PersonID   int64           `json:"person_id,omitempty" validate:"gte=0"`
	PersonType string          `json:"person_type,omitempty" validate:"omitempty,oneof=customer supplier"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Value      decimal.Decimal `json:"value"`
	Date       string          `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// DraftResponse estado completo del formulario.
type DraftResponse struct {
	ID               string             `json:"id"`
	Mode             string             `json:"mode"`
	ReturnPersonType string             `json:"return_person_type,omitempty"`
	CustomerID       int64              `json:"customer_id,omitempty"`
	SupplierID       int64              `json:"supplier_id,omitempty"`
	IssueDate        string             `json:"issue_date"`
	Items            []DraftRowResponse `json:"items"`
	Subtotal         decimal.Decimal    `json:"subtotal"`
	DiscountAmount   decimal.Decimal    `json:"discount_amount"`
	DiscountPercent  decimal.Decimal    `json:"discount_percent"`
	Tax              decimal.Decimal    `json:"tax"`
	GrandTotal       decimal.Decimal    `json:"grand_total"`
}

// DraftRowResponse fila del formulario (incluye la fila vacía de captura).
type DraftRowResponse struct {
	RowID       string          `json:"row_id"`
	ProductID   int64           `json:"product_id"`
	WarehouseID int64           `json:"warehouse_id,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

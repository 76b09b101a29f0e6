package draft

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-contable/internal/domain/entity"
)

// Action transición del borrador. El conjunto de acciones es cerrado.
type Action interface {
	apply(e *Engine, s State) State
}

// SetPerson elige cliente o proveedor; el otro queda en cero siempre.
type SetPerson struct {
	ID         int64
	PersonType entity.PersonType
}

func (a SetPerson) apply(_ *Engine, s State) State {
	switch a.PersonType {
	case entity.PersonCustomer:
		s.CustomerID = a.ID
		s.SupplierID = 0
	case entity.PersonSupplier:
		s.SupplierID = a.ID
		s.CustomerID = 0
	}
	return s
}

// AddItem agrega un producto. Si ya existe y el producto no admite duplicados,
// suma 1 a la cantidad de esa fila. Si la última fila está vacía, la reemplaza.
type AddItem struct {
	Product         entity.Product
	DefaultQuantity decimal.Decimal
}

func (a AddItem) apply(e *Engine, s State) State {
	if a.Product.ID == 0 {
		return s
	}
	if !a.Product.AllowDuplicate {
		for i := range s.Items {
			if s.Items[i].ProductID == a.Product.ID {
				s.Items[i].Quantity = s.Items[i].Quantity.Add(one)
				return s
			}
		}
	}
	row := Row{
		RowID: e.newRowID(),
		InvoiceItem: entity.InvoiceItem{
			ProductID: a.Product.ID,
			Quantity:  normalizeQuantity(a.DefaultQuantity),
			UnitPrice: a.Product.RetailPrice,
		},
		WarehouseID: a.Product.WarehouseID,
	}
	if n := len(s.Items); n > 0 && s.Items[n-1].IsPlaceholder() {
		s.Items[n-1] = row
		return s
	}
	s.Items = append(s.Items, row)
	return s
}

// AddEmptyRow agrega una fila vacía al final.
type AddEmptyRow struct {
	DefaultQuantity decimal.Decimal
}

func (a AddEmptyRow) apply(e *Engine, s State) State {
	s.Items = append(s.Items, e.placeholder(a.DefaultQuantity))
	return s
}

// RemoveItem elimina una fila. Si no quedan filas deja una fila vacía con cantidad 1.
type RemoveItem struct {
	RowID string
}

func (a RemoveItem) apply(e *Engine, s State) State {
	kept := s.Items[:0]
	for _, r := range s.Items {
		if r.RowID != a.RowID {
			kept = append(kept, r)
		}
	}
	s.Items = kept
	if len(s.Items) == 0 {
		s.Items = []Row{e.placeholder(one)}
	}
	return s
}

// UpdateItemProduct cambia el producto de una fila; la cantidad no cambia.
type UpdateItemProduct struct {
	RowID   string
	Product entity.Product
}

func (a UpdateItemProduct) apply(_ *Engine, s State) State {
	if i := s.indexOf(a.RowID); i >= 0 {
		s.Items[i].ProductID = a.Product.ID
		s.Items[i].UnitPrice = a.Product.RetailPrice
		s.Items[i].WarehouseID = a.Product.WarehouseID
	}
	return s
}

// UpdateItemQuantity cambia la cantidad de una fila. Acepta cualquier valor;
// la validez se revisa al finalizar.
type UpdateItemQuantity struct {
	RowID    string
	Quantity decimal.Decimal
}

func (a UpdateItemQuantity) apply(_ *Engine, s State) State {
	if i := s.indexOf(a.RowID); i >= 0 {
		s.Items[i].Quantity = a.Quantity
	}
	return s
}

// UpdateItemPrice sobrescribe el precio unitario de una fila.
type UpdateItemPrice struct {
	RowID     string
	UnitPrice decimal.Decimal
}

func (a UpdateItemPrice) apply(_ *Engine, s State) State {
	if i := s.indexOf(a.RowID); i >= 0 {
		s.Items[i].UnitPrice = a.UnitPrice
	}
	return s
}

// SetDiscountAmount fija el descuento en valor y anula el porcentaje.
type SetDiscountAmount struct {
	Value decimal.Decimal
}

func (a SetDiscountAmount) apply(_ *Engine, s State) State {
	s.DiscountAmount = a.Value
	s.DiscountPercent = decimal.Zero
	return s
}

// SetDiscountPercent fija el descuento en porcentaje y anula el valor.
type SetDiscountPercent struct {
	Value decimal.Decimal
}

func (a SetDiscountPercent) apply(_ *Engine, s State) State {
	s.DiscountPercent = a.Value
	s.DiscountAmount = decimal.Zero
	return s
}

// SetTax fija el porcentaje de impuesto.
type SetTax struct {
	Value decimal.Decimal
}

func (a SetTax) apply(_ *Engine, s State) State {
	s.Tax = a.Value
	return s
}

// SetIssueDate fija la fecha de emisión.
type SetIssueDate struct {
	Date time.Time
}

func (a SetIssueDate) apply(_ *Engine, s State) State {
	if !a.Date.IsZero() {
		s.IssueDate = CalendarDay(a.Date)
	}
	return s
}

// RecalculateTotals recalcula subtotal y total. Reduce ya lo hace tras cada acción;
// se mantiene como acción explícita e idempotente.
type RecalculateTotals struct{}

func (RecalculateTotals) apply(_ *Engine, s State) State { return s }

// ResetForm vuelve al estado inicial.
type ResetForm struct {
	DefaultQuantity decimal.Decimal
}

func (a ResetForm) apply(e *Engine, _ State) State {
	return e.Initial(a.DefaultQuantity)
}

func (s State) indexOf(rowID string) int {
	for i := range s.Items {
		if s.Items[i].RowID == rowID {
			return i
		}
	}
	return -1
}

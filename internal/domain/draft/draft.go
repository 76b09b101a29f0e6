// Package draft implementa el motor de borradores de factura: un reductor puro
// (estado + acción -> estado) que mantiene las líneas, el descuento, el impuesto
// y los totales del documento que se está digitando.
//
// Cada acción que modifica el estado recalcula los totales al terminar; no hace
// falta despachar RecalculateTotals después de otra acción.
package draft

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-contable/internal/domain/entity"
)

// Mode tipo de documento para el que se creó el motor.
type Mode string

const (
	ModeSale     Mode = "sale"
	ModePurchase Mode = "purchase"
	ModeReturn   Mode = "return"
	ModeProforma Mode = "proforma"
)

// Valid indica si el modo es uno de los conocidos.
func (m Mode) Valid() bool {
	switch m {
	case ModeSale, ModePurchase, ModeReturn, ModeProforma:
		return true
	}
	return false
}

// Row línea del borrador: el ítem persistible más metadatos de la pantalla.
// RowID y WarehouseID nunca se persisten (Finalize los descarta).
type Row struct {
	RowID string
	entity.InvoiceItem
	WarehouseID int64
}

// IsPlaceholder indica si la fila es una fila vacía (sin producto).
func (r Row) IsPlaceholder() bool {
	return r.ProductID == 0
}

// State borrador en edición. Siempre tiene al menos una fila.
type State struct {
	CustomerID      int64
	SupplierID      int64
	Items           []Row
	IssueDate       time.Time
	Subtotal        decimal.Decimal
	DiscountAmount  decimal.Decimal
	DiscountPercent decimal.Decimal
	Tax             decimal.Decimal
	GrandTotal      decimal.Decimal
}

// PersonSelected indica si hay cliente o proveedor elegido.
func (s State) PersonSelected() bool {
	return s.CustomerID != 0 || s.SupplierID != 0
}

// InvoiceItems devuelve las líneas sin los campos de pantalla.
func (s State) InvoiceItems() []entity.InvoiceItem {
	items := make([]entity.InvoiceItem, len(s.Items))
	for i, r := range s.Items {
		items[i] = r.InvoiceItem
	}
	return items
}

func (s State) clone() State {
	out := s
	out.Items = make([]Row, len(s.Items))
	copy(out.Items, s.Items)
	return out
}

// Engine reductor de borradores para un modo dado.
type Engine struct {
	mode     Mode
	newRowID func() string
	now      func() time.Time
}

// Option configura el motor.
type Option func(*Engine)

// WithRowIDGenerator reemplaza el generador de RowID (por defecto UUID v4).
func WithRowIDGenerator(fn func() string) Option {
	return func(e *Engine) { e.newRowID = fn }
}

// WithClock reemplaza el reloj usado para la fecha de emisión.
func WithClock(fn func() time.Time) Option {
	return func(e *Engine) { e.now = fn }
}

// NewEngine construye un motor para el modo indicado.
func NewEngine(mode Mode, opts ...Option) *Engine {
	e := &Engine{
		mode:     mode,
		newRowID: uuid.NewString,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Mode devuelve el modo del motor.
func (e *Engine) Mode() Mode { return e.mode }

// Initial estado inicial: sin tercero, una fila vacía, fecha de hoy, totales en cero.
func (e *Engine) Initial(defaultQuantity decimal.Decimal) State {
	return State{
		Items:     []Row{e.placeholder(defaultQuantity)},
		IssueDate: CalendarDay(e.now()),
	}
}

// CalendarDay fecha de emisión: el día calendario de t (en su zona) a medianoche UTC,
// igual que las fechas AAAA-MM-DD que llegan por la API.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Reduce aplica la acción sobre una copia del estado y recalcula los totales.
// El estado de entrada no se modifica.
func (e *Engine) Reduce(s State, a Action) State {
	if a == nil {
		return s
	}
	next := a.apply(e, s.clone())
	return recalculate(next)
}

func (e *Engine) placeholder(quantity decimal.Decimal) Row {
	return Row{
		RowID:       e.newRowID(),
		InvoiceItem: entity.InvoiceItem{Quantity: normalizeQuantity(quantity)},
	}
}

var one = decimal.NewFromInt(1)

// normalizeQuantity usa 1 cuando la cantidad por defecto no es positiva.
func normalizeQuantity(q decimal.Decimal) decimal.Decimal {
	if !q.IsPositive() {
		return one
	}
	return q
}

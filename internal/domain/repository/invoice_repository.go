package repository

import "github.com/jhoicas/tienda-contable/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para los documentos (cabecera + ítems).
// Un mismo repositorio cubre ventas, compras, devoluciones y proformas: Kind separa las colecciones.
type InvoiceRepository interface {
	// Create persiste cabecera e ítems. El ID y el consecutivo ya vienen asignados.
	Create(invoice *entity.Invoice) error
	// Update reemplaza ítems, totales, tercero y fecha. ID, Kind y número no cambian.
	Update(invoice *entity.Invoice) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(id string) (*entity.Invoice, error)
	ListByKind(kind entity.InvoiceKind, limit, offset int) ([]entity.Invoice, error)
	// ListByPerson documentos de un tipo emitidos a un cliente o proveedor.
	ListByPerson(kind entity.InvoiceKind, personType entity.PersonType, personID int64) ([]entity.Invoice, error)
	// MaxNumber mayor consecutivo usado en la colección (0 si está vacía).
	// Dentro de una transacción bloquea la numeración de ese tipo hasta el commit.
	MaxNumber(kind entity.InvoiceKind) (int64, error)
	// Delete devuelve domain.ErrNotFound si no existe.
	Delete(id string) error
}

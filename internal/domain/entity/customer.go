package entity

import "time"

// PersonType distingue clientes de proveedores.
type PersonType string

const (
	PersonCustomer PersonType = "customer"
	PersonSupplier PersonType = "supplier"
)

// Valid indica si el tipo es cliente o proveedor.
func (p PersonType) Valid() bool {
	return p == PersonCustomer || p == PersonSupplier
}

// Customer representa un cliente.
type Customer struct {
	ID        int64
	Name      string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Supplier representa un proveedor.
type Supplier struct {
	ID        int64
	Name      string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

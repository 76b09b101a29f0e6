package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-contable/internal/domain/entity"
	"github.com/jhoicas/tienda-contable/internal/domain/repository"
)

var (
	_ repository.Catalog       = (*CatalogRepo)(nil)
	_ repository.CatalogWriter = (*CatalogRepo)(nil)
)

// CatalogRepo productos, terceros, bodegas y stock.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

const productColumns = `id, sku, name, retail_price, warehouse_id, allow_duplicate, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var warehouseID *int64
	if err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.RetailPrice, &warehouseID, &p.AllowDuplicate, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.WarehouseID = derefInt(warehouseID)
	return &p, nil
}

// ProductByID nil, nil si no existe.
func (r *CatalogRepo) ProductByID(id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(context.Background(), `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// CustomerByID nil, nil si no existe.
func (r *CatalogRepo) CustomerByID(id int64) (*entity.Customer, error) {
	var c entity.Customer
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, phone, email, created_at, updated_at FROM customers WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// SupplierByID nil, nil si no existe.
func (r *CatalogRepo) SupplierByID(id int64) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, phone, email, created_at, updated_at FROM suppliers WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.Phone, &s.Email, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// StockOf cantidad disponible; cero si no hay registro.
func (r *CatalogRepo) StockOf(productID, warehouseID int64) (decimal.Decimal, error) {
	var qty decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT quantity FROM stock WHERE product_id = $1 AND warehouse_id = $2`, productID, warehouseID,
	).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("get stock: %w", err)
	}
	return qty, nil
}

// ListProducts por nombre.
func (r *CatalogRepo) ListProducts() ([]entity.Product, error) {
	rows, err := r.q.Query(context.Background(), `SELECT `+productColumns+` FROM products ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	out := []entity.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// ListCustomers por nombre.
func (r *CatalogRepo) ListCustomers() ([]entity.Customer, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, phone, email, created_at, updated_at FROM customers ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	out := []entity.Customer{}
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListSuppliers por nombre.
func (r *CatalogRepo) ListSuppliers() ([]entity.Supplier, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, phone, email, created_at, updated_at FROM suppliers ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	out := []entity.Supplier{}
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Phone, &s.Email, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListWarehouses por ID.
func (r *CatalogRepo) ListWarehouses() ([]entity.Warehouse, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, address, created_at, updated_at FROM warehouses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	out := []entity.Warehouse{}
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.Name, &w.Address, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// ── Escritura (seed) ──────────────────────────────────────────────────────────
// Con ID cero la base asigna uno nuevo; con ID dado se inserta o actualiza esa fila.

// UpsertProduct inserta o actualiza por ID.
func (r *CatalogRepo) UpsertProduct(p *entity.Product) error {
	ctx := context.Background()
	args := []any{p.SKU, p.Name, p.RetailPrice, nullIfZero(p.WarehouseID), p.AllowDuplicate}
	if p.ID == 0 {
		err := r.q.QueryRow(ctx, `
			INSERT INTO products (sku, name, retail_price, warehouse_id, allow_duplicate)
			VALUES ($1, $2, $3, $4, $5) RETURNING id`, args...).Scan(&p.ID)
		if err != nil {
			return fmt.Errorf("insert product: %w", err)
		}
		return nil
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (id, sku, name, retail_price, warehouse_id, allow_duplicate)
		VALUES ($6, $1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET sku = EXCLUDED.sku, name = EXCLUDED.name, retail_price = EXCLUDED.retail_price,
		    warehouse_id = EXCLUDED.warehouse_id, allow_duplicate = EXCLUDED.allow_duplicate,
		    updated_at = now()`, append(args, p.ID)...)
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}
	return r.bumpSequence(ctx, "products")
}

// UpsertCustomer inserta o actualiza por ID.
func (r *CatalogRepo) UpsertCustomer(c *entity.Customer) error {
	return r.upsertPerson("customers", &c.ID, c.Name, c.Phone, c.Email)
}

// UpsertSupplier inserta o actualiza por ID.
func (r *CatalogRepo) UpsertSupplier(s *entity.Supplier) error {
	return r.upsertPerson("suppliers", &s.ID, s.Name, s.Phone, s.Email)
}

func (r *CatalogRepo) upsertPerson(table string, id *int64, name, phone, email string) error {
	ctx := context.Background()
	if *id == 0 {
		err := r.q.QueryRow(ctx,
			`INSERT INTO `+table+` (name, phone, email) VALUES ($1, $2, $3) RETURNING id`,
			name, phone, email).Scan(id)
		if err != nil {
			return fmt.Errorf("insert %s: %w", table, err)
		}
		return nil
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO `+table+` (id, name, phone, email) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, phone = EXCLUDED.phone, email = EXCLUDED.email, updated_at = now()`,
		*id, name, phone, email)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", table, err)
	}
	return r.bumpSequence(ctx, table)
}

// UpsertWarehouse inserta o actualiza por ID.
func (r *CatalogRepo) UpsertWarehouse(w *entity.Warehouse) error {
	ctx := context.Background()
	if w.ID == 0 {
		err := r.q.QueryRow(ctx,
			`INSERT INTO warehouses (name, address) VALUES ($1, $2) RETURNING id`, w.Name, w.Address,
		).Scan(&w.ID)
		if err != nil {
			return fmt.Errorf("insert warehouse: %w", err)
		}
		return nil
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO warehouses (id, name, address) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, address = EXCLUDED.address, updated_at = now()`,
		w.ID, w.Name, w.Address)
	if err != nil {
		return fmt.Errorf("upsert warehouse: %w", err)
	}
	return r.bumpSequence(ctx, "warehouses")
}

// UpsertStock fija la cantidad de un producto en una bodega.
func (r *CatalogRepo) UpsertStock(s *entity.Stock) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO stock (product_id, warehouse_id, quantity) VALUES ($1, $2, $3)
		ON CONFLICT (product_id, warehouse_id) DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`,
		s.ProductID, s.WarehouseID, s.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// bumpSequence deja la secuencia del BIGSERIAL por encima del mayor ID insertado a mano.
func (r *CatalogRepo) bumpSequence(ctx context.Context, table string) error {
	_, err := r.q.Exec(ctx, fmt.Sprintf(
		`SELECT setval(pg_get_serial_sequence('%s', 'id'), GREATEST((SELECT MAX(id) FROM %s), 1))`, table, table))
	if err != nil {
		return fmt.Errorf("sequence %s: %w", table, err)
	}
	return nil
}

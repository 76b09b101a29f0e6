package postgres

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-contable/internal/domain"
	"github.com/jhoicas/tienda-contable/internal/domain/entity"
	"github.com/jhoicas/tienda-contable/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, kind, invoice_number, customer_id, supplier_id, issue_date,
		subtotal, discount_amount, discount_percent, tax, grand_total, created_at, updated_at`

// Create persiste la cabecera y sus líneas.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	ctx := context.Background()
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		invoice.ID, invoice.Kind, invoice.InvoiceNumber,
		nullIfZero(invoice.CustomerID), nullIfZero(invoice.SupplierID), invoice.IssueDate,
		invoice.Subtotal, invoice.DiscountAmount, invoice.DiscountPercent, invoice.Tax, invoice.GrandTotal,
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: consecutivo %d ya usado en %s", domain.ErrConflict, invoice.InvoiceNumber, invoice.Kind)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return r.insertItems(ctx, invoice.ID, invoice.Items)
}

func (r *InvoiceRepo) insertItems(ctx context.Context, invoiceID string, items []entity.InvoiceItem) error {
	for i, it := range items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO invoice_items (invoice_id, line_no, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)`,
			invoiceID, i+1, it.ProductID, it.Quantity, it.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("insert invoice item: %w", err)
		}
	}
	return nil
}

// Update reemplaza cabecera editable y líneas. Kind y número no se tocan.
func (r *InvoiceRepo) Update(invoice *entity.Invoice) error {
	ctx := context.Background()
	tag, err := r.q.Exec(ctx, `
		UPDATE invoices
		SET customer_id      = $2,
		    supplier_id      = $3,
		    issue_date       = $4,
		    subtotal         = $5,
		    discount_amount  = $6,
		    discount_percent = $7,
		    tax              = $8,
		    grand_total      = $9,
		    updated_at       = $10
		WHERE id = $1`,
		invoice.ID, nullIfZero(invoice.CustomerID), nullIfZero(invoice.SupplierID), invoice.IssueDate,
		invoice.Subtotal, invoice.DiscountAmount, invoice.DiscountPercent, invoice.Tax, invoice.GrandTotal,
		invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, invoice.ID); err != nil {
		return fmt.Errorf("delete invoice items: %w", err)
	}
	return r.insertItems(ctx, invoice.ID, invoice.Items)
}

// GetByID obtiene un documento completo por ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	ctx := context.Background()
	row := r.q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	items, err := r.items(ctx, []string{inv.ID})
	if err != nil {
		return nil, err
	}
	inv.Items = items[inv.ID]
	return inv, nil
}

// ListByKind documentos de un tipo, más recientes primero.
func (r *InvoiceRepo) ListByKind(kind entity.InvoiceKind, limit, offset int) ([]entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE kind = $1
		ORDER BY issue_date DESC, created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, kind, limit, offset)
}

// ListByPerson documentos de un tipo de un tercero, en orden cronológico.
func (r *InvoiceRepo) ListByPerson(kind entity.InvoiceKind, personType entity.PersonType, personID int64) ([]entity.Invoice, error) {
	column := "customer_id"
	if personType == entity.PersonSupplier {
		column = "supplier_id"
	}
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE kind = $1 AND ` + column + ` = $2
		ORDER BY issue_date, created_at`
	return r.list(query, kind, personID)
}

// MaxNumber toma un advisory lock por tipo (liberado al commit) y devuelve el mayor consecutivo.
// Dos finalizaciones concurrentes del mismo tipo quedan serializadas.
func (r *InvoiceRepo) MaxNumber(kind entity.InvoiceKind) (int64, error) {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, numberingLockKey(kind)); err != nil {
		return 0, fmt.Errorf("lock numeración: %w", err)
	}
	var max int64
	err := r.q.QueryRow(ctx, `SELECT COALESCE(MAX(invoice_number), 0) FROM invoices WHERE kind = $1`, kind).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max invoice number: %w", err)
	}
	return max, nil
}

// Delete borra el documento (las líneas caen por ON DELETE CASCADE).
func (r *InvoiceRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InvoiceRepo) list(query string, args ...any) ([]entity.Invoice, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	out := []entity.Invoice{}
	var ids []string
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		out = append(out, *inv)
		ids = append(ids, inv.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()
	if len(ids) == 0 {
		return out, nil
	}

	items, err := r.items(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Items = items[out[i].ID]
	}
	return out, nil
}

func (r *InvoiceRepo) items(ctx context.Context, invoiceIDs []string) (map[string][]entity.InvoiceItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT invoice_id, product_id, quantity, unit_price
		FROM invoice_items WHERE invoice_id = ANY($1::uuid[])
		ORDER BY invoice_id, line_no`, invoiceIDs)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.InvoiceItem, len(invoiceIDs))
	for rows.Next() {
		var invoiceID string
		var it entity.InvoiceItem
		if err := rows.Scan(&invoiceID, &it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		out[invoiceID] = append(out[invoiceID], it)
	}
	return out, rows.Err()
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var customerID, supplierID *int64
	err := row.Scan(
		&inv.ID, &inv.Kind, &inv.InvoiceNumber, &customerID, &supplierID, &inv.IssueDate,
		&inv.Subtotal, &inv.DiscountAmount, &inv.DiscountPercent, &inv.Tax, &inv.GrandTotal,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.CustomerID = derefInt(customerID)
	inv.SupplierID = derefInt(supplierID)
	return &inv, nil
}

// numberingLockKey clave estable del advisory lock de numeración por tipo.
func numberingLockKey(kind entity.InvoiceKind) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("invoice_number:" + string(kind)))
	return int64(h.Sum64())
}

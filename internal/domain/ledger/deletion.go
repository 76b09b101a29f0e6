package ledger

import (
	"fmt"

	"github.com/jhoicas/tienda-contable/internal/domain"
	"github.com/jhoicas/tienda-contable/internal/domain/entity"
)

// Collection colección real donde vive el registro detrás de una línea.
// El estado de cuenta no tiene tabla propia: borrar una línea es borrar su origen.
type Collection string

const (
	CollectionSales           Collection = "sales"
	CollectionPurchases       Collection = "purchases"
	CollectionSalesReturns    Collection = "salesReturns"
	CollectionPurchaseReturns Collection = "purchaseReturns"
	CollectionTransactions    Collection = "transactions"
)

// DeletionTarget colección a la que se despacha el borrado de una línea.
func DeletionTarget(t EntryType) (Collection, error) {
	switch t {
	case EntrySale:
		return CollectionSales, nil
	case EntryPurchase:
		return CollectionPurchases, nil
	case EntryReturn:
		return CollectionSalesReturns, nil
	case EntryPurchaseReturn:
		return CollectionPurchaseReturns, nil
	case EntryPayment:
		return CollectionTransactions, nil
	}
	return "", fmt.Errorf("%w: tipo de línea %q", domain.ErrInvalidInput, t)
}

// InvoiceKind tipo de documento de la colección (false para transacciones).
func (c Collection) InvoiceKind() (entity.InvoiceKind, bool) {
	switch c {
	case CollectionSales:
		return entity.KindSale, true
	case CollectionPurchases:
		return entity.KindPurchase, true
	case CollectionSalesReturns:
		return entity.KindSalesReturn, true
	case CollectionPurchaseReturns:
		return entity.KindPurchaseReturn, true
	}
	return "", false
}

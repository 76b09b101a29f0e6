package ledger

import (
	"context"

	"github.com/jhoicas/tienda-contable/internal/domain/ledger"
)

// StatementPDFGenerator genera el estado de cuenta impreso.
type StatementPDFGenerator interface {
	GenerateStatementPDF(ctx context.Context, st ledger.Statement, w ledger.Window) ([]byte, error)
}

// TransactionDeleter borra un recibo/pago revirtiendo su efecto en la cuenta bancaria.
type TransactionDeleter interface {
	DeleteTransaction(ctx context.Context, id string) error
}

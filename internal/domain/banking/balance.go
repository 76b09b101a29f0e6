// Package banking calcula los ajustes de saldo que una transacción produce sobre
// las cuentas bancarias. El saldo almacenado es la suma de los efectos de las
// transacciones vivas; los ajustes se aplican en la misma unidad de trabajo
// que persiste (o borra) la transacción.
package banking

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-contable/internal/domain/entity"
)

// Adjustment variación a sumar al saldo de una cuenta.
type Adjustment struct {
	AccountID int64
	Delta     decimal.Decimal
}

// Delta efecto de una transacción: recibo suma, pago resta.
func Delta(t entity.TransactionType, amount decimal.Decimal) decimal.Decimal {
	if t == entity.TransactionReceipt {
		return amount
	}
	return amount.Neg()
}

// AddAdjustments ajustes al registrar una transacción nueva.
func AddAdjustments(tx entity.Transaction) []Adjustment {
	return compact([]Adjustment{{AccountID: tx.AccountID, Delta: Delta(tx.Type, tx.Amount)}})
}

// EditAdjustments ajustes al reemplazar old por updated.
// Misma cuenta: se aplica la diferencia. Cuenta distinta: se revierte old en su
// cuenta y se aplica updated en la nueva.
func EditAdjustments(old, updated entity.Transaction) []Adjustment {
	oldDelta := Delta(old.Type, old.Amount)
	newDelta := Delta(updated.Type, updated.Amount)
	if old.AccountID == updated.AccountID {
		return compact([]Adjustment{{AccountID: updated.AccountID, Delta: newDelta.Sub(oldDelta)}})
	}
	return compact([]Adjustment{
		{AccountID: old.AccountID, Delta: oldDelta.Neg()},
		{AccountID: updated.AccountID, Delta: newDelta},
	})
}

// DeleteAdjustments ajustes al borrar una transacción.
func DeleteAdjustments(tx entity.Transaction) []Adjustment {
	return compact([]Adjustment{{AccountID: tx.AccountID, Delta: Delta(tx.Type, tx.Amount).Neg()}})
}

func compact(adjs []Adjustment) []Adjustment {
	out := adjs[:0]
	for _, a := range adjs {
		if a.AccountID != 0 && !a.Delta.IsZero() {
			out = append(out, a)
		}
	}
	return out
}

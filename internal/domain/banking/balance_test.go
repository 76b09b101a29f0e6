package banking_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-contable/internal/domain/banking"
	"github.com/jhoicas/tienda-contable/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// applyAll suma a la cuenta los ajustes que le corresponden.
func applyAll(acc entity.BankAccount, adjs []banking.Adjustment) entity.BankAccount {
	for _, a := range adjs {
		if a.AccountID == acc.ID {
			acc.Balance = acc.Balance.Add(a.Delta)
		}
	}
	return acc
}

func TestBalanceLifecycle(t *testing.T) {
	acc := entity.BankAccount{ID: 1, Balance: decimal.Zero}

	tx := entity.Transaction{ID: "t", AccountID: 1, Type: entity.TransactionReceipt, Amount: dec("500")}
	acc = applyAll(acc, banking.AddAdjustments(tx))
	assert.True(t, acc.Balance.Equal(dec("500")))

	edited := tx
	edited.Amount = dec("300")
	adjs := banking.EditAdjustments(tx, edited)
	require.Len(t, adjs, 1)
	assert.True(t, adjs[0].Delta.Equal(dec("-200")))
	acc = applyAll(acc, adjs)
	assert.True(t, acc.Balance.Equal(dec("300")))

	acc = applyAll(acc, banking.DeleteAdjustments(edited))
	assert.True(t, acc.Balance.IsZero())
}

func TestPaymentSubtracts(t *testing.T) {
	adjs := banking.AddAdjustments(entity.Transaction{AccountID: 3, Type: entity.TransactionPayment, Amount: dec("120.50")})

	require.Len(t, adjs, 1)
	assert.True(t, adjs[0].Delta.Equal(dec("-120.50")))
}

func TestEditAdjustments_TypeFlip(t *testing.T) {
	old := entity.Transaction{AccountID: 1, Type: entity.TransactionReceipt, Amount: dec("100")}
	updated := entity.Transaction{AccountID: 1, Type: entity.TransactionPayment, Amount: dec("100")}

	adjs := banking.EditAdjustments(old, updated)

	require.Len(t, adjs, 1)
	assert.True(t, adjs[0].Delta.Equal(dec("-200")))
}

func TestEditAdjustments_MoveBetweenAccounts(t *testing.T) {
	old := entity.Transaction{AccountID: 1, Type: entity.TransactionReceipt, Amount: dec("500")}
	updated := entity.Transaction{AccountID: 2, Type: entity.TransactionReceipt, Amount: dec("500")}

	adjs := banking.EditAdjustments(old, updated)

	require.Len(t, adjs, 2)
	a := applyAll(entity.BankAccount{ID: 1, Balance: dec("500")}, adjs)
	b := applyAll(entity.BankAccount{ID: 2, Balance: decimal.Zero}, adjs)
	assert.True(t, a.Balance.IsZero())
	assert.True(t, b.Balance.Equal(dec("500")))
}

func TestEditAdjustments_NoChange(t *testing.T) {
	tx := entity.Transaction{AccountID: 1, Type: entity.TransactionReceipt, Amount: dec("10")}

	assert.Empty(t, banking.EditAdjustments(tx, tx))
}

package main

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-contable/internal/application/dto"
)

func TestPrintStatement(t *testing.T) {
	var buf bytes.Buffer
	printStatement(&buf, &dto.LedgerResponse{
		PersonType: "customer", PersonID: 1, PersonName: "Ana",
		From: "2024-01-02", Opening: decimal.NewFromInt(1000),
		Entries: []dto.LedgerEntryResponse{{
			Date: "2024-01-05", Description: "Recibo de caja",
			Debit: decimal.Zero, Credit: decimal.NewFromInt(400), Balance: decimal.NewFromInt(600),
		}},
		TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(400), Balance: decimal.NewFromInt(600),
	})
	out := buf.String()
	assert.Contains(t, out, "customer #1  Ana")
	assert.Contains(t, out, "Saldo anterior")
	assert.Contains(t, out, "Recibo de caja")
	assert.Contains(t, out, "Saldo: 600.00")
}

func TestDateFlag(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("from", "", "")

	d, err := dateFlag(cmd, "from")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	require.NoError(t, cmd.Flags().Set("from", "2024-02-29"))
	d, err = dateFlag(cmd, "from")
	require.NoError(t, err)
	assert.Equal(t, 29, d.Day())

	require.NoError(t, cmd.Flags().Set("from", "29/02/2024"))
	_, err = dateFlag(cmd, "from")
	assert.Error(t, err)
}

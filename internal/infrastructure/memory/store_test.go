package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-contable/internal/domain"
	"github.com/jhoicas/tienda-contable/internal/domain/draft"
	"github.com/jhoicas/tienda-contable/internal/domain/entity"
	"github.com/jhoicas/tienda-contable/internal/domain/repository"
	"github.com/jhoicas/tienda-contable/internal/infrastructure/memory"
)

func TestRun_RollbackOnError(t *testing.T) {
	s := memory.NewStore()
	acc := &entity.BankAccount{BankName: "Banco", AccountNumber: "1"}
	require.NoError(t, s.Accounts().Create(acc))

	boom := errors.New("boom")
	err := s.Run(context.Background(), func(r repository.Repos) error {
		require.NoError(t, r.Transactions.Create(&entity.Transaction{ID: "t1", AccountID: acc.ID, Amount: decimal.NewFromInt(5)}))
		require.NoError(t, r.Accounts.UpdateBalance(acc.ID, decimal.NewFromInt(5)))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, _ := s.Accounts().GetByID(acc.ID)
	assert.True(t, got.Balance.IsZero(), "el saldo no debe quedar con cambios parciales")
	tx, _ := s.Transactions().GetByID("t1")
	assert.Nil(t, tx)
}

func TestRun_RollbackConservaEscriturasExternas(t *testing.T) {
	s := memory.NewStore()
	acc := &entity.BankAccount{BankName: "Banco", AccountNumber: "9"}
	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		<-started
		done <- s.Accounts().Create(acc)
	}()

	boom := errors.New("boom")
	err := s.Run(context.Background(), func(r repository.Repos) error {
		require.NoError(t, r.Transactions.Create(&entity.Transaction{ID: "t1", AccountID: 1, Amount: decimal.NewFromInt(5)}))
		close(started)
		select {
		case <-done:
			t.Error("una escritura fuera de Run no debe entrar mientras la unidad está abierta")
		case <-time.After(20 * time.Millisecond):
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.NoError(t, <-done)

	got, err := s.Accounts().GetByID(acc.ID)
	require.NoError(t, err)
	require.NotNil(t, got, "la cuenta creada aparte sobrevive al rollback")
	tx, _ := s.Transactions().GetByID("t1")
	assert.Nil(t, tx)
}

func TestRun_Commit(t *testing.T) {
	s := memory.NewStore()
	err := s.Run(context.Background(), func(r repository.Repos) error {
		return r.Invoices.Create(&entity.Invoice{ID: "a", Kind: entity.KindSale, InvoiceNumber: 1})
	})
	require.NoError(t, err)

	max, err := s.Invoices().MaxNumber(entity.KindSale)
	require.NoError(t, err)
	assert.Equal(t, int64(1), max)
}

func TestInvoiceRepo_NumberConflict(t *testing.T) {
	s := memory.NewStore()
	repo := s.Invoices()
	require.NoError(t, repo.Create(&entity.Invoice{ID: "a", Kind: entity.KindSale, InvoiceNumber: 1}))
	require.NoError(t, repo.Create(&entity.Invoice{ID: "b", Kind: entity.KindPurchase, InvoiceNumber: 1}))

	err := repo.Create(&entity.Invoice{ID: "c", Kind: entity.KindSale, InvoiceNumber: 1})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestInvoiceRepo_ReturnsCopies(t *testing.T) {
	s := memory.NewStore()
	repo := s.Invoices()
	inv := &entity.Invoice{ID: "a", Kind: entity.KindProforma, Items: []entity.InvoiceItem{{ProductID: 1, Quantity: decimal.NewFromInt(1)}}}
	require.NoError(t, repo.Create(inv))

	inv.Items[0].ProductID = 99
	got, err := repo.GetByID("a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Items[0].ProductID)
}

func TestInvoiceRepo_DeleteMissing(t *testing.T) {
	s := memory.NewStore()
	assert.ErrorIs(t, s.Invoices().Delete("nope"), domain.ErrNotFound)
}

func TestAccountRepo_UpdateBalanceMissing(t *testing.T) {
	s := memory.NewStore()
	assert.ErrorIs(t, s.Accounts().UpdateBalance(42, decimal.NewFromInt(1)), domain.ErrNotFound)
}

func TestCatalogRepo_StockDefaultsToZero(t *testing.T) {
	s := memory.NewStore()
	q, err := s.Catalog().StockOf(1, 1)
	require.NoError(t, err)
	assert.True(t, q.IsZero())

	p, err := s.Catalog().ProductByID(1)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestDraftStore_Expires(t *testing.T) {
	ds := memory.NewDraftStore(time.Millisecond)
	ctx := context.Background()
	require.NoError(t, ds.Save(ctx, &draft.Session{ID: "x", Mode: draft.ModeSale}))

	time.Sleep(5 * time.Millisecond)

	_, err := ds.Get(ctx, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDraftStore_RoundTrip(t *testing.T) {
	ds := memory.NewDraftStore(time.Hour)
	ctx := context.Background()
	e := draft.NewEngine(draft.ModeSale)
	sess := &draft.Session{ID: "x", Mode: draft.ModeSale, State: e.Initial(decimal.NewFromInt(2))}
	require.NoError(t, ds.Save(ctx, sess))

	got, err := ds.Get(ctx, "x")
	require.NoError(t, err)
	require.Len(t, got.State.Items, 1)
	assert.True(t, got.State.Items[0].Quantity.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, sess.State.Items[0].RowID, got.State.Items[0].RowID)

	require.NoError(t, ds.Delete(ctx, "x"))
	_, err = ds.Get(ctx, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDraftStore_TakeConcurrente(t *testing.T) {
	ds := memory.NewDraftStore(time.Hour)
	ctx := context.Background()
	require.NoError(t, ds.Save(ctx, &draft.Session{ID: "x", Mode: draft.ModeSale}))

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		taken int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := ds.Take(ctx, "x"); err == nil {
				mu.Lock()
				taken++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, taken)
	_, err := ds.Get(ctx, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

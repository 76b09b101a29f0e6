package redisstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-contable/internal/domain"
	"github.com/jhoicas/tienda-contable/internal/domain/draft"
	"github.com/jhoicas/tienda-contable/internal/domain/entity"
	"github.com/jhoicas/tienda-contable/internal/infrastructure/redisstore"
)

func newStore(t *testing.T, ttl time.Duration) (*redisstore.DraftStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redisstore.NewDraftStore(client, ttl), mr
}

func TestDraftStore_SaveAndGet(t *testing.T) {
	store, _ := newStore(t, time.Hour)
	ctx := context.Background()

	e := draft.NewEngine(draft.ModeSale)
	s := e.Reduce(e.Initial(decimal.NewFromInt(1)), draft.AddItem{
		Product:         entity.Product{ID: 3, Name: "Café", RetailPrice: decimal.NewFromInt(1200), WarehouseID: 1},
		DefaultQuantity: decimal.NewFromInt(2),
	})
	sess := &draft.Session{ID: "d1", Mode: draft.ModeSale, State: s}
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, draft.ModeSale, got.Mode)
	require.Len(t, got.State.Items, 1)
	assert.Equal(t, int64(3), got.State.Items[0].ProductID)
	assert.Equal(t, int64(1), got.State.Items[0].WarehouseID)
	assert.True(t, got.State.GrandTotal.Equal(decimal.NewFromInt(2400)))
}

func TestDraftStore_Expiry(t *testing.T) {
	store, mr := newStore(t, time.Minute)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, &draft.Session{ID: "d1", Mode: draft.ModeProforma}))

	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "d1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDraftStore_Delete(t *testing.T) {
	store, mr := newStore(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, &draft.Session{ID: "d1", Mode: draft.ModeSale}))
	assert.True(t, mr.Exists("tienda:draft:d1"))

	require.NoError(t, store.Delete(ctx, "d1"))
	assert.False(t, mr.Exists("tienda:draft:d1"))
	require.NoError(t, store.Delete(ctx, "d1"), "borrar dos veces no es error")
}

func TestDraftStore_Missing(t *testing.T) {
	store, _ := newStore(t, time.Hour)
	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDraftStore_TakeEntregaUnaSolaVez(t *testing.T) {
	store, mr := newStore(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, &draft.Session{ID: "d1", Mode: draft.ModeSale}))

	got, err := store.Take(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "d1", got.ID)
	assert.False(t, mr.Exists("tienda:draft:d1"))

	_, err = store.Take(ctx, "d1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

package catalogapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, productsStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		if productsStatus != http.StatusOK {
			w.WriteHeader(productsStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products":[
			{"id":1,"title":"Café molido","sku":"CAF-1","brand":"Sello Rojo","price":12.5,"stock":40},
			{"id":2,"title":"Azúcar","sku":"AZU-1","brand":"Manuelita","price":4,"stock":0},
			{"id":3,"title":"Café en grano","sku":"CAF-2","brand":"Sello Rojo","price":20,"stock":5},
			{"id":4,"title":"Bolsa","sku":"BOL-1","price":0.5,"stock":100}
		],"total":4}`))
	})
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"users":[
			{"id":7,"firstName":"Ana","lastName":"Pérez","email":"ana@example.com","phone":"300"}
		]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch_ConvierteCatalogo(t *testing.T) {
	srv := newServer(t, http.StatusOK)

	snap, err := NewClient(srv.URL+"/", nil).Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.Warehouses, 1)
	assert.Equal(t, MainWarehouseID, snap.Warehouses[0].ID)

	require.Len(t, snap.Products, 4)
	assert.Equal(t, "Café molido", snap.Products[0].Name)
	assert.True(t, decimal.RequireFromString("12.5").Equal(snap.Products[0].RetailPrice))
	assert.Equal(t, MainWarehouseID, snap.Products[0].WarehouseID)

	require.Len(t, snap.Stock, 4)
	assert.True(t, decimal.NewFromInt(40).Equal(snap.Stock[0].Quantity))

	require.Len(t, snap.Customers, 1)
	assert.Equal(t, int64(7), snap.Customers[0].ID)
	assert.Equal(t, "Ana Pérez", snap.Customers[0].Name)

	// marcas distintas, ordenadas, sin vacías
	require.Len(t, snap.Suppliers, 2)
	assert.Equal(t, "Manuelita", snap.Suppliers[0].Name)
	assert.Zero(t, snap.Suppliers[0].ID)
	assert.Equal(t, "Sello Rojo", snap.Suppliers[1].Name)
}

func TestFetch_ErrorHTTP(t *testing.T) {
	srv := newServer(t, http.StatusInternalServerError)

	_, err := NewClient(srv.URL, nil).Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestFetch_Cancelado(t *testing.T) {
	srv := newServer(t, http.StatusOK)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL, nil).Fetch(ctx)
	assert.Error(t, err)
}

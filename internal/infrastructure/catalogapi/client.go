// Package catalogapi trae un catálogo de prueba desde una API REST estilo dummyjson
// (/products y /users) para poblar la base con `tienda seed`.
package catalogapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/tienda-contable/internal/application/catalog"
	"github.com/jhoicas/tienda-contable/internal/domain/entity"
)

var _ catalog.Source = (*Client)(nil)

// MainWarehouseID bodega a la que se asigna todo el stock importado.
const MainWarehouseID int64 = 1

const maxBody = 8 << 20

// Client adaptador HTTP de la fuente del catálogo.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el adaptador. httpClient nil usa uno con timeout de 20 s.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// ── Estructuras del protocolo ────────────────────────────────────────────────

type productsResponse struct {
	Products []remoteProduct `json:"products"`
}

type remoteProduct struct {
	ID    int64           `json:"id"`
	Title string          `json:"title"`
	SKU   string          `json:"sku"`
	Brand string          `json:"brand"`
	Price decimal.Decimal `json:"price"`
	Stock decimal.Decimal `json:"stock"`
}

type usersResponse struct {
	Users []remoteUser `json:"users"`
}

type remoteUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// Fetch pide productos y usuarios en paralelo y los convierte al catálogo local:
// usuarios -> clientes, marcas distintas -> proveedores, stock -> bodega principal.
func (c *Client) Fetch(ctx context.Context) (*catalog.Snapshot, error) {
	var products productsResponse
	var users usersResponse

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.getJSON(gctx, "/products?limit=0", &products) })
	g.Go(func() error { return c.getJSON(gctx, "/users?limit=0", &users) })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return toSnapshot(products.Products, users.Users), nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("catalogapi: crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("catalogapi: timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("catalogapi: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("catalogapi: leer respuesta: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalogapi: GET %s: HTTP %d", path, resp.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("catalogapi: decodificar %s: %w", path, err)
	}
	return nil
}

func toSnapshot(products []remoteProduct, users []remoteUser) *catalog.Snapshot {
	snap := &catalog.Snapshot{
		Warehouses: []entity.Warehouse{{ID: MainWarehouseID, Name: "Bodega principal"}},
	}

	for _, p := range products {
		snap.Products = append(snap.Products, entity.Product{
			ID:          p.ID,
			SKU:         p.SKU,
			Name:        p.Title,
			RetailPrice: p.Price,
			WarehouseID: MainWarehouseID,
		})
		snap.Stock = append(snap.Stock, entity.Stock{
			ProductID:   p.ID,
			WarehouseID: MainWarehouseID,
			Quantity:    p.Stock,
		})
	}

	for _, u := range users {
		snap.Customers = append(snap.Customers, entity.Customer{
			ID:    u.ID,
			Name:  strings.TrimSpace(u.FirstName + " " + u.LastName),
			Email: u.Email,
			Phone: u.Phone,
		})
	}

	brands := map[string]struct{}{}
	for _, p := range products {
		if b := strings.TrimSpace(p.Brand); b != "" {
			brands[b] = struct{}{}
		}
	}
	names := make([]string, 0, len(brands))
	for b := range brands {
		names = append(names, b)
	}
	sort.Strings(names)
	// sin ID: el seed los empata por nombre con los ya guardados
	for _, name := range names {
		snap.Suppliers = append(snap.Suppliers, entity.Supplier{Name: name})
	}
	return snap
}

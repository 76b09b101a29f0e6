// Package bootstrap arma los adaptadores de persistencia según la configuración.
// Lo comparten el servidor HTTP y la CLI.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/tienda-contable/internal/domain/repository"
	"github.com/jhoicas/tienda-contable/internal/infrastructure/memory"
	"github.com/jhoicas/tienda-contable/internal/infrastructure/postgres"
	"github.com/jhoicas/tienda-contable/internal/infrastructure/redisstore"
	"github.com/jhoicas/tienda-contable/pkg/config"
	"github.com/jhoicas/tienda-contable/pkg/logger"
)

// Backend repositorios y runner de transacciones ya conectados.
type Backend struct {
	Invoices      repository.InvoiceRepository
	Transactions  repository.TransactionRepository
	Accounts      repository.BankAccountRepository
	Catalog       repository.Catalog
	CatalogWriter repository.CatalogWriter
	TxRunner      repository.TxRunner
	Drafts        repository.DraftStore

	closers []func()
}

// Close libera conexiones en orden inverso.
func (b *Backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

// Open conecta STORAGE_DRIVER (postgres | memory) y el almacén de borradores
// (Redis si REDIS_ADDR está definido, si no memoria del proceso).
// Con postgres aplica las migraciones embebidas si migrate es true.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger, migrate bool) (*Backend, error) {
	b := &Backend{}

	switch cfg.Storage.Driver {
	case "memory":
		store := memory.NewStore()
		b.Invoices = store.Invoices()
		b.Transactions = store.Transactions()
		b.Accounts = store.Accounts()
		b.Catalog = store.Catalog()
		b.CatalogWriter = store.Catalog()
		b.TxRunner = store
		log.Warn().Msg("STORAGE_DRIVER=memory: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		b.closers = append(b.closers, pool.Close)
		if migrate {
			applied, err := postgres.Migrate(ctx, pool)
			if err != nil {
				b.Close()
				return nil, err
			}
			log.Info().Strs("files", applied).Msg("migraciones aplicadas")
		}
		catalogRepo := postgres.NewCatalogRepository(pool)
		b.Invoices = postgres.NewInvoiceRepository(pool)
		b.Transactions = postgres.NewTransactionRepository(pool)
		b.Accounts = postgres.NewBankAccountRepository(pool)
		b.Catalog = catalogRepo
		b.CatalogWriter = catalogRepo
		b.TxRunner = postgres.NewTxRunner(pool)
	}

	ttl := time.Duration(cfg.Billing.DraftTTLMinutes) * time.Minute
	if cfg.Redis.Addr == "" {
		b.Drafts = memory.NewDraftStore(ttl)
		return b, nil
	}
	client, err := redisstore.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("conexión a Redis: %w", err)
	}
	b.closers = append(b.closers, func() { _ = client.Close() })
	b.Drafts = redisstore.NewDraftStore(client, ttl)
	return b, nil
}

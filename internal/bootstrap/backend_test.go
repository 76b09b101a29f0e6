package bootstrap

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-contable/internal/application/dto"
	"github.com/jhoicas/tienda-contable/internal/infrastructure/memory"
	"github.com/jhoicas/tienda-contable/internal/infrastructure/redisstore"
	"github.com/jhoicas/tienda-contable/pkg/config"
	"github.com/jhoicas/tienda-contable/pkg/logger"
)

func memoryConfig() *config.Config {
	return &config.Config{
		App:     config.AppConfig{Name: "tienda-test"},
		Storage: config.StorageConfig{Driver: "memory"},
		Billing: config.BillingConfig{CheckStock: true, DefaultQuantity: 1, DraftTTLMinutes: 30},
	}
}

func TestOpen_MemoriaSinRedis(t *testing.T) {
	b, err := Open(context.Background(), memoryConfig(), logger.Nop(), false)
	require.NoError(t, err)
	defer b.Close()

	_, isMemory := b.Drafts.(*memory.DraftStore)
	assert.True(t, isMemory)
	assert.NotNil(t, b.TxRunner)
	assert.NotNil(t, b.CatalogWriter)
}

func TestOpen_BorradoresEnRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := memoryConfig()
	cfg.Redis.Addr = mr.Addr()

	b, err := Open(context.Background(), cfg, logger.Nop(), false)
	require.NoError(t, err)
	defer b.Close()

	_, isRedis := b.Drafts.(*redisstore.DraftStore)
	assert.True(t, isRedis)

	svc := NewServices(b, cfg, logger.Nop())
	d, err := svc.Drafts.Open(context.Background(), dto.OpenDraftRequest{Mode: "proforma"})
	require.NoError(t, err)
	assert.True(t, mr.Exists("tienda:draft:"+d.ID))
}

func TestOpen_RedisCaido(t *testing.T) {
	cfg := memoryConfig()
	cfg.Redis.Addr = "127.0.0.1:1"

	_, err := Open(context.Background(), cfg, logger.Nop(), false)
	assert.Error(t, err)
}

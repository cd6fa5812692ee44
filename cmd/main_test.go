package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"inventory-service/app/domain"
	"inventory-service/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductStore_Memory(t *testing.T) {
	ctx := context.Background()
	repo, closeStore, err := newProductStore(ctx, &config.Config{StoreDriver: config.StoreDriverMemory})
	require.NoError(t, err)
	defer closeStore()

	require.NoError(t, repo.Create(ctx, &domain.Product{Sku: "A", Name: "Apple"}))
	assert.NoError(t, repo.Ping(ctx))
}

func TestNewProductStore_UnreachablePostgres(t *testing.T) {
	cfg := &config.Config{
		StoreDriver: config.StoreDriverPostgres,
		Db: config.DbConfig{
			Host:     "127.0.0.1",
			Port:     "1",
			Username: "inventory",
			Password: "secret",
			DbName:   "inventory",
			SSLMode:  "disable",
		},
	}

	repo, closeStore, err := newProductStore(context.Background(), cfg)
	assert.Error(t, err)
	assert.Nil(t, repo)
	assert.Nil(t, closeStore)
}

func TestNewStockNotifier_WithoutBroker(t *testing.T) {
	notifier, natsConn, err := newStockNotifier(context.Background(), config.NatsConfig{StreamName: "inventory"})
	require.NoError(t, err)
	assert.Nil(t, natsConn)
	assert.NoError(t, notifier.PublishStockChange(context.Background(), domain.StockMessage{}))
}

func TestNewStockNotifier_UnreachableBroker(t *testing.T) {
	notifier, natsConn, err := newStockNotifier(context.Background(), config.NatsConfig{
		Url:            "nats://127.0.0.1:1",
		StreamName:     "inventory",
		PublishTimeout: time.Second,
	})
	assert.Error(t, err)
	assert.Nil(t, notifier)
	assert.Nil(t, natsConn)
}

func TestRun_InvalidConfigReturnsError(t *testing.T) {
	for _, key := range []string{"PORT", "DB_HOST", "DB_PORT", "DB_USERNAME", "DB_PASSWORD", "DB_DBNAME", "NATS_URL", "JWT_SECRETKEY"} {
		t.Setenv(key, "")
	}
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("STORE_DRIVER", "mongo")

	err := run(context.Background())
	assert.ErrorContains(t, err, "init config")
}

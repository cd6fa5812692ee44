package db

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"testing"

	"inventory-service/app/domain"
	"inventory-service/config"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore connects to the Postgres named by the DB_* variables and
// skips the test when DB_HOST is unset.
func newTestStore(t *testing.T) (domain.ProductRepository, *sql.DB) {
	t.Helper()
	if os.Getenv("DB_HOST") == "" {
		t.Skip("DB_HOST not set, skipping Postgres store tests")
	}

	cfg := config.DbConfig{
		Host:     os.Getenv("DB_HOST"),
		Port:     envOr("DB_PORT", "5432"),
		Username: envOr("DB_USERNAME", "postgres"),
		Password: envOr("DB_PASSWORD", "postgres"),
		DbName:   envOr("DB_DBNAME", "postgres"),
		SSLMode:  envOr("DB_SSLMODE", "disable"),
	}
	conn, err := NewPostgres(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, Migrate(context.Background(), conn))
	return NewProductRepository(conn), conn
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// createProduct inserts a product under a random SKU and removes it when the test ends.
func createProduct(t *testing.T, repo domain.ProductRepository, conn *sql.DB, stock int64) domain.Product {
	t.Helper()
	product := &domain.Product{
		Sku:           "TEST-" + uuid.Must(uuid.NewV4()).String(),
		Name:          "Widget",
		StockQuantity: stock,
		Price:         5,
	}
	require.NoError(t, repo.Create(context.Background(), product))
	t.Cleanup(func() {
		conn.Exec(`DELETE FROM products WHERE id = $1`, product.ID)
	})
	return *product
}

func sell(ctx context.Context, repo domain.ProductRepository, sku string, quantity int64) (domain.Product, error) {
	var updated domain.Product
	err := repo.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		product, err := repo.LockBySku(ctx, sku, tx)
		if err != nil {
			return err
		}
		updated, err = repo.DecrementStock(ctx, product.ID, quantity, tx)
		return err
	})
	return updated, err
}

func TestProductRepository_CreateAndFind(t *testing.T) {
	repo, conn := newTestStore(t)
	ctx := context.Background()

	product := createProduct(t, repo, conn, 10)
	assert.NotZero(t, product.ID)
	assert.False(t, product.CreatedAt.IsZero())

	found, err := repo.GetBySku(ctx, product.Sku)
	require.NoError(t, err)
	assert.Equal(t, product.ID, found.ID)
	assert.Equal(t, int64(10), found.StockQuantity)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	var ids []int64
	for _, p := range all {
		ids = append(ids, p.ID)
	}
	assert.Contains(t, ids, product.ID)

	err = repo.Create(ctx, &domain.Product{Sku: product.Sku, Name: "Duplicate"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = repo.GetBySku(ctx, "TEST-missing-"+product.Sku)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductRepository_DecrementStock(t *testing.T) {
	repo, conn := newTestStore(t)
	ctx := context.Background()
	product := createProduct(t, repo, conn, 10)

	updated, err := sell(ctx, repo, product.Sku, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(7), updated.StockQuantity)

	_, err = sell(ctx, repo, product.Sku, 8)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	stored, err := repo.GetBySku(ctx, product.Sku)
	require.NoError(t, err)
	assert.Equal(t, int64(7), stored.StockQuantity)
}

func TestProductRepository_RollbackOnError(t *testing.T) {
	repo, conn := newTestStore(t)
	ctx := context.Background()
	product := createProduct(t, repo, conn, 5)

	boom := errors.New("boom")
	err := repo.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := repo.DecrementStock(ctx, product.ID, 2, tx); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	stored, err := repo.GetBySku(ctx, product.Sku)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stored.StockQuantity)
}

func TestProductRepository_ConcurrentSalesNeverOversell(t *testing.T) {
	repo, conn := newTestStore(t)
	ctx := context.Background()
	product := createProduct(t, repo, conn, 10)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		sold     int64
		rejected int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := sell(ctx, repo, product.Sku, 3)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				sold += 3
			case errors.Is(err, domain.ErrInsufficientStock):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(9), sold)
	assert.Equal(t, 5, rejected)

	stored, err := repo.GetBySku(ctx, product.Sku)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.StockQuantity)
}

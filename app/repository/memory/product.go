// Package memory keeps products in process memory. It backs STORE_DRIVER=memory
// and the service tests; it has the same transaction semantics as the
// Postgres store, with one transaction running at a time.
package memory

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"inventory-service/app/domain"
)

type productRepository struct {
	// txMu serialises transactions, mu guards the maps.
	txMu sync.Mutex
	mu   sync.RWMutex

	nextID int64
	byID   map[int64]domain.Product
	bySku  map[string]int64
	now    func() time.Time
}

func NewProductRepository() domain.ProductRepository {
	return &productRepository{
		byID:  make(map[int64]domain.Product),
		bySku: make(map[string]int64),
		now:   time.Now,
	}
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bySku[product.Sku]; ok {
		return fmt.Errorf("%w: sku %s already exists", domain.ErrConflict, product.Sku)
	}

	r.nextID++
	now := r.now().UTC()
	product.ID = r.nextID
	product.CreatedAt = now
	product.UpdatedAt = now

	r.byID[product.ID] = *product
	r.bySku[product.Sku] = product.ID
	return nil
}

func (r *productRepository) GetAll(ctx context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]domain.Product, 0, len(r.byID))
	for _, p := range r.byID {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (r *productRepository) GetBySku(ctx context.Context, sku string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.bySku[sku]
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: %s", domain.ErrProductNotFound, sku)
	}
	return r.byID[id], nil
}

// LockBySku relies on the caller holding the transaction opened by WithTransaction.
func (r *productRepository) LockBySku(ctx context.Context, sku string, _ *sql.Tx) (domain.Product, error) {
	return r.GetBySku(ctx, sku)
}

func (r *productRepository) DecrementStock(ctx context.Context, id, quantity int64, _ *sql.Tx) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.byID[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: id %d", domain.ErrProductNotFound, id)
	}
	if product.StockQuantity < quantity {
		return domain.Product{}, fmt.Errorf("%w: product %d", domain.ErrInsufficientStock, id)
	}

	product.StockQuantity -= quantity
	product.UpdatedAt = r.now().UTC()
	r.byID[id] = product
	return product, nil
}

func (r *productRepository) Ping(ctx context.Context) error {
	return nil
}

// WithTransaction has no rollback: the only write in a sale is its last step.
func (r *productRepository) WithTransaction(ctx context.Context, fn func(context.Context, *sql.Tx) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, nil)
}

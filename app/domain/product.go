package domain

import (
	"context"
	"database/sql"
	"time"
)

type Product struct {
	ID            int64     `json:"id"`
	Sku           string    `json:"sku"`
	Name          string    `json:"name"`
	StockQuantity int64     `json:"stockQuantity"`
	Price         float64   `json:"price"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type ProductCreateRequest struct {
	Name          string   `json:"name" validate:"required,notblank"`
	Sku           string   `json:"sku" validate:"required,notblank"`
	StockQuantity *int64   `json:"stockQuantity" validate:"required,min=0"`
	Price         *float64 `json:"price" validate:"required,min=0"`
}

type SaleRequest struct {
	Sku          string `json:"sku" validate:"required,notblank"`
	QuantitySold int64  `json:"quantitySold" validate:"min=1"`
}

type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	GetAll(ctx context.Context) ([]Product, error)
	GetBySku(ctx context.Context, sku string) (Product, error)
	LockBySku(ctx context.Context, sku string, tx *sql.Tx) (Product, error)
	DecrementStock(ctx context.Context, id, quantity int64, tx *sql.Tx) (Product, error)
	Ping(ctx context.Context) error

	WithTransaction(ctx context.Context, fn func(context.Context, *sql.Tx) error) error
}

type ProductService interface {
	AddProduct(ctx context.Context, req ProductCreateRequest) (*Product, error)
	FindAllProducts(ctx context.Context) ([]Product, error)
	FindBySku(ctx context.Context, sku string) (Product, error)
	RecordSale(ctx context.Context, req SaleRequest) (Product, error)
}

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"inventory-service/app/domain"
	"inventory-service/pkg"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

const productColumns = `id, sku, name, stock_quantity, price, created_at, updated_at`

type productRepository struct {
	conn *sql.DB
}

func NewProductRepository(db *sql.DB) domain.ProductRepository {
	return &productRepository{db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var product domain.Product
	err := row.Scan(&product.ID, &product.Sku, &product.Name, &product.StockQuantity,
		&product.Price, &product.CreatedAt, &product.UpdatedAt)
	return product, err
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `INSERT INTO products (sku, name, stock_quantity, price)
	VALUES ($1, $2, $3, $4)
	RETURNING id, created_at, updated_at`

	err := r.conn.QueryRowContext(ctx, query, product.Sku, product.Name, product.StockQuantity, product.Price).
		Scan(
			&product.ID,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
	if err != nil {
		slog.ErrorContext(ctx, "[productRepository] Create", "queryRowContext", err)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: sku %s already exists", domain.ErrConflict, product.Sku)
		}
		return err
	}
	return nil
}

func (r *productRepository) GetAll(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`

	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		slog.ErrorContext(ctx, "[productRepository] GetAll", "queryContext", err)
		return nil, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			slog.ErrorContext(ctx, "[productRepository] GetAll", "scan", err)
			return nil, err
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		slog.ErrorContext(ctx, "[productRepository] GetAll", "rowError", err)
		return nil, err
	}

	return products, nil
}

func (r *productRepository) GetBySku(ctx context.Context, sku string) (domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`

	product, err := scanProduct(r.conn.QueryRowContext(ctx, query, sku))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return product, fmt.Errorf("%w: %s", domain.ErrProductNotFound, sku)
		}
		slog.ErrorContext(ctx, "[productRepository] GetBySku", "queryRowContext", err)
		return product, err
	}

	return product, nil
}

func (r *productRepository) LockBySku(ctx context.Context, sku string, tx *sql.Tx) (domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1 FOR UPDATE`

	product, err := scanProduct(tx.QueryRowContext(ctx, query, sku))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return product, fmt.Errorf("%w: %s", domain.ErrProductNotFound, sku)
		}
		slog.ErrorContext(ctx, "[productRepository] LockBySku", "queryRowContext", err)
		return product, err
	}

	return product, nil
}

// DecrementStock only touches the row while enough stock remains, so it can never go negative.
func (r *productRepository) DecrementStock(ctx context.Context, id, quantity int64, tx *sql.Tx) (domain.Product, error) {
	query := `UPDATE products
	SET stock_quantity = stock_quantity - $1, updated_at = NOW()
	WHERE id = $2 AND stock_quantity >= $1
	RETURNING ` + productColumns

	product, err := scanProduct(tx.QueryRowContext(ctx, query, quantity, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return product, fmt.Errorf("%w: product %d", domain.ErrInsufficientStock, id)
		}
		slog.ErrorContext(ctx, "[productRepository] DecrementStock", "queryRowContext", err)
		return product, err
	}

	return product, nil
}

func (r *productRepository) Ping(ctx context.Context) error {
	return r.conn.PingContext(ctx)
}

func (r *productRepository) WithTransaction(ctx context.Context, fn func(context.Context, *sql.Tx) error) error {
	if err := pkg.RunInTx(ctx, r.conn, fn); err != nil {
		slog.ErrorContext(ctx, "[productRepository] WithTransaction", "runInTx", err)
		return err
	}
	return nil
}

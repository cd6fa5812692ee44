package usecase

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"inventory-service/app/domain"
)

type productUsecase struct {
	productRepo   domain.ProductRepository
	stockNotifier domain.StockNotifier
	now           func() time.Time
}

func NewProductUsecase(productRepo domain.ProductRepository, stockNotifier domain.StockNotifier) domain.ProductService {
	return &productUsecase{productRepo, stockNotifier, time.Now}
}

func (u *productUsecase) AddProduct(ctx context.Context, req domain.ProductCreateRequest) (*domain.Product, error) {
	if req.StockQuantity == nil || req.Price == nil {
		return nil, fmt.Errorf("%w: stockQuantity and price are required", domain.ErrValidation)
	}

	product := &domain.Product{
		Sku:           req.Sku,
		Name:          req.Name,
		StockQuantity: *req.StockQuantity,
		Price:         *req.Price,
	}

	if err := u.productRepo.Create(ctx, product); err != nil {
		slog.ErrorContext(ctx, "[productUsecase] AddProduct", "createProduct", err)
		return nil, err
	}

	slog.InfoContext(ctx, "[productUsecase] AddProduct", "id", product.ID, "sku", product.Sku)
	return product, nil
}

func (u *productUsecase) FindAllProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := u.productRepo.GetAll(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "[productUsecase] FindAllProducts", "getAll", err)
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func (u *productUsecase) FindBySku(ctx context.Context, sku string) (domain.Product, error) {
	product, err := u.productRepo.GetBySku(ctx, sku)
	if err != nil {
		slog.WarnContext(ctx, "[productUsecase] FindBySku", "getBySku", err)
		return domain.Product{}, err
	}
	return product, nil
}

// RecordSale checks and decrements stock under a row lock, then announces the new
// state once the transaction has committed.
func (u *productUsecase) RecordSale(ctx context.Context, req domain.SaleRequest) (domain.Product, error) {
	if req.QuantitySold < 1 {
		return domain.Product{}, fmt.Errorf("%w: quantitySold must be at least 1", domain.ErrValidation)
	}

	var updated domain.Product
	if err := u.productRepo.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		product, err := u.productRepo.LockBySku(ctx, req.Sku, tx)
		if err != nil {
			slog.WarnContext(ctx, "[productUsecase] RecordSale", "lockBySku", err)
			return err
		}

		if product.StockQuantity < req.QuantitySold {
			slog.WarnContext(ctx, "[productUsecase] RecordSale", "insufficientStock", product.StockQuantity, "requested", req.QuantitySold)
			return &domain.InsufficientStockError{Sku: product.Sku, Available: product.StockQuantity}
		}

		updated, err = u.productRepo.DecrementStock(ctx, product.ID, req.QuantitySold, tx)
		if err != nil {
			slog.ErrorContext(ctx, "[productUsecase] RecordSale", "decrementStock", err)
			return err
		}
		return nil
	}); err != nil {
		return domain.Product{}, err
	}

	err := u.stockNotifier.PublishStockChange(ctx, domain.StockMessage{
		Product:      updated,
		QuantitySold: req.QuantitySold,
		SoldAt:       u.now().UTC(),
	})
	if err != nil {
		slog.WarnContext(ctx, "[productUsecase] RecordSale", "publishStockChange", err)
	}

	slog.InfoContext(ctx, "[productUsecase] RecordSale", "sku", updated.Sku, "stockQuantity", updated.StockQuantity)
	return updated, nil
}

package domain

import (
	"context"
	"time"
)

// StockMessage is the payload broadcast after a sale is committed.
type StockMessage struct {
	Product      Product   `json:"product"`
	QuantitySold int64     `json:"quantitySold"`
	SoldAt       time.Time `json:"soldAt"`
}

type StockNotifier interface {
	PublishStockChange(ctx context.Context, data StockMessage) error
}

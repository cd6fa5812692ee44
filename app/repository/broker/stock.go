package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"inventory-service/app/domain"

	"github.com/nats-io/nats.go/jetstream"
)

// Publisher is the part of jetstream.JetStream the notifier needs.
type Publisher interface {
	Publish(ctx context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

type stockBroker struct {
	js      Publisher
	subject string
	timeout time.Duration
}

func NewStockNotifier(js Publisher, subject string, timeout time.Duration) domain.StockNotifier {
	return &stockBroker{
		js:      js,
		subject: subject,
		timeout: timeout,
	}
}

func (s *stockBroker) PublishStockChange(ctx context.Context, data domain.StockMessage) error {
	msg, err := json.Marshal(data)
	if err != nil {
		slog.ErrorContext(ctx, "[stockBroker] PublishStockChange", "json.Marshal", err)
		return fmt.Errorf("marshal stock message: %w", err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	ack, err := s.js.Publish(ctx, s.subject, msg)
	if err != nil {
		slog.ErrorContext(ctx, "[stockBroker] PublishStockChange", "Publish", err)
		return err
	}

	slog.InfoContext(ctx, "[stockBroker] PublishStockChange",
		"subject", s.subject, "sku", data.Product.Sku, "stream", ack.Stream, "seq", ack.Sequence)
	return nil
}

type logNotifier struct{}

// NewLogNotifier is used when no broker is configured; stock changes are only logged.
func NewLogNotifier() domain.StockNotifier {
	return logNotifier{}
}

func (logNotifier) PublishStockChange(ctx context.Context, data domain.StockMessage) error {
	slog.InfoContext(ctx, "[logNotifier] PublishStockChange",
		"sku", data.Product.Sku,
		"stockQuantity", data.Product.StockQuantity,
		"quantitySold", data.QuantitySold)
	return nil
}

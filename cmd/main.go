package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inventory-service/app/domain"
	handler "inventory-service/app/handler/api"
	"inventory-service/app/middleware"
	"inventory-service/app/repository/broker"
	"inventory-service/app/repository/db"
	"inventory-service/app/repository/memory"
	"inventory-service/app/usecase"
	"inventory-service/config"
	"inventory-service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	slogfiber "github.com/samber/slog-fiber"
)

func main() {
	// init logger
	logger.InitLogger()

	if err := run(context.Background()); err != nil {
		slog.Error("inventory-service stopped", "error", err)
		os.Exit(1)
	}
}

// run returns instead of exiting so deferred cleanups always run.
func run(ctx context.Context) error {
	// init config
	cfg, err := config.InitConfig(ctx)
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	productRepo, closeStore, err := newProductStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	stockNotifier, natsConn, err := newStockNotifier(ctx, cfg.Nats)
	if err != nil {
		return err
	}
	if natsConn != nil {
		defer natsConn.Drain()
	}

	reqValidator := handler.NewValidator()
	productUsecase := usecase.NewProductUsecase(productRepo, stockNotifier)
	productHandler := handler.NewProductHandler(productUsecase, reqValidator)

	// Initialize HTTP web framework
	app := fiber.New()
	app.Use(healthcheck.New(healthcheck.Config{
		LivenessProbe: func(c *fiber.Ctx) bool {
			return true
		},
		LivenessEndpoint: "/live",
		ReadinessProbe: func(c *fiber.Ctx) bool {
			pingCtx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := productRepo.Ping(pingCtx); err != nil {
				slog.WarnContext(pingCtx, "[readiness] store ping failed", "error", err)
				return false
			}
			return natsConn == nil || natsConn.IsConnected()
		},
		ReadinessEndpoint: "/ready",
	}))
	app.Use(recover.New())
	app.Use(middleware.RequestIDMiddleware())
	webLogger := logger.New(os.Stdout, slog.LevelInfo)
	app.Use(slogfiber.New(webLogger))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	handler.SetupRouter(app, productHandler, cfg)

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		return fmt.Errorf("listen on port %s: %w", cfg.Port, err)
	case <-quit:
	}

	slog.Info("Gracefully shutdown")
	if err := app.Shutdown(); err != nil {
		slog.Warn("Unfortunately the shutdown wasn't smooth", "err", err)
	}
	return nil
}

// newProductStore opens the store picked by STORE_DRIVER. The returned func releases it.
func newProductStore(ctx context.Context, cfg *config.Config) (domain.ProductRepository, func(), error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		slog.WarnContext(ctx, "using in-memory product store, data is lost on restart")
		return memory.NewProductRepository(), func() {}, nil
	}

	dbConn, err := db.NewPostgres(cfg.Db)
	if err != nil {
		return nil, nil, fmt.Errorf("DB connection failed: %w", err)
	}
	if err := db.Migrate(ctx, dbConn); err != nil {
		dbConn.Close()
		return nil, nil, fmt.Errorf("DB migration failed: %w", err)
	}
	return db.NewProductRepository(dbConn), func() { dbConn.Close() }, nil
}

// newStockNotifier publishes to JetStream when NATS_URL is set and only logs otherwise.
// The connection is nil in the latter case.
func newStockNotifier(ctx context.Context, cfg config.NatsConfig) (domain.StockNotifier, *nats.Conn, error) {
	if cfg.Url == "" {
		slog.WarnContext(ctx, "NATS_URL not set, stock changes will only be logged")
		return broker.NewLogNotifier(), nil, nil
	}

	natsConn, err := nats.Connect(cfg.Url)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to NATS: %w", err)
	}

	js, err := jetstream.New(natsConn)
	if err != nil {
		natsConn.Close()
		return nil, nil, fmt.Errorf("create JetStream context: %w", err)
	}
	if err := broker.EnsureStream(ctx, js, cfg.StreamName); err != nil {
		natsConn.Close()
		return nil, nil, err
	}
	return broker.NewStockNotifier(js, cfg.Subject(), cfg.PublishTimeout), natsConn, nil
}

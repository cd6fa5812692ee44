package handler

import (
	"inventory-service/app/middleware"
	"inventory-service/config"

	"github.com/gofiber/fiber/v2"
)

func SetupRouter(app *fiber.App, productHandler *ProductHandler, cfg *config.Config) {
	api := app.Group("/api/inventory")

	// group Use matches by prefix, so auth is attached per route to leave reads open
	var guard []fiber.Handler
	if cfg.Jwt.SecretKey != "" {
		guard = append(guard, middleware.Auth(cfg.Jwt.SecretKey))
	}

	api.Get("/", productHandler.GetAll)
	api.Post("/", append(guard, productHandler.Create)...)
	api.Post("/sale", append(guard, productHandler.RecordSale)...)
	api.Get("/:sku", productHandler.GetBySku)
}

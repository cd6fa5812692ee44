package handler

import (
	"log/slog"

	"inventory-service/app/domain"
	"inventory-service/app/handler/api/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	productUsecase domain.ProductService
	validator      *validator.Validate
}

func NewProductHandler(productUsecase domain.ProductService, validator *validator.Validate) *ProductHandler {
	return &ProductHandler{
		productUsecase: productUsecase,
		validator:      validator,
	}
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req domain.ProductCreateRequest
	if err := c.BodyParser(&req); err != nil {
		slog.ErrorContext(ctx, "[productHandler] Create", "bodyParser", err)
		return c.Status(fiber.StatusBadRequest).JSON(response.Error(domain.ErrBadRequest))
	}

	if err := h.validator.Struct(req); err != nil {
		slog.WarnContext(ctx, "[productHandler] Create", "validation", err)
		return c.Status(fiber.StatusBadRequest).JSON(response.ErrorMessage(validationMessage(err)))
	}

	product, err := h.productUsecase.AddProduct(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "[productHandler] Create", "usecase", err)
		status, resp := response.FromError(err)
		return c.Status(status).JSON(resp)
	}

	return c.Status(fiber.StatusCreated).JSON(response.Success(product))
}

func (h *ProductHandler) GetAll(c *fiber.Ctx) error {
	ctx := c.UserContext()

	products, err := h.productUsecase.FindAllProducts(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "[productHandler] GetAll", "usecase", err)
		status, resp := response.FromError(err)
		return c.Status(status).JSON(resp)
	}

	return c.Status(fiber.StatusOK).JSON(response.Success(products))
}

func (h *ProductHandler) GetBySku(c *fiber.Ctx) error {
	ctx := c.UserContext()

	sku := c.Params("sku")
	if sku == "" {
		slog.ErrorContext(ctx, "[productHandler] GetBySku", "sku", "missing")
		return c.Status(fiber.StatusBadRequest).JSON(response.Error(domain.ErrBadRequest))
	}

	product, err := h.productUsecase.FindBySku(ctx, sku)
	if err != nil {
		status, resp := response.FromError(err)
		return c.Status(status).JSON(resp)
	}

	return c.Status(fiber.StatusOK).JSON(response.Success(product))
}

func (h *ProductHandler) RecordSale(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req domain.SaleRequest
	if err := c.BodyParser(&req); err != nil {
		slog.ErrorContext(ctx, "[productHandler] RecordSale", "bodyParser", err)
		return c.Status(fiber.StatusBadRequest).JSON(response.Error(domain.ErrBadRequest))
	}

	if err := h.validator.Struct(req); err != nil {
		slog.WarnContext(ctx, "[productHandler] RecordSale", "validation", err)
		return c.Status(fiber.StatusBadRequest).JSON(response.ErrorMessage(validationMessage(err)))
	}

	product, err := h.productUsecase.RecordSale(ctx, req)
	if err != nil {
		slog.WarnContext(ctx, "[productHandler] RecordSale", "usecase", err)
		status, resp := response.FromError(err)
		return c.Status(status).JSON(resp)
	}

	return c.Status(fiber.StatusOK).JSON(response.Success(product))
}

package response

import (
	"errors"

	"inventory-service/app/domain"

	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func Success(data any) *Response {
	return &Response{
		Success: true,
		Data:    data,
	}
}

func Error(err error) *Response {
	return ErrorMessage(err.Error())
}

func ErrorMessage(msg string) *Response {
	return &Response{
		Success: false,
		Error:   msg,
	}
}

// statusByError is checked in order; the first sentinel matched by errors.Is wins.
var statusByError = []struct {
	err    error
	status int
}{
	{domain.ErrValidation, fiber.StatusBadRequest},
	{domain.ErrBadRequest, fiber.StatusBadRequest},
	{domain.ErrInsufficientStock, fiber.StatusBadRequest},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized},
	{domain.ErrNotFound, fiber.StatusNotFound},
	{domain.ErrConflict, fiber.StatusConflict},
}

func FromError(err error) (int, *Response) {
	for _, m := range statusByError {
		if errors.Is(err, m.err) {
			return m.status, Error(err)
		}
	}
	return fiber.StatusInternalServerError, Error(domain.ErrInternal)
}

package middleware

import (
	"log/slog"

	"inventory-service/app/domain"
	"inventory-service/app/handler/api/response"
	"inventory-service/pkg"
	"inventory-service/pkg/ctxutil"

	"github.com/gofiber/fiber/v2"
)

func Auth(secretKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		token, err := pkg.GetTokenFromHeaders(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			slog.WarnContext(ctx, "[middleware] Auth", "GetTokenFromHeaders", err)
			return c.Status(fiber.StatusUnauthorized).JSON(response.Error(domain.ErrUnauthorized))
		}

		claims, err := pkg.ParseJwtToken(token, secretKey)
		if err != nil {
			slog.WarnContext(ctx, "[middleware] Auth", "ParseJwtToken", err)
			return c.Status(fiber.StatusUnauthorized).JSON(response.Error(domain.ErrUnauthorized))
		}

		if claims.UID == 0 {
			slog.WarnContext(ctx, "[middleware] Auth", "userID", "0")
			return c.Status(fiber.StatusUnauthorized).JSON(response.Error(domain.ErrUnauthorized))
		}

		c.Locals(ctxutil.UserIDKey, claims.UID)
		c.SetUserContext(ctxutil.WithUserID(ctx, claims.UID))
		return c.Next()
	}
}

package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	helper "madaris_backend/internals/helpers"
)

// AuthMiddleware verifies the bearer token and stores the session claims in
// Locals for downstream role checks.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := helper.GetRawAccessToken(c)
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "يجب تسجيل الدخول أولاً.")
		}

		claims, err := helper.ParseToken(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "جلسة غير صالحة.")
		}
		if exp, ok := claims["exp"].(float64); ok && time.Now().After(time.Unix(int64(exp), 0)) {
			return fiber.NewError(fiber.StatusUnauthorized, "انتهت صلاحية الجلسة.")
		}

		storeClaims(c, claims)
		return c.Next()
	}
}

func storeClaims(c *fiber.Ctx, claims jwt.MapClaims) {
	if v, ok := claims["user_id"].(float64); ok {
		c.Locals("user_id", uint(v))
	}
	if v, ok := claims["username"].(string); ok {
		c.Locals("username", v)
	}
	if v, ok := claims["role"].(string); ok {
		c.Locals("role", v)
	}
	if v, ok := claims["school_id"].(string); ok {
		c.Locals("school_id", v)
	}
}

package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders every controller error as the {message} JSON shape the
// clients classify by status code. Unknown errors become a generic 500 so
// internals never leak to the wire.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "حدث خطأ في الخادم."

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	return c.Status(code).JSON(fiber.Map{"message": msg})
}

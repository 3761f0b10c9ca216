package serverutils

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware is the last line of defense: anything a
// handler returns as a plain error becomes a JSON envelope instead of
// Fiber's default text body.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err == nil {
			return nil
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(ErrorResponse(fe.Code, fe.Message))
		}

		if strings.HasPrefix(err.Error(), "validation failed") {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse(400, err.Error()))
		}

		// Unexpected errors stay server-side; the client gets a generic
		// message.
		log.Printf("[ERROR] Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, "Internal server error"))
	}
}

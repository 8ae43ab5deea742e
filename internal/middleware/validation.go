package middleware

import (
	"trivia-api/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// PageLocalKey is the fiber.Ctx local holding the parsed page number
const PageLocalKey = "validated_page"

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ParsePage reads the page query parameter and stores it for handlers.
// It never rejects a request; bad values select the first page.
func (vm *ValidationMiddleware) ParsePage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(PageLocalKey, vm.validator.ParsePage(c.Query("page")))
		return c.Next()
	}
}

// Page returns the page stored by ParsePage, defaulting to 1
func Page(c *fiber.Ctx) int {
	if page, ok := c.Locals(PageLocalKey).(int); ok && page > 0 {
		return page
	}
	return 1
}

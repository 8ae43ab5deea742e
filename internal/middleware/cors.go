package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const (
	allowedHeaders = "Content-Type,Authorization,true"
	allowedMethods = "GET, POST, PATCH, DELETE, OPTIONS"
)

// CORS allows every origin and answers preflight requests
func CORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: allowedHeaders,
		AllowMethods: strings.ReplaceAll(allowedMethods, " ", ""),
	})
}

// AccessControlHeaders adds the allowed headers and methods to every
// response, not only to preflight responses.
func AccessControlHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderAccessControlAllowHeaders, allowedHeaders)
		c.Set(fiber.HeaderAccessControlAllowMethods, allowedMethods)
		return c.Next()
	}
}

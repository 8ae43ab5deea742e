package middleware

import (
	"errors"
	"net/http"

	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// errorMessages holds the fixed message sent for each status code
var errorMessages = map[int]string{
	http.StatusBadRequest:          "Bad request",
	http.StatusNotFound:            "Not found",
	http.StatusMethodNotAllowed:    "Method not allowed",
	http.StatusUnprocessableEntity: "Unprocessable",
	http.StatusInternalServerError: "Internal error",
}

// ErrorHandler is the centralized fiber error handler. Every error is
// rendered as {success:false, error:<status>, message:<fixed text>}.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		log := logger.Get().With(
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("request_id", RequestID(c)),
		)

		status := http.StatusInternalServerError

		var domainErr *domain.DomainError
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &domainErr):
			status = mapDomainErrorToHTTPStatus(domainErr)
			fields := []zap.Field{
				zap.String("code", string(domainErr.Code)),
				zap.String("message", domainErr.Message),
				zap.Int("status", status),
			}
			if domainErr.Cause != nil {
				fields = append(fields, zap.Error(domainErr.Cause))
			}
			if status >= http.StatusInternalServerError {
				log.Error("Domain error occurred", fields...)
			} else {
				log.Warn("Domain error occurred", fields...)
			}
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			log.Warn("Fiber error occurred",
				zap.Int("status", fiberErr.Code),
				zap.String("message", fiberErr.Message),
			)
		default:
			log.Error("Unknown error occurred", zap.Error(err))
		}

		return c.Status(status).JSON(dto.ErrorResponse{
			Success: false,
			Error:   status,
			Message: errorMessage(status),
		})
	}
}

// mapDomainErrorToHTTPStatus maps domain errors to HTTP status codes
func mapDomainErrorToHTTPStatus(err *domain.DomainError) int {
	switch err.Code {
	case domain.CodeBadRequest:
		return http.StatusBadRequest
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeUnprocessable:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func errorMessage(status int) string {
	if msg, ok := errorMessages[status]; ok {
		return msg
	}
	return utils.StatusMessage(status)
}

package handler

import (
	"encoding/json"
	"errors"

	"trivia-api/internal/dto"

	"github.com/gofiber/fiber/v2"
)

// decodeJSON decodes the raw request body whatever its Content-Type; the
// trivia web client does not always set one.
func decodeJSON(c *fiber.Ctx, out interface{}) error {
	return c.App().Config().JSONDecoder(c.Body(), out)
}

// isFieldTypeError reports whether the body was valid JSON but a field held
// a value of the wrong type.
func isFieldTypeError(err error) bool {
	var typeErr *json.UnmarshalTypeError
	var intErr *dto.InvalidIntError
	return errors.As(err, &typeErr) || errors.As(err, &intErr)
}

// pathID reads the :id route parameter. Routes constrain it to an integer.
func pathID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return 0, fiber.ErrNotFound
	}
	return int64(id), nil
}

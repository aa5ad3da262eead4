package presenters

import (
	"errors"

	"Go-Recipe-Hub/domain"

	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Status  bool     `json:"status"`
	Message string   `json:"message"`
	Data    any      `json:"data,omitempty"`
	Error   string   `json:"error,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, code int, message string) error {
	return c.Status(code).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse surfaces err verbatim; a validation error also lists each violation.
func ErrorResponse(c *fiber.Ctx, code int, message string, err error) error {
	res := Response{
		Status:  false,
		Message: message,
	}
	if err != nil {
		res.Error = err.Error()
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			res.Errors = verr.Messages
		}
	}
	return c.Status(code).JSON(res)
}

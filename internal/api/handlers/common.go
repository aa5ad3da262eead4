package handlers

import (
	"errors"
	"strconv"

	"Go-Recipe-Hub/domain"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 50
)

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	var verr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.As(err, &verr):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrCommentNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrRecipeForbidden),
		errors.Is(err, domain.ErrCommentForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrPersistenceFailure):
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusBadRequest
	}
}

func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.ErrParseID
	}
	return uint(id), nil
}

func pagination(c *fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultPageLimit)))
	if err != nil || limit < 1 {
		limit = defaultPageLimit
	}
	return page, min(limit, maxPageLimit)
}

func paginationMeta(page, limit int, total int64) fiber.Map {
	return fiber.Map{
		"page":        page,
		"limit":       limit,
		"total":       total,
		"total_pages": (total + int64(limit) - 1) / int64(limit),
	}
}

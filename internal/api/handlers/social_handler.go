package handlers

import (
	"Go-Recipe-Hub/domain"
	"Go-Recipe-Hub/internal/api/presenters"
	"Go-Recipe-Hub/internal/middleware"
	"Go-Recipe-Hub/pkg/social"

	"github.com/gofiber/fiber/v2"
)

type (
	SocialHandler interface {
		ToggleLike(c *fiber.Ctx) error
		ToggleSave(c *fiber.Ctx) error
		ShareRecipe(c *fiber.Ctx) error
		ReportRecipe(c *fiber.Ctx) error
		AddComment(c *fiber.Ctx) error
		DeleteComment(c *fiber.Ctx) error
		ToggleFollow(c *fiber.Ctx) error
		GetNotebook(c *fiber.Ctx) error
	}

	socialHandler struct {
		socialService social.SocialService
	}
)

func NewSocialHandler(socialService social.SocialService) SocialHandler {
	return &socialHandler{socialService: socialService}
}

func (h *socialHandler) ToggleLike(c *fiber.Ctx) error {
	recipeID, err := parseID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedToggleLike, err)
	}

	res, err := h.socialService.ToggleLike(c.Context(), recipeID, middleware.UserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedToggleLike, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessToggleLike)
}

func (h *socialHandler) ToggleSave(c *fiber.Ctx) error {
	recipeID, err := parseID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedToggleSave, err)
	}

	res, err := h.socialService.ToggleSave(c.Context(), recipeID, middleware.UserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedToggleSave, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessToggleSave)
}

func (h *socialHandler) ShareRecipe(c *fiber.Ctx) error {
	recipeID, err := parseID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedShareRecipe, err)
	}

	res, err := h.socialService.ShareRecipe(c.Context(), recipeID, middleware.UserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedShareRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessShareRecipe)
}

func (h *socialHandler) ReportRecipe(c *fiber.Ctx) error {
	recipeID, err := parseID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedReportRecipe, err)
	}
	req := new(domain.ReportRecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.socialService.ReportRecipe(c.Context(), recipeID, *req, middleware.UserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedReportRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessReportRecipe)
}

func (h *socialHandler) AddComment(c *fiber.Ctx) error {
	recipeID, err := parseID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddComment, err)
	}
	req := new(domain.AddCommentRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.socialService.AddComment(c.Context(), recipeID, *req, middleware.UserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedAddComment, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddComment)
}

func (h *socialHandler) DeleteComment(c *fiber.Ctx) error {
	commentID, err := parseID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteComment, err)
	}

	if err := h.socialService.DeleteComment(c.Context(), commentID, middleware.UserID(c)); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDeleteComment, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteComment)
}

func (h *socialHandler) ToggleFollow(c *fiber.Ctx) error {
	targetID, err := parseID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedToggleFollow, err)
	}

	res, err := h.socialService.ToggleFollow(c.Context(), targetID, middleware.UserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedToggleFollow, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessToggleFollow)
}

func (h *socialHandler) GetNotebook(c *fiber.Ctx) error {
	page, limit := pagination(c)

	res, err := h.socialService.GetNotebook(c.Context(), middleware.UserID(c), page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetNotebook, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"recipes":    res.Recipes,
		"pagination": paginationMeta(page, limit, res.Total),
	}, fiber.StatusOK, domain.MessageSuccessGetNotebook)
}

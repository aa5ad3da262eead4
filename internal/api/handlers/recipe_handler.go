package handlers

import (
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"Go-Recipe-Hub/domain"
	"Go-Recipe-Hub/internal/api/presenters"
	"Go-Recipe-Hub/internal/middleware"
	"Go-Recipe-Hub/pkg/recipe"

	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		CreateRecipe(c *fiber.Ctx) error
		EditRecipe(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		GetFeed(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService) RecipeHandler {
	return &recipeHandler{recipeService: recipeService}
}

func firstValue(form *multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}

func firstFile(form *multipart.Form, key string) *multipart.FileHeader {
	if files := form.File[key]; len(files) > 0 {
		return files[0]
	}
	return nil
}

// parseRecipeForm reads the shared recipe fields. Steps come from the repeated "steps" field;
// step i (1-based) takes files from step_media_<i>, step_image_<i> and retained URLs from existing_media_<i>.
func parseRecipeForm(form *multipart.Form) domain.RecipeInput {
	in := domain.RecipeInput{
		Name:        firstValue(form, "name"),
		Description: firstValue(form, "description"),
		Level:       firstValue(form, "level"),
		Ingredients: form.Value["ingredients"],
		Types:       form.Value["types"],
	}
	// A non-numeric cook time is reported by the range check.
	in.CookTime, _ = strconv.Atoi(strings.TrimSpace(firstValue(form, "cook_time")))

	for i, description := range form.Value["steps"] {
		n := i + 1
		in.Steps = append(in.Steps, domain.StepInput{
			Description:   description,
			Media:         form.File[fmt.Sprintf("step_media_%d", n)],
			LegacyMedia:   firstFile(form, fmt.Sprintf("step_image_%d", n)),
			ExistingMedia: form.Value[fmt.Sprintf("existing_media_%d", n)],
		})
	}
	return in
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	form, err := c.MultipartForm()
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	req := domain.CreateRecipeRequest{
		RecipeInput: parseRecipeForm(form),
		MainMedia:   firstFile(form, "main_media"),
	}

	res, err := h.recipeService.CreateRecipe(c.Context(), req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedCreateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) EditRecipe(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	recipeID, err := parseID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRecipe, err)
	}
	form, err := c.MultipartForm()
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	req := domain.EditRecipeRequest{
		RecipeInput: parseRecipeForm(form),
		Thumbnail:   firstFile(form, "thumbnail"),
	}

	res, err := h.recipeService.EditRecipe(c.Context(), recipeID, req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUpdateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRecipe)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	recipeID, err := parseID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipeDetail, err)
	}

	detail, err := h.recipeService.GetRecipeDetail(c.Context(), recipeID, middleware.UserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetRecipeDetail, err)
	}

	return presenters.SuccessResponse(c, detail, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	recipeID, err := parseID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteRecipe, err)
	}

	if err := h.recipeService.DeleteRecipe(c.Context(), recipeID, middleware.UserID(c)); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDeleteRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRecipe)
}

func (h *recipeHandler) GetFeed(c *fiber.Ctx) error {
	page, limit := pagination(c)

	feed, err := h.recipeService.GetFeed(c.Context(), page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"recipes":    feed.Recipes,
		"pagination": paginationMeta(page, limit, feed.Total),
	}, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

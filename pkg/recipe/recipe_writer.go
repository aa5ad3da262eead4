package recipe

import (
	"context"
	"strings"

	"Go-Recipe-Hub/domain"
	"Go-Recipe-Hub/entities"

	"go.uber.org/zap"
)

// CreateRecipe writes the recipe row, its thumbnail, ingredient and type links, then steps with media.
// Each stage needs the id produced by the first one, so the order is fixed.
func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID uint) (domain.CreateRecipeResponse, error) {
	if userID == 0 {
		return domain.CreateRecipeResponse{}, domain.ErrUnauthenticated
	}
	if err := validateRecipeInput(s.validator, req.RecipeInput, req.MainMedia, ruleMainMedia); err != nil {
		return domain.CreateRecipeResponse{}, err
	}

	// A client disconnect must not stop the fan-out half way.
	ctx = context.WithoutCancel(ctx)

	recipe := &entities.Recipe{
		UserID:      userID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		CookTime:    req.CookTime,
		Level:       canonicalLevel(req.Level),
		StepNumber:  stepCount(len(req.Steps)),
	}
	ingredients := uniqueNames(req.Ingredients)
	types := uniqueNames(req.Types)

	var (
		thumbnailURL string
		skipped      []string
		uploaded     uploadedMedia
	)

	err := newSaga("recipe.create", s.logger).
		step("insert_recipe",
			func(ctx context.Context) error {
				if err := s.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
					return err
				}
				if recipe.ID == 0 {
					return errNoRecipeID
				}
				return nil
			},
			func(ctx context.Context) error {
				if recipe.ID == 0 {
					return nil
				}
				return s.recipeRepository.DeleteRecipeCascade(ctx, recipe.ID)
			},
		).
		step("upload_thumbnail",
			func(ctx context.Context) error {
				if req.MainMedia == nil {
					return nil
				}
				url, _, err := s.uploadClassified(ctx, req.MainMedia, recipeFolder(recipe.ID))
				if err != nil {
					return err
				}
				if err := s.recipeRepository.UpdateRecipeThumbnail(ctx, recipe.ID, &url); err != nil {
					s.logger.Warn("recipe thumbnail not saved",
						zap.Uint("recipe_id", recipe.ID),
						zap.String("url", url),
						zap.Error(err),
					)
					s.deleteBlob(ctx, url)
					return nil
				}
				thumbnailURL = url
				recipe.Thumbnail = &url
				return nil
			},
			func(ctx context.Context) error {
				s.deleteBlob(ctx, thumbnailURL)
				return nil
			},
		).
		step("link_ingredients",
			func(ctx context.Context) error {
				return s.linkIngredients(ctx, recipe.ID, ingredients)
			},
			nil,
		).
		step("link_types",
			func(ctx context.Context) error {
				return s.linkTypes(ctx, recipe.ID, types)
			},
			nil,
		).
		step("insert_steps",
			func(ctx context.Context) error {
				for i, step := range req.Steps {
					stepNumber := i + 1
					if err := s.recipeRepository.CreateStep(ctx, &entities.RecipeStep{
						RecipeID:    recipe.ID,
						StepNumber:  stepNumber,
						Instruction: strings.TrimSpace(step.Description),
					}); err != nil {
						return err
					}
					s.attachStepMedia(ctx, recipe.ID, stepNumber, stepFiles(step), 1, &uploaded, &skipped)
				}
				return nil
			},
			func(ctx context.Context) error {
				return s.discardMedia(ctx, recipe.ID, &uploaded)
			},
		).
		execute(ctx)
	if err != nil {
		return domain.CreateRecipeResponse{}, err
	}

	s.logger.Info("recipe created",
		zap.Uint("recipe_id", recipe.ID),
		zap.Uint("user_id", userID),
		zap.Int("steps", len(req.Steps)),
		zap.Int("skipped_media", len(skipped)),
	)
	return domain.CreateRecipeResponse{ID: recipe.ID, SkippedMedia: skipped}, nil
}

func (s *recipeService) linkIngredients(ctx context.Context, recipeID uint, names []string) error {
	for _, name := range names {
		id, err := s.resolver.ResolveIngredient(ctx, name)
		if err != nil {
			return err
		}
		if err := s.recipeRepository.AddRecipeIngredient(ctx, recipeID, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *recipeService) linkTypes(ctx context.Context, recipeID uint, labels []string) error {
	for _, label := range labels {
		id, err := s.resolver.ResolveType(ctx, label)
		if err != nil {
			return err
		}
		if err := s.recipeRepository.AddRecipeType(ctx, recipeID, id); err != nil {
			return err
		}
	}
	return nil
}

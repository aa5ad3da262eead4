package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"Go-Recipe-Hub/domain"
	"Go-Recipe-Hub/entities"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// aggregateSnapshot is the dependent state of a recipe captured before an edit destroys it.
type aggregateSnapshot struct {
	ingredientLinks []*entities.RecipeIngredient
	typeLinks       []*entities.RecipeRecipeType
	steps           []*entities.RecipeStep
	stepMedia       []*entities.RecipeStepMedia
}

type preparedEdit struct {
	thumbnailURL  string
	ingredientIDs []uint
	typeIDs       []uint
	snapshot      aggregateSnapshot
}

// EditRecipe validates, checks ownership, prepares every write that can fail, and only then
// replaces the dependents of the recipe.
func (s *recipeService) EditRecipe(ctx context.Context, recipeID uint, req domain.EditRecipeRequest, userID uint) (domain.EditRecipeResponse, error) {
	if userID == 0 {
		return domain.EditRecipeResponse{}, domain.ErrUnauthenticated
	}
	if err := validateRecipeInput(s.validator, req.RecipeInput, req.Thumbnail, ruleThumbnail); err != nil {
		return domain.EditRecipeResponse{}, err
	}

	ctx = context.WithoutCancel(ctx)

	recipe, err := s.loadOwnedRecipe(ctx, recipeID, userID)
	if err != nil {
		return domain.EditRecipeResponse{}, err
	}

	prepared, err := s.prepareEdit(ctx, recipe, req)
	if err != nil {
		return domain.EditRecipeResponse{}, err
	}

	previous := *recipe
	updated := *recipe
	updated.Name = strings.TrimSpace(req.Name)
	updated.Description = strings.TrimSpace(req.Description)
	updated.CookTime = req.CookTime
	updated.Level = canonicalLevel(req.Level)
	updated.StepNumber = stepCount(len(req.Steps))
	if prepared.thumbnailURL != "" {
		url := prepared.thumbnailURL
		updated.Thumbnail = &url
	}

	var (
		skipped  []string
		uploaded uploadedMedia
	)
	err = newSaga("recipe.edit", s.logger).
		step("update_recipe",
			func(ctx context.Context) error {
				return s.recipeRepository.UpdateRecipe(ctx, &updated)
			},
			func(ctx context.Context) error {
				return s.recipeRepository.UpdateRecipe(ctx, &previous)
			},
		).
		step("delete_dependents",
			func(ctx context.Context) error {
				return s.deleteDependents(ctx, recipe.ID, prepared.snapshot.steps)
			},
			func(ctx context.Context) error {
				return s.restoreSnapshot(ctx, recipe.ID, prepared.snapshot)
			},
		).
		step("link_ingredients",
			func(ctx context.Context) error {
				for _, id := range prepared.ingredientIDs {
					if err := s.recipeRepository.AddRecipeIngredient(ctx, recipe.ID, id); err != nil {
						return err
					}
				}
				return nil
			},
			nil,
		).
		step("link_types",
			func(ctx context.Context) error {
				for _, id := range prepared.typeIDs {
					if err := s.recipeRepository.AddRecipeType(ctx, recipe.ID, id); err != nil {
						return err
					}
				}
				return nil
			},
			nil,
		).
		step("insert_steps",
			func(ctx context.Context) error {
				return s.rebuildSteps(ctx, recipe.ID, req.Steps, prepared.snapshot.mediaIDs(), &uploaded, &skipped)
			},
			func(ctx context.Context) error {
				return s.discardMedia(ctx, recipe.ID, &uploaded)
			},
		).
		execute(ctx)
	if err != nil {
		s.deleteBlob(ctx, prepared.thumbnailURL)
		return domain.EditRecipeResponse{}, err
	}

	if prepared.thumbnailURL != "" && previous.Thumbnail != nil {
		s.deleteBlob(ctx, *previous.Thumbnail)
	}

	s.logger.Info("recipe updated",
		zap.Uint("recipe_id", recipe.ID),
		zap.Uint("user_id", userID),
		zap.Int("steps", len(req.Steps)),
		zap.Int("skipped_media", len(skipped)),
	)
	return domain.EditRecipeResponse{ID: recipe.ID, SkippedMedia: skipped}, nil
}

// prepareEdit performs every fallible non-destructive step. Nothing persisted is touched.
func (s *recipeService) prepareEdit(ctx context.Context, recipe *entities.Recipe, req domain.EditRecipeRequest) (preparedEdit, error) {
	var prepared preparedEdit

	if req.Thumbnail != nil {
		url, err := s.s3.UploadFile(ctx, req.Thumbnail, false, recipeFolder(recipe.ID))
		if err != nil {
			return preparedEdit{}, domain.NewPersistenceError("recipe.edit.upload_thumbnail", err)
		}
		prepared.thumbnailURL = url
	}

	fail := func(op string, err error) (preparedEdit, error) {
		s.deleteBlob(ctx, prepared.thumbnailURL)
		return preparedEdit{}, domain.NewPersistenceError("recipe.edit."+op, err)
	}

	for _, name := range uniqueNames(req.Ingredients) {
		id, err := s.resolver.ResolveIngredient(ctx, name)
		if err != nil {
			return fail("resolve_ingredient", err)
		}
		prepared.ingredientIDs = appendUnique(prepared.ingredientIDs, id)
	}
	for _, label := range uniqueNames(req.Types) {
		id, err := s.resolver.ResolveType(ctx, label)
		if err != nil {
			return fail("resolve_type", err)
		}
		prepared.typeIDs = appendUnique(prepared.typeIDs, id)
	}

	snapshot, err := s.snapshot(ctx, recipe.ID)
	if err != nil {
		return fail("snapshot", err)
	}
	prepared.snapshot = snapshot

	return prepared, nil
}

// mediaIDs is the set of media linked to the recipe when the snapshot was taken.
func (snap aggregateSnapshot) mediaIDs() map[uint]struct{} {
	ids := make(map[uint]struct{}, len(snap.stepMedia))
	for _, link := range snap.stepMedia {
		ids[link.MediaID] = struct{}{}
	}
	return ids
}

func (s *recipeService) snapshot(ctx context.Context, recipeID uint) (aggregateSnapshot, error) {
	var (
		snap aggregateSnapshot
		err  error
	)
	if snap.ingredientLinks, err = s.recipeRepository.GetRecipeIngredients(ctx, recipeID); err != nil {
		return aggregateSnapshot{}, err
	}
	if snap.typeLinks, err = s.recipeRepository.GetRecipeTypes(ctx, recipeID); err != nil {
		return aggregateSnapshot{}, err
	}
	if snap.steps, err = s.recipeRepository.GetSteps(ctx, recipeID); err != nil {
		return aggregateSnapshot{}, err
	}
	if snap.stepMedia, err = s.recipeRepository.GetStepMedia(ctx, recipeID); err != nil {
		return aggregateSnapshot{}, err
	}
	return snap, nil
}

func (s *recipeService) deleteDependents(ctx context.Context, recipeID uint, steps []*entities.RecipeStep) error {
	if err := s.recipeRepository.DeleteRecipeIngredients(ctx, recipeID); err != nil {
		return err
	}
	if err := s.recipeRepository.DeleteRecipeTypes(ctx, recipeID); err != nil {
		return err
	}
	for _, step := range steps {
		if err := s.recipeRepository.DeleteStepMedia(ctx, recipeID, step.StepNumber); err != nil {
			return err
		}
		if err := s.recipeRepository.DeleteStep(ctx, recipeID, step.StepNumber); err != nil {
			return err
		}
	}
	return nil
}

// restoreSnapshot clears whatever the failed commit left behind and re-inserts the captured rows.
func (s *recipeService) restoreSnapshot(ctx context.Context, recipeID uint, snap aggregateSnapshot) error {
	if err := s.recipeRepository.DeleteRecipeIngredients(ctx, recipeID); err != nil {
		return err
	}
	if err := s.recipeRepository.DeleteRecipeTypes(ctx, recipeID); err != nil {
		return err
	}
	if err := s.recipeRepository.DeleteAllStepMedia(ctx, recipeID); err != nil {
		return err
	}
	if err := s.recipeRepository.DeleteSteps(ctx, recipeID); err != nil {
		return err
	}

	var errs []error
	for _, link := range snap.ingredientLinks {
		errs = append(errs, s.recipeRepository.AddRecipeIngredient(ctx, recipeID, link.IngredientID))
	}
	for _, link := range snap.typeLinks {
		errs = append(errs, s.recipeRepository.AddRecipeType(ctx, recipeID, link.RecipeTypeID))
	}
	for _, step := range snap.steps {
		errs = append(errs, s.recipeRepository.CreateStep(ctx, &entities.RecipeStep{
			RecipeID:    recipeID,
			StepNumber:  step.StepNumber,
			Instruction: step.Instruction,
		}))
	}
	for _, link := range snap.stepMedia {
		errs = append(errs, s.recipeRepository.AddStepMedia(ctx, &entities.RecipeStepMedia{
			RecipeID:     recipeID,
			StepNumber:   link.StepNumber,
			MediaID:      link.MediaID,
			DisplayOrder: link.DisplayOrder,
		}))
	}
	return errors.Join(errs...)
}

// rebuildSteps inserts the submitted steps, re-linking retained media before new uploads.
// Only media in owned can be retained.
func (s *recipeService) rebuildSteps(
	ctx context.Context,
	recipeID uint,
	steps []domain.StepInput,
	owned map[uint]struct{},
	uploaded *uploadedMedia,
	skipped *[]string,
) error {
	for i, step := range steps {
		stepNumber := i + 1
		if err := s.recipeRepository.CreateStep(ctx, &entities.RecipeStep{
			RecipeID:    recipeID,
			StepNumber:  stepNumber,
			Instruction: strings.TrimSpace(step.Description),
		}); err != nil {
			return err
		}

		next := s.relinkExistingMedia(ctx, recipeID, stepNumber, step.ExistingMedia, owned, skipped)
		s.attachStepMedia(ctx, recipeID, stepNumber, stepFiles(step), next, uploaded, skipped)
	}
	return nil
}

// relinkExistingMedia links retained URLs in submission order starting at display order 1.
func (s *recipeService) relinkExistingMedia(
	ctx context.Context,
	recipeID uint,
	stepNumber int,
	urls []string,
	owned map[uint]struct{},
	skipped *[]string,
) int {
	next := 1
	seen := make(map[string]struct{}, len(urls))
	for _, url := range urls {
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}
		if _, ok := seen[url]; ok {
			continue
		}
		seen[url] = struct{}{}

		err := s.relinkOne(ctx, recipeID, stepNumber, url, next, owned)
		if err != nil {
			s.logger.Warn("retained media skipped",
				zap.Uint("recipe_id", recipeID),
				zap.Int("step_number", stepNumber),
				zap.String("url", url),
				zap.NamedError("kind", domain.ErrPartialMediaFailure),
				zap.Error(err),
			)
			*skipped = append(*skipped, fmt.Sprintf("step %d: %s", stepNumber, url))
			continue
		}
		next++
	}
	return next
}

func (s *recipeService) relinkOne(ctx context.Context, recipeID uint, stepNumber int, url string, order int, owned map[uint]struct{}) error {
	media, err := s.recipeRepository.FindMediaByURL(ctx, url)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("no media row for %s", url)
		}
		return err
	}
	if _, ok := owned[media.ID]; !ok {
		return fmt.Errorf("media %d is not linked to recipe %d", media.ID, recipeID)
	}
	return s.recipeRepository.AddStepMedia(ctx, &entities.RecipeStepMedia{
		RecipeID:     recipeID,
		StepNumber:   stepNumber,
		MediaID:      media.ID,
		DisplayOrder: order,
	})
}

func appendUnique(ids []uint, id uint) []uint {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

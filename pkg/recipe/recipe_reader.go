package recipe

import (
	"context"
	"fmt"

	"Go-Recipe-Hub/domain"
	"Go-Recipe-Hub/entities"
	"Go-Recipe-Hub/pkg/user"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// GetRecipeDetail assembles the detail view. Only a missing recipe fails the read;
// every other sub-fetch degrades to an empty value.
func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID uint, viewerID uint) (domain.RecipeDetail, error) {
	recipe, err := s.loadRecipe(ctx, recipeID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	detail := domain.RecipeDetail{
		Recipe:      ToSummary(recipe),
		Author:      s.readAuthor(ctx, recipe.UserID),
		Ingredients: s.readIngredients(ctx, recipe.ID),
		Types:       s.readTypes(ctx, recipe.ID),
		Steps:       s.readSteps(ctx, recipe.ID),
		Comments:    s.readComments(ctx, recipe.ID),
	}
	detail.Viewer.IsOwner = viewerID != 0 && viewerID == recipe.UserID

	// Counters and viewer flags are independent reads. A failed read leaves its zero value;
	// Wait reports the first failure.
	var g errgroup.Group
	g.Go(func() (err error) {
		detail.LikeCount, err = readCount(ctx, "likes", recipe.ID, s.engagement.CountLikes)
		return err
	})
	g.Go(func() (err error) {
		detail.CommentCount, err = readCount(ctx, "comments", recipe.ID, s.engagement.CountComments)
		return err
	})
	g.Go(func() (err error) {
		detail.ShareCount, err = readCount(ctx, "shares", recipe.ID, s.engagement.CountShares)
		return err
	})
	if viewerID != 0 {
		g.Go(func() (err error) {
			detail.Viewer.Liked, err = readFlag("liked", func() (bool, error) {
				return s.engagement.HasLiked(ctx, viewerID, recipe.ID)
			})
			return err
		})
		g.Go(func() (err error) {
			detail.Viewer.Saved, err = readFlag("saved", func() (bool, error) {
				return s.engagement.HasSaved(ctx, viewerID, recipe.ID)
			})
			return err
		})
		if viewerID != recipe.UserID {
			g.Go(func() (err error) {
				detail.Viewer.Following, err = readFlag("following", func() (bool, error) {
					return s.engagement.IsFollowing(ctx, viewerID, recipe.UserID)
				})
				return err
			})
		}
	}
	if err := g.Wait(); err != nil {
		s.degraded("engagement", recipe.ID, err)
	}

	return detail, nil
}

func (s *recipeService) degraded(part string, recipeID uint, err error) {
	s.logger.Warn("recipe detail degraded",
		zap.String("part", part),
		zap.Uint("recipe_id", recipeID),
		zap.Error(err),
	)
}

func (s *recipeService) readAuthor(ctx context.Context, userID uint) domain.Author {
	u, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		s.logger.Warn("recipe author unavailable", zap.Uint("user_id", userID), zap.Error(err))
		return domain.Author{ID: userID}
	}
	return user.ToAuthor(u)
}

func (s *recipeService) readIngredients(ctx context.Context, recipeID uint) []string {
	names := []string{}
	links, err := s.recipeRepository.GetRecipeIngredients(ctx, recipeID)
	if err != nil {
		s.degraded("ingredients", recipeID, err)
		return names
	}
	ids := make([]uint, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.IngredientID)
	}
	masters, err := s.recipeRepository.GetIngredientsByIDs(ctx, ids)
	if err != nil {
		s.degraded("ingredients", recipeID, err)
		return names
	}
	for _, id := range ids {
		if m, ok := masters[id]; ok {
			names = append(names, m.Name)
		}
	}
	return names
}

func (s *recipeService) readTypes(ctx context.Context, recipeID uint) []string {
	labels := []string{}
	links, err := s.recipeRepository.GetRecipeTypes(ctx, recipeID)
	if err != nil {
		s.degraded("types", recipeID, err)
		return labels
	}
	ids := make([]uint, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.RecipeTypeID)
	}
	masters, err := s.recipeRepository.GetTypesByIDs(ctx, ids)
	if err != nil {
		s.degraded("types", recipeID, err)
		return labels
	}
	for _, id := range ids {
		if m, ok := masters[id]; ok {
			labels = append(labels, m.Content)
		}
	}
	return labels
}

// readSteps loads all step media of the recipe in one query and partitions it by step number.
func (s *recipeService) readSteps(ctx context.Context, recipeID uint) []domain.StepDetail {
	details := []domain.StepDetail{}
	steps, err := s.recipeRepository.GetSteps(ctx, recipeID)
	if err != nil {
		s.degraded("steps", recipeID, err)
		return details
	}

	byStep := map[int][]*entities.RecipeStepMedia{}
	links, err := s.recipeRepository.GetStepMedia(ctx, recipeID)
	if err != nil {
		s.degraded("step_media", recipeID, err)
		links = nil
	}
	mediaIDs := make([]uint, 0, len(links))
	for _, link := range links {
		byStep[link.StepNumber] = append(byStep[link.StepNumber], link)
		mediaIDs = append(mediaIDs, link.MediaID)
	}

	media, err := s.recipeRepository.GetMediaByIDs(ctx, mediaIDs)
	if err != nil {
		s.degraded("media", recipeID, err)
		media = nil
	}

	for _, step := range steps {
		detail := domain.StepDetail{
			StepNumber:  step.StepNumber,
			Instruction: step.Instruction,
			Media:       []domain.StepMedia{},
		}
		for _, link := range byStep[step.StepNumber] {
			m, ok := media[link.MediaID]
			if !ok {
				continue
			}
			url, isVideo := m.URL()
			if url == "" {
				continue
			}
			detail.Media = append(detail.Media, domain.StepMedia{
				URL:          url,
				IsVideo:      isVideo,
				DisplayOrder: link.DisplayOrder,
			})
		}
		details = append(details, detail)
	}
	return details
}

func (s *recipeService) readComments(ctx context.Context, recipeID uint) []domain.CommentDetail {
	result := []domain.CommentDetail{}
	comments, err := s.engagement.ListComments(ctx, recipeID)
	if err != nil {
		s.degraded("comments", recipeID, err)
		return result
	}

	authorIDs := make([]uint, 0, len(comments))
	for _, c := range comments {
		authorIDs = append(authorIDs, c.UserID)
	}
	authors, err := s.userRepository.GetUsersByIDs(ctx, authorIDs)
	if err != nil {
		s.degraded("comment_authors", recipeID, err)
		authors = nil
	}

	for _, c := range comments {
		author := domain.Author{ID: c.UserID}
		if u, ok := authors[c.UserID]; ok {
			author = user.ToAuthor(u)
		}
		result = append(result, domain.CommentDetail{
			ID:        c.ID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
			Author:    author,
		})
	}
	return result
}

func readCount(ctx context.Context, part string, recipeID uint, count func(context.Context, uint) (int64, error)) (int64, error) {
	n, err := count(ctx, recipeID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", part, err)
	}
	return n, nil
}

func readFlag(part string, check func() (bool, error)) (bool, error) {
	ok, err := check()
	if err != nil {
		return false, fmt.Errorf("%s: %w", part, err)
	}
	return ok, nil
}

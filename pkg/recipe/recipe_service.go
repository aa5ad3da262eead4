package recipe

import (
	"context"
	"errors"

	"Go-Recipe-Hub/domain"
	"Go-Recipe-Hub/entities"
	"Go-Recipe-Hub/internal/utils"
	"Go-Recipe-Hub/internal/utils/storage"
	"Go-Recipe-Hub/pkg/user"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	errMediaShape  = errors.New("media must hold exactly one of image url or video url")
	errNoRecipeID  = errors.New("recipe insert returned no id")
	errMissingFile = errors.New("media file is nil")
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID uint) (domain.CreateRecipeResponse, error)
		EditRecipe(ctx context.Context, recipeID uint, req domain.EditRecipeRequest, userID uint) (domain.EditRecipeResponse, error)
		GetRecipeDetail(ctx context.Context, recipeID uint, viewerID uint) (domain.RecipeDetail, error)
		DeleteRecipe(ctx context.Context, recipeID uint, userID uint) error
		GetFeed(ctx context.Context, page, limit int) (domain.FeedResponse, error)
	}

	// EngagementReader supplies the social counters and viewer flags of the detail view.
	EngagementReader interface {
		CountLikes(ctx context.Context, recipeID uint) (int64, error)
		CountLikesByRecipes(ctx context.Context, recipeIDs []uint) (map[uint]int64, error)
		CountShares(ctx context.Context, recipeID uint) (int64, error)
		CountComments(ctx context.Context, recipeID uint) (int64, error)
		ListComments(ctx context.Context, recipeID uint) ([]*entities.RecipeComment, error)
		HasLiked(ctx context.Context, userID, recipeID uint) (bool, error)
		HasSaved(ctx context.Context, userID, recipeID uint) (bool, error)
		IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		resolver         Resolver
		userRepository   user.UserRepository
		engagement       EngagementReader
		s3               storage.AwsS3
		validator        *validator.Validate
		logger           *zap.Logger
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	resolver Resolver,
	userRepository user.UserRepository,
	engagement EngagementReader,
	s3 storage.AwsS3,
	logger *zap.Logger,
) RecipeService {
	utils.InitValidator()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &recipeService{
		recipeRepository: recipeRepository,
		resolver:         resolver,
		userRepository:   userRepository,
		engagement:       engagement,
		s3:               s3,
		validator:        utils.Validate,
		logger:           logger,
	}
}

// loadRecipe maps a missing row to ErrRecipeNotFound and any other failure to a persistence error.
func (s *recipeService) loadRecipe(ctx context.Context, recipeID uint) (*entities.Recipe, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, domain.NewPersistenceError("recipe.get", err)
	}
	return recipe, nil
}

// loadOwnedRecipe enforces that userID owns the recipe before any write.
func (s *recipeService) loadOwnedRecipe(ctx context.Context, recipeID, userID uint) (*entities.Recipe, error) {
	recipe, err := s.loadRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.UserID != userID {
		return nil, domain.ErrRecipeForbidden
	}
	return recipe, nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID uint, userID uint) error {
	if userID == 0 {
		return domain.ErrUnauthenticated
	}
	recipe, err := s.loadOwnedRecipe(ctx, recipeID, userID)
	if err != nil {
		return err
	}

	ctx = context.WithoutCancel(ctx)
	if err := s.recipeRepository.DeleteRecipeCascade(ctx, recipe.ID); err != nil {
		return domain.NewPersistenceError("recipe.delete", err)
	}
	if recipe.Thumbnail != nil {
		s.deleteBlob(ctx, *recipe.Thumbnail)
	}

	s.logger.Info("recipe deleted", zap.Uint("recipe_id", recipe.ID), zap.Uint("user_id", userID))
	return nil
}

func (s *recipeService) GetFeed(ctx context.Context, page, limit int) (domain.FeedResponse, error) {
	recipes, count, err := s.recipeRepository.ListRecipes(ctx, page, limit)
	if err != nil {
		return domain.FeedResponse{}, domain.NewPersistenceError("recipe.list", err)
	}

	recipeIDs := make([]uint, 0, len(recipes))
	authorIDs := make([]uint, 0, len(recipes))
	for _, r := range recipes {
		recipeIDs = append(recipeIDs, r.ID)
		authorIDs = append(authorIDs, r.UserID)
	}

	authors, err := s.userRepository.GetUsersByIDs(ctx, authorIDs)
	if err != nil {
		s.logger.Warn("feed authors unavailable", zap.Error(err))
		authors = nil
	}
	likes, err := s.engagement.CountLikesByRecipes(ctx, recipeIDs)
	if err != nil {
		s.logger.Warn("feed like counts unavailable", zap.Error(err))
		likes = nil
	}

	items := make([]domain.FeedItem, 0, len(recipes))
	for _, r := range recipes {
		author := domain.Author{ID: r.UserID}
		if u, ok := authors[r.UserID]; ok {
			author = user.ToAuthor(u)
		}
		items = append(items, domain.FeedItem{
			RecipeSummary: ToSummary(r),
			Author:        author,
			LikeCount:     likes[r.ID],
		})
	}

	return domain.FeedResponse{Recipes: items, Total: count}, nil
}

func ToSummary(r *entities.Recipe) domain.RecipeSummary {
	return domain.RecipeSummary{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Thumbnail:   r.Thumbnail,
		CookTime:    r.CookTime,
		Level:       r.Level,
		StepNumber:  r.StepNumber,
		CreatedAt:   r.CreatedAt,
	}
}

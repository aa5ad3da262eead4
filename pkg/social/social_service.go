package social

import (
	"context"
	"errors"
	"strings"

	"Go-Recipe-Hub/domain"
	"Go-Recipe-Hub/entities"
	"Go-Recipe-Hub/internal/utils"
	"Go-Recipe-Hub/pkg/recipe"
	"Go-Recipe-Hub/pkg/user"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	msgCommentRequired = "Bình luận không được để trống"
	msgCommentTooLong  = "Bình luận không được vượt quá 2000 ký tự"
	msgReasonRequired  = "Lý do báo cáo không được để trống"
	msgReasonTooLong   = "Lý do báo cáo không được vượt quá 1000 ký tự"
)

var _ recipe.EngagementReader = (*socialRepository)(nil)

type (
	SocialService interface {
		ToggleLike(ctx context.Context, recipeID, userID uint) (domain.LikeResponse, error)
		ToggleSave(ctx context.Context, recipeID, userID uint) (domain.SaveResponse, error)
		ShareRecipe(ctx context.Context, recipeID, userID uint) (domain.ShareResponse, error)
		AddComment(ctx context.Context, recipeID uint, req domain.AddCommentRequest, userID uint) (domain.AddCommentResponse, error)
		DeleteComment(ctx context.Context, commentID, userID uint) error
		ReportRecipe(ctx context.Context, recipeID uint, req domain.ReportRecipeRequest, userID uint) (domain.ReportResponse, error)
		ToggleFollow(ctx context.Context, targetID, userID uint) (domain.FollowResponse, error)
		GetNotebook(ctx context.Context, userID uint, page, limit int) (domain.NotebookResponse, error)
	}

	// ReportNotifier tells moderators about a new report.
	ReportNotifier interface {
		NotifyReport(ctx context.Context, recipeID, reporterID uint, reason string) error
	}

	socialService struct {
		socialRepository SocialRepository
		recipeRepository recipe.RecipeRepository
		userRepository   user.UserRepository
		notifier         ReportNotifier
		validator        *validator.Validate
		logger           *zap.Logger
	}
)

func NewSocialService(
	socialRepository SocialRepository,
	recipeRepository recipe.RecipeRepository,
	userRepository user.UserRepository,
	notifier ReportNotifier,
	logger *zap.Logger,
) SocialService {
	utils.InitValidator()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &socialService{
		socialRepository: socialRepository,
		recipeRepository: recipeRepository,
		userRepository:   userRepository,
		notifier:         notifier,
		validator:        utils.Validate,
		logger:           logger,
	}
}

// requireRecipe gates every recipe toggle on an acting user and an existing recipe.
func (s *socialService) requireRecipe(ctx context.Context, recipeID, userID uint) error {
	if userID == 0 {
		return domain.ErrUnauthenticated
	}
	if _, err := s.recipeRepository.GetRecipeByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return domain.NewPersistenceError("recipe.get", err)
	}
	return nil
}

func (s *socialService) ToggleLike(ctx context.Context, recipeID, userID uint) (domain.LikeResponse, error) {
	if err := s.requireRecipe(ctx, recipeID, userID); err != nil {
		return domain.LikeResponse{}, err
	}

	liked, err := s.socialRepository.ToggleLike(ctx, userID, recipeID)
	if err != nil {
		return domain.LikeResponse{}, domain.NewPersistenceError("like.toggle", err)
	}
	count, err := s.socialRepository.CountLikes(ctx, recipeID)
	if err != nil {
		return domain.LikeResponse{}, domain.NewPersistenceError("like.count", err)
	}
	return domain.LikeResponse{Liked: liked, LikeCount: count}, nil
}

func (s *socialService) ToggleSave(ctx context.Context, recipeID, userID uint) (domain.SaveResponse, error) {
	if err := s.requireRecipe(ctx, recipeID, userID); err != nil {
		return domain.SaveResponse{}, err
	}

	saved, err := s.socialRepository.ToggleSave(ctx, userID, recipeID)
	if err != nil {
		return domain.SaveResponse{}, domain.NewPersistenceError("save.toggle", err)
	}
	return domain.SaveResponse{Saved: saved}, nil
}

func (s *socialService) ShareRecipe(ctx context.Context, recipeID, userID uint) (domain.ShareResponse, error) {
	if err := s.requireRecipe(ctx, recipeID, userID); err != nil {
		return domain.ShareResponse{}, err
	}

	if err := s.socialRepository.AddShare(ctx, userID, recipeID); err != nil {
		return domain.ShareResponse{}, domain.NewPersistenceError("share.add", err)
	}
	count, err := s.socialRepository.CountShares(ctx, recipeID)
	if err != nil {
		return domain.ShareResponse{}, domain.NewPersistenceError("share.count", err)
	}
	return domain.ShareResponse{ShareCount: count}, nil
}

func (s *socialService) AddComment(ctx context.Context, recipeID uint, req domain.AddCommentRequest, userID uint) (domain.AddCommentResponse, error) {
	req.Content = strings.TrimSpace(req.Content)
	if err := s.validate(req, msgCommentRequired, msgCommentTooLong); err != nil {
		return domain.AddCommentResponse{}, err
	}
	if err := s.requireRecipe(ctx, recipeID, userID); err != nil {
		return domain.AddCommentResponse{}, err
	}

	comment := &entities.RecipeComment{UserID: userID, RecipeID: recipeID, Content: req.Content}
	if err := s.socialRepository.CreateComment(ctx, comment); err != nil {
		return domain.AddCommentResponse{}, domain.NewPersistenceError("comment.create", err)
	}
	count, err := s.socialRepository.CountComments(ctx, recipeID)
	if err != nil {
		return domain.AddCommentResponse{}, domain.NewPersistenceError("comment.count", err)
	}

	author := domain.Author{ID: userID}
	if u, err := s.userRepository.GetUserByID(ctx, userID); err == nil {
		author = user.ToAuthor(u)
	}

	return domain.AddCommentResponse{
		Comment: domain.CommentDetail{
			ID:        comment.ID,
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
			Author:    author,
		},
		CommentCount: count,
	}, nil
}

func (s *socialService) DeleteComment(ctx context.Context, commentID, userID uint) error {
	if userID == 0 {
		return domain.ErrUnauthenticated
	}

	comment, err := s.socialRepository.GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCommentNotFound
		}
		return domain.NewPersistenceError("comment.get", err)
	}
	if comment.UserID != userID {
		return domain.ErrCommentForbidden
	}

	if err := s.socialRepository.DeleteComment(ctx, comment.ID); err != nil {
		return domain.NewPersistenceError("comment.delete", err)
	}
	return nil
}

// ReportRecipe stores one report per user and recipe. Moderators are mailed only for the first one.
func (s *socialService) ReportRecipe(ctx context.Context, recipeID uint, req domain.ReportRecipeRequest, userID uint) (domain.ReportResponse, error) {
	req.Reason = strings.TrimSpace(req.Reason)
	if err := s.validate(req, msgReasonRequired, msgReasonTooLong); err != nil {
		return domain.ReportResponse{}, err
	}
	if err := s.requireRecipe(ctx, recipeID, userID); err != nil {
		return domain.ReportResponse{}, err
	}

	created, err := s.socialRepository.AddReport(ctx, &entities.RecipeReport{
		UserID:   userID,
		RecipeID: recipeID,
		Reason:   req.Reason,
	})
	if err != nil {
		return domain.ReportResponse{}, domain.NewPersistenceError("report.add", err)
	}

	if created && s.notifier != nil {
		if err := s.notifier.NotifyReport(context.WithoutCancel(ctx), recipeID, userID, req.Reason); err != nil {
			s.logger.Warn("report notification failed",
				zap.Uint("recipe_id", recipeID),
				zap.Uint("user_id", userID),
				zap.Error(err),
			)
		}
	}
	return domain.ReportResponse{Reported: true}, nil
}

func (s *socialService) ToggleFollow(ctx context.Context, targetID, userID uint) (domain.FollowResponse, error) {
	if userID == 0 {
		return domain.FollowResponse{}, domain.ErrUnauthenticated
	}
	if targetID == userID {
		return domain.FollowResponse{}, domain.ErrCannotFollowSelf
	}
	if _, err := s.userRepository.GetUserByID(ctx, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FollowResponse{}, domain.ErrUserNotFound
		}
		return domain.FollowResponse{}, domain.NewPersistenceError("user.get", err)
	}

	following, err := s.socialRepository.ToggleFollow(ctx, userID, targetID)
	if err != nil {
		return domain.FollowResponse{}, domain.NewPersistenceError("follow.toggle", err)
	}
	count, err := s.socialRepository.CountFollowers(ctx, targetID)
	if err != nil {
		return domain.FollowResponse{}, domain.NewPersistenceError("follow.count", err)
	}
	return domain.FollowResponse{Following: following, FollowerCount: count}, nil
}

func (s *socialService) GetNotebook(ctx context.Context, userID uint, page, limit int) (domain.NotebookResponse, error) {
	if userID == 0 {
		return domain.NotebookResponse{}, domain.ErrUnauthenticated
	}

	recipes, count, err := s.socialRepository.ListSavedRecipes(ctx, userID, page, limit)
	if err != nil {
		return domain.NotebookResponse{}, domain.NewPersistenceError("notebook.list", err)
	}

	summaries := make([]domain.RecipeSummary, 0, len(recipes))
	for _, r := range recipes {
		summaries = append(summaries, recipe.ToSummary(r))
	}
	return domain.NotebookResponse{Recipes: summaries, Total: count}, nil
}

// validate maps the required and max tags of a single-field request to user-facing messages.
func (s *socialService) validate(req any, required, tooLong string) error {
	err := s.validator.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &domain.ValidationError{}
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			verr.Messages = append(verr.Messages, required)
		} else {
			verr.Messages = append(verr.Messages, tooLong)
		}
	}
	return verr.Err()
}

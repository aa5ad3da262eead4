package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"

	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedDeleteRecipe    = "failed to delete recipe"

	ErrRecipeNotFound      = errors.New("recipe not found")
	ErrRecipeForbidden     = errors.New("only the recipe owner can modify this recipe")
	ErrPartialMediaFailure = errors.New("step media upload failed")
)

// Recognized difficulty levels, compared case-insensitively.
const (
	LevelEasy   = "Dễ"
	LevelMedium = "Trung bình"
	LevelHard   = "Khó"

	MinCookTime = 1
	MaxCookTime = 1440

	MaxThumbnailSize = 10 << 20
	MaxStepMediaSize = 50 << 20
)

var (
	RecipeLevels        = []string{LevelEasy, LevelMedium, LevelHard}
	ThumbnailExtensions = []string{"jpg", "jpeg", "png", "gif", "webp"}
)

type (
	StepInput struct {
		Description string
		// Media is the multi-file field; LegacyMedia is only used when Media is empty.
		Media       []*multipart.FileHeader
		LegacyMedia *multipart.FileHeader
		// ExistingMedia lists previously uploaded URLs to keep (edit only).
		ExistingMedia []string
	}

	RecipeInput struct {
		Name        string      `json:"name" validate:"required,max=255"`
		Description string      `json:"description" validate:"max=5000"`
		CookTime    int         `json:"cook_time" validate:"min=1,max=1440"`
		Level       string      `json:"level" validate:"recipe_level"`
		Ingredients []string    `json:"ingredients"`
		Types       []string    `json:"types"`
		Steps       []StepInput `json:"-"`
	}

	CreateRecipeRequest struct {
		RecipeInput
		MainMedia *multipart.FileHeader `json:"-"`
	}

	EditRecipeRequest struct {
		RecipeInput
		Thumbnail *multipart.FileHeader `json:"-"`
	}

	CreateRecipeResponse struct {
		ID           uint     `json:"id"`
		SkippedMedia []string `json:"skipped_media,omitempty"`
	}

	EditRecipeResponse struct {
		ID           uint     `json:"id"`
		SkippedMedia []string `json:"skipped_media,omitempty"`
	}

	Author struct {
		ID        uint    `json:"id"`
		FullName  string  `json:"full_name"`
		Email     string  `json:"email"`
		AvatarURL *string `json:"avatar_url,omitempty"`
	}

	RecipeSummary struct {
		ID          uint      `json:"id"`
		Name        string    `json:"name"`
		Description string    `json:"description"`
		Thumbnail   *string   `json:"thumbnail,omitempty"`
		CookTime    int       `json:"cook_time"`
		Level       string    `json:"level"`
		StepNumber  int       `json:"step_number"`
		CreatedAt   time.Time `json:"created_at"`
	}

	StepMedia struct {
		URL          string `json:"url"`
		IsVideo      bool   `json:"is_video"`
		DisplayOrder int    `json:"display_order"`
	}

	StepDetail struct {
		StepNumber  int         `json:"step_number"`
		Instruction string      `json:"instruction"`
		Media       []StepMedia `json:"media"`
	}

	CommentDetail struct {
		ID        uint      `json:"id"`
		Content   string    `json:"content"`
		CreatedAt time.Time `json:"created_at"`
		Author    Author    `json:"author"`
	}

	ViewerFlags struct {
		Liked     bool `json:"liked"`
		Saved     bool `json:"saved"`
		Following bool `json:"following"`
		IsOwner   bool `json:"is_owner"`
	}

	RecipeDetail struct {
		Recipe       RecipeSummary   `json:"recipe"`
		Author       Author          `json:"author"`
		Ingredients  []string        `json:"ingredients"`
		Types        []string        `json:"types"`
		Steps        []StepDetail    `json:"steps"`
		Comments     []CommentDetail `json:"comments"`
		LikeCount    int64           `json:"like_count"`
		CommentCount int64           `json:"comment_count"`
		ShareCount   int64           `json:"share_count"`
		Viewer       ViewerFlags     `json:"viewer"`
	}

	FeedItem struct {
		RecipeSummary
		Author    Author `json:"author"`
		LikeCount int64  `json:"like_count"`
	}

	FeedResponse struct {
		Recipes []FeedItem `json:"recipes"`
		Total   int64      `json:"total"`
	}
)

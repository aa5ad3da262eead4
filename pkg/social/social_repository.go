package social

import (
	"context"

	"Go-Recipe-Hub/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	// SocialRepository owns the per-user link tables around a recipe.
	// It also serves the counters and viewer flags of the recipe detail view.
	SocialRepository interface {
		ToggleLike(ctx context.Context, userID, recipeID uint) (bool, error)
		CountLikes(ctx context.Context, recipeID uint) (int64, error)
		CountLikesByRecipes(ctx context.Context, recipeIDs []uint) (map[uint]int64, error)
		HasLiked(ctx context.Context, userID, recipeID uint) (bool, error)

		ToggleSave(ctx context.Context, userID, recipeID uint) (bool, error)
		HasSaved(ctx context.Context, userID, recipeID uint) (bool, error)
		ListSavedRecipes(ctx context.Context, userID uint, page, limit int) ([]*entities.Recipe, int64, error)

		ToggleFollow(ctx context.Context, followerID, followingID uint) (bool, error)
		IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error)
		CountFollowers(ctx context.Context, userID uint) (int64, error)

		AddShare(ctx context.Context, userID, recipeID uint) error
		CountShares(ctx context.Context, recipeID uint) (int64, error)

		CreateComment(ctx context.Context, comment *entities.RecipeComment) error
		GetCommentByID(ctx context.Context, id uint) (*entities.RecipeComment, error)
		DeleteComment(ctx context.Context, id uint) error
		ListComments(ctx context.Context, recipeID uint) ([]*entities.RecipeComment, error)
		CountComments(ctx context.Context, recipeID uint) (int64, error)

		// AddReport reports whether a new report row was written.
		AddReport(ctx context.Context, report *entities.RecipeReport) (bool, error)
	}

	socialRepository struct {
		db *gorm.DB
	}
)

func NewSocialRepository(db *gorm.DB) SocialRepository {
	return &socialRepository{db: db}
}

// toggle removes the row matching query, or inserts row when none matched. It returns the new state.
func toggle(db *gorm.DB, row any, query string, args ...any) (bool, error) {
	var on bool
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where(query, args...).Delete(row)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			on = false
			return nil
		}
		on = true
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error
	})
	return on, err
}

func exists(db *gorm.DB, model any, query string, args ...any) (bool, error) {
	var n int64
	if err := db.Model(model).Where(query, args...).Limit(1).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func countByRecipe(db *gorm.DB, model any, recipeID uint) (int64, error) {
	var n int64
	if err := db.Model(model).Where("recipe_id = ?", recipeID).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *socialRepository) ToggleLike(ctx context.Context, userID, recipeID uint) (bool, error) {
	return toggle(r.db.WithContext(ctx), &entities.RecipeLike{UserID: userID, RecipeID: recipeID},
		"user_id = ? AND recipe_id = ?", userID, recipeID)
}

func (r *socialRepository) CountLikes(ctx context.Context, recipeID uint) (int64, error) {
	return countByRecipe(r.db.WithContext(ctx), &entities.RecipeLike{}, recipeID)
}

func (r *socialRepository) CountLikesByRecipes(ctx context.Context, recipeIDs []uint) (map[uint]int64, error) {
	result := make(map[uint]int64, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		RecipeID uint
		Total    int64
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeLike{}).
		Select("recipe_id, count(*) AS total").
		Where("recipe_id IN ?", recipeIDs).
		Group("recipe_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.RecipeID] = row.Total
	}
	return result, nil
}

func (r *socialRepository) HasLiked(ctx context.Context, userID, recipeID uint) (bool, error) {
	return exists(r.db.WithContext(ctx), &entities.RecipeLike{}, "user_id = ? AND recipe_id = ?", userID, recipeID)
}

func (r *socialRepository) ToggleSave(ctx context.Context, userID, recipeID uint) (bool, error) {
	return toggle(r.db.WithContext(ctx), &entities.RecipeBookmark{UserID: userID, RecipeID: recipeID},
		"user_id = ? AND recipe_id = ?", userID, recipeID)
}

func (r *socialRepository) HasSaved(ctx context.Context, userID, recipeID uint) (bool, error) {
	return exists(r.db.WithContext(ctx), &entities.RecipeBookmark{}, "user_id = ? AND recipe_id = ?", userID, recipeID)
}

// ListSavedRecipes returns the user's notebook, most recently saved first.
func (r *socialRepository) ListSavedRecipes(ctx context.Context, userID uint, page, limit int) ([]*entities.Recipe, int64, error) {
	saved := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&entities.Recipe{}).
			Joins("JOIN recipe_bookmarks ON recipe_bookmarks.recipe_id = recipes.id").
			Where("recipe_bookmarks.user_id = ?", userID)
	}

	var count int64
	if err := saved().Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var recipes []*entities.Recipe
	if err := saved().
		Select("recipes.*").
		Order("recipe_bookmarks.created_at desc").
		Order("recipe_bookmarks.id desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}
	return recipes, count, nil
}

func (r *socialRepository) ToggleFollow(ctx context.Context, followerID, followingID uint) (bool, error) {
	return toggle(r.db.WithContext(ctx), &entities.Follow{FollowerID: followerID, FollowingID: followingID},
		"follower_id = ? AND following_id = ?", followerID, followingID)
}

func (r *socialRepository) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	return exists(r.db.WithContext(ctx), &entities.Follow{}, "follower_id = ? AND following_id = ?", followerID, followingID)
}

func (r *socialRepository) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&entities.Follow{}).Where("following_id = ?", userID).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// AddShare records at most one share per user and recipe.
func (r *socialRepository) AddShare(ctx context.Context, userID, recipeID uint) error {
	share := entities.RecipeShare{UserID: userID, RecipeID: recipeID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&share).Error
}

func (r *socialRepository) CountShares(ctx context.Context, recipeID uint) (int64, error) {
	return countByRecipe(r.db.WithContext(ctx), &entities.RecipeShare{}, recipeID)
}

func (r *socialRepository) CreateComment(ctx context.Context, comment *entities.RecipeComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *socialRepository) GetCommentByID(ctx context.Context, id uint) (*entities.RecipeComment, error) {
	var comment entities.RecipeComment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *socialRepository) DeleteComment(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.RecipeComment{}).Error
}

// ListComments returns comments newest first.
func (r *socialRepository) ListComments(ctx context.Context, recipeID uint) ([]*entities.RecipeComment, error) {
	var comments []*entities.RecipeComment
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("created_at desc").
		Order("id desc").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *socialRepository) CountComments(ctx context.Context, recipeID uint) (int64, error) {
	return countByRecipe(r.db.WithContext(ctx), &entities.RecipeComment{}, recipeID)
}

func (r *socialRepository) AddReport(ctx context.Context, report *entities.RecipeReport) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(report)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

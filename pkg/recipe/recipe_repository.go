package recipe

import (
	"context"

	"Go-Recipe-Hub/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	// RecipeRepository exposes single-table operations only; callers sequence them.
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, id uint) (*entities.Recipe, error)
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error
		UpdateRecipeThumbnail(ctx context.Context, id uint, thumbnail *string) error
		ListRecipes(ctx context.Context, page, limit int) ([]*entities.Recipe, int64, error)
		DeleteRecipeCascade(ctx context.Context, id uint) error

		IngredientTable() NameTable
		TypeTable() NameTable
		GetIngredientsByIDs(ctx context.Context, ids []uint) (map[uint]*entities.IngredientMaster, error)
		GetTypesByIDs(ctx context.Context, ids []uint) (map[uint]*entities.RecipeType, error)

		AddRecipeIngredient(ctx context.Context, recipeID, ingredientID uint) error
		GetRecipeIngredients(ctx context.Context, recipeID uint) ([]*entities.RecipeIngredient, error)
		DeleteRecipeIngredients(ctx context.Context, recipeID uint) error
		AddRecipeType(ctx context.Context, recipeID, typeID uint) error
		GetRecipeTypes(ctx context.Context, recipeID uint) ([]*entities.RecipeRecipeType, error)
		DeleteRecipeTypes(ctx context.Context, recipeID uint) error

		CreateStep(ctx context.Context, step *entities.RecipeStep) error
		GetSteps(ctx context.Context, recipeID uint) ([]*entities.RecipeStep, error)
		DeleteStep(ctx context.Context, recipeID uint, stepNumber int) error
		DeleteSteps(ctx context.Context, recipeID uint) error

		CreateMedia(ctx context.Context, media *entities.Media) error
		GetMediaByIDs(ctx context.Context, ids []uint) (map[uint]*entities.Media, error)
		FindMediaByURL(ctx context.Context, url string) (*entities.Media, error)
		DeleteMedia(ctx context.Context, ids []uint) error
		AddStepMedia(ctx context.Context, link *entities.RecipeStepMedia) error
		GetStepMedia(ctx context.Context, recipeID uint) ([]*entities.RecipeStepMedia, error)
		DeleteStepMedia(ctx context.Context, recipeID uint, stepNumber int) error
		DeleteAllStepMedia(ctx context.Context, recipeID uint) error
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id uint) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	res := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("id = ?", recipe.ID).
		Select("name", "description", "cook_time", "level", "step_number", "thumbnail", "updated_at").
		Updates(recipe)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *recipeRepository) UpdateRecipeThumbnail(ctx context.Context, id uint, thumbnail *string) error {
	res := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("id = ?", id).
		Update("thumbnail", thumbnail)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *recipeRepository) ListRecipes(ctx context.Context, page, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).Model(&entities.Recipe{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Offset(offset).
		Limit(limit).
		Order("created_at desc").
		Order("id desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

// DeleteRecipeCascade removes every row that exists only for the recipe, then the recipe itself.
// Ingredient, type and media rows are shared and kept.
func (r *recipeRepository) DeleteRecipeCascade(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	dependents := []any{
		&entities.RecipeIngredient{},
		&entities.RecipeRecipeType{},
		&entities.RecipeStepMedia{},
		&entities.RecipeStep{},
		&entities.RecipeLike{},
		&entities.RecipeBookmark{},
		&entities.RecipeShare{},
		&entities.RecipeComment{},
		&entities.RecipeReport{},
	}
	for _, model := range dependents {
		if err := db.Where("recipe_id = ?", id).Delete(model).Error; err != nil {
			return err
		}
	}
	return db.Where("id = ?", id).Delete(&entities.Recipe{}).Error
}

func (r *recipeRepository) IngredientTable() NameTable {
	return ingredientTable{db: r.db}
}

func (r *recipeRepository) TypeTable() NameTable {
	return recipeTypeTable{db: r.db}
}

func (r *recipeRepository) GetIngredientsByIDs(ctx context.Context, ids []uint) (map[uint]*entities.IngredientMaster, error) {
	result := make(map[uint]*entities.IngredientMaster, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var rows []*entities.IngredientMaster
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.ID] = row
	}
	return result, nil
}

func (r *recipeRepository) GetTypesByIDs(ctx context.Context, ids []uint) (map[uint]*entities.RecipeType, error) {
	result := make(map[uint]*entities.RecipeType, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var rows []*entities.RecipeType
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.ID] = row
	}
	return result, nil
}

func (r *recipeRepository) AddRecipeIngredient(ctx context.Context, recipeID, ingredientID uint) error {
	link := entities.RecipeIngredient{RecipeID: recipeID, IngredientID: ingredientID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
}

func (r *recipeRepository) GetRecipeIngredients(ctx context.Context, recipeID uint) ([]*entities.RecipeIngredient, error) {
	var links []*entities.RecipeIngredient
	if err := r.db.WithContext(ctx).Where("recipe_id = ?", recipeID).Order("id asc").Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

func (r *recipeRepository) DeleteRecipeIngredients(ctx context.Context, recipeID uint) error {
	return r.db.WithContext(ctx).Where("recipe_id = ?", recipeID).Delete(&entities.RecipeIngredient{}).Error
}

func (r *recipeRepository) AddRecipeType(ctx context.Context, recipeID, typeID uint) error {
	link := entities.RecipeRecipeType{RecipeID: recipeID, RecipeTypeID: typeID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
}

func (r *recipeRepository) GetRecipeTypes(ctx context.Context, recipeID uint) ([]*entities.RecipeRecipeType, error) {
	var links []*entities.RecipeRecipeType
	if err := r.db.WithContext(ctx).Where("recipe_id = ?", recipeID).Order("id asc").Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

func (r *recipeRepository) DeleteRecipeTypes(ctx context.Context, recipeID uint) error {
	return r.db.WithContext(ctx).Where("recipe_id = ?", recipeID).Delete(&entities.RecipeRecipeType{}).Error
}

// CreateStep is keyed by (recipe_id, step_number); re-running it rewrites the instruction.
func (r *recipeRepository) CreateStep(ctx context.Context, step *entities.RecipeStep) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "recipe_id"}, {Name: "step_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"instruction", "updated_at"}),
	}).Create(step).Error
}

func (r *recipeRepository) GetSteps(ctx context.Context, recipeID uint) ([]*entities.RecipeStep, error) {
	var steps []*entities.RecipeStep
	if err := r.db.WithContext(ctx).Where("recipe_id = ?", recipeID).Order("step_number asc").Find(&steps).Error; err != nil {
		return nil, err
	}
	return steps, nil
}

func (r *recipeRepository) DeleteStep(ctx context.Context, recipeID uint, stepNumber int) error {
	return r.db.WithContext(ctx).
		Where("recipe_id = ? AND step_number = ?", recipeID, stepNumber).
		Delete(&entities.RecipeStep{}).Error
}

func (r *recipeRepository) DeleteSteps(ctx context.Context, recipeID uint) error {
	return r.db.WithContext(ctx).Where("recipe_id = ?", recipeID).Delete(&entities.RecipeStep{}).Error
}

func (r *recipeRepository) CreateMedia(ctx context.Context, media *entities.Media) error {
	if (media.ImageURL == nil) == (media.VideoURL == nil) {
		return errMediaShape
	}
	return r.db.WithContext(ctx).Create(media).Error
}

func (r *recipeRepository) GetMediaByIDs(ctx context.Context, ids []uint) (map[uint]*entities.Media, error) {
	result := make(map[uint]*entities.Media, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var rows []*entities.Media
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.ID] = row
	}
	return result, nil
}

// FindMediaByURL tries the image column first, then the video column.
func (r *recipeRepository) FindMediaByURL(ctx context.Context, url string) (*entities.Media, error) {
	for _, column := range []string{"image_url", "video_url"} {
		var media entities.Media
		res := r.db.WithContext(ctx).Where(column+" = ?", url).Order("id asc").Limit(1).Find(&media)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected > 0 {
			return &media, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *recipeRepository) DeleteMedia(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&entities.Media{}).Error
}

func (r *recipeRepository) AddStepMedia(ctx context.Context, link *entities.RecipeStepMedia) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(link).Error
}

// GetStepMedia loads every step media link of the recipe in one query.
func (r *recipeRepository) GetStepMedia(ctx context.Context, recipeID uint) ([]*entities.RecipeStepMedia, error) {
	var links []*entities.RecipeStepMedia
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("display_order asc").
		Order("id asc").
		Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

func (r *recipeRepository) DeleteStepMedia(ctx context.Context, recipeID uint, stepNumber int) error {
	return r.db.WithContext(ctx).
		Where("recipe_id = ? AND step_number = ?", recipeID, stepNumber).
		Delete(&entities.RecipeStepMedia{}).Error
}

func (r *recipeRepository) DeleteAllStepMedia(ctx context.Context, recipeID uint) error {
	return r.db.WithContext(ctx).Where("recipe_id = ?", recipeID).Delete(&entities.RecipeStepMedia{}).Error
}

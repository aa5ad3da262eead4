package recipe

import (
	"context"

	"Go-Recipe-Hub/entities"

	"gorm.io/gorm"
)

// NameTable is a master table keyed by a normalized natural name.
type NameTable interface {
	FindByNormalized(ctx context.Context, normalized string) (uint, bool, error)
	Insert(ctx context.Context, name, normalized string) (uint, error)
}

type ingredientTable struct {
	db *gorm.DB
}

func (t ingredientTable) FindByNormalized(ctx context.Context, normalized string) (uint, bool, error) {
	var row entities.IngredientMaster
	res := t.db.WithContext(ctx).Where("normalized_name = ?", normalized).Limit(1).Find(&row)
	if res.Error != nil {
		return 0, false, res.Error
	}
	return row.ID, res.RowsAffected > 0, nil
}

func (t ingredientTable) Insert(ctx context.Context, name, normalized string) (uint, error) {
	row := entities.IngredientMaster{Name: name, NormalizedName: normalized}
	if err := t.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, err
	}
	return row.ID, nil
}

type recipeTypeTable struct {
	db *gorm.DB
}

func (t recipeTypeTable) FindByNormalized(ctx context.Context, normalized string) (uint, bool, error) {
	var row entities.RecipeType
	res := t.db.WithContext(ctx).Where("normalized_name = ?", normalized).Limit(1).Find(&row)
	if res.Error != nil {
		return 0, false, res.Error
	}
	return row.ID, res.RowsAffected > 0, nil
}

func (t recipeTypeTable) Insert(ctx context.Context, name, normalized string) (uint, error) {
	row := entities.RecipeType{Content: name, NormalizedName: normalized}
	if err := t.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, err
	}
	return row.ID, nil
}

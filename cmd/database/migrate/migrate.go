package migration

import (
	"fmt"

	"Go-Recipe-Hub/entities"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Models lists every table of the schema in dependency order.
func Models() []any {
	return []any{
		&entities.User{},
		&entities.Follow{},
		&entities.Recipe{},
		&entities.IngredientMaster{},
		&entities.RecipeIngredient{},
		&entities.RecipeType{},
		&entities.RecipeRecipeType{},
		&entities.RecipeStep{},
		&entities.Media{},
		&entities.RecipeStepMedia{},
		&entities.RecipeLike{},
		&entities.RecipeBookmark{},
		&entities.RecipeShare{},
		&entities.RecipeComment{},
		&entities.RecipeReport{},
	}
}

func Migrate(db *gorm.DB, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, model := range Models() {
		if err := db.AutoMigrate(model); err != nil {
			logger.Error("migration failed", zap.String("model", fmt.Sprintf("%T", model)), zap.Error(err))
			return fmt.Errorf("migrate %T: %w", model, err)
		}
	}

	logger.Info("database migration complete", zap.Int("tables", len(Models())))
	return nil
}

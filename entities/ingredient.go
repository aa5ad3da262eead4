package entities

// IngredientMaster is shared by every recipe; deleting a recipe only removes its links.
type IngredientMaster struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Name           string `gorm:"not null" json:"name"`
	NormalizedName string `gorm:"not null;uniqueIndex" json:"-"`

	Timestamp
}

func (IngredientMaster) TableName() string {
	return "ingredients"
}

type RecipeIngredient struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	RecipeID     uint `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID uint `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"ingredient_id"`

	Timestamp
}

type RecipeType struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Content        string `gorm:"not null" json:"content"`
	NormalizedName string `gorm:"not null;uniqueIndex" json:"-"`

	Timestamp
}

type RecipeRecipeType struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	RecipeID     uint `gorm:"not null;uniqueIndex:idx_recipe_recipe_type" json:"recipe_id"`
	RecipeTypeID uint `gorm:"not null;uniqueIndex:idx_recipe_recipe_type" json:"recipe_type_id"`

	Timestamp
}

package entities

type RecipeLike struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_recipe_like" json:"user_id"`
	RecipeID uint `gorm:"not null;uniqueIndex:idx_recipe_like;index" json:"recipe_id"`

	Timestamp
}

// RecipeBookmark is a recipe saved into the user's notebook.
type RecipeBookmark struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_recipe_bookmark" json:"user_id"`
	RecipeID uint `gorm:"not null;uniqueIndex:idx_recipe_bookmark;index" json:"recipe_id"`

	Timestamp
}

type RecipeShare struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_recipe_share" json:"user_id"`
	RecipeID uint `gorm:"not null;uniqueIndex:idx_recipe_share;index" json:"recipe_id"`

	Timestamp
}

type RecipeComment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"not null" json:"user_id"`
	RecipeID uint   `gorm:"not null;index" json:"recipe_id"`
	Content  string `gorm:"type:text;not null" json:"content"`

	Timestamp
}

type RecipeReport struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"not null;uniqueIndex:idx_recipe_report" json:"user_id"`
	RecipeID uint   `gorm:"not null;uniqueIndex:idx_recipe_report;index" json:"recipe_id"`
	Reason   string `gorm:"type:text" json:"reason"`

	Timestamp
}

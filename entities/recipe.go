// File: entities/recipe.go
package entities

type Recipe struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	UserID      uint    `gorm:"not null;index" json:"user_id"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Thumbnail   *string `json:"thumbnail,omitempty"`
	CookTime    int     `json:"cook_time"`
	Level       string  `json:"level"`
	StepNumber  int     `json:"step_number"`

	Timestamp
}

type RecipeStep struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	RecipeID    uint   `gorm:"not null;uniqueIndex:idx_recipe_step" json:"recipe_id"`
	StepNumber  int    `gorm:"not null;uniqueIndex:idx_recipe_step" json:"step_number"`
	Instruction string `gorm:"type:text" json:"instruction"`

	Timestamp
}

// Media holds exactly one of ImageURL or VideoURL.
type Media struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	ImageURL *string `gorm:"index" json:"image_url,omitempty"`
	VideoURL *string `gorm:"index" json:"video_url,omitempty"`

	Timestamp
}

func (Media) TableName() string {
	return "media"
}

// URL returns whichever of the two fields is populated.
func (m Media) URL() (string, bool) {
	if m.ImageURL != nil {
		return *m.ImageURL, false
	}
	if m.VideoURL != nil {
		return *m.VideoURL, true
	}
	return "", false
}

type RecipeStepMedia struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	RecipeID     uint `gorm:"not null;index;uniqueIndex:idx_step_media_order" json:"recipe_id"`
	StepNumber   int  `gorm:"not null;uniqueIndex:idx_step_media_order" json:"step_number"`
	MediaID      uint `gorm:"not null" json:"media_id"`
	DisplayOrder int  `gorm:"not null;uniqueIndex:idx_step_media_order" json:"display_order"`

	Timestamp
}

func (RecipeStepMedia) TableName() string {
	return "recipe_step_media"
}

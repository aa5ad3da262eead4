package utils

import (
	"strings"

	"Go-Recipe-Hub/domain"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func InitValidator() {
	if Validate != nil {
		return
	}
	v := validator.New()
	if err := v.RegisterValidation("recipe_level", func(fl validator.FieldLevel) bool {
		return IsRecipeLevel(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	Validate = v
}

// IsRecipeLevel reports whether level is one of the recognized difficulty levels, ignoring case.
func IsRecipeLevel(level string) bool {
	level = strings.TrimSpace(level)
	for _, known := range domain.RecipeLevels {
		if strings.EqualFold(level, known) {
			return true
		}
	}
	return false
}

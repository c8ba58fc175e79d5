package api

import (
	"github.com/recipebox/recipebox-server/internal/service"
)

// Services bundles the application services the API depends on.
type Services struct {
	User       *service.UserService
	Recipe     *service.RecipeService
	Tag        *service.TagService
	Ingredient *service.IngredientService
}

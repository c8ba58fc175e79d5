package providers

import (
	"github.com/samber/do/v2"

	"github.com/recipebox/recipebox-server/internal/api"
	"github.com/recipebox/recipebox-server/internal/logger"
	"github.com/recipebox/recipebox-server/internal/media/images"
	"github.com/recipebox/recipebox-server/internal/service"
)

// ProvideServices wires the application services.
func ProvideServices(i do.Injector) (*api.Services, error) {
	handle := do.MustInvoke[*StoreHandle](i)
	imgs := do.MustInvoke[*images.Storage](i)
	log := do.MustInvoke[*logger.Logger](i)

	return &api.Services{
		User:       service.NewUserService(handle.Store, log.Logger),
		Recipe:     service.NewRecipeService(handle.Store, imgs, log.Logger),
		Tag:        service.NewTagService(handle.Store, log.Logger),
		Ingredient: service.NewIngredientService(handle.Store, log.Logger),
	}, nil
}

// Package providers contains the dependency injection providers that
// assemble the server at startup.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/recipebox/recipebox-server/internal/config"
)

// ProvideConfig loads the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

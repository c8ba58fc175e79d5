// Package di assembles the application's dependency graph.
package di

import (
	"github.com/samber/do/v2"

	"github.com/recipebox/recipebox-server/internal/di/providers"
)

// NewContainer registers every provider on a fresh injector.
func NewContainer() do.Injector {
	injector := do.New()

	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideImageStorage)
	do.Provide(injector, providers.ProvideServices)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap forces construction of the long-lived components, starting the
// HTTP server.
func Bootstrap(injector do.Injector) error {
	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}
	return nil
}

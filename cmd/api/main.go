// Command api runs the RecipeBox HTTP server.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/recipebox/recipebox-server/internal/di"
	"github.com/recipebox/recipebox-server/internal/logger"
)

func main() {
	injector := di.NewContainer()

	log, err := do.Invoke[*logger.Logger](injector)
	if err != nil {
		// Config or logger construction failed before logging was available.
		println("startup failed:", err.Error())
		os.Exit(1)
	}

	if err := di.Bootstrap(injector); err != nil {
		log.WithError(err).Fatal("startup failed")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig.String())

	// Services implementing do.Shutdowner stop in reverse dependency order.
	if err := injector.Shutdown(); err != nil {
		log.WithError(err).Error("shutdown error")
	}

	log.Info("goodbye")
}

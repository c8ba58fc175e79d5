package providers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/samber/do/v2"

	"github.com/recipebox/recipebox-server/internal/api"
	"github.com/recipebox/recipebox-server/internal/config"
	"github.com/recipebox/recipebox-server/internal/logger"
)

const shutdownTimeout = 10 * time.Second

// HTTPServerHandle owns the listening HTTP server.
type HTTPServerHandle struct {
	Server *http.Server
	logger *logger.Logger
}

// Shutdown drains in-flight requests and stops the listener.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	h.logger.Info("http server stopping")
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer builds the API server and starts listening in the
// background. Startup failures surface through the logger since
// ListenAndServe runs after the provider returns.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	services := do.MustInvoke[*api.Services](i)
	log := do.MustInvoke[*logger.Logger](i)

	apiServer := api.NewServer(cfg, services, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      apiServer.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server failed")
		}
	}()

	return &HTTPServerHandle{
		Server: srv,
		logger: log,
	}, nil
}

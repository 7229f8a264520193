// Package rest is the HTTP boundary: routing, auth middleware, request
// decoding and error translation. Handlers stay thin; all rules live in
// the services.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmarchuk/estatedesk/internal/logging"
	"github.com/dmarchuk/estatedesk/internal/server/config"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	config *config.Config
	logger logging.Logger
	engine *gin.Engine
}

func NewServer(cfg *config.Config, logger logging.Logger, h Handlers) *Server {
	return &Server{
		config: cfg,
		logger: logger,
		engine: NewRouter(h, []byte(cfg.SecretKey), logger),
	}
}

// Run serves until the context is cancelled, then drains in-flight
// requests before returning.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.config.EndpointAddrHTTP,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "http server stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

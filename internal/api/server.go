// Package api exposes the settlement service over HTTP. Callers are
// authenticated by the gateway in front of it, which passes the identity on
// in the X-Signer header.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/shekel-labs/shekel-settlement/internal/config"
)

const (
	limiterCleanupInterval = time.Minute
	limiterIdleTTL         = 10 * time.Minute
)

type Server struct {
	httpServer *http.Server
	limiter    *RateLimiter
}

func New(cfg *config.ServerConfig, service SettlementService, opts ...RouterOption) *Server {
	handler := NewHandler(service)
	limiter := NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)

	return &Server{
		limiter: limiter,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      NewRouter(handler, limiter, opts...),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

// Start blocks until the server stops. A graceful shutdown is not an error.
func (s *Server) Start() error {
	stopCleanup := s.limiter.StartCleanup(limiterCleanupInterval, limiterIdleTTL)
	defer stopCleanup()

	log.Info().Msgf("Starting api server on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

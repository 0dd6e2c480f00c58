package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type routerOptions struct {
	devRoutes bool
}

type RouterOption func(*routerOptions)

// WithDevRoutes mounts /v1/dev, which provisions and funds token accounts
// directly. Only for servers backed by the in-memory store.
func WithDevRoutes() RouterOption {
	return func(o *routerOptions) {
		o.devRoutes = true
	}
}

func NewRouter(h *Handler, limiter *RateLimiter, opts ...RouterOption) http.Handler {
	var o routerOptions
	for _, opt := range opts {
		opt(&o)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(traceMiddleware)
	r.Use(metricsMiddleware)

	r.Get("/healthcheck", h.HealthCheck)

	r.Route("/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(limiter.Handler)

			r.Get("/network", h.GetNetworkConfig)
			r.Get("/stats", h.GetStats)
			r.Get("/settlements/{id}", h.GetSettlement)
			r.Get("/accounts", h.ListTokenAccounts)
			r.Get("/accounts/{address}", h.GetTokenAccount)

			if o.devRoutes {
				r.Post("/dev/accounts", h.CreateTokenAccount)
				r.Post("/dev/accounts/{address}/credit", h.CreditTokenAccount)
			}
		})

		r.Group(func(r chi.Router) {
			r.Use(requireSigner)
			r.Use(limiter.Handler)

			r.Post("/network", h.Initialize)
			r.Put("/network", h.SetNetworkConfig)
			r.Post("/transact", h.Transact)
			r.Post("/admin/pool/transfer", h.TransferPool)
			r.Post("/admin/treasury/transfer", h.TransferTreasury)
		})
	})

	return r
}

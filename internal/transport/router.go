package transport

import (
	"net/http"

	"storefront-be/internal/logger"
	"storefront-be/internal/middleware"

	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

type RouterConfig struct {
	JWTSecret   string
	RateLimiter *middleware.RateLimiter

	// GraphQL serves /query.
	GraphQL  http.Handler
	Payments *PaymentHandler

	// Playground mounts the GraphQL playground for admins.
	Playground bool
}

func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RealIP)
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Middleware)
		}

		r.Handle("/query", cfg.GraphQL)
		r.With(middleware.RequireAuth).Post("/api/payments/mock", cfg.Payments.MockPayment)

		if cfg.Playground {
			r.With(middleware.RequireAdmin).Get("/playground", playground.Handler("GraphQL Playground", "/query"))
		}
	})

	return r
}

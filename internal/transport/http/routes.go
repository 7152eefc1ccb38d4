package http

import (
	"github.com/go-chi/chi/v5"

	"cleanapi/internal/middleware"
)

// APIControllers groups the controllers served under /api.
type APIControllers struct {
	Health    Controller
	Liveness  Controller
	Version   Controller
	ClientLog Controller
}

// Routes sets up the API routes. Failures escaping a controller go to next.
func (c APIControllers) Routes(next NextFunc) chi.Router {
	r := chi.NewRouter()

	r.Get("/health", RequestHandler(c.Health, next))
	r.Get("/health/live", RequestHandler(c.Liveness, next))
	r.Get("/version", RequestHandler(c.Version, next))

	r.With(middleware.ContentTypeValidator("application/json")).
		Post("/logs", RequestHandler(c.ClientLog, next))

	return r
}

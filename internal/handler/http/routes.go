package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Get("/api/ping", h.ping)
	})

	// sync API, one route tree per entity collection
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/api/sync/{entity}", func(r chi.Router) {
			r.Get("/", h.pull)
			r.Post("/", h.applyCreate)
			r.Put("/{recordID}", h.applyUpdate)
			r.Delete("/{recordID}", h.applyDelete)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

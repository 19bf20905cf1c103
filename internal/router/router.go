package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"libris/internal/handlers"
	"libris/internal/middleware"
	"libris/internal/web"
)

func New(queryHandler *handlers.QueryHandler, frontendURL string) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)

	// Query rate limiter (30 req/min per IP)
	queryLimiter := middleware.NewRateLimiter(30, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/openai", func(r chi.Router) {
			r.Use(queryLimiter.Middleware)
			r.Post("/response", queryHandler.Respond)
		})
	})

	// Embedded browser widget
	r.Handle("/*", web.Handler())

	// The widget may also be served from a separate dev server. No cookies
	// cross the API, so credentials stay off and wildcard origins are safe.
	origins := []string{"*"}
	if frontendURL != "" {
		origins = []string{frontendURL}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	return c.Handler(r)
}

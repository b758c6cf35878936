/**
 * @description
 * This file sets up the HTTP router for the onboarding-service using the
 * chi router. It defines the API routes and applies necessary middleware
 * such as CORS, logging, and authentication.
 *
 * @dependencies
 * - github.com/go-chi/chi/v5: For the HTTP router.
 * - github.com/go-chi/cors: For CORS middleware.
 */
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/vayva/onboarding-service/pkg/middleware"
)

// NewRouter creates and configures the main router for the service.
func NewRouter(
	onboardingHandler *OnboardingHandler,
	templateHandler *TemplateHandler,
	bankHandler *BankHandler,
	jwtSecret string,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Wizard syncs fire at most once per step transition, so the limit only
	// has to stop runaway clients.
	syncLimiter := middleware.NewRateLimiter(20, 3*time.Second)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(jwtSecret))

		r.With(syncLimiter.Handler).Post("/onboarding/sync", onboardingHandler.SyncOnboarding)
		r.Get("/templates", templateHandler.ListTemplates)
		r.Get("/templates/recommend", templateHandler.RecommendTemplate)
		r.Get("/banks", bankHandler.ListBanks)
	})

	return r
}

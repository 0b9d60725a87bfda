// Файл: internal/api/router.go
package api

import (
	"github.com/go-chi/chi/v5"

	"spkbot/internal/config"
	"spkbot/internal/db"
)

// ApiDependencies содержит зависимости для обработчиков API.
type ApiDependencies struct {
	Config    *config.Config
	SecretKey string
	Store     *db.Store
}

// SetupRoutes настраивает все маршруты для API.
func SetupRoutes(r *chi.Mux, deps ApiDependencies) {
	r.Get("/healthz", deps.Healthz)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(deps.SecretKey))

		r.Route("/api/admin", func(r chi.Router) {
			r.Get("/stats", deps.GetStats)
			r.Get("/users", deps.GetUsers)
			r.Get("/user/{id}/history", deps.GetUserHistory)
		})
	})
}

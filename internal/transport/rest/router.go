package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/school-management/internal/auth"
	"github.com/frahmantamala/school-management/internal/transport/middleware"
	"github.com/frahmantamala/school-management/internal/transport/swagger"
	"github.com/frahmantamala/school-management/internal/user"
	"github.com/go-chi/chi"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, userHandler *user.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		// Health check routes
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if authHandler != nil {
			r.Post("/auth/login", authHandler.Login)

			// Protected routes that require a verified token plus a fresh,
			// active user record.
			r.Group(func(pr chi.Router) {
				pr.Use(authHandler.AuthMiddleware)

				// change-password stays reachable for first-login users; it
				// is the only operation they may perform.
				pr.Post("/auth/change-password", authHandler.ChangePassword)
				pr.Get("/auth/me", authHandler.Me)
				pr.Post("/auth/logout", authHandler.Logout)

				pr.Group(func(ar chi.Router) {
					ar.Use(authHandler.RequirePasswordChanged)
					ar.Use(authHandler.RequireRoles(auth.RoleSuperadmin, auth.RoleAdmin))

					ar.Post("/auth/admin/reset-password", authHandler.AdminResetPassword)

					if userHandler != nil {
						ar.Post("/users", userHandler.CreateUser)
						ar.Get("/users", userHandler.ListUsers)
					}
				})
			})
		}
	})
}

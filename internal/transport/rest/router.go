package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/access-management/internal/auth"
	"github.com/frahmantamala/access-management/internal/management"
	"github.com/frahmantamala/access-management/internal/permission"
	"github.com/frahmantamala/access-management/internal/role"
	"github.com/frahmantamala/access-management/internal/transport/middleware"
	"github.com/frahmantamala/access-management/internal/transport/swagger"
	"github.com/frahmantamala/access-management/internal/user"
	"github.com/go-chi/chi"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, allowedOrigins string, authHandler *auth.Handler, guards *auth.Guards, userHandler *user.Handler, roleHandler *role.Handler, permissionHandler *permission.Handler, managementHandler *management.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check routes
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Authentication
		r.Post("/login", authHandler.Login)

		r.Route("/users", func(ur chi.Router) {
			ur.Get("/", userHandler.GetUsers)
			ur.Get("/{id}", userHandler.GetUser)

			ur.Group(func(ar chi.Router) {
				ar.Use(guards.RequireAdministrator())
				ar.Post("/", userHandler.CreateUser)
				ar.Put("/{id}", userHandler.UpdateUser)
				ar.Delete("/{id}", userHandler.DeleteUser)
			})
		})

		r.Route("/roles", func(rr chi.Router) {
			rr.Get("/", roleHandler.GetRoles)
			rr.Get("/{id}", roleHandler.GetRole)

			rr.Group(func(ar chi.Router) {
				ar.Use(guards.RequireAdministrator())
				ar.Post("/", roleHandler.CreateRole)

				// Renaming or deleting the administrator role is rejected
				// before it reaches the service layer.
				ar.Group(func(mr chi.Router) {
					mr.Use(guards.ForbidAdminRoleTarget())
					mr.Put("/{id}", roleHandler.UpdateRole)
					mr.Delete("/{id}", roleHandler.DeleteRole)
				})

				// The administrator role's permission set is immutable
				// through these endpoints.
				ar.Group(func(pr chi.Router) {
					pr.Use(guards.ForbidAdminRoleAssignment())
					pr.Post("/assignPermission", roleHandler.AssignPermission)
					pr.Post("/unassignPermission", roleHandler.UnassignPermission)
				})
			})
		})

		r.Route("/permissions", func(pr chi.Router) {
			pr.Get("/", permissionHandler.GetPermissions)
			pr.Get("/{id}", permissionHandler.GetPermission)

			pr.Group(func(ar chi.Router) {
				ar.Use(guards.RequireAdministrator())
				ar.Post("/", permissionHandler.CreatePermission)
				ar.Put("/{id}", permissionHandler.UpdatePermission)
				ar.Delete("/{id}", permissionHandler.DeletePermission)
			})
		})

		r.Route("/usersManagement", func(mr chi.Router) {
			mr.Use(guards.RequireAdministrator())

			mr.Post("/assignRole", managementHandler.AssignRole)
			mr.Post("/assignPermission", managementHandler.AssignPermission)
			mr.Post("/unassignPermission", managementHandler.UnassignPermission)

			// Stripping the administrator role from a user goes through
			// the same admin-role body check as permission changes.
			mr.Group(func(gr chi.Router) {
				gr.Use(guards.ForbidAdminRoleAssignment())
				gr.Post("/unassignRole", managementHandler.UnassignRole)
			})
		})
	})
}

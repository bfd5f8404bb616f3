package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"

	"github.com/gestion-taller/taller-management/internal/areas"
	"github.com/gestion-taller/taller-management/internal/authz"
	"github.com/gestion-taller/taller-management/internal/clients"
	"github.com/gestion-taller/taller-management/internal/identity"
	"github.com/gestion-taller/taller-management/internal/inventory"
	"github.com/gestion-taller/taller-management/internal/permissions"
	"github.com/gestion-taller/taller-management/internal/projects"
	"github.com/gestion-taller/taller-management/internal/suppliers"
	"github.com/gestion-taller/taller-management/internal/transport/middleware"
	"github.com/gestion-taller/taller-management/internal/transport/swagger"
	"github.com/gestion-taller/taller-management/internal/users"
	"github.com/gestion-taller/taller-management/internal/workshops"
)

// Handlers groups everything the router wires up. All fields are required.
type Handlers struct {
	Permissions *permissions.Handler
	Users       *users.Handler
	Areas       *areas.Handler
	Clients     *clients.Handler
	Projects    *projects.Handler
	Inventory   *inventory.Handler
	Suppliers   *suppliers.Handler
	Workshops   *workshops.Handler
}

// RegisterAllRoutes mounts the full API. Every route under /api/v1 except
// health and ping requires a verified token; mutating routes additionally
// pass through the authorization gate with the capability they demand.
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	sqlxDB *sqlx.DB,
	verifier *identity.Verifier,
	gate *authz.Gate,
	h Handlers,
	allowedOrigins string,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORSWithOrigins(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	stageArea := projects.StageAreaResolver(sqlxDB)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Group(func(pr chi.Router) {
			pr.Use(identity.Middleware(verifier, logger))

			// Effective permissions mirror for the frontend. The handler
			// itself allows self-lookup and gates lookups of other users.
			pr.Get("/permisos-efectivos/{userId}", h.Permissions.GetEffectivePermissions)

			pr.Route("/usuarios", func(ur chi.Router) {
				ur.With(gate.Require(permissions.CapUsersView)).Get("/", h.Users.List)
				ur.With(gate.Require(permissions.CapUsersView)).Get("/{id}", h.Users.Get)
				ur.With(gate.Require(permissions.CapUsersEdit)).Post("/", h.Users.Create)
				ur.With(gate.Require(permissions.CapUsersEdit)).Put("/{id}", h.Users.Update)
				ur.With(gate.Require(permissions.CapUsersEdit)).Delete("/{id}", h.Users.Deactivate)
				ur.With(gate.Require(permissions.CapUsersEdit)).Patch("/{id}/activar", h.Users.Activate)

				// Operator area assignments are a user-administration concern.
				ur.With(gate.Require(permissions.CapUsersView)).Get("/{userId}/areas", h.Areas.ListUserAreas)
				ur.With(gate.Require(permissions.CapUsersEdit)).Post("/{userId}/areas", h.Areas.AssignArea)
				ur.With(gate.Require(permissions.CapUsersEdit)).Delete("/{userId}/areas/{idArea}", h.Areas.RemoveArea)
			})

			pr.With(gate.Require(permissions.CapUsersView)).Get("/roles", h.Users.ListRoles)
			pr.With(gate.Require(permissions.CapUsersView)).Get("/areas", h.Areas.ListAreas)

			pr.Route("/clientes", func(cr chi.Router) {
				cr.With(gate.Require(permissions.CapClientsView)).Get("/", h.Clients.List)
				cr.With(gate.Require(permissions.CapClientsView)).Get("/{id}", h.Clients.Get)
				cr.With(gate.Require(permissions.CapClientsCreate)).Post("/", h.Clients.Create)
				cr.With(gate.Require(permissions.CapClientsEdit)).Put("/{id}", h.Clients.Update)
				cr.With(gate.Require(permissions.CapClientsDelete)).Delete("/{id}", h.Clients.Delete)
			})

			pr.Route("/proyectos", func(proj chi.Router) {
				proj.With(gate.Require(permissions.CapProjectsView)).Get("/", h.Projects.List)
				proj.With(gate.Require(permissions.CapProjectsView)).Get("/{id}", h.Projects.Get)
				proj.With(gate.Require(permissions.CapProjectsCreate)).Post("/", h.Projects.Create)
				proj.With(gate.Require(permissions.CapProjectsEdit)).Put("/{id}", h.Projects.Update)
				proj.With(gate.Require(permissions.CapProjectsDelete)).Delete("/{id}", h.Projects.Cancel)

				proj.With(gate.RequireInArea(permissions.CapProjectsCompleteArea, stageArea)).
					Patch("/{id}/etapas/{etapaId}/completar", h.Projects.CompleteStage)
			})

			pr.Route("/inventario", func(ir chi.Router) {
				ir.With(gate.Require(permissions.CapInventoryView)).Get("/", h.Inventory.List)
				ir.With(gate.Require(permissions.CapInventoryView)).Get("/{id}", h.Inventory.Get)
				ir.With(gate.Require(permissions.CapInventoryCreate)).Post("/", h.Inventory.Create)
				ir.With(gate.Require(permissions.CapInventoryEdit)).Put("/{id}", h.Inventory.Update)
				ir.With(gate.Require(permissions.CapInventoryDelete)).Delete("/{id}", h.Inventory.Delete)
				ir.With(gate.Require(permissions.CapInventoryAdjustStock)).Post("/{id}/ajustes", h.Inventory.AdjustStock)
			})

			pr.Route("/proveedores", func(sr chi.Router) {
				sr.With(gate.Require(permissions.CapSuppliersView)).Get("/", h.Suppliers.List)
				sr.With(gate.Require(permissions.CapSuppliersView)).Get("/{id}", h.Suppliers.Get)
				sr.With(gate.Require(permissions.CapSuppliersCreate)).Post("/", h.Suppliers.Create)
				sr.With(gate.Require(permissions.CapSuppliersEdit)).Put("/{id}", h.Suppliers.Update)
				sr.With(gate.Require(permissions.CapSuppliersDelete)).Delete("/{id}", h.Suppliers.Delete)
			})

			pr.Route("/talleres", func(wr chi.Router) {
				wr.With(gate.Require(permissions.CapWorkshopsView)).Get("/", h.Workshops.List)
				wr.With(gate.Require(permissions.CapWorkshopsView)).Get("/{id}", h.Workshops.Get)
				wr.With(gate.Require(permissions.CapWorkshopsCreate)).Post("/", h.Workshops.Create)
				wr.With(gate.Require(permissions.CapWorkshopsEdit)).Put("/{id}", h.Workshops.Update)
				wr.With(gate.Require(permissions.CapWorkshopsDelete)).Delete("/{id}", h.Workshops.Delete)
			})
		})
	})
}

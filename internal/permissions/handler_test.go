package permissions_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gestion-taller/taller-management/internal"
	"github.com/gestion-taller/taller-management/internal/permissions"
)

var _ = Describe("Effective Permissions Handler", func() {
	var (
		repo    *MockRepository
		handler *permissions.Handler
		router  *chi.Mux
	)

	request := func(callerID int64, target string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/permisos-efectivos/"+target, nil)
		if callerID > 0 {
			req = req.WithContext(internal.ContextWithUserID(req.Context(), callerID))
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	BeforeEach(func() {
		repo = NewMockRepository()
		loader := &MockGrantLoader{grants: []permissions.RoleGrant{
			{RoleID: operatorRoleID, Entry: permissions.CatalogEntry{
				ID: 1, Name: "Ver proyectos",
				Capability: permissions.NewCapability("proyectos", "ver"),
			}},
			{RoleID: operatorRoleID, Entry: permissions.CatalogEntry{
				ID: 2, Name: "Completar etapa de area",
				Capability: permissions.NewCapability("proyectos", "completar_area"),
				AreaScoped: true,
			}},
			{RoleID: supervisorRoleID, Entry: permissions.CatalogEntry{
				ID: 3, Name: "Ver usuarios",
				Capability: permissions.NewCapability("usuarios", "ver"),
			}},
		}}
		holder := permissions.NewHolder(loader)
		Expect(holder.Reload(context.Background())).To(Succeed())

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		evaluator := permissions.NewEvaluator(holder, repo, logger)
		handler = permissions.NewHandler(evaluator)

		router = chi.NewRouter()
		router.Get("/permisos-efectivos/{userId}", handler.GetEffectivePermissions)

		repo.subjects[2] = &permissions.Subject{UserID: 2, IsActive: true, RoleID: supervisorRoleID, RoleName: "Supervisor", RoleKind: permissions.KindSupervisor}
		repo.subjects[3] = &permissions.Subject{UserID: 3, IsActive: true, RoleID: operatorRoleID, RoleName: "Operario", RoleKind: permissions.KindOperator}
		repo.areas[3] = []string{"Corte"}
	})

	It("returns the caller's own set with the fixed field names", func() {
		rec := request(3, "3")
		Expect(rec.Code).To(Equal(http.StatusOK))

		var body map[string]json.RawMessage
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		for _, field := range []string{"idUsuario", "idRol", "nombreRol", "esAdmin", "esSupervisor", "esOperario", "esDeposito", "areasAsignadas", "permisos"} {
			Expect(body).To(HaveKey(field))
		}

		var resp permissions.EffectivePermissionsResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.IDUsuario).To(Equal(int64(3)))
		Expect(resp.EsOperario).To(BeTrue())
		Expect(resp.AreasAsignadas).To(ConsistOf("Corte"))
		Expect(resp.Permisos).To(HaveLen(2))
	})

	It("lets a caller with usuarios.ver query another user", func() {
		rec := request(2, "3")
		Expect(rec.Code).To(Equal(http.StatusOK))

		var resp permissions.EffectivePermissionsResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.IDUsuario).To(Equal(int64(3)))
	})

	It("forbids querying another user without usuarios.ver", func() {
		rec := request(3, "2")
		Expect(rec.Code).To(Equal(http.StatusForbidden))
	})

	It("returns 404 for unknown target users", func() {
		rec := request(2, "999")
		Expect(rec.Code).To(Equal(http.StatusNotFound))
	})

	It("returns 401 without an authenticated caller", func() {
		rec := request(0, "3")
		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
	})
})

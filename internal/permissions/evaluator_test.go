package permissions_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gestion-taller/taller-management/internal"
	"github.com/gestion-taller/taller-management/internal/permissions"
)

func TestPermissions(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Permissions Suite")
}

// MockRepository implements permissions.RepositoryAPI for testing
type MockRepository struct {
	subjects   map[int64]*permissions.Subject
	areas      map[int64][]string
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		subjects: make(map[int64]*permissions.Subject),
		areas:    make(map[int64][]string),
	}
}

func (m *MockRepository) GetSubject(_ context.Context, userID int64) (*permissions.Subject, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	subject, ok := m.subjects[userID]
	if !ok {
		return nil, permissions.ErrSubjectNotFound
	}
	return subject, nil
}

func (m *MockRepository) ListAreaNames(_ context.Context, userID int64) ([]string, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.areas[userID], nil
}

func (m *MockRepository) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

// MockGrantLoader implements permissions.GrantLoader for testing
type MockGrantLoader struct {
	grants    []permissions.RoleGrant
	failError error
}

func (m *MockGrantLoader) LoadGrants(_ context.Context) ([]permissions.RoleGrant, error) {
	if m.failError != nil {
		return nil, m.failError
	}
	return m.grants, nil
}

const (
	adminRoleID      int64 = 1
	supervisorRoleID int64 = 2
	operatorRoleID   int64 = 3
	warehouseRoleID  int64 = 4
)

var _ = Describe("Evaluator", func() {
	var (
		repo      *MockRepository
		loader    *MockGrantLoader
		holder    *permissions.Holder
		evaluator *permissions.Evaluator
		ctx       context.Context
	)

	grant := func(roleID int64, module, action string, areaScoped bool) permissions.RoleGrant {
		return permissions.RoleGrant{
			RoleID: roleID,
			Entry: permissions.CatalogEntry{
				Capability: permissions.NewCapability(module, action),
				AreaScoped: areaScoped,
			},
		}
	}

	BeforeEach(func() {
		ctx = context.Background()
		repo = NewMockRepository()
		loader = &MockGrantLoader{grants: []permissions.RoleGrant{
			grant(supervisorRoleID, "proyectos", "ver", false),
			grant(supervisorRoleID, "proyectos", "crear", false),
			grant(supervisorRoleID, "proyectos", "completar_area", true),
			grant(operatorRoleID, "proyectos", "ver", false),
			grant(operatorRoleID, "proyectos", "completar_area", true),
			grant(warehouseRoleID, "inventario", "ajustar_stock", false),
		}}
		holder = permissions.NewHolder(loader)
		Expect(holder.Reload(ctx)).To(Succeed())

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		evaluator = permissions.NewEvaluator(holder, repo, logger)

		repo.subjects[1] = &permissions.Subject{UserID: 1, IsActive: true, RoleID: adminRoleID, RoleName: "Administrador", RoleKind: permissions.KindAdmin}
		repo.subjects[2] = &permissions.Subject{UserID: 2, IsActive: true, RoleID: supervisorRoleID, RoleName: "Supervisor", RoleKind: permissions.KindSupervisor}
		repo.subjects[3] = &permissions.Subject{UserID: 3, IsActive: true, RoleID: operatorRoleID, RoleName: "Operario", RoleKind: permissions.KindOperator}
		repo.subjects[4] = &permissions.Subject{UserID: 4, IsActive: false, RoleID: supervisorRoleID, RoleName: "Supervisor", RoleKind: permissions.KindSupervisor}
		repo.areas[3] = []string{"Corte"}
	})

	Describe("admin bypass", func() {
		It("grants any declared capability", func() {
			allowed, err := evaluator.HasPermission(ctx, 1, "proyectos", "ver", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(allowed).To(BeTrue())
		})

		It("grants capabilities no role was ever granted", func() {
			allowed, err := evaluator.HasPermission(ctx, 1, "inexistente", "purgar", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(allowed).To(BeTrue())
		})

		It("skips the area check entirely", func() {
			allowed, err := evaluator.HasPermission(ctx, 1, "proyectos", "completar_area", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(allowed).To(BeTrue())
		})

		It("does not apply to inactive admins", func() {
			repo.subjects[1].IsActive = false
			allowed, err := evaluator.HasPermission(ctx, 1, "proyectos", "ver", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(allowed).To(BeFalse())
		})
	})

	Describe("catalog grants", func() {
		It("allows a capability granted to the subject's role", func() {
			allowed, err := evaluator.HasPermission(ctx, 2, "proyectos", "crear", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(allowed).To(BeTrue())
		})

		It("denies a capability the role was not granted", func() {
			allowed, err := evaluator.HasPermission(ctx, 2, "proyectos", "eliminar", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(allowed).To(BeFalse())
		})

		It("denies a capability that does not exist in the catalog", func() {
			allowed, err := evaluator.HasPermission(ctx, 2, "nomodulo", "noaccion", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(allowed).To(BeFalse())
		})

		It("is insensitive to case and surrounding whitespace", func() {
			allowed, err := evaluator.HasPermission(ctx, 2, "  Proyectos ", "VER", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(allowed).To(BeTrue())
		})

		It("denies blank module or action", func() {
			allowed, err := evaluator.HasPermission(ctx, 2, "   ", "ver", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(allowed).To(BeFalse())

			allowed, err = evaluator.HasPermission(ctx, 2, "proyectos", "", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(allowed).To(BeFalse())
		})
	})

	Describe("subject state", func() {
		It("denies unknown users without error", func() {
			allowed, err := evaluator.HasPermission(ctx, 999, "proyectos", "ver", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(allowed).To(BeFalse())
		})

		It("denies inactive users even with a granted capability", func() {
			allowed, err := evaluator.HasPermission(ctx, 4, "proyectos", "ver", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(allowed).To(BeFalse())
		})
	})

	Describe("area-scoped capabilities", func() {
		It("allows an operator acting in an assigned area", func() {
			allowed, err := evaluator.HasPermission(ctx, 3, "proyectos", "completar_area", "Corte")
			Expect(err).NotTo(HaveOccurred())
			Expect(allowed).To(BeTrue())
		})

		It("denies an operator acting in an unassigned area", func() {
			allowed, err := evaluator.HasPermission(ctx, 3, "proyectos", "completar_area", "Confección")
			Expect(err).NotTo(HaveOccurred())
			Expect(allowed).To(BeFalse())
		})

		It("matches area names ignoring case and whitespace", func() {
			allowed, err := evaluator.HasPermission(ctx, 3, "proyectos", "completar_area", "  corte ")
			Expect(err).NotTo(HaveOccurred())
			Expect(allowed).To(BeTrue())
		})

		It("denies when the area context is missing", func() {
			allowed, err := evaluator.HasPermission(ctx, 3, "proyectos", "completar_area", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(allowed).To(BeFalse())
		})

		It("denies an operator with no assignments at all", func() {
			repo.areas[3] = nil
			allowed, err := evaluator.HasPermission(ctx, 3, "proyectos", "completar_area", "Corte")
			Expect(err).NotTo(HaveOccurred())
			Expect(allowed).To(BeFalse())
		})

		It("does not restrict non-operator roles holding the grant", func() {
			allowed, err := evaluator.HasPermission(ctx, 2, "proyectos", "completar_area", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(allowed).To(BeTrue())
		})
	})

	Describe("infrastructure failures", func() {
		It("returns an infrastructure error when the subject lookup fails", func() {
			repo.SetShouldFail(true, errors.New("connection refused"))
			allowed, err := evaluator.HasPermission(ctx, 2, "proyectos", "ver", "")
			Expect(allowed).To(BeFalse())
			Expect(err).To(HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeInfrastructure))
			Expect(appErr.StatusCode).To(Equal(503))
		})

		It("returns an infrastructure error when the area lookup fails", func() {
			failing := NewMockRepository()
			failing.subjects[3] = repo.subjects[3]
			logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
			ev := permissions.NewEvaluator(holder, &areaFailRepo{inner: failing}, logger)

			allowed, err := ev.HasPermission(ctx, 3, "proyectos", "completar_area", "Corte")
			Expect(allowed).To(BeFalse())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeInfrastructure))
		})
	})

	Describe("EffectivePermissions", func() {
		It("mirrors HasPermission: every listed capability checks true", func() {
			set, err := evaluator.EffectivePermissions(ctx, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(set.Capabilities).NotTo(BeEmpty())

			for _, entry := range set.Capabilities {
				if entry.AreaScoped {
					continue
				}
				allowed, err := evaluator.HasPermission(ctx, 2, entry.Capability.Module, entry.Capability.Action, "")
				Expect(err).NotTo(HaveOccurred())
				Expect(allowed).To(BeTrue(), "capability %s should be allowed", entry.Capability.Key())
			}
		})

		It("includes area-scoped capabilities and assigned areas for operators", func() {
			set, err := evaluator.EffectivePermissions(ctx, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(set.IsOperator()).To(BeTrue())
			Expect(set.Areas).To(ConsistOf("Corte"))

			keys := make([]string, 0, len(set.Capabilities))
			for _, entry := range set.Capabilities {
				keys = append(keys, entry.Capability.Key())
			}
			Expect(keys).To(ContainElement("proyectos.completar_area"))
		})

		It("reports role flags but no capabilities for inactive users", func() {
			set, err := evaluator.EffectivePermissions(ctx, 4)
			Expect(err).NotTo(HaveOccurred())
			Expect(set.IsSupervisor()).To(BeTrue())
			Expect(set.Capabilities).To(BeEmpty())
			Expect(set.Areas).To(BeEmpty())
		})

		It("returns ErrSubjectNotFound for unknown users", func() {
			_, err := evaluator.EffectivePermissions(ctx, 999)
			Expect(errors.Is(err, permissions.ErrSubjectNotFound)).To(BeTrue())
		})

		It("leaves areas empty for non-operator roles", func() {
			repo.areas[2] = []string{"Corte"}
			set, err := evaluator.EffectivePermissions(ctx, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(set.Areas).To(BeEmpty())
		})
	})
})

// areaFailRepo delegates subject lookups but fails area listing.
type areaFailRepo struct {
	inner *MockRepository
}

func (r *areaFailRepo) GetSubject(ctx context.Context, userID int64) (*permissions.Subject, error) {
	return r.inner.GetSubject(ctx, userID)
}

func (r *areaFailRepo) ListAreaNames(context.Context, int64) ([]string, error) {
	return nil, errors.New("connection reset")
}

var _ = Describe("Catalog", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("normalizes stored rows so messy data still matches", func() {
		catalog := permissions.BuildCatalog([]permissions.RoleGrant{
			{RoleID: 7, Entry: permissions.CatalogEntry{Capability: permissions.Capability{Module: " Clientes ", Action: "VER"}}},
		})
		_, ok := catalog.Lookup(7, permissions.NewCapability("clientes", "ver"))
		Expect(ok).To(BeTrue())
	})

	It("returns capabilities sorted by key", func() {
		catalog := permissions.BuildCatalog([]permissions.RoleGrant{
			{RoleID: 7, Entry: permissions.CatalogEntry{Capability: permissions.NewCapability("proyectos", "ver")}},
			{RoleID: 7, Entry: permissions.CatalogEntry{Capability: permissions.NewCapability("clientes", "ver")}},
		})
		entries := catalog.RoleCapabilities(7)
		Expect(entries).To(HaveLen(2))
		Expect(entries[0].Capability.Module).To(Equal("clientes"))
	})

	Describe("Holder", func() {
		It("publishes new grants after a reload", func() {
			loader := &MockGrantLoader{}
			holder := permissions.NewHolder(loader)
			Expect(holder.Reload(ctx)).To(Succeed())

			_, ok := holder.Load().Lookup(7, permissions.NewCapability("clientes", "ver"))
			Expect(ok).To(BeFalse())

			loader.grants = []permissions.RoleGrant{
				{RoleID: 7, Entry: permissions.CatalogEntry{Capability: permissions.NewCapability("clientes", "ver")}},
			}
			Expect(holder.Reload(ctx)).To(Succeed())

			_, ok = holder.Load().Lookup(7, permissions.NewCapability("clientes", "ver"))
			Expect(ok).To(BeTrue())
		})

		It("keeps the previous catalog when a reload fails", func() {
			loader := &MockGrantLoader{grants: []permissions.RoleGrant{
				{RoleID: 7, Entry: permissions.CatalogEntry{Capability: permissions.NewCapability("clientes", "ver")}},
			}}
			holder := permissions.NewHolder(loader)
			Expect(holder.Reload(ctx)).To(Succeed())

			loader.failError = errors.New("connection refused")
			Expect(holder.Reload(ctx)).NotTo(Succeed())

			_, ok := holder.Load().Lookup(7, permissions.NewCapability("clientes", "ver"))
			Expect(ok).To(BeTrue())
		})
	})
})

var _ = Describe("ParseRoleKind", func() {
	It("maps known kinds including messy input", func() {
		Expect(permissions.ParseRoleKind("admin")).To(Equal(permissions.KindAdmin))
		Expect(permissions.ParseRoleKind(" Operario ")).To(Equal(permissions.KindOperator))
		Expect(permissions.ParseRoleKind("DEPOSITO")).To(Equal(permissions.KindWarehouse))
	})

	It("collapses unknown kinds to otro", func() {
		Expect(permissions.ParseRoleKind("gerente")).To(Equal(permissions.KindOther))
		Expect(permissions.ParseRoleKind("")).To(Equal(permissions.KindOther))
	})
})

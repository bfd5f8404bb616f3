package areas_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gestion-taller/taller-management/internal"
	"github.com/gestion-taller/taller-management/internal/areas"
	areaDatamodel "github.com/gestion-taller/taller-management/internal/core/datamodel/area"
)

func TestAreasService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Areas Service Suite")
}

// MockRepository implements areas.RepositoryAPI for testing
type MockRepository struct {
	roleKinds   map[int64]string
	areaCatalog map[int64]string
	assignments map[int64]map[int64]bool
	shouldFail  bool
	failError   error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		roleKinds:   make(map[int64]string),
		areaCatalog: make(map[int64]string),
		assignments: make(map[int64]map[int64]bool),
	}
}

func (m *MockRepository) GetUserRoleKind(_ context.Context, userID int64) (string, error) {
	if m.shouldFail {
		return "", m.failError
	}
	kind, ok := m.roleKinds[userID]
	if !ok {
		return "", internal.ErrUserNotFound
	}
	return kind, nil
}

func (m *MockRepository) AreaExists(_ context.Context, areaID int64) (bool, error) {
	if m.shouldFail {
		return false, m.failError
	}
	_, ok := m.areaCatalog[areaID]
	return ok, nil
}

func (m *MockRepository) HasAssignment(_ context.Context, userID, areaID int64) (bool, error) {
	if m.shouldFail {
		return false, m.failError
	}
	return m.assignments[userID][areaID], nil
}

func (m *MockRepository) InsertAssignment(_ context.Context, userID, areaID int64) error {
	if m.shouldFail {
		return m.failError
	}
	if m.assignments[userID] == nil {
		m.assignments[userID] = make(map[int64]bool)
	}
	m.assignments[userID][areaID] = true
	return nil
}

func (m *MockRepository) DeleteAssignment(_ context.Context, userID, areaID int64) error {
	if m.shouldFail {
		return m.failError
	}
	delete(m.assignments[userID], areaID)
	return nil
}

func (m *MockRepository) ListAreaNames(_ context.Context, userID int64) ([]string, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	names := []string{}
	for areaID := range m.assignments[userID] {
		names = append(names, m.areaCatalog[areaID])
	}
	return names, nil
}

func (m *MockRepository) ListAll(_ context.Context) ([]*areaDatamodel.Area, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	result := make([]*areaDatamodel.Area, 0, len(m.areaCatalog))
	for id, name := range m.areaCatalog {
		result = append(result, &areaDatamodel.Area{ID: id, Name: name})
	}
	return result, nil
}

var _ = Describe("Areas Service", func() {
	var (
		repo    *MockRepository
		service *areas.Service
		ctx     context.Context
	)

	const (
		operatorID   int64 = 3
		supervisorID int64 = 2
		corteAreaID  int64 = 1
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = NewMockRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = areas.NewService(repo, logger)

		repo.roleKinds[operatorID] = "operario"
		repo.roleKinds[supervisorID] = "supervisor"
		repo.areaCatalog[corteAreaID] = "Corte"
	})

	Describe("AssignArea", func() {
		It("assigns an area to an operator", func() {
			Expect(service.AssignArea(ctx, operatorID, corteAreaID)).To(Succeed())
			Expect(repo.assignments[operatorID][corteAreaID]).To(BeTrue())
		})

		It("is idempotent for an already held assignment", func() {
			Expect(service.AssignArea(ctx, operatorID, corteAreaID)).To(Succeed())
			Expect(service.AssignArea(ctx, operatorID, corteAreaID)).To(Succeed())
			Expect(repo.assignments[operatorID]).To(HaveLen(1))
		})

		It("rejects non-operator users with a validation error", func() {
			err := service.AssignArea(ctx, supervisorID, corteAreaID)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			Expect(appErr.Code).To(Equal(internal.ErrCodeNotOperator))
		})

		It("rejects unknown users", func() {
			err := service.AssignArea(ctx, 999, corteAreaID)
			Expect(errors.Is(err, internal.ErrUserNotFound)).To(BeTrue())
		})

		It("rejects unknown areas", func() {
			err := service.AssignArea(ctx, operatorID, 999)
			Expect(errors.Is(err, internal.ErrAreaNotFound)).To(BeTrue())
		})
	})

	Describe("RemoveArea", func() {
		It("removes an existing assignment", func() {
			Expect(service.AssignArea(ctx, operatorID, corteAreaID)).To(Succeed())
			Expect(service.RemoveArea(ctx, operatorID, corteAreaID)).To(Succeed())
			Expect(repo.assignments[operatorID]).To(BeEmpty())
		})

		It("tolerates removing an absent assignment", func() {
			Expect(service.RemoveArea(ctx, operatorID, corteAreaID)).To(Succeed())
		})
	})

	Describe("ListAreas", func() {
		It("returns the user's assigned area names", func() {
			Expect(service.AssignArea(ctx, operatorID, corteAreaID)).To(Succeed())
			names, err := service.ListAreas(ctx, operatorID)
			Expect(err).NotTo(HaveOccurred())
			Expect(names).To(ConsistOf("Corte"))
		})
	})

	Describe("ListAll", func() {
		It("returns the area catalog", func() {
			all, err := service.ListAll(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(1))
			Expect(all[0].Name).To(Equal("Corte"))
		})
	})
})

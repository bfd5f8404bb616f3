package projects_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gestion-taller/taller-management/internal"
	projectDatamodel "github.com/gestion-taller/taller-management/internal/core/datamodel/project"
	"github.com/gestion-taller/taller-management/internal/projects"
)

func TestProjectsService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Projects Service Suite")
}

// MockRepository implements projects.RepositoryAPI for testing
type MockRepository struct {
	projects map[int64]*projectDatamodel.Project
	stages   map[int64]*projectDatamodel.ProjectStage
	nextID   int64
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		projects: make(map[int64]*projectDatamodel.Project),
		stages:   make(map[int64]*projectDatamodel.ProjectStage),
		nextID:   1,
	}
}

func (m *MockRepository) GetAll(context.Context) ([]*projectDatamodel.Project, error) {
	var result []*projectDatamodel.Project
	for _, p := range m.projects {
		if p.Status != projectDatamodel.StatusCancelled {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *MockRepository) GetByID(_ context.Context, id int64) (*projectDatamodel.Project, error) {
	return m.projects[id], nil
}

func (m *MockRepository) GetStages(_ context.Context, projectID int64) ([]*projectDatamodel.ProjectStage, error) {
	var result []*projectDatamodel.ProjectStage
	for _, st := range m.stages {
		if st.ProjectID == projectID {
			result = append(result, st)
		}
	}
	return result, nil
}

func (m *MockRepository) GetStage(_ context.Context, stageID int64) (*projectDatamodel.ProjectStage, error) {
	return m.stages[stageID], nil
}

func (m *MockRepository) Create(_ context.Context, project *projectDatamodel.Project, stages []*projectDatamodel.ProjectStage) error {
	project.ID = m.nextID
	m.nextID++
	m.projects[project.ID] = project
	for _, st := range stages {
		st.ID = m.nextID
		m.nextID++
		st.ProjectID = project.ID
		m.stages[st.ID] = st
	}
	return nil
}

func (m *MockRepository) Update(_ context.Context, project *projectDatamodel.Project) error {
	m.projects[project.ID] = project
	return nil
}

func (m *MockRepository) CompleteStage(_ context.Context, stage *projectDatamodel.ProjectStage, projectStatus string) error {
	m.stages[stage.ID] = stage
	m.projects[stage.ProjectID].Status = projectStatus
	return nil
}

func (m *MockRepository) Cancel(_ context.Context, id int64) error {
	m.projects[id].Status = projectDatamodel.StatusCancelled
	return nil
}

var _ = Describe("Projects Service", func() {
	var (
		repo    *MockRepository
		service *projects.Service
		ctx     context.Context
	)

	createProject := func() *projects.Project {
		created, err := service.Create(ctx, projects.CreateProjectDTO{
			Code:     "PRJ-001",
			Name:     "Camisas verano",
			ClientID: 1,
			Quantity: 500,
			Stages: []projects.StageDTO{
				{IDArea: 1, Sequence: 1},
				{IDArea: 2, Sequence: 2},
			},
		})
		Expect(err).NotTo(HaveOccurred())
		return created
	}

	BeforeEach(func() {
		ctx = context.Background()
		repo = NewMockRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = projects.NewService(repo, logger)
	})

	Describe("Create", func() {
		It("creates a project in progress with pending stages", func() {
			created := createProject()
			Expect(created.Status).To(Equal(projectDatamodel.StatusInProgress))
			Expect(created.Stages).To(HaveLen(2))
			for _, st := range created.Stages {
				Expect(st.Status).To(Equal(projectDatamodel.StageStatusPending))
			}
		})

		It("rejects a project without stages", func() {
			_, err := service.Create(ctx, projects.CreateProjectDTO{
				Code: "PRJ-002", Name: "Sin etapas", ClientID: 1,
			})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("rejects duplicate stage sequences", func() {
			_, err := service.Create(ctx, projects.CreateProjectDTO{
				Code: "PRJ-003", Name: "Duplicada", ClientID: 1,
				Stages: []projects.StageDTO{
					{IDArea: 1, Sequence: 1},
					{IDArea: 2, Sequence: 1},
				},
			})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("CompleteStage", func() {
		It("marks the stage completed and records who finished it", func() {
			created := createProject()
			stage := created.Stages[0]

			updated, err := service.CompleteStage(ctx, created.ID, stage.ID, 42)
			Expect(err).NotTo(HaveOccurred())

			var got *projects.Stage
			for _, st := range updated.Stages {
				if st.ID == stage.ID {
					got = st
				}
			}
			Expect(got).NotTo(BeNil())
			Expect(got.Status).To(Equal(projectDatamodel.StageStatusCompleted))
			Expect(got.CompletedBy).NotTo(BeNil())
			Expect(*got.CompletedBy).To(Equal(int64(42)))
			Expect(got.CompletedAt).NotTo(BeNil())
		})

		It("keeps the project in progress while stages remain", func() {
			created := createProject()
			updated, err := service.CompleteStage(ctx, created.ID, created.Stages[0].ID, 42)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(projectDatamodel.StatusInProgress))
		})

		It("completes the project when the last stage finishes", func() {
			created := createProject()
			_, err := service.CompleteStage(ctx, created.ID, created.Stages[0].ID, 42)
			Expect(err).NotTo(HaveOccurred())

			updated, err := service.CompleteStage(ctx, created.ID, created.Stages[1].ID, 42)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(projectDatamodel.StatusCompleted))
		})

		It("rejects completing an already completed stage", func() {
			created := createProject()
			_, err := service.CompleteStage(ctx, created.ID, created.Stages[0].ID, 42)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CompleteStage(ctx, created.ID, created.Stages[0].ID, 42)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeConflict))
		})

		It("rejects a stage belonging to another project", func() {
			first := createProject()
			second, err := service.Create(ctx, projects.CreateProjectDTO{
				Code: "PRJ-004", Name: "Otro", ClientID: 1,
				Stages: []projects.StageDTO{{IDArea: 1, Sequence: 1}},
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CompleteStage(ctx, second.ID, first.Stages[0].ID, 42)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeNotFound))
		})

		It("rejects stage completion on a cancelled project", func() {
			created := createProject()
			Expect(service.Cancel(ctx, created.ID)).To(Succeed())

			_, err := service.CompleteStage(ctx, created.ID, created.Stages[0].ID, 42)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Cancel", func() {
		It("refuses to cancel a completed project", func() {
			created := createProject()
			_, err := service.CompleteStage(ctx, created.ID, created.Stages[0].ID, 42)
			Expect(err).NotTo(HaveOccurred())
			_, err = service.CompleteStage(ctx, created.ID, created.Stages[1].ID, 42)
			Expect(err).NotTo(HaveOccurred())

			err = service.Cancel(ctx, created.ID)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeConflict))
		})
	})
})

package clients_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gestion-taller/taller-management/internal"
	"github.com/gestion-taller/taller-management/internal/clients"
	clientDatamodel "github.com/gestion-taller/taller-management/internal/core/datamodel/client"
)

func TestClientsService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Clients Service Suite")
}

// MockRepository implements clients.RepositoryAPI for testing
type MockRepository struct {
	clients    map[int64]*clientDatamodel.Client
	nextID     int64
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{clients: make(map[int64]*clientDatamodel.Client), nextID: 1}
}

func (m *MockRepository) GetAll(context.Context) ([]*clientDatamodel.Client, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*clientDatamodel.Client
	for _, c := range m.clients {
		if c.IsActive {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *MockRepository) GetByID(_ context.Context, id int64) (*clientDatamodel.Client, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.clients[id], nil
}

func (m *MockRepository) Create(_ context.Context, client *clientDatamodel.Client) error {
	if m.shouldFail {
		return m.failError
	}
	client.ID = m.nextID
	m.nextID++
	m.clients[client.ID] = client
	return nil
}

func (m *MockRepository) Update(_ context.Context, client *clientDatamodel.Client) error {
	if m.shouldFail {
		return m.failError
	}
	m.clients[client.ID] = client
	return nil
}

func (m *MockRepository) Deactivate(_ context.Context, id int64) error {
	if m.shouldFail {
		return m.failError
	}
	m.clients[id].IsActive = false
	return nil
}

var _ = Describe("Clients Service", func() {
	var (
		repo    *MockRepository
		service *clients.Service
		ctx     context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = NewMockRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = clients.NewService(repo, logger)
	})

	Describe("Create", func() {
		It("creates an active client", func() {
			created, err := service.Create(ctx, clients.CreateClientDTO{
				Name:  "Textil Norte",
				Email: "compras@textilnorte.test",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).To(BeNumerically(">", 0))
			Expect(created.IsActive).To(BeTrue())
		})

		It("rejects a client without a name", func() {
			_, err := service.Create(ctx, clients.CreateClientDTO{})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("GetByID", func() {
		It("returns a not found error for unknown ids", func() {
			_, err := service.GetByID(ctx, 999)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(404))
		})
	})

	Describe("Deactivate", func() {
		It("soft-deletes and hides the client from listings", func() {
			created, err := service.Create(ctx, clients.CreateClientDTO{Name: "Textil Norte"})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Deactivate(ctx, created.ID)).To(Succeed())

			all, err := service.GetAll(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(BeEmpty())
		})
	})

	Describe("repository failures", func() {
		It("propagates storage errors", func() {
			repo.shouldFail = true
			repo.failError = errors.New("connection refused")

			_, err := service.GetAll(ctx)
			Expect(err).To(HaveOccurred())
		})
	})
})

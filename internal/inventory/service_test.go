package inventory_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gestion-taller/taller-management/internal"
	inventoryDatamodel "github.com/gestion-taller/taller-management/internal/core/datamodel/inventory"
	"github.com/gestion-taller/taller-management/internal/inventory"
)

func TestInventoryService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Inventory Service Suite")
}

// MockRepository implements inventory.RepositoryAPI for testing
type MockRepository struct {
	materials map[int64]*inventoryDatamodel.Material
	movements []*inventoryDatamodel.StockMovement
	nextID    int64
}

func NewMockRepository() *MockRepository {
	return &MockRepository{materials: make(map[int64]*inventoryDatamodel.Material), nextID: 1}
}

func (m *MockRepository) GetAll(context.Context) ([]*inventoryDatamodel.Material, error) {
	var result []*inventoryDatamodel.Material
	for _, mat := range m.materials {
		if mat.IsActive {
			result = append(result, mat)
		}
	}
	return result, nil
}

func (m *MockRepository) GetByID(_ context.Context, id int64) (*inventoryDatamodel.Material, error) {
	return m.materials[id], nil
}

func (m *MockRepository) Create(_ context.Context, material *inventoryDatamodel.Material) error {
	material.ID = m.nextID
	m.nextID++
	m.materials[material.ID] = material
	return nil
}

func (m *MockRepository) Update(_ context.Context, material *inventoryDatamodel.Material) error {
	m.materials[material.ID] = material
	return nil
}

func (m *MockRepository) Deactivate(_ context.Context, id int64) error {
	m.materials[id].IsActive = false
	return nil
}

func (m *MockRepository) AdjustStock(_ context.Context, materialID int64, delta float64, reason string, byUserID int64) (*inventoryDatamodel.Material, error) {
	mat := m.materials[materialID]
	mat.Stock += delta
	m.movements = append(m.movements, &inventoryDatamodel.StockMovement{
		MaterialID: materialID,
		Quantity:   delta,
		Reason:     reason,
		CreatedBy:  byUserID,
	})
	return mat, nil
}

var _ = Describe("Inventory Service", func() {
	var (
		repo    *MockRepository
		service *inventory.Service
		ctx     context.Context
	)

	createMaterial := func(minStock float64) *inventory.Material {
		created, err := service.Create(ctx, inventory.MaterialDTO{
			Code:     "TELA-001",
			Name:     "Gabardina azul",
			Unit:     "m",
			MinStock: minStock,
		})
		Expect(err).NotTo(HaveOccurred())
		return created
	}

	BeforeEach(func() {
		ctx = context.Background()
		repo = NewMockRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = inventory.NewService(repo, logger)
	})

	Describe("AdjustStock", func() {
		It("applies a positive delta and records the movement", func() {
			created := createMaterial(0)

			updated, err := service.AdjustStock(ctx, created.ID, inventory.AdjustStockDTO{
				Quantity: 120.5,
				Reason:   "recepción proveedor",
			}, 42)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Stock).To(Equal(120.5))

			Expect(repo.movements).To(HaveLen(1))
			Expect(repo.movements[0].CreatedBy).To(Equal(int64(42)))
			Expect(repo.movements[0].Quantity).To(Equal(120.5))
		})

		It("rejects a zero delta", func() {
			created := createMaterial(0)
			_, err := service.AdjustStock(ctx, created.ID, inventory.AdjustStockDTO{}, 42)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidQuantity))
		})

		It("rejects an adjustment that would leave negative stock", func() {
			created := createMaterial(0)
			_, err := service.AdjustStock(ctx, created.ID, inventory.AdjustStockDTO{Quantity: -10}, 42)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			Expect(repo.movements).To(BeEmpty())
		})

		It("returns not found for unknown materials", func() {
			_, err := service.AdjustStock(ctx, 999, inventory.AdjustStockDTO{Quantity: 1}, 42)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(404))
		})
	})

	Describe("BelowMinimum", func() {
		It("flags stock under the minimum", func() {
			created := createMaterial(50)

			updated, err := service.AdjustStock(ctx, created.ID, inventory.AdjustStockDTO{Quantity: 30}, 42)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.BelowMinimum()).To(BeTrue())
		})
	})
})

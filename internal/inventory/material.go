package inventory

import (
	"time"

	inventoryDatamodel "github.com/gestion-taller/taller-management/internal/core/datamodel/inventory"
)

type Material struct {
	ID         int64     `json:"id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	Stock      float64   `json:"stock"`
	MinStock   float64   `json:"min_stock"`
	SupplierID *int64    `json:"supplier_id,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BelowMinimum reports whether the stock level has dropped under the
// configured floor.
func (m *Material) BelowMinimum() bool {
	return m.Stock < m.MinStock
}

func ToDataModel(m *Material) *inventoryDatamodel.Material {
	return &inventoryDatamodel.Material{
		ID:         m.ID,
		Code:       m.Code,
		Name:       m.Name,
		Unit:       m.Unit,
		Stock:      m.Stock,
		MinStock:   m.MinStock,
		SupplierID: m.SupplierID,
		IsActive:   m.IsActive,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func FromDataModel(m *inventoryDatamodel.Material) *Material {
	return &Material{
		ID:         m.ID,
		Code:       m.Code,
		Name:       m.Name,
		Unit:       m.Unit,
		Stock:      m.Stock,
		MinStock:   m.MinStock,
		SupplierID: m.SupplierID,
		IsActive:   m.IsActive,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

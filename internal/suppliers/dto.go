package suppliers

import (
	errors "github.com/gestion-taller/taller-management/internal"
	"github.com/gestion-taller/taller-management/internal/core/common/validation"
)

type SupplierDTO struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

func (d *SupplierDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(200)
	return v.Validate()
}

type SuppliersResponse struct {
	Suppliers []*Supplier `json:"suppliers"`
}

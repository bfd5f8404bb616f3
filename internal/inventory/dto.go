package inventory

import (
	errors "github.com/gestion-taller/taller-management/internal"
	"github.com/gestion-taller/taller-management/internal/core/common/validation"
)

type MaterialDTO struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Unit       string  `json:"unit"`
	MinStock   float64 `json:"min_stock"`
	SupplierID *int64  `json:"supplier_id,omitempty"`
}

func (d *MaterialDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("code", d.Code).Required().MaxLength(50)
	v.Field("name", d.Name).Required().MaxLength(200)
	v.Field("unit", d.Unit).Required().MaxLength(20)
	return v.Validate()
}

type AdjustStockDTO struct {
	Quantity float64 `json:"quantity"`
	Reason   string  `json:"reason"`
}

func (d *AdjustStockDTO) Validate() *errors.AppError {
	if d.Quantity == 0 {
		return errors.NewValidationError("quantity must be non-zero", errors.ErrCodeInvalidQuantity)
	}
	return nil
}

type MaterialsResponse struct {
	Materials []*Material `json:"materials"`
}

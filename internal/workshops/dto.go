package workshops

import (
	errors "github.com/gestion-taller/taller-management/internal"
	"github.com/gestion-taller/taller-management/internal/core/common/validation"
)

type WorkshopDTO struct {
	Name      string `json:"name"`
	Contact   string `json:"contact"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Specialty string `json:"specialty"`
}

func (d *WorkshopDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(200)
	v.Field("specialty", d.Specialty).MaxLength(100)
	return v.Validate()
}

type WorkshopsResponse struct {
	Workshops []*Workshop `json:"workshops"`
}

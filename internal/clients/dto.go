package clients

import (
	errors "github.com/gestion-taller/taller-management/internal"
	"github.com/gestion-taller/taller-management/internal/core/common/validation"
)

type CreateClientDTO struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

func (d *CreateClientDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(200)
	v.Field("email", d.Email).MaxLength(200)
	return v.Validate()
}

type UpdateClientDTO struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

func (d *UpdateClientDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(200)
	return v.Validate()
}

type ClientsResponse struct {
	Clients []*Client `json:"clients"`
}

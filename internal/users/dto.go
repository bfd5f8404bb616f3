package users

import (
	"strings"

	errors "github.com/gestion-taller/taller-management/internal"
	"github.com/gestion-taller/taller-management/internal/core/common/validation"
)

type CreateUserDTO struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	RoleID   int64  `json:"role_id"`
}

func (d *CreateUserDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required().MaxLength(200).
		Custom(func(interface{}) *errors.AppError {
			if !strings.Contains(d.Email, "@") {
				return errors.NewValidationFieldError("email", "email is not valid", errors.ErrCodeValidationFailed)
			}
			return nil
		})
	v.Field("name", d.Name).Required().MaxLength(200)
	v.Field("password", d.Password).Required().MinLength(8)
	v.Field("role_id", d.RoleID).Required().MinInt(1, errors.ErrCodeValidationFailed)
	return v.Validate()
}

type UpdateUserDTO struct {
	Name   string `json:"name"`
	RoleID int64  `json:"role_id"`
}

func (d *UpdateUserDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(200)
	v.Field("role_id", d.RoleID).Required().MinInt(1, errors.ErrCodeValidationFailed)
	return v.Validate()
}

type UsersResponse struct {
	Users []*User `json:"users"`
}

type RolesResponse struct {
	Roles []*Role `json:"roles"`
}

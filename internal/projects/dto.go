package projects

import (
	"fmt"
	"time"

	errors "github.com/gestion-taller/taller-management/internal"
	"github.com/gestion-taller/taller-management/internal/core/common/validation"
)

type StageDTO struct {
	IDArea   int64 `json:"id_area"`
	Sequence int   `json:"sequence"`
}

type CreateProjectDTO struct {
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	ClientID    int64      `json:"client_id"`
	Quantity    int64      `json:"quantity"`
	DeliveryDue *time.Time `json:"delivery_due"`
	Stages      []StageDTO `json:"stages"`
}

func (d *CreateProjectDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("code", d.Code).Required().MinLength(2).MaxLength(50)
	v.Field("name", d.Name).Required().MaxLength(200)
	v.Field("client_id", d.ClientID).Required().MinInt(1, errors.ErrCodeValidationFailed)
	v.Field("quantity", d.Quantity).MinInt(0, errors.ErrCodeValidationFailed)
	v.Field("stages", d.Stages).Custom(func(interface{}) *errors.AppError {
		if len(d.Stages) == 0 {
			return errors.NewValidationFieldError("stages", "at least one stage is required", errors.ErrCodeValidationFailed)
		}
		seen := make(map[int]bool, len(d.Stages))
		for _, st := range d.Stages {
			if st.IDArea < 1 {
				return errors.NewValidationFieldError("stages", "stage id_area is required", errors.ErrCodeValidationFailed)
			}
			if st.Sequence < 1 {
				return errors.NewValidationFieldError("stages", "stage sequence must be positive", errors.ErrCodeValidationFailed)
			}
			if seen[st.Sequence] {
				return errors.NewValidationFieldError("stages", fmt.Sprintf("duplicate stage sequence %d", st.Sequence), errors.ErrCodeValidationFailed)
			}
			seen[st.Sequence] = true
		}
		return nil
	})
	return v.Validate()
}

type UpdateProjectDTO struct {
	Name        string     `json:"name"`
	Quantity    int64      `json:"quantity"`
	DeliveryDue *time.Time `json:"delivery_due"`
}

func (d *UpdateProjectDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(200)
	v.Field("quantity", d.Quantity).MinInt(0, errors.ErrCodeValidationFailed)
	return v.Validate()
}

type ProjectsResponse struct {
	Projects []*Project `json:"projects"`
}

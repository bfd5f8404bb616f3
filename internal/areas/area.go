package areas

import (
	"time"

	areaDatamodel "github.com/gestion-taller/taller-management/internal/core/datamodel/area"
)

type Area struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func FromDataModel(a *areaDatamodel.Area) *Area {
	return &Area{
		ID:        a.ID,
		Name:      a.Name,
		CreatedAt: a.CreatedAt,
	}
}

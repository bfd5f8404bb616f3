package workshops

import (
	"time"

	workshopDatamodel "github.com/gestion-taller/taller-management/internal/core/datamodel/workshop"
)

type Workshop struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Specialty string    `json:"specialty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewWorkshop(name, contact, phone, address, specialty string) *Workshop {
	now := time.Now()
	return &Workshop{
		Name:      name,
		Contact:   contact,
		Phone:     phone,
		Address:   address,
		Specialty: specialty,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func ToDataModel(ws *Workshop) *workshopDatamodel.Workshop {
	return &workshopDatamodel.Workshop{
		ID:        ws.ID,
		Name:      ws.Name,
		Contact:   ws.Contact,
		Phone:     ws.Phone,
		Address:   ws.Address,
		Specialty: ws.Specialty,
		IsActive:  ws.IsActive,
		CreatedAt: ws.CreatedAt,
		UpdatedAt: ws.UpdatedAt,
	}
}

func FromDataModel(ws *workshopDatamodel.Workshop) *Workshop {
	return &Workshop{
		ID:        ws.ID,
		Name:      ws.Name,
		Contact:   ws.Contact,
		Phone:     ws.Phone,
		Address:   ws.Address,
		Specialty: ws.Specialty,
		IsActive:  ws.IsActive,
		CreatedAt: ws.CreatedAt,
		UpdatedAt: ws.UpdatedAt,
	}
}

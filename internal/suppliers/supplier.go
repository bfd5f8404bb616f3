package suppliers

import (
	"time"

	supplierDatamodel "github.com/gestion-taller/taller-management/internal/core/datamodel/supplier"
)

type Supplier struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewSupplier(name, contact, phone, email, address string) *Supplier {
	now := time.Now()
	return &Supplier{
		Name:      name,
		Contact:   contact,
		Phone:     phone,
		Email:     email,
		Address:   address,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func ToDataModel(s *Supplier) *supplierDatamodel.Supplier {
	return &supplierDatamodel.Supplier{
		ID:        s.ID,
		Name:      s.Name,
		Contact:   s.Contact,
		Phone:     s.Phone,
		Email:     s.Email,
		Address:   s.Address,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func FromDataModel(s *supplierDatamodel.Supplier) *Supplier {
	return &Supplier{
		ID:        s.ID,
		Name:      s.Name,
		Contact:   s.Contact,
		Phone:     s.Phone,
		Email:     s.Email,
		Address:   s.Address,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

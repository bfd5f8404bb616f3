package clients

import (
	"time"

	clientDatamodel "github.com/gestion-taller/taller-management/internal/core/datamodel/client"
)

type Client struct {
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

func NewClient(name, contact, phone, email, address string) *Client {
	now := time.Now()
	return &Client{
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

func (c *Client) Deactivate() {
	c.IsActive = false
	c.UpdatedAt = time.Now()
}

func ToDataModel(c *Client) *clientDatamodel.Client {
	return &clientDatamodel.Client{
		ID:        c.ID,
		Name:      c.Name,
		Contact:   c.Contact,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func FromDataModel(c *clientDatamodel.Client) *Client {
	return &Client{
		ID:        c.ID,
		Name:      c.Name,
		Contact:   c.Contact,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

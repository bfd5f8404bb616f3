package workshop

import "time"

// Workshop is an external production workshop orders can be outsourced to.
type Workshop struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Contact   string    `gorm:"column:contact"`
	Phone     string    `gorm:"column:phone"`
	Address   string    `gorm:"column:address"`
	Specialty string    `gorm:"column:specialty"`
	IsActive  bool      `gorm:"column:is_active;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:now()"`
}

func (Workshop) TableName() string {
	return "workshops"
}

package supplier

import "time"

type Supplier struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Contact   string    `gorm:"column:contact"`
	Phone     string    `gorm:"column:phone"`
	Email     string    `gorm:"column:email"`
	Address   string    `gorm:"column:address"`
	IsActive  bool      `gorm:"column:is_active;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:now()"`
}

func (Supplier) TableName() string {
	return "suppliers"
}

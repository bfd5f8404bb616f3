package user

import "time"

type User struct {
	ID           int64     `gorm:"primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	Name         string    `gorm:"column:name;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	RoleID       int64     `gorm:"column:role_id;not null"`
	IsActive     bool      `gorm:"column:is_active;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time `gorm:"column:updated_at;default:now()"`
}

func (User) TableName() string {
	return "users"
}

// Role carries the classification tag driving authorization behaviour.
// Kind is one of: admin, supervisor, operario, deposito, otro.
type Role struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	Kind      string    `gorm:"column:kind;not null"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

func (Role) TableName() string {
	return "roles"
}

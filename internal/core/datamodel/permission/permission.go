package permission

import "time"

// Permission is one row of the administrator-curated capability catalog.
// Module and Action are stored in canonical form (trimmed, lower-cased).
type Permission struct {
	ID         int64     `gorm:"primaryKey"`
	Name       string    `gorm:"column:name;uniqueIndex;not null"`
	Module     string    `gorm:"column:module;not null"`
	Action     string    `gorm:"column:action;not null"`
	AreaScoped bool      `gorm:"column:area_scoped;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at;default:now()"`
}

func (Permission) TableName() string {
	return "permissions"
}

type RolePermission struct {
	ID           int64     `gorm:"primaryKey"`
	RoleID       int64     `gorm:"column:role_id;not null;uniqueIndex:idx_role_permission"`
	PermissionID int64     `gorm:"column:permission_id;not null;uniqueIndex:idx_role_permission"`
	CreatedAt    time.Time `gorm:"column:created_at;default:now()"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}

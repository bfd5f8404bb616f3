package audit

import "time"

// DenialRecord is a persisted authorization denial: who asked for what, where.
type DenialRecord struct {
	ID           int64     `gorm:"primaryKey"`
	UserID       int64     `gorm:"column:user_id;not null;index"`
	Module       string    `gorm:"column:module;not null"`
	Action       string    `gorm:"column:action;not null"`
	ResourcePath string    `gorm:"column:resource_path;not null"`
	OccurredAt   time.Time `gorm:"column:occurred_at;default:now()"`
}

func (DenialRecord) TableName() string {
	return "audit_denials"
}

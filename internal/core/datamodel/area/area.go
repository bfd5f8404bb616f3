package area

import "time"

// Area is an operational zone of the workshop (Corte, Confección, Calidad...).
type Area struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

func (Area) TableName() string {
	return "areas"
}

// UserArea scopes an operator to an area. Only meaningful for users whose
// role kind is operario; the service layer rejects everything else.
type UserArea struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_user_area"`
	AreaID    int64     `gorm:"column:area_id;not null;uniqueIndex:idx_user_area"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

func (UserArea) TableName() string {
	return "user_areas"
}

package project

import "time"

const (
	StatusDraft      = "draft"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

const (
	StageStatusPending   = "pending"
	StageStatusCompleted = "completed"
)

type Project struct {
	ID          int64      `gorm:"primaryKey"`
	Code        string     `gorm:"column:code;uniqueIndex;not null"`
	Name        string     `gorm:"column:name;not null"`
	ClientID    int64      `gorm:"column:client_id;not null"`
	Status      string     `gorm:"column:status;not null;default:draft"`
	Quantity    int64      `gorm:"column:quantity;default:0"`
	DeliveryDue *time.Time `gorm:"column:delivery_due"`
	CreatedAt   time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;default:now()"`
}

func (Project) TableName() string {
	return "projects"
}

// ProjectStage is one unit of work inside a project, tied to the workshop
// area that performs it. Completing a stage is the area-scoped operation.
type ProjectStage struct {
	ID          int64      `gorm:"primaryKey"`
	ProjectID   int64      `gorm:"column:project_id;not null;index"`
	AreaID      int64      `gorm:"column:area_id;not null"`
	Sequence    int        `gorm:"column:sequence;not null"`
	Status      string     `gorm:"column:status;not null;default:pending"`
	CompletedBy *int64     `gorm:"column:completed_by"`
	CompletedAt *time.Time `gorm:"column:completed_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;default:now()"`
}

func (ProjectStage) TableName() string {
	return "project_stages"
}

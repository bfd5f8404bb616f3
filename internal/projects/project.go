package projects

import (
	"time"

	projectDatamodel "github.com/gestion-taller/taller-management/internal/core/datamodel/project"
)

type Project struct {
	ID          int64      `json:"id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	ClientID    int64      `json:"client_id"`
	Status      string     `json:"status"`
	Quantity    int64      `json:"quantity"`
	DeliveryDue *time.Time `json:"delivery_due,omitempty"`
	Stages      []*Stage   `json:"stages,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Stage struct {
	ID          int64      `json:"id"`
	ProjectID   int64      `json:"project_id"`
	AreaID      int64      `json:"area_id"`
	AreaName    string     `json:"area_name,omitempty"`
	Sequence    int        `json:"sequence"`
	Status      string     `json:"status"`
	CompletedBy *int64     `json:"completed_by,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (p *Project) AllStagesCompleted() bool {
	if len(p.Stages) == 0 {
		return false
	}
	for _, st := range p.Stages {
		if st.Status != projectDatamodel.StageStatusCompleted {
			return false
		}
	}
	return true
}

func FromDataModel(p *projectDatamodel.Project) *Project {
	return &Project{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		ClientID:    p.ClientID,
		Status:      p.Status,
		Quantity:    p.Quantity,
		DeliveryDue: p.DeliveryDue,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func StageFromDataModel(st *projectDatamodel.ProjectStage) *Stage {
	return &Stage{
		ID:          st.ID,
		ProjectID:   st.ProjectID,
		AreaID:      st.AreaID,
		Sequence:    st.Sequence,
		Status:      st.Status,
		CompletedBy: st.CompletedBy,
		CompletedAt: st.CompletedAt,
	}
}

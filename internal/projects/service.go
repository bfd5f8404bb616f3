package projects

import (
	"context"
	"log/slog"
	"time"

	"github.com/gestion-taller/taller-management/internal"
	projectDatamodel "github.com/gestion-taller/taller-management/internal/core/datamodel/project"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*projectDatamodel.Project, error)
	GetByID(ctx context.Context, id int64) (*projectDatamodel.Project, error)
	GetStages(ctx context.Context, projectID int64) ([]*projectDatamodel.ProjectStage, error)
	GetStage(ctx context.Context, stageID int64) (*projectDatamodel.ProjectStage, error)
	Create(ctx context.Context, project *projectDatamodel.Project, stages []*projectDatamodel.ProjectStage) error
	Update(ctx context.Context, project *projectDatamodel.Project) error
	CompleteStage(ctx context.Context, stage *projectDatamodel.ProjectStage, projectStatus string) error
	Cancel(ctx context.Context, id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) GetAll(ctx context.Context) ([]*Project, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list projects", "error", err)
		return nil, err
	}
	result := make([]*Project, 0, len(rows))
	for _, row := range rows {
		result = append(result, FromDataModel(row))
	}
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Project, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, internal.NewNotFoundError("Project not found", internal.ErrCodeResourceNotFound)
	}
	project := FromDataModel(row)

	stageRows, err := s.repo.GetStages(ctx, id)
	if err != nil {
		return nil, err
	}
	project.Stages = make([]*Stage, 0, len(stageRows))
	for _, st := range stageRows {
		project.Stages = append(project.Stages, StageFromDataModel(st))
	}
	return project, nil
}

func (s *Service) Create(ctx context.Context, dto CreateProjectDTO) (*Project, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row := &projectDatamodel.Project{
		Code:        dto.Code,
		Name:        dto.Name,
		ClientID:    dto.ClientID,
		Status:      projectDatamodel.StatusInProgress,
		Quantity:    dto.Quantity,
		DeliveryDue: dto.DeliveryDue,
	}
	stages := make([]*projectDatamodel.ProjectStage, 0, len(dto.Stages))
	for _, st := range dto.Stages {
		stages = append(stages, &projectDatamodel.ProjectStage{
			AreaID:   st.IDArea,
			Sequence: st.Sequence,
			Status:   projectDatamodel.StageStatusPending,
		})
	}

	if err := s.repo.Create(ctx, row, stages); err != nil {
		s.logger.Error("failed to create project", "error", err, "code", dto.Code)
		return nil, err
	}
	s.logger.InfoContext(ctx, "project created", "project_id", row.ID, "code", row.Code, "stages", len(stages))
	return s.GetByID(ctx, row.ID)
}

func (s *Service) Update(ctx context.Context, id int64, dto UpdateProjectDTO) (*Project, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, internal.NewNotFoundError("Project not found", internal.ErrCodeResourceNotFound)
	}
	if row.Status == projectDatamodel.StatusCancelled {
		return nil, internal.NewConflictError("Cancelled projects cannot be modified", internal.ErrCodeInvalidState)
	}

	row.Name = dto.Name
	row.Quantity = dto.Quantity
	row.DeliveryDue = dto.DeliveryDue
	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("failed to update project", "error", err, "project_id", id)
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// CompleteStage marks one stage done on behalf of userID. The stage must
// belong to the project and still be pending. When it is the last pending
// stage the whole project flips to completed.
func (s *Service) CompleteStage(ctx context.Context, projectID, stageID, userID int64) (*Project, error) {
	row, err := s.repo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, internal.NewNotFoundError("Project not found", internal.ErrCodeResourceNotFound)
	}
	if row.Status == projectDatamodel.StatusCancelled {
		return nil, internal.NewConflictError("Cancelled projects cannot be modified", internal.ErrCodeInvalidState)
	}

	stage, err := s.repo.GetStage(ctx, stageID)
	if err != nil {
		return nil, err
	}
	if stage == nil || stage.ProjectID != projectID {
		return nil, internal.NewNotFoundError("Stage not found", internal.ErrCodeResourceNotFound)
	}
	if stage.Status == projectDatamodel.StageStatusCompleted {
		return nil, internal.NewConflictError("Stage is already completed", internal.ErrCodeInvalidState)
	}

	now := time.Now()
	stage.Status = projectDatamodel.StageStatusCompleted
	stage.CompletedBy = &userID
	stage.CompletedAt = &now

	projectStatus := row.Status
	all, err := s.repo.GetStages(ctx, projectID)
	if err != nil {
		return nil, err
	}
	remaining := 0
	for _, st := range all {
		if st.ID != stage.ID && st.Status != projectDatamodel.StageStatusCompleted {
			remaining++
		}
	}
	if remaining == 0 {
		projectStatus = projectDatamodel.StatusCompleted
	}

	if err := s.repo.CompleteStage(ctx, stage, projectStatus); err != nil {
		s.logger.Error("failed to complete stage", "error", err, "project_id", projectID, "stage_id", stageID)
		return nil, err
	}
	s.logger.InfoContext(ctx, "stage completed",
		"project_id", projectID, "stage_id", stageID, "completed_by", userID, "project_status", projectStatus)
	return s.GetByID(ctx, projectID)
}

func (s *Service) Cancel(ctx context.Context, id int64) error {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if row == nil {
		return internal.NewNotFoundError("Project not found", internal.ErrCodeResourceNotFound)
	}
	if row.Status == projectDatamodel.StatusCompleted {
		return internal.NewConflictError("Completed projects cannot be cancelled", internal.ErrCodeInvalidState)
	}
	return s.repo.Cancel(ctx, id)
}

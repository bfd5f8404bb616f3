package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	projectDatamodel "github.com/gestion-taller/taller-management/internal/core/datamodel/project"
	"github.com/gestion-taller/taller-management/internal/projects"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) projects.RepositoryAPI {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) GetAll(ctx context.Context) ([]*projectDatamodel.Project, error) {
	var rows []*projectDatamodel.Project
	err := r.db.WithContext(ctx).
		Where("status <> ?", projectDatamodel.StatusCancelled).
		Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*projectDatamodel.Project, error) {
	var row projectDatamodel.Project
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *ProjectRepository) GetStages(ctx context.Context, projectID int64) ([]*projectDatamodel.ProjectStage, error) {
	var rows []*projectDatamodel.ProjectStage
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("sequence ASC").Find(&rows).Error
	return rows, err
}

func (r *ProjectRepository) GetStage(ctx context.Context, stageID int64) (*projectDatamodel.ProjectStage, error) {
	var row projectDatamodel.ProjectStage
	err := r.db.WithContext(ctx).Where("id = ?", stageID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// Create inserts a project with its stages in one transaction so a project
// never exists without its workflow.
func (r *ProjectRepository) Create(ctx context.Context, project *projectDatamodel.Project, stages []*projectDatamodel.ProjectStage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		for _, stage := range stages {
			stage.ProjectID = project.ID
			if err := tx.Create(stage).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ProjectRepository) Update(ctx context.Context, project *projectDatamodel.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// CompleteStage persists the stage completion and, when the project status
// changed as a result, the project row, atomically.
func (r *ProjectRepository) CompleteStage(ctx context.Context, stage *projectDatamodel.ProjectStage, projectStatus string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(stage).Error; err != nil {
			return err
		}
		return tx.Model(&projectDatamodel.Project{}).
			Where("id = ?", stage.ProjectID).
			Update("status", projectStatus).Error
	})
}

func (r *ProjectRepository) Cancel(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&projectDatamodel.Project{}).
		Where("id = ?", id).Update("status", projectDatamodel.StatusCancelled).Error
}

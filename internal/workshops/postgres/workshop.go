package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	workshopDatamodel "github.com/gestion-taller/taller-management/internal/core/datamodel/workshop"
	"github.com/gestion-taller/taller-management/internal/workshops"
)

type WorkshopRepository struct {
	db *gorm.DB
}

func NewWorkshopRepository(db *gorm.DB) workshops.RepositoryAPI {
	return &WorkshopRepository{db: db}
}

func (r *WorkshopRepository) GetAll(ctx context.Context) ([]*workshopDatamodel.Workshop, error) {
	var rows []*workshopDatamodel.Workshop
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *WorkshopRepository) GetByID(ctx context.Context, id int64) (*workshopDatamodel.Workshop, error) {
	var row workshopDatamodel.Workshop
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *WorkshopRepository) Create(ctx context.Context, workshop *workshopDatamodel.Workshop) error {
	return r.db.WithContext(ctx).Create(workshop).Error
}

func (r *WorkshopRepository) Update(ctx context.Context, workshop *workshopDatamodel.Workshop) error {
	return r.db.WithContext(ctx).Save(workshop).Error
}

func (r *WorkshopRepository) Deactivate(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&workshopDatamodel.Workshop{}).
		Where("id = ?", id).Update("is_active", false).Error
}

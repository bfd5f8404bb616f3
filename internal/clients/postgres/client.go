package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gestion-taller/taller-management/internal/clients"
	clientDatamodel "github.com/gestion-taller/taller-management/internal/core/datamodel/client"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) clients.RepositoryAPI {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) GetAll(ctx context.Context) ([]*clientDatamodel.Client, error) {
	var rows []*clientDatamodel.Client
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*clientDatamodel.Client, error) {
	var row clientDatamodel.Client
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *ClientRepository) Create(ctx context.Context, client *clientDatamodel.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *ClientRepository) Update(ctx context.Context, client *clientDatamodel.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

func (r *ClientRepository) Deactivate(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&clientDatamodel.Client{}).
		Where("id = ?", id).Update("is_active", false).Error
}

package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	supplierDatamodel "github.com/gestion-taller/taller-management/internal/core/datamodel/supplier"
	"github.com/gestion-taller/taller-management/internal/suppliers"
)

type SupplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) suppliers.RepositoryAPI {
	return &SupplierRepository{db: db}
}

func (r *SupplierRepository) GetAll(ctx context.Context) ([]*supplierDatamodel.Supplier, error) {
	var rows []*supplierDatamodel.Supplier
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *SupplierRepository) GetByID(ctx context.Context, id int64) (*supplierDatamodel.Supplier, error) {
	var row supplierDatamodel.Supplier
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *SupplierRepository) Create(ctx context.Context, supplier *supplierDatamodel.Supplier) error {
	return r.db.WithContext(ctx).Create(supplier).Error
}

func (r *SupplierRepository) Update(ctx context.Context, supplier *supplierDatamodel.Supplier) error {
	return r.db.WithContext(ctx).Save(supplier).Error
}

func (r *SupplierRepository) Deactivate(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&supplierDatamodel.Supplier{}).
		Where("id = ?", id).Update("is_active", false).Error
}

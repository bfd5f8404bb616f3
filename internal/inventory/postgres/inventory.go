package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	inventoryDatamodel "github.com/gestion-taller/taller-management/internal/core/datamodel/inventory"
	"github.com/gestion-taller/taller-management/internal/inventory"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) inventory.RepositoryAPI {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) GetAll(ctx context.Context) ([]*inventoryDatamodel.Material, error) {
	var rows []*inventoryDatamodel.Material
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("code ASC").Find(&rows).Error
	return rows, err
}

func (r *InventoryRepository) GetByID(ctx context.Context, id int64) (*inventoryDatamodel.Material, error) {
	var row inventoryDatamodel.Material
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *InventoryRepository) Create(ctx context.Context, material *inventoryDatamodel.Material) error {
	return r.db.WithContext(ctx).Create(material).Error
}

func (r *InventoryRepository) Update(ctx context.Context, material *inventoryDatamodel.Material) error {
	return r.db.WithContext(ctx).Save(material).Error
}

func (r *InventoryRepository) Deactivate(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&inventoryDatamodel.Material{}).
		Where("id = ?", id).Update("is_active", false).Error
}

func (r *InventoryRepository) AdjustStock(ctx context.Context, materialID int64, delta float64, reason string, byUserID int64) (*inventoryDatamodel.Material, error) {
	var updated inventoryDatamodel.Material

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&inventoryDatamodel.Material{}).
			Where("id = ?", materialID).
			Update("stock", gorm.Expr("stock + ?", delta)).Error; err != nil {
			return err
		}

		movement := inventoryDatamodel.StockMovement{
			MaterialID: materialID,
			Quantity:   delta,
			Reason:     reason,
			CreatedBy:  byUserID,
		}
		if err := tx.Create(&movement).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", materialID).First(&updated).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

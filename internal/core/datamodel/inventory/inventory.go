package inventory

import "time"

// Material is a stock item (fabric, thread, trims...).
type Material struct {
	ID         int64     `gorm:"primaryKey"`
	Code       string    `gorm:"column:code;uniqueIndex;not null"`
	Name       string    `gorm:"column:name;not null"`
	Unit       string    `gorm:"column:unit;not null"`
	Stock      float64   `gorm:"column:stock;default:0"`
	MinStock   float64   `gorm:"column:min_stock;default:0"`
	SupplierID *int64    `gorm:"column:supplier_id"`
	IsActive   bool      `gorm:"column:is_active;default:true"`
	CreatedAt  time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt  time.Time `gorm:"column:updated_at;default:now()"`
}

func (Material) TableName() string {
	return "materials"
}

// StockMovement records every adjustment so stock levels stay auditable.
type StockMovement struct {
	ID         int64     `gorm:"primaryKey"`
	MaterialID int64     `gorm:"column:material_id;not null;index"`
	Quantity   float64   `gorm:"column:quantity;not null"`
	Reason     string    `gorm:"column:reason"`
	CreatedBy  int64     `gorm:"column:created_by;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;default:now()"`
}

func (StockMovement) TableName() string {
	return "stock_movements"
}

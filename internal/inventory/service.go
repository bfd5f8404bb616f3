package inventory

import (
	"context"
	"log/slog"

	"github.com/gestion-taller/taller-management/internal"
	inventoryDatamodel "github.com/gestion-taller/taller-management/internal/core/datamodel/inventory"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*inventoryDatamodel.Material, error)
	GetByID(ctx context.Context, id int64) (*inventoryDatamodel.Material, error)
	Create(ctx context.Context, material *inventoryDatamodel.Material) error
	Update(ctx context.Context, material *inventoryDatamodel.Material) error
	Deactivate(ctx context.Context, id int64) error
	// AdjustStock applies the delta and records the movement in one
	// transaction so stock and history cannot drift apart.
	AdjustStock(ctx context.Context, materialID int64, delta float64, reason string, byUserID int64) (*inventoryDatamodel.Material, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) GetAll(ctx context.Context) ([]*Material, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list materials", "error", err)
		return nil, err
	}
	result := make([]*Material, 0, len(rows))
	for _, row := range rows {
		result = append(result, FromDataModel(row))
	}
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Material, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, internal.NewNotFoundError("Material not found", internal.ErrCodeResourceNotFound)
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(ctx context.Context, dto MaterialDTO) (*Material, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	row := &inventoryDatamodel.Material{
		Code:       dto.Code,
		Name:       dto.Name,
		Unit:       dto.Unit,
		MinStock:   dto.MinStock,
		SupplierID: dto.SupplierID,
		IsActive:   true,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create material", "error", err)
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, id int64, dto MaterialDTO) (*Material, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, internal.NewNotFoundError("Material not found", internal.ErrCodeResourceNotFound)
	}

	row.Code = dto.Code
	row.Name = dto.Name
	row.Unit = dto.Unit
	row.MinStock = dto.MinStock
	row.SupplierID = dto.SupplierID
	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("failed to update material", "error", err, "material_id", id)
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) Deactivate(ctx context.Context, id int64) error {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if row == nil {
		return internal.NewNotFoundError("Material not found", internal.ErrCodeResourceNotFound)
	}
	return s.repo.Deactivate(ctx, id)
}

// AdjustStock applies a signed stock delta. Negative adjustments may not take
// the stock below zero.
func (s *Service) AdjustStock(ctx context.Context, id int64, dto AdjustStockDTO, byUserID int64) (*Material, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, internal.NewNotFoundError("Material not found", internal.ErrCodeResourceNotFound)
	}
	if current.Stock+dto.Quantity < 0 {
		return nil, internal.NewValidationError("stock cannot go negative", internal.ErrCodeInvalidQuantity)
	}

	row, err := s.repo.AdjustStock(ctx, id, dto.Quantity, dto.Reason, byUserID)
	if err != nil {
		s.logger.Error("failed to adjust stock", "error", err, "material_id", id)
		return nil, err
	}

	material := FromDataModel(row)
	if material.BelowMinimum() {
		s.logger.WarnContext(ctx, "material below minimum stock",
			"material_id", material.ID, "code", material.Code,
			"stock", material.Stock, "min_stock", material.MinStock)
	}
	return material, nil
}

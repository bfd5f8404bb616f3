package suppliers

import (
	"context"
	"log/slog"

	"github.com/gestion-taller/taller-management/internal"
	supplierDatamodel "github.com/gestion-taller/taller-management/internal/core/datamodel/supplier"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*supplierDatamodel.Supplier, error)
	GetByID(ctx context.Context, id int64) (*supplierDatamodel.Supplier, error)
	Create(ctx context.Context, supplier *supplierDatamodel.Supplier) error
	Update(ctx context.Context, supplier *supplierDatamodel.Supplier) error
	Deactivate(ctx context.Context, id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) GetAll(ctx context.Context) ([]*Supplier, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list suppliers", "error", err)
		return nil, err
	}
	result := make([]*Supplier, 0, len(rows))
	for _, row := range rows {
		result = append(result, FromDataModel(row))
	}
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Supplier, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, internal.NewNotFoundError("Supplier not found", internal.ErrCodeResourceNotFound)
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(ctx context.Context, dto SupplierDTO) (*Supplier, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	row := ToDataModel(NewSupplier(dto.Name, dto.Contact, dto.Phone, dto.Email, dto.Address))
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create supplier", "error", err)
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, id int64, dto SupplierDTO) (*Supplier, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, internal.NewNotFoundError("Supplier not found", internal.ErrCodeResourceNotFound)
	}

	row.Name = dto.Name
	row.Contact = dto.Contact
	row.Phone = dto.Phone
	row.Email = dto.Email
	row.Address = dto.Address
	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("failed to update supplier", "error", err, "supplier_id", id)
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
		return internal.NewNotFoundError("Supplier not found", internal.ErrCodeResourceNotFound)
	}
	return s.repo.Deactivate(ctx, id)
}

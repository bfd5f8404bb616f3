package workshops

import (
	"context"
	"log/slog"

	"github.com/gestion-taller/taller-management/internal"
	workshopDatamodel "github.com/gestion-taller/taller-management/internal/core/datamodel/workshop"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*workshopDatamodel.Workshop, error)
	GetByID(ctx context.Context, id int64) (*workshopDatamodel.Workshop, error)
	Create(ctx context.Context, workshop *workshopDatamodel.Workshop) error
	Update(ctx context.Context, workshop *workshopDatamodel.Workshop) error
	Deactivate(ctx context.Context, id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) GetAll(ctx context.Context) ([]*Workshop, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list workshops", "error", err)
		return nil, err
	}
	result := make([]*Workshop, 0, len(rows))
	for _, row := range rows {
		result = append(result, FromDataModel(row))
	}
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Workshop, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, internal.NewNotFoundError("Workshop not found", internal.ErrCodeResourceNotFound)
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(ctx context.Context, dto WorkshopDTO) (*Workshop, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	row := ToDataModel(NewWorkshop(dto.Name, dto.Contact, dto.Phone, dto.Address, dto.Specialty))
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create workshop", "error", err)
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, id int64, dto WorkshopDTO) (*Workshop, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, internal.NewNotFoundError("Workshop not found", internal.ErrCodeResourceNotFound)
	}

	row.Name = dto.Name
	row.Contact = dto.Contact
	row.Phone = dto.Phone
	row.Address = dto.Address
	row.Specialty = dto.Specialty
	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("failed to update workshop", "error", err, "workshop_id", id)
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
		return internal.NewNotFoundError("Workshop not found", internal.ErrCodeResourceNotFound)
	}
	return s.repo.Deactivate(ctx, id)
}

package clients

import (
	"context"
	"log/slog"

	"github.com/gestion-taller/taller-management/internal"
	clientDatamodel "github.com/gestion-taller/taller-management/internal/core/datamodel/client"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*clientDatamodel.Client, error)
	GetByID(ctx context.Context, id int64) (*clientDatamodel.Client, error)
	Create(ctx context.Context, client *clientDatamodel.Client) error
	Update(ctx context.Context, client *clientDatamodel.Client) error
	Deactivate(ctx context.Context, id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) GetAll(ctx context.Context) ([]*Client, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list clients", "error", err)
		return nil, err
	}
	result := make([]*Client, 0, len(rows))
	for _, row := range rows {
		result = append(result, FromDataModel(row))
	}
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Client, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, internal.NewNotFoundError("Client not found", internal.ErrCodeResourceNotFound)
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(ctx context.Context, dto CreateClientDTO) (*Client, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	client := NewClient(dto.Name, dto.Contact, dto.Phone, dto.Email, dto.Address)
	row := ToDataModel(client)
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create client", "error", err)
		return nil, err
	}
	s.logger.InfoContext(ctx, "client created", "client_id", row.ID, "name", row.Name)
	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, id int64, dto UpdateClientDTO) (*Client, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, internal.NewNotFoundError("Client not found", internal.ErrCodeResourceNotFound)
	}

	row.Name = dto.Name
	row.Contact = dto.Contact
	row.Phone = dto.Phone
	row.Email = dto.Email
	row.Address = dto.Address
	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("failed to update client", "error", err, "client_id", id)
		return nil, err
	}
	return FromDataModel(row), nil
}

// Deactivate soft-deletes: clients are never removed, only marked inactive.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if row == nil {
		return internal.NewNotFoundError("Client not found", internal.ErrCodeResourceNotFound)
	}
	return s.repo.Deactivate(ctx, id)
}

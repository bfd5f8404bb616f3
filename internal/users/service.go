package users

import (
	"context"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/gestion-taller/taller-management/internal"
	userDatamodel "github.com/gestion-taller/taller-management/internal/core/datamodel/user"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*userDatamodel.User, error)
	GetByID(ctx context.Context, id int64) (*userDatamodel.User, error)
	GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error)
	GetRole(ctx context.Context, roleID int64) (*userDatamodel.Role, error)
	ListRoles(ctx context.Context) ([]*userDatamodel.Role, error)
	Create(ctx context.Context, user *userDatamodel.User) error
	Update(ctx context.Context, user *userDatamodel.User) error
	SetActive(ctx context.Context, id int64, active bool) error
}

// Service covers admin user provisioning. Users are never deleted, only
// deactivated, so audit records keep a valid subject.
type Service struct {
	repo       RepositoryAPI
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{repo: repo, bcryptCost: bcryptCost, logger: logger}
}

func (s *Service) GetAll(ctx context.Context) ([]*User, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}
	result := make([]*User, 0, len(rows))
	for _, row := range rows {
		result = append(result, FromDataModel(row))
	}
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, internal.ErrUserNotFound
	}
	user := FromDataModel(row)
	if role, err := s.repo.GetRole(ctx, row.RoleID); err == nil && role != nil {
		user.RoleName = role.Name
	}
	return user, nil
}

func (s *Service) Create(ctx context.Context, dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(ctx, dto.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, internal.NewConflictError("A user with this email already exists", internal.ErrCodeValidationFailed)
	}

	role, err := s.repo.GetRole(ctx, dto.RoleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, internal.ErrRoleNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	row := &userDatamodel.User{
		Email:        dto.Email,
		Name:         dto.Name,
		PasswordHash: string(hash),
		RoleID:       dto.RoleID,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return nil, err
	}
	s.logger.InfoContext(ctx, "user created", "user_id", row.ID, "role_id", row.RoleID)
	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, id int64, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, internal.ErrUserNotFound
	}

	if dto.RoleID != row.RoleID {
		role, err := s.repo.GetRole(ctx, dto.RoleID)
		if err != nil {
			return nil, err
		}
		if role == nil {
			return nil, internal.ErrRoleNotFound
		}
		s.logger.InfoContext(ctx, "user role changed",
			"user_id", id, "old_role_id", row.RoleID, "new_role_id", dto.RoleID)
	}

	row.Name = dto.Name
	row.RoleID = dto.RoleID
	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) SetActive(ctx context.Context, id int64, active bool) error {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if row == nil {
		return internal.ErrUserNotFound
	}
	if row.IsActive == active {
		return nil
	}
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "user active flag changed", "user_id", id, "is_active", active)
	return nil
}

func (s *Service) ListRoles(ctx context.Context) ([]*Role, error) {
	rows, err := s.repo.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*Role, 0, len(rows))
	for _, row := range rows {
		result = append(result, RoleFromDataModel(row))
	}
	return result, nil
}

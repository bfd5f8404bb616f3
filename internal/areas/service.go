package areas

import (
	"context"
	"log/slog"

	"github.com/gestion-taller/taller-management/internal"
	areaDatamodel "github.com/gestion-taller/taller-management/internal/core/datamodel/area"
	"github.com/gestion-taller/taller-management/internal/permissions"
)

type RepositoryAPI interface {
	GetUserRoleKind(ctx context.Context, userID int64) (string, error)
	AreaExists(ctx context.Context, areaID int64) (bool, error)
	HasAssignment(ctx context.Context, userID, areaID int64) (bool, error)
	InsertAssignment(ctx context.Context, userID, areaID int64) error
	DeleteAssignment(ctx context.Context, userID, areaID int64) error
	ListAreaNames(ctx context.Context, userID int64) ([]string, error)
	ListAll(ctx context.Context) ([]*areaDatamodel.Area, error)
}

// Service administers operator area assignments. Writes are rare and
// admin-driven; reads happen on every area-scoped permission check.
type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// AssignArea scopes an operator to an area. Assigning an area the user
// already holds is a no-op; assigning to a non-operator is rejected.
func (s *Service) AssignArea(ctx context.Context, userID, areaID int64) error {
	kind, err := s.repo.GetUserRoleKind(ctx, userID)
	if err != nil {
		return err
	}
	if permissions.ParseRoleKind(kind) != permissions.KindOperator {
		return internal.NewValidationError("areas can only be assigned to operator users", internal.ErrCodeNotOperator)
	}

	exists, err := s.repo.AreaExists(ctx, areaID)
	if err != nil {
		return err
	}
	if !exists {
		return internal.ErrAreaNotFound
	}

	held, err := s.repo.HasAssignment(ctx, userID, areaID)
	if err != nil {
		return err
	}
	if held {
		return nil
	}

	if err := s.repo.InsertAssignment(ctx, userID, areaID); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "area assigned", "user_id", userID, "area_id", areaID)
	return nil
}

// RemoveArea drops an assignment. Removing an absent assignment is not an
// error.
func (s *Service) RemoveArea(ctx context.Context, userID, areaID int64) error {
	if err := s.repo.DeleteAssignment(ctx, userID, areaID); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "area removed", "user_id", userID, "area_id", areaID)
	return nil
}

// ListAreas returns the user's assigned area names ordered by name. The
// ordering is for display only.
func (s *Service) ListAreas(ctx context.Context, userID int64) ([]string, error) {
	return s.repo.ListAreaNames(ctx, userID)
}

// ListAll returns the area catalog.
func (s *Service) ListAll(ctx context.Context) ([]*Area, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*Area, 0, len(rows))
	for _, row := range rows {
		result = append(result, FromDataModel(row))
	}
	return result, nil
}

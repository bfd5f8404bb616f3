package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/gestion-taller/taller-management/internal/permissions"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetSubject resolves the user's current status and role classification.
func (r *Repository) GetSubject(ctx context.Context, userID int64) (*permissions.Subject, error) {
	var row struct {
		UserID   int64
		IsActive bool
		RoleID   int64
		RoleName string
		RoleKind string
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT u.id AS user_id, u.is_active, r.id AS role_id, r.name AS role_name, r.kind AS role_kind
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE u.id = ?`, userID).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.UserID == 0 {
		return nil, permissions.ErrSubjectNotFound
	}

	return &permissions.Subject{
		UserID:   row.UserID,
		IsActive: row.IsActive,
		RoleID:   row.RoleID,
		RoleName: row.RoleName,
		RoleKind: permissions.ParseRoleKind(row.RoleKind),
	}, nil
}

// ListAreaNames returns the operator's assigned area names ordered by name.
// Ordering is for display only.
func (r *Repository) ListAreaNames(ctx context.Context, userID int64) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Raw(`
		SELECT a.name
		FROM user_areas ua
		JOIN areas a ON a.id = ua.area_id
		WHERE ua.user_id = ?
		ORDER BY a.name ASC`, userID).Scan(&names).Error
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// LoadGrants fetches the full role → capability table for catalog builds.
func (r *Repository) LoadGrants(ctx context.Context) ([]permissions.RoleGrant, error) {
	var rows []struct {
		RoleID     int64
		ID         int64
		Name       string
		Module     string
		Action     string
		AreaScoped bool
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT rp.role_id, p.id, p.name, p.module, p.action, p.area_scoped
		FROM role_permissions rp
		JOIN permissions p ON p.id = rp.permission_id`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	grants := make([]permissions.RoleGrant, 0, len(rows))
	for _, row := range rows {
		grants = append(grants, permissions.RoleGrant{
			RoleID: row.RoleID,
			Entry: permissions.CatalogEntry{
				ID:         row.ID,
				Name:       row.Name,
				Capability: permissions.NewCapability(row.Module, row.Action),
				AreaScoped: row.AreaScoped,
			},
		})
	}
	return grants, nil
}


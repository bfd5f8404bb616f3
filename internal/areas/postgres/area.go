package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gestion-taller/taller-management/internal"
	"github.com/gestion-taller/taller-management/internal/areas"
	areaDatamodel "github.com/gestion-taller/taller-management/internal/core/datamodel/area"
)

type AreaRepository struct {
	db *gorm.DB
}

func NewAreaRepository(db *gorm.DB) areas.RepositoryAPI {
	return &AreaRepository{db: db}
}

func (r *AreaRepository) GetUserRoleKind(ctx context.Context, userID int64) (string, error) {
	var kind string
	err := r.db.WithContext(ctx).Raw(`
		SELECT r.kind
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE u.id = ?`, userID).Scan(&kind).Error
	if err != nil {
		return "", err
	}
	if kind == "" {
		return "", internal.ErrUserNotFound
	}
	return kind, nil
}

func (r *AreaRepository) AreaExists(ctx context.Context, areaID int64) (bool, error) {
	var area areaDatamodel.Area
	err := r.db.WithContext(ctx).Where("id = ?", areaID).First(&area).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *AreaRepository) HasAssignment(ctx context.Context, userID, areaID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&areaDatamodel.UserArea{}).
		Where("user_id = ? AND area_id = ?", userID, areaID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AreaRepository) InsertAssignment(ctx context.Context, userID, areaID int64) error {
	assignment := areaDatamodel.UserArea{UserID: userID, AreaID: areaID}
	return r.db.WithContext(ctx).Create(&assignment).Error
}

func (r *AreaRepository) DeleteAssignment(ctx context.Context, userID, areaID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND area_id = ?", userID, areaID).
		Delete(&areaDatamodel.UserArea{}).Error
}

func (r *AreaRepository) ListAreaNames(ctx context.Context, userID int64) ([]string, error) {
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

func (r *AreaRepository) ListAll(ctx context.Context) ([]*areaDatamodel.Area, error) {
	var rows []*areaDatamodel.Area
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

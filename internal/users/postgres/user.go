package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	userDatamodel "github.com/gestion-taller/taller-management/internal/core/datamodel/user"
	"github.com/gestion-taller/taller-management/internal/users"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) users.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetAll(ctx context.Context) ([]*userDatamodel.User, error) {
	var rows []*userDatamodel.User
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*userDatamodel.User, error) {
	var row userDatamodel.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error) {
	var row userDatamodel.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *UserRepository) GetRole(ctx context.Context, roleID int64) (*userDatamodel.Role, error) {
	var row userDatamodel.Role
	err := r.db.WithContext(ctx).Where("id = ?", roleID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *UserRepository) ListRoles(ctx context.Context) ([]*userDatamodel.Role, error) {
	var rows []*userDatamodel.Role
	err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error
	return rows, err
}

func (r *UserRepository) Create(ctx context.Context, user *userDatamodel.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) Update(ctx context.Context, user *userDatamodel.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *UserRepository) SetActive(ctx context.Context, id int64, active bool) error {
	return r.db.WithContext(ctx).Model(&userDatamodel.User{}).
		Where("id = ?", id).Update("is_active", active).Error
}

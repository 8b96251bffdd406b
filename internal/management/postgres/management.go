package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/access-management/internal/management"

	userDatamodel "github.com/frahmantamala/access-management/internal/core/datamodel/user"
)

type ManagementRepository struct {
	db *gorm.DB
}

func NewManagementRepository(db *gorm.DB) management.RepositoryAPI {
	return &ManagementRepository{db: db}
}

func (r *ManagementRepository) FindUserRole(userID, roleID int64) (*userDatamodel.UserRole, error) {
	var ur userDatamodel.UserRole
	err := r.db.Where("user_id = ? AND role_id = ?", userID, roleID).First(&ur).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ur, nil
}

func (r *ManagementRepository) CreateUserRole(ur *userDatamodel.UserRole) error {
	return r.db.Create(ur).Error
}

func (r *ManagementRepository) DeleteUserRole(userID, roleID int64) error {
	result := r.db.Where("user_id = ? AND role_id = ?", userID, roleID).
		Delete(&userDatamodel.UserRole{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ManagementRepository) FindUserPermission(userID, permissionID int64) (*userDatamodel.UserPermission, error) {
	var up userDatamodel.UserPermission
	err := r.db.Where("user_id = ? AND permission_id = ?", userID, permissionID).First(&up).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &up, nil
}

func (r *ManagementRepository) CreateUserPermission(up *userDatamodel.UserPermission) error {
	return r.db.Create(up).Error
}

func (r *ManagementRepository) DeleteUserPermission(userID, permissionID int64) error {
	result := r.db.Where("user_id = ? AND permission_id = ?", userID, permissionID).
		Delete(&userDatamodel.UserPermission{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

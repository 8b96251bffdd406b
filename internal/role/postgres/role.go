package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/access-management/internal/role"

	roleDatamodel "github.com/frahmantamala/access-management/internal/core/datamodel/role"
)

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) role.RepositoryAPI {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) Create(rl *roleDatamodel.Role) error {
	return r.db.Create(rl).Error
}

func (r *RoleRepository) Update(rl *roleDatamodel.Role) error {
	result := r.db.Model(&roleDatamodel.Role{}).
		Where("id = ?", rl.ID).
		Update("name", rl.Name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the role's permission rows and the role in one
// transaction. A foreign key violation from user_roles surfaces as
// gorm.ErrForeignKeyViolated for the service to translate.
func (r *RoleRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).Delete(&roleDatamodel.RolePermission{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&roleDatamodel.Role{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *RoleRepository) GetAll() ([]*roleDatamodel.Role, error) {
	var roles []*roleDatamodel.Role
	err := r.db.Preload("RolePermissions").Preload("RolePermissions.Permission").
		Order("id ASC").Find(&roles).Error
	return roles, err
}

func (r *RoleRepository) GetByID(id int64) (*roleDatamodel.Role, error) {
	var rl roleDatamodel.Role
	err := r.db.Preload("RolePermissions").Preload("RolePermissions.Permission").
		Where("id = ?", id).First(&rl).Error
	if err != nil {
		return nil, err
	}
	return &rl, nil
}

func (r *RoleRepository) FindRolePermission(roleID, permissionID int64) (*roleDatamodel.RolePermission, error) {
	var rp roleDatamodel.RolePermission
	err := r.db.Where("role_id = ? AND permission_id = ?", roleID, permissionID).First(&rp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rp, nil
}

func (r *RoleRepository) CreateRolePermission(rp *roleDatamodel.RolePermission) error {
	return r.db.Create(rp).Error
}

func (r *RoleRepository) DeleteRolePermission(roleID, permissionID int64) error {
	result := r.db.Where("role_id = ? AND permission_id = ?", roleID, permissionID).
		Delete(&roleDatamodel.RolePermission{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

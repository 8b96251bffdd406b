package postgres

import (
	"gorm.io/gorm"

	"github.com/frahmantamala/access-management/internal/permission"

	permissionDatamodel "github.com/frahmantamala/access-management/internal/core/datamodel/permission"
)

type PermissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) permission.RepositoryAPI {
	return &PermissionRepository{db: db}
}

func (r *PermissionRepository) Create(p *permissionDatamodel.Permission) error {
	return r.db.Create(p).Error
}

func (r *PermissionRepository) Update(p *permissionDatamodel.Permission) error {
	result := r.db.Model(&permissionDatamodel.Permission{}).
		Where("id = ?", p.ID).
		Update("name", p.Name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PermissionRepository) Delete(id int64) error {
	result := r.db.Where("id = ?", id).Delete(&permissionDatamodel.Permission{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PermissionRepository) GetAll() ([]*permissionDatamodel.Permission, error) {
	var permissions []*permissionDatamodel.Permission
	err := r.db.Order("id ASC").Find(&permissions).Error
	return permissions, err
}

func (r *PermissionRepository) GetByID(id int64) (*permissionDatamodel.Permission, error) {
	var p permissionDatamodel.Permission
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

package role

import (
	"time"

	permissionDatamodel "github.com/frahmantamala/access-management/internal/core/datamodel/permission"
)

type Role struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:now()"`

	RolePermissions []RolePermission `gorm:"foreignKey:RoleID"`
}

func (Role) TableName() string {
	return "roles"
}

// RolePermission links a role to a permission. The pair is unique.
type RolePermission struct {
	ID           int64     `gorm:"primaryKey"`
	RoleID       int64     `gorm:"column:role_id;not null;uniqueIndex:idx_role_permissions_pair"`
	PermissionID int64     `gorm:"column:permission_id;not null;uniqueIndex:idx_role_permissions_pair"`
	CreatedAt    time.Time `gorm:"column:created_at;default:now()"`

	Permission *permissionDatamodel.Permission `gorm:"foreignKey:PermissionID"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}

package management

import (
	"github.com/frahmantamala/access-management/internal/core/common/validation"
)

// AssignRoleDTO is shared by the assign and unassign role endpoints.
type AssignRoleDTO struct {
	UserID int64 `json:"user_id"`
	RoleID int64 `json:"role_id"`
}

func (d AssignRoleDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("user_id", d.UserID).Required().Positive()
	v.Field("role_id", d.RoleID).Required().Positive()
	return v.Validate()
}

// AssignPermissionDTO is shared by the assign and unassign permission endpoints.
type AssignPermissionDTO struct {
	UserID       int64 `json:"user_id"`
	PermissionID int64 `json:"permission_id"`
}

func (d AssignPermissionDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("user_id", d.UserID).Required().Positive()
	v.Field("permission_id", d.PermissionID).Required().Positive()
	return v.Validate()
}

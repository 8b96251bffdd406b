package role

import (
	"github.com/frahmantamala/access-management/internal/core/common/validation"
)

type CreateRoleDTO struct {
	Name string `json:"name"`
}

func (d CreateRoleDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required()
	return v.Validate()
}

// UpdateRoleDTO replaces a role's name by id.
type UpdateRoleDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (d UpdateRoleDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("id", d.ID).Required().Positive()
	v.Field("name", d.Name).Required()
	return v.Validate()
}

// AssignPermissionDTO is shared by the assign and unassign endpoints.
type AssignPermissionDTO struct {
	RoleID       int64 `json:"role_id"`
	PermissionID int64 `json:"permission_id"`
}

func (d AssignPermissionDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("role_id", d.RoleID).Required().Positive()
	v.Field("permission_id", d.PermissionID).Required().Positive()
	return v.Validate()
}

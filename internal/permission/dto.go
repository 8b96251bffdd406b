package permission

import (
	"github.com/frahmantamala/access-management/internal/core/common/validation"
)

type CreatePermissionDTO struct {
	Name string `json:"name"`
}

func (d CreatePermissionDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required()
	return v.Validate()
}

type UpdatePermissionDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (d UpdatePermissionDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("id", d.ID).Required().Positive()
	v.Field("name", d.Name).Required()
	return v.Validate()
}

package user

import (
	"github.com/frahmantamala/access-management/internal/core/common/validation"
)

// CreateUserDTO carries the fields needed to create a user. The
// password is hashed before it ever reaches the store.
type CreateUserDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d CreateUserDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required()
	v.Field("email", d.Email).Required().Email()
	v.Field("password", d.Password).Required().MinLength(8)
	return v.Validate()
}

// UpdateUserDTO replaces a user's name and email by id. The password
// is immutable through this flow.
type UpdateUserDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (d UpdateUserDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("id", d.ID).Required().Positive()
	v.Field("name", d.Name).Required()
	v.Field("email", d.Email).Required().Email()
	return v.Validate()
}

package user

import (
	"time"

	userDatamodel "github.com/frahmantamala/access-management/internal/core/datamodel/user"
)

// User is the domain model exposed to handlers. The password hash is
// never serialized.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	UserRoles       []UserRole       `json:"user_roles,omitempty"`
	UserPermissions []UserPermission `json:"user_permissions,omitempty"`
}

// UserRole is a user-to-role association as seen in user responses.
type UserRole struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`
	RoleID int64 `json:"role_id"`
}

// UserPermission is a direct user-to-permission grant.
type UserPermission struct {
	ID           int64 `json:"id"`
	UserID       int64 `json:"user_id"`
	PermissionID int64 `json:"permission_id"`
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func FromDataModel(m *userDatamodel.User) *User {
	u := &User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	for _, ur := range m.UserRoles {
		u.UserRoles = append(u.UserRoles, UserRole{ID: ur.ID, UserID: ur.UserID, RoleID: ur.RoleID})
	}
	for _, up := range m.UserPermissions {
		u.UserPermissions = append(u.UserPermissions, UserPermission{ID: up.ID, UserID: up.UserID, PermissionID: up.PermissionID})
	}
	return u
}

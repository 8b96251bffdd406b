package management

import (
	"time"

	userDatamodel "github.com/frahmantamala/access-management/internal/core/datamodel/user"
)

// UserRole is a user-to-role assignment as returned by the management
// endpoints.
type UserRole struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	RoleID    int64     `json:"role_id"`
	CreatedAt time.Time `json:"created_at"`
}

// UserPermission is a direct user-to-permission grant.
type UserPermission struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	PermissionID int64     `json:"permission_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func userRoleFromDataModel(m *userDatamodel.UserRole) *UserRole {
	return &UserRole{
		ID:        m.ID,
		UserID:    m.UserID,
		RoleID:    m.RoleID,
		CreatedAt: m.CreatedAt,
	}
}

func userPermissionFromDataModel(m *userDatamodel.UserPermission) *UserPermission {
	return &UserPermission{
		ID:           m.ID,
		UserID:       m.UserID,
		PermissionID: m.PermissionID,
		CreatedAt:    m.CreatedAt,
	}
}

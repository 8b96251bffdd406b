package role

import (
	"time"

	roleDatamodel "github.com/frahmantamala/access-management/internal/core/datamodel/role"
)

type Role struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	RolePermissions []RolePermission `json:"role_permissions,omitempty"`
}

// RolePermission is a role-to-permission association. The permission
// is populated on reads that eager-load relations.
type RolePermission struct {
	ID           int64          `json:"id"`
	RoleID       int64          `json:"role_id"`
	PermissionID int64          `json:"permission_id"`
	Permission   *PermissionRef `json:"permission,omitempty"`
}

type PermissionRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func FromDataModel(m *roleDatamodel.Role) *Role {
	r := &Role{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	for _, rp := range m.RolePermissions {
		r.RolePermissions = append(r.RolePermissions, rolePermissionFromDataModel(&rp))
	}
	return r
}

func rolePermissionFromDataModel(m *roleDatamodel.RolePermission) RolePermission {
	rp := RolePermission{
		ID:           m.ID,
		RoleID:       m.RoleID,
		PermissionID: m.PermissionID,
	}
	if m.Permission != nil {
		rp.Permission = &PermissionRef{ID: m.Permission.ID, Name: m.Permission.Name}
	}
	return rp
}

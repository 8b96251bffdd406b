package permission

import (
	"time"

	permissionDatamodel "github.com/frahmantamala/access-management/internal/core/datamodel/permission"
)

// Permission is an atomic named capability. Authorization checks for
// membership, never for the content of the name.
type Permission struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromDataModel(m *permissionDatamodel.Permission) *Permission {
	return &Permission{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

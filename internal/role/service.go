package role

import (
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/frahmantamala/access-management/internal"
	roleDatamodel "github.com/frahmantamala/access-management/internal/core/datamodel/role"
)

type RepositoryAPI interface {
	Create(role *roleDatamodel.Role) error
	Update(role *roleDatamodel.Role) error
	Delete(id int64) error
	GetAll() ([]*roleDatamodel.Role, error)
	GetByID(id int64) (*roleDatamodel.Role, error)

	FindRolePermission(roleID, permissionID int64) (*roleDatamodel.RolePermission, error)
	CreateRolePermission(rp *roleDatamodel.RolePermission) error
	DeleteRolePermission(roleID, permissionID int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) Create(dto CreateRoleDTO) (*Role, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	model := &roleDatamodel.Role{Name: dto.Name}
	if err := s.repo.Create(model); err != nil {
		return nil, internal.NewInternalError("failed to create role", err)
	}

	s.logger.Info("role created", "role_id", model.ID, "name", model.Name)
	return FromDataModel(model), nil
}

func (s *Service) Update(dto UpdateRoleDTO) (*Role, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	model := &roleDatamodel.Role{ID: dto.ID, Name: dto.Name}
	if err := s.repo.Update(model); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError(
				fmt.Sprintf("role %d not found", dto.ID),
				internal.ErrCodeRoleNotFound)
		}
		return nil, internal.NewInternalError("failed to update role", err)
	}

	s.logger.Info("role updated", "role_id", dto.ID)
	return FromDataModel(model), nil
}

// Delete removes the role's permission associations first, then the
// role itself. A role still assigned to a user cannot be removed.
func (s *Service) Delete(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return internal.NewNotFoundError(
				fmt.Sprintf("role %d not found", id),
				internal.ErrCodeRoleNotFound)
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return internal.NewConflictError(
				fmt.Sprintf("role %d cannot be removed because it is assigned to a user", id),
				internal.ErrCodeRoleInUse)
		}
		return internal.NewInternalError("failed to delete role", err)
	}

	s.logger.Info("role deleted", "role_id", id)
	return nil
}

func (s *Service) GetAll() ([]*Role, error) {
	models, err := s.repo.GetAll()
	if err != nil {
		return nil, internal.NewInternalError("failed to list roles", err)
	}

	roles := make([]*Role, 0, len(models))
	for _, m := range models {
		roles = append(roles, FromDataModel(m))
	}
	return roles, nil
}

func (s *Service) GetByID(id int64) (*Role, error) {
	model, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError(
				fmt.Sprintf("role %d not found", id),
				internal.ErrCodeRoleNotFound)
		}
		return nil, internal.NewInternalError("failed to load role", err)
	}
	return FromDataModel(model), nil
}

// AssignPermission creates the role-permission association. The
// operation is idempotent: an existing pair is returned as-is, and a
// concurrent create losing to the unique index is treated the same way.
func (s *Service) AssignPermission(dto AssignPermissionDTO) (*RolePermission, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindRolePermission(dto.RoleID, dto.PermissionID)
	if err != nil {
		return nil, internal.NewInternalError("failed to look up role permission", err)
	}
	if existing != nil {
		rp := rolePermissionFromDataModel(existing)
		return &rp, nil
	}

	model := &roleDatamodel.RolePermission{RoleID: dto.RoleID, PermissionID: dto.PermissionID}
	if err := s.repo.CreateRolePermission(model); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost a benign race: the pair now exists, return it
			winner, findErr := s.repo.FindRolePermission(dto.RoleID, dto.PermissionID)
			if findErr != nil || winner == nil {
				return nil, internal.NewInternalError("failed to load role permission", findErr)
			}
			rp := rolePermissionFromDataModel(winner)
			return &rp, nil
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, internal.NewNotFoundError(
				fmt.Sprintf("role %d or permission %d not found", dto.RoleID, dto.PermissionID),
				internal.ErrCodeAssignmentNotFound)
		}
		return nil, internal.NewInternalError("failed to assign permission to role", err)
	}

	s.logger.Info("permission assigned to role", "role_id", dto.RoleID, "permission_id", dto.PermissionID)
	rp := rolePermissionFromDataModel(model)
	return &rp, nil
}

// UnassignPermission removes the association. Unassigning a pair that
// does not exist reports NotFound rather than silently succeeding.
func (s *Service) UnassignPermission(dto AssignPermissionDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	if err := s.repo.DeleteRolePermission(dto.RoleID, dto.PermissionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return internal.NewNotFoundError(
				fmt.Sprintf("permission %d is not assigned to role %d", dto.PermissionID, dto.RoleID),
				internal.ErrCodeAssignmentNotFound)
		}
		return internal.NewInternalError("failed to unassign permission from role", err)
	}

	s.logger.Info("permission unassigned from role", "role_id", dto.RoleID, "permission_id", dto.PermissionID)
	return nil
}

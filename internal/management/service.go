package management

import (
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/frahmantamala/access-management/internal"
	userDatamodel "github.com/frahmantamala/access-management/internal/core/datamodel/user"
)

type RepositoryAPI interface {
	FindUserRole(userID, roleID int64) (*userDatamodel.UserRole, error)
	CreateUserRole(ur *userDatamodel.UserRole) error
	DeleteUserRole(userID, roleID int64) error

	FindUserPermission(userID, permissionID int64) (*userDatamodel.UserPermission, error)
	CreateUserPermission(up *userDatamodel.UserPermission) error
	DeleteUserPermission(userID, permissionID int64) error
}

// Service owns the user-role and user-permission junction rows: they
// are created and destroyed here and nowhere else.
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

// AssignRole creates the user-role association. Re-assigning an
// existing pair returns the existing row; a concurrent create losing
// to the unique index is treated as already-assigned, not an error.
func (s *Service) AssignRole(dto AssignRoleDTO) (*UserRole, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindUserRole(dto.UserID, dto.RoleID)
	if err != nil {
		return nil, internal.NewInternalError("failed to look up user role", err)
	}
	if existing != nil {
		return userRoleFromDataModel(existing), nil
	}

	model := &userDatamodel.UserRole{UserID: dto.UserID, RoleID: dto.RoleID}
	if err := s.repo.CreateUserRole(model); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			winner, findErr := s.repo.FindUserRole(dto.UserID, dto.RoleID)
			if findErr != nil || winner == nil {
				return nil, internal.NewInternalError("failed to load user role", findErr)
			}
			return userRoleFromDataModel(winner), nil
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, internal.NewNotFoundError(
				fmt.Sprintf("role %d or user %d not found", dto.RoleID, dto.UserID),
				internal.ErrCodeAssignmentNotFound)
		}
		return nil, internal.NewInternalError("failed to assign role to user", err)
	}

	s.logger.Info("role assigned to user", "user_id", dto.UserID, "role_id", dto.RoleID)
	return userRoleFromDataModel(model), nil
}

// UnassignRole removes the association; a pair that does not exist
// reports NotFound rather than silently succeeding.
func (s *Service) UnassignRole(dto AssignRoleDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	if err := s.repo.DeleteUserRole(dto.UserID, dto.RoleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return internal.NewNotFoundError(
				fmt.Sprintf("role %d is not assigned to user %d", dto.RoleID, dto.UserID),
				internal.ErrCodeAssignmentNotFound)
		}
		return internal.NewInternalError("failed to unassign role from user", err)
	}

	s.logger.Info("role unassigned from user", "user_id", dto.UserID, "role_id", dto.RoleID)
	return nil
}

// AssignPermission grants a permission directly to a user with the
// same idempotent semantics as AssignRole.
func (s *Service) AssignPermission(dto AssignPermissionDTO) (*UserPermission, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindUserPermission(dto.UserID, dto.PermissionID)
	if err != nil {
		return nil, internal.NewInternalError("failed to look up user permission", err)
	}
	if existing != nil {
		return userPermissionFromDataModel(existing), nil
	}

	model := &userDatamodel.UserPermission{UserID: dto.UserID, PermissionID: dto.PermissionID}
	if err := s.repo.CreateUserPermission(model); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			winner, findErr := s.repo.FindUserPermission(dto.UserID, dto.PermissionID)
			if findErr != nil || winner == nil {
				return nil, internal.NewInternalError("failed to load user permission", findErr)
			}
			return userPermissionFromDataModel(winner), nil
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, internal.NewNotFoundError(
				fmt.Sprintf("permission %d or user %d not found", dto.PermissionID, dto.UserID),
				internal.ErrCodeAssignmentNotFound)
		}
		return nil, internal.NewInternalError("failed to assign permission to user", err)
	}

	s.logger.Info("permission assigned to user", "user_id", dto.UserID, "permission_id", dto.PermissionID)
	return userPermissionFromDataModel(model), nil
}

func (s *Service) UnassignPermission(dto AssignPermissionDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	if err := s.repo.DeleteUserPermission(dto.UserID, dto.PermissionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return internal.NewNotFoundError(
				fmt.Sprintf("permission %d is not assigned to user %d", dto.PermissionID, dto.UserID),
				internal.ErrCodeAssignmentNotFound)
		}
		return internal.NewInternalError("failed to unassign permission from user", err)
	}

	s.logger.Info("permission unassigned from user", "user_id", dto.UserID, "permission_id", dto.PermissionID)
	return nil
}

package permission

import (
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/frahmantamala/access-management/internal"
	permissionDatamodel "github.com/frahmantamala/access-management/internal/core/datamodel/permission"
)

type RepositoryAPI interface {
	Create(p *permissionDatamodel.Permission) error
	Update(p *permissionDatamodel.Permission) error
	Delete(id int64) error
	GetAll() ([]*permissionDatamodel.Permission, error)
	GetByID(id int64) (*permissionDatamodel.Permission, error)
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

func (s *Service) Create(dto CreatePermissionDTO) (*Permission, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	model := &permissionDatamodel.Permission{Name: dto.Name}
	if err := s.repo.Create(model); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, internal.NewConflictError(
				fmt.Sprintf("permission %s already exists", dto.Name),
				internal.ErrCodeNameAlreadyExists)
		}
		return nil, internal.NewInternalError("failed to create permission", err)
	}

	s.logger.Info("permission created", "permission_id", model.ID, "name", model.Name)
	return FromDataModel(model), nil
}

func (s *Service) Update(dto UpdatePermissionDTO) (*Permission, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	model := &permissionDatamodel.Permission{ID: dto.ID, Name: dto.Name}
	if err := s.repo.Update(model); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError(
				fmt.Sprintf("permission %d not found", dto.ID),
				internal.ErrCodePermissionNotFound)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, internal.NewConflictError(
				fmt.Sprintf("permission %s already exists", dto.Name),
				internal.ErrCodeNameAlreadyExists)
		}
		return nil, internal.NewInternalError("failed to update permission", err)
	}

	s.logger.Info("permission updated", "permission_id", dto.ID)
	return FromDataModel(model), nil
}

func (s *Service) Delete(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return internal.NewNotFoundError(
				fmt.Sprintf("permission %d not found", id),
				internal.ErrCodePermissionNotFound)
		}
		return internal.NewInternalError("failed to delete permission", err)
	}

	s.logger.Info("permission deleted", "permission_id", id)
	return nil
}

func (s *Service) GetAll() ([]*Permission, error) {
	models, err := s.repo.GetAll()
	if err != nil {
		return nil, internal.NewInternalError("failed to list permissions", err)
	}

	permissions := make([]*Permission, 0, len(models))
	for _, m := range models {
		permissions = append(permissions, FromDataModel(m))
	}
	return permissions, nil
}

func (s *Service) GetByID(id int64) (*Permission, error) {
	model, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError(
				fmt.Sprintf("permission %d not found", id),
				internal.ErrCodePermissionNotFound)
		}
		return nil, internal.NewInternalError("failed to load permission", err)
	}
	return FromDataModel(model), nil
}

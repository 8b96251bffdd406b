package user

import (
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/frahmantamala/access-management/internal"
	userDatamodel "github.com/frahmantamala/access-management/internal/core/datamodel/user"
)

type RepositoryAPI interface {
	Create(user *userDatamodel.User) error
	Update(user *userDatamodel.User) error
	Delete(id int64) error
	GetAll() ([]*userDatamodel.User, error)
	GetByID(id int64) (*userDatamodel.User, error)
	GetByEmail(email string) (*userDatamodel.User, error)
}

// PasswordHasher is the hashing surface the service needs when
// creating users.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

type Service struct {
	repo   RepositoryAPI
	hasher PasswordHasher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, hasher PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		logger: logger,
	}
}

func (s *Service) Create(dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if err := s.ensureEmailAvailable(dto.Email, 0); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(dto.Password)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	model := ToDataModel(&User{
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: hash,
	})
	if err := s.repo.Create(model); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, internal.NewConflictError(
				fmt.Sprintf("email %s already exists", dto.Email),
				internal.ErrCodeEmailAlreadyExists)
		}
		return nil, internal.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user created", "user_id", model.ID, "email", model.Email)
	return FromDataModel(model), nil
}

func (s *Service) Update(dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if err := s.ensureEmailAvailable(dto.Email, dto.ID); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(dto.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError(
				fmt.Sprintf("user %d not found", dto.ID),
				internal.ErrCodeUserNotFound)
		}
		return nil, internal.NewInternalError("failed to load user", err)
	}

	existing.Name = dto.Name
	existing.Email = dto.Email
	if err := s.repo.Update(existing); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, internal.NewConflictError(
				fmt.Sprintf("email %s already exists", dto.Email),
				internal.ErrCodeEmailAlreadyExists)
		}
		return nil, internal.NewInternalError("failed to update user", err)
	}

	s.logger.Info("user updated", "user_id", existing.ID)
	return FromDataModel(existing), nil
}

func (s *Service) Delete(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return internal.NewNotFoundError(
				fmt.Sprintf("user %d not found", id),
				internal.ErrCodeUserNotFound)
		}
		return internal.NewInternalError("failed to delete user", err)
	}

	s.logger.Info("user deleted", "user_id", id)
	return nil
}

func (s *Service) GetAll() ([]*User, error) {
	models, err := s.repo.GetAll()
	if err != nil {
		return nil, internal.NewInternalError("failed to list users", err)
	}

	users := make([]*User, 0, len(models))
	for _, m := range models {
		users = append(users, FromDataModel(m))
	}
	return users, nil
}

func (s *Service) GetByID(id int64) (*User, error) {
	model, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError(
				fmt.Sprintf("user %d not found", id),
				internal.ErrCodeUserNotFound)
		}
		return nil, internal.NewInternalError("failed to load user", err)
	}
	return FromDataModel(model), nil
}

// ensureEmailAvailable enforces email uniqueness ahead of the store's
// unique index; selfID skips the row being updated.
func (s *Service) ensureEmailAvailable(email string, selfID int64) error {
	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		return internal.NewInternalError("failed to check email", err)
	}
	if existing != nil && existing.ID != selfID {
		return internal.NewConflictError(
			fmt.Sprintf("email %s already exists", email),
			internal.ErrCodeEmailAlreadyExists)
	}
	return nil
}

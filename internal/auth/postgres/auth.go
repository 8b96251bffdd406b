package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/access-management/internal"
	userDatamodel "github.com/frahmantamala/access-management/internal/core/datamodel/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetCredentialsByEmail returns the user id and stored password hash
// for the given email.
func (r *Repository) GetCredentialsByEmail(email string) (int64, string, error) {
	var user userDatamodel.User
	err := r.db.Select("id", "password_hash").Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, "", internal.NewNotFoundError("user not found", internal.ErrCodeUserNotFound)
		}
		return 0, "", err
	}
	return user.ID, user.PasswordHash, nil
}

// GetRoleIDsForUser returns the ids of every role assigned to the user,
// in assignment order.
func (r *Repository) GetRoleIDsForUser(userID int64) ([]int64, error) {
	var roleIDs []int64
	err := r.db.Model(&userDatamodel.UserRole{}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Pluck("role_id", &roleIDs).Error
	if err != nil {
		return nil, err
	}
	return roleIDs, nil
}

package user

import (
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/frahmantamala/access-management/internal"
	userDatamodel "github.com/frahmantamala/access-management/internal/core/datamodel/user"
)

func TestUser(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "User Module Suite")
}

// Mock RepositoryAPI keeping users in memory.
type mockUserRepository struct {
	users  map[int64]*userDatamodel.User
	nextID int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[int64]*userDatamodel.User)}
}

func (m *mockUserRepository) Create(u *userDatamodel.User) error {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	m.nextID++
	u.ID = m.nextID
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) Update(u *userDatamodel.User) error {
	if _, exists := m.users[u.ID]; !exists {
		return gorm.ErrRecordNotFound
	}
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) Delete(id int64) error {
	if _, exists := m.users[id]; !exists {
		return gorm.ErrRecordNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserRepository) GetAll() ([]*userDatamodel.User, error) {
	var out []*userDatamodel.User
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockUserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	u, exists := m.users[id]
	if !exists {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (m *mockUserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

// Mock PasswordHasher marking the plaintext so tests can tell hashed
// values apart from raw passwords.
type mockHasher struct{}

func (mockHasher) Hash(plaintext string) (string, error) {
	return "hashed:" + plaintext, nil
}

var _ = ginkgo.Describe("UserService", func() {
	var (
		service  *Service
		mockRepo *mockUserRepository
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockUserRepository()
		service = NewService(mockRepo, mockHasher{}, slog.Default())
	})

	ginkgo.Describe("Create", func() {
		ginkgo.It("should store a hashed password, never the plaintext", func() {
			u, err := service.Create(CreateUserDTO{Name: "Alice", Email: "alice@mail.com", Password: "password123"})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			stored := mockRepo.users[u.ID]
			gomega.Expect(stored.PasswordHash).To(gomega.Equal("hashed:password123"))
		})

		ginkgo.It("should not expose the password hash in the result", func() {
			u, err := service.Create(CreateUserDTO{Name: "Alice", Email: "alice@mail.com", Password: "password123"})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(u.Name).To(gomega.Equal("Alice"))
			gomega.Expect(u.Email).To(gomega.Equal("alice@mail.com"))
		})

		ginkgo.It("should report Conflict for a duplicate email", func() {
			_, err := service.Create(CreateUserDTO{Name: "Alice", Email: "alice@mail.com", Password: "password123"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.Create(CreateUserDTO{Name: "Other", Email: "alice@mail.com", Password: "password456"})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeConflict))
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeEmailAlreadyExists))
		})

		ginkgo.It("should reject a short password", func() {
			_, err := service.Create(CreateUserDTO{Name: "Alice", Email: "alice@mail.com", Password: "short"})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeValidation))
		})

		ginkgo.It("should reject an invalid email", func() {
			_, err := service.Create(CreateUserDTO{Name: "Alice", Email: "not-an-email", Password: "password123"})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeValidation))
		})
	})

	ginkgo.Describe("Update", func() {
		ginkgo.It("should replace name and email but leave the password untouched", func() {
			created, err := service.Create(CreateUserDTO{Name: "Alice", Email: "alice@mail.com", Password: "password123"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			updated, err := service.Update(UpdateUserDTO{ID: created.ID, Name: "Alicia", Email: "alicia@mail.com"})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(updated.Name).To(gomega.Equal("Alicia"))
			gomega.Expect(updated.Email).To(gomega.Equal("alicia@mail.com"))
			gomega.Expect(mockRepo.users[created.ID].PasswordHash).To(gomega.Equal("hashed:password123"))
		})

		ginkgo.It("should allow keeping the same email on update", func() {
			created, err := service.Create(CreateUserDTO{Name: "Alice", Email: "alice@mail.com", Password: "password123"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.Update(UpdateUserDTO{ID: created.ID, Name: "Alicia", Email: "alice@mail.com"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.It("should report Conflict when taking another user's email", func() {
			_, err := service.Create(CreateUserDTO{Name: "Alice", Email: "alice@mail.com", Password: "password123"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			bob, err := service.Create(CreateUserDTO{Name: "Bob", Email: "bob@mail.com", Password: "password123"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.Update(UpdateUserDTO{ID: bob.ID, Name: "Bob", Email: "alice@mail.com"})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeConflict))
		})

		ginkgo.It("should report NotFound for a missing user", func() {
			_, err := service.Update(UpdateUserDTO{ID: 42, Name: "Ghost", Email: "ghost@mail.com"})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeNotFound))
			gomega.Expect(appErr.Message).To(gomega.ContainSubstring("user 42"))
		})
	})

	ginkgo.Describe("Delete", func() {
		ginkgo.It("should delete an existing user", func() {
			created, err := service.Create(CreateUserDTO{Name: "Alice", Email: "alice@mail.com", Password: "password123"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			gomega.Expect(service.Delete(created.ID)).To(gomega.Succeed())
			gomega.Expect(mockRepo.users).To(gomega.BeEmpty())
		})

		ginkgo.It("should report NotFound for a missing user", func() {
			err := service.Delete(42)

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeNotFound))
		})
	})

	ginkgo.Describe("GetByID", func() {
		ginkgo.It("should report NotFound for a missing user", func() {
			_, err := service.GetByID(42)

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeNotFound))
		})
	})
})

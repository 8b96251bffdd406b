package permission

import (
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/frahmantamala/access-management/internal"
	permissionDatamodel "github.com/frahmantamala/access-management/internal/core/datamodel/permission"
)

func TestPermission(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Permission Module Suite")
}

type mockPermissionRepository struct {
	permissions map[int64]*permissionDatamodel.Permission
	nextID      int64
}

func newMockPermissionRepository() *mockPermissionRepository {
	return &mockPermissionRepository{permissions: make(map[int64]*permissionDatamodel.Permission)}
}

func (m *mockPermissionRepository) nameTaken(name string, selfID int64) bool {
	for _, p := range m.permissions {
		if p.Name == name && p.ID != selfID {
			return true
		}
	}
	return false
}

func (m *mockPermissionRepository) Create(p *permissionDatamodel.Permission) error {
	if m.nameTaken(p.Name, 0) {
		return gorm.ErrDuplicatedKey
	}
	m.nextID++
	p.ID = m.nextID
	m.permissions[p.ID] = p
	return nil
}

func (m *mockPermissionRepository) Update(p *permissionDatamodel.Permission) error {
	if _, exists := m.permissions[p.ID]; !exists {
		return gorm.ErrRecordNotFound
	}
	if m.nameTaken(p.Name, p.ID) {
		return gorm.ErrDuplicatedKey
	}
	m.permissions[p.ID] = p
	return nil
}

func (m *mockPermissionRepository) Delete(id int64) error {
	if _, exists := m.permissions[id]; !exists {
		return gorm.ErrRecordNotFound
	}
	delete(m.permissions, id)
	return nil
}

func (m *mockPermissionRepository) GetAll() ([]*permissionDatamodel.Permission, error) {
	var out []*permissionDatamodel.Permission
	for _, p := range m.permissions {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockPermissionRepository) GetByID(id int64) (*permissionDatamodel.Permission, error) {
	p, exists := m.permissions[id]
	if !exists {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

var _ = ginkgo.Describe("PermissionService", func() {
	var (
		service  *Service
		mockRepo *mockPermissionRepository
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockPermissionRepository()
		service = NewService(mockRepo, slog.Default())
	})

	ginkgo.Describe("Create", func() {
		ginkgo.It("should create a permission", func() {
			p, err := service.Create(CreatePermissionDTO{Name: "Manage Roles"})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(p.ID).To(gomega.BeNumerically(">", 0))
			gomega.Expect(p.Name).To(gomega.Equal("Manage Roles"))
		})

		ginkgo.It("should report Conflict for a duplicate name", func() {
			_, err := service.Create(CreatePermissionDTO{Name: "Manage Roles"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.Create(CreatePermissionDTO{Name: "Manage Roles"})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeConflict))
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeNameAlreadyExists))
		})

		ginkgo.It("should reject an empty name", func() {
			_, err := service.Create(CreatePermissionDTO{Name: ""})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeValidation))
		})
	})

	ginkgo.Describe("Update", func() {
		ginkgo.It("should rename an existing permission", func() {
			created, err := service.Create(CreatePermissionDTO{Name: "Manage Roles"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			updated, err := service.Update(UpdatePermissionDTO{ID: created.ID, Name: "Manage Everything"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(updated.Name).To(gomega.Equal("Manage Everything"))
		})

		ginkgo.It("should report NotFound naming the permission id", func() {
			_, err := service.Update(UpdatePermissionDTO{ID: 9, Name: "Ghost"})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeNotFound))
			gomega.Expect(appErr.Message).To(gomega.ContainSubstring("permission 9"))
		})
	})

	ginkgo.Describe("Delete", func() {
		ginkgo.It("should report NotFound for a missing permission", func() {
			err := service.Delete(9)

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeNotFound))
		})

		ginkgo.It("should delete an existing permission", func() {
			created, err := service.Create(CreatePermissionDTO{Name: "Manage Roles"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			gomega.Expect(service.Delete(created.ID)).To(gomega.Succeed())
			gomega.Expect(mockRepo.permissions).To(gomega.BeEmpty())
		})
	})
})

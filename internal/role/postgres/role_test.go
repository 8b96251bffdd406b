package postgres_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/frahmantamala/access-management/internal/core/common/testdb"
	roleDatamodel "github.com/frahmantamala/access-management/internal/core/datamodel/role"
	"github.com/frahmantamala/access-management/internal/role"
	rolePostgres "github.com/frahmantamala/access-management/internal/role/postgres"
)

func TestRolePostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Role Postgres Suite")
}

// SQLite schema mirroring the production migration, with foreign keys
// enforced so constraint behavior can be exercised.
var schema = []string{
	`CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE roles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE permissions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE user_roles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		role_id INTEGER NOT NULL REFERENCES roles (id) ON DELETE RESTRICT,
		created_at DATETIME,
		UNIQUE (user_id, role_id)
	)`,
	`CREATE TABLE role_permissions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		role_id INTEGER NOT NULL REFERENCES roles (id) ON DELETE RESTRICT,
		permission_id INTEGER NOT NULL REFERENCES permissions (id) ON DELETE CASCADE,
		created_at DATETIME,
		UNIQUE (role_id, permission_id)
	)`,
}

func openTestDB() *gorm.DB {
	db, err := testdb.Open(schema)
	Expect(err).NotTo(HaveOccurred())
	return db
}

var _ = Describe("Role Repository", func() {
	var (
		db   *gorm.DB
		repo role.RepositoryAPI
	)

	insertUser := func(email string) int64 {
		Expect(db.Exec("INSERT INTO users (name, email, password_hash) VALUES (?, ?, ?)", "u", email, "x").Error).NotTo(HaveOccurred())
		var id int64
		Expect(db.Raw("SELECT id FROM users WHERE email = ?", email).Scan(&id).Error).NotTo(HaveOccurred())
		return id
	}

	insertPermission := func(name string) int64 {
		Expect(db.Exec("INSERT INTO permissions (name) VALUES (?)", name).Error).NotTo(HaveOccurred())
		var id int64
		Expect(db.Raw("SELECT id FROM permissions WHERE name = ?", name).Scan(&id).Error).NotTo(HaveOccurred())
		return id
	}

	BeforeEach(func() {
		db = openTestDB()
		repo = rolePostgres.NewRoleRepository(db)
	})

	Describe("Create and Get", func() {
		It("should create a role and read it back", func() {
			rl := &roleDatamodel.Role{Name: "Editor"}
			Expect(repo.Create(rl)).To(Succeed())
			Expect(rl.ID).To(BeNumerically(">", 0))

			got, err := repo.GetByID(rl.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Name).To(Equal("Editor"))
		})

		It("should return ErrRecordNotFound for a missing role", func() {
			_, err := repo.GetByID(999)
			Expect(err).To(MatchError(gorm.ErrRecordNotFound))
		})

		It("should preload permission relations", func() {
			rl := &roleDatamodel.Role{Name: "Editor"}
			Expect(repo.Create(rl)).To(Succeed())
			pid := insertPermission("Manage Roles")
			Expect(repo.CreateRolePermission(&roleDatamodel.RolePermission{RoleID: rl.ID, PermissionID: pid})).To(Succeed())

			got, err := repo.GetByID(rl.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.RolePermissions).To(HaveLen(1))
			Expect(got.RolePermissions[0].Permission).NotTo(BeNil())
			Expect(got.RolePermissions[0].Permission.Name).To(Equal("Manage Roles"))
		})

		It("should list roles in id order", func() {
			Expect(repo.Create(&roleDatamodel.Role{Name: "A"})).To(Succeed())
			Expect(repo.Create(&roleDatamodel.Role{Name: "B"})).To(Succeed())

			all, err := repo.GetAll()
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(2))
			Expect(all[0].Name).To(Equal("A"))
			Expect(all[1].Name).To(Equal("B"))
		})
	})

	Describe("Update", func() {
		It("should rename an existing role", func() {
			rl := &roleDatamodel.Role{Name: "Editor"}
			Expect(repo.Create(rl)).To(Succeed())

			Expect(repo.Update(&roleDatamodel.Role{ID: rl.ID, Name: "Reviewer"})).To(Succeed())

			got, err := repo.GetByID(rl.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Name).To(Equal("Reviewer"))
		})

		It("should return ErrRecordNotFound for a missing role", func() {
			err := repo.Update(&roleDatamodel.Role{ID: 999, Name: "Ghost"})
			Expect(err).To(MatchError(gorm.ErrRecordNotFound))
		})
	})

	Describe("Delete", func() {
		It("should remove the role and its permission rows together", func() {
			rl := &roleDatamodel.Role{Name: "Editor"}
			Expect(repo.Create(rl)).To(Succeed())
			pid := insertPermission("Manage Roles")
			Expect(repo.CreateRolePermission(&roleDatamodel.RolePermission{RoleID: rl.ID, PermissionID: pid})).To(Succeed())

			Expect(repo.Delete(rl.ID)).To(Succeed())

			var count int64
			Expect(db.Raw("SELECT COUNT(*) FROM role_permissions WHERE role_id = ?", rl.ID).Scan(&count).Error).NotTo(HaveOccurred())
			Expect(count).To(BeZero())
			_, err := repo.GetByID(rl.ID)
			Expect(err).To(MatchError(gorm.ErrRecordNotFound))
		})

		It("should return ErrRecordNotFound for a missing role", func() {
			Expect(repo.Delete(999)).To(MatchError(gorm.ErrRecordNotFound))
		})

		It("should fail with ErrForeignKeyViolated while the role is assigned to a user", func() {
			rl := &roleDatamodel.Role{Name: "Editor"}
			Expect(repo.Create(rl)).To(Succeed())
			uid := insertUser("editor@mail.com")
			Expect(db.Exec("INSERT INTO user_roles (user_id, role_id) VALUES (?, ?)", uid, rl.ID).Error).NotTo(HaveOccurred())

			Expect(repo.Delete(rl.ID)).To(MatchError(gorm.ErrForeignKeyViolated))

			got, err := repo.GetByID(rl.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Name).To(Equal("Editor"))
		})

		It("should roll back the permission rows when the role cannot be deleted", func() {
			rl := &roleDatamodel.Role{Name: "Editor"}
			Expect(repo.Create(rl)).To(Succeed())
			pid := insertPermission("Manage Roles")
			Expect(repo.CreateRolePermission(&roleDatamodel.RolePermission{RoleID: rl.ID, PermissionID: pid})).To(Succeed())
			uid := insertUser("editor@mail.com")
			Expect(db.Exec("INSERT INTO user_roles (user_id, role_id) VALUES (?, ?)", uid, rl.ID).Error).NotTo(HaveOccurred())

			Expect(repo.Delete(rl.ID)).To(MatchError(gorm.ErrForeignKeyViolated))

			var count int64
			Expect(db.Raw("SELECT COUNT(*) FROM role_permissions WHERE role_id = ?", rl.ID).Scan(&count).Error).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(1)))
		})
	})

	Describe("RolePermission rows", func() {
		var roleID, permissionID int64

		BeforeEach(func() {
			rl := &roleDatamodel.Role{Name: "Editor"}
			Expect(repo.Create(rl)).To(Succeed())
			roleID = rl.ID
			permissionID = insertPermission("Manage Roles")
		})

		It("should find nothing before the pair exists", func() {
			found, err := repo.FindRolePermission(roleID, permissionID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeNil())
		})

		It("should create and find the pair", func() {
			Expect(repo.CreateRolePermission(&roleDatamodel.RolePermission{RoleID: roleID, PermissionID: permissionID})).To(Succeed())

			found, err := repo.FindRolePermission(roleID, permissionID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).NotTo(BeNil())
			Expect(found.RoleID).To(Equal(roleID))
		})

		It("should surface ErrDuplicatedKey for a second insert of the same pair", func() {
			Expect(repo.CreateRolePermission(&roleDatamodel.RolePermission{RoleID: roleID, PermissionID: permissionID})).To(Succeed())

			err := repo.CreateRolePermission(&roleDatamodel.RolePermission{RoleID: roleID, PermissionID: permissionID})
			Expect(err).To(MatchError(gorm.ErrDuplicatedKey))
		})

		It("should surface ErrForeignKeyViolated for a dangling reference", func() {
			err := repo.CreateRolePermission(&roleDatamodel.RolePermission{RoleID: 999, PermissionID: permissionID})
			Expect(err).To(MatchError(gorm.ErrForeignKeyViolated))
		})

		It("should return ErrRecordNotFound when deleting a missing pair", func() {
			Expect(repo.DeleteRolePermission(roleID, permissionID)).To(MatchError(gorm.ErrRecordNotFound))
		})

		It("should delete an existing pair", func() {
			Expect(repo.CreateRolePermission(&roleDatamodel.RolePermission{RoleID: roleID, PermissionID: permissionID})).To(Succeed())
			Expect(repo.DeleteRolePermission(roleID, permissionID)).To(Succeed())

			found, err := repo.FindRolePermission(roleID, permissionID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeNil())
		})
	})
})

package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with the Administrator role, an admin user and the management permissions.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlxDB.Close()

		db, err := initGorm(sqlxDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		adminRoleID := seedRole(db, "Admin")
		if adminRoleID != cfg.Security.AdministratorRoleID {
			fmt.Printf("warning: seeded Admin role has id %d but security.administrator_role_id is %d\n", adminRoleID, cfg.Security.AdministratorRoleID)
		}

		adminEmail := "admin@mail.com"
		adminUserID := seedUser(db, "Administrator", adminEmail, "password", cfg.Security.BCryptCost)

		permissionNames := []string{"Manage Roles", "Manage Permissions"}
		for _, name := range permissionNames {
			permissionID := seedPermission(db, name)
			linkRolePermission(db, adminRoleID, permissionID)
		}

		linkUserRole(db, adminUserID, adminRoleID)

		fmt.Println("Seeded admin user:", adminEmail)
	},
}

func seedRole(db *gorm.DB, name string) int64 {
	var id int64
	if err := db.Raw("SELECT id FROM roles WHERE name = ?", name).Row().Scan(&id); err == nil {
		return id
	}

	if err := db.Exec("INSERT INTO roles (name, created_at, updated_at) VALUES (?, now(), now())", name).Error; err != nil {
		log.Fatalf("failed to insert role %s: %v", name, err)
	}
	if err := db.Raw("SELECT id FROM roles WHERE name = ?", name).Row().Scan(&id); err != nil {
		log.Fatalf("role not found after insert %s: %v", name, err)
	}
	fmt.Println("Seeded role:", name)
	return id
}

func seedUser(db *gorm.DB, name, email, password string, cost int) int64 {
	var id int64
	if err := db.Raw("SELECT id FROM users WHERE email = ?", email).Row().Scan(&id); err == nil {
		fmt.Println("user already exists; will ensure assignments:", email)
		return id
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	if err := db.Exec("INSERT INTO users (name, email, password_hash, created_at, updated_at) VALUES (?, ?, ?, now(), now())", name, email, string(hash)).Error; err != nil {
		log.Fatalf("failed to insert user %s: %v", email, err)
	}
	if err := db.Raw("SELECT id FROM users WHERE email = ?", email).Row().Scan(&id); err != nil {
		log.Fatalf("user not found after insert %s: %v", email, err)
	}
	return id
}

func seedPermission(db *gorm.DB, name string) int64 {
	var id int64
	if err := db.Raw("SELECT id FROM permissions WHERE name = ?", name).Row().Scan(&id); err == nil {
		return id
	}

	if err := db.Exec("INSERT INTO permissions (name, created_at, updated_at) VALUES (?, now(), now())", name).Error; err != nil {
		log.Fatalf("failed to insert permission %s: %v", name, err)
	}
	if err := db.Raw("SELECT id FROM permissions WHERE name = ?", name).Row().Scan(&id); err != nil {
		log.Fatalf("permission not found after insert %s: %v", name, err)
	}
	fmt.Println("Seeded permission:", name)
	return id
}

func linkRolePermission(db *gorm.DB, roleID, permissionID int64) {
	var exists int
	if err := db.Raw("SELECT 1 FROM role_permissions WHERE role_id = ? AND permission_id = ?", roleID, permissionID).Row().Scan(&exists); err == nil {
		return
	}
	if err := db.Exec("INSERT INTO role_permissions (role_id, permission_id, created_at) VALUES (?, ?, now())", roleID, permissionID).Error; err != nil {
		log.Fatalf("failed to link role %d to permission %d: %v", roleID, permissionID, err)
	}
}

func linkUserRole(db *gorm.DB, userID, roleID int64) {
	var exists int
	if err := db.Raw("SELECT 1 FROM user_roles WHERE user_id = ? AND role_id = ?", userID, roleID).Row().Scan(&exists); err == nil {
		return
	}
	if err := db.Exec("INSERT INTO user_roles (user_id, role_id, created_at) VALUES (?, ?, now())", userID, roleID).Error; err != nil {
		log.Fatalf("failed to assign role %d to user %d: %v", roleID, userID, err)
	}
}

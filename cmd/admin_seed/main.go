package main

import (
	"log"
	"os"

	"dashen/internal/config"
	"dashen/internal/models"
	"dashen/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// Seeds the admin account plus one demo user per workflow role when
// SEED_DEMO_USERS=true. There is no self-service registration; staff accounts
// only ever enter the system through this command or the admin.
func main() {
	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if repositories.DB != nil {
			sqlDB, err := repositories.DB.DB()
			if err != nil {
				log.Printf("⚠️ Failed to get SQL DB instance: %v", err)
			} else if err := sqlDB.Close(); err != nil {
				log.Printf("⚠️ Failed to close PostgreSQL connection: %v", err)
			}
		}
		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				log.Printf("⚠️ Failed to close Redis connection: %v", err)
			}
		}
	}()

	seedUser(adminEmail, adminPassword, "Administrator", models.RoleAdmin)

	if os.Getenv("SEED_DEMO_USERS") == "true" {
		demoPassword := config.GetEnv("DEMO_PASSWORD", "changeme")
		seedUser("rm@dashen.local", demoPassword, "Demo Relationship Manager", models.RoleRelationshipManager)
		seedUser("analyst@dashen.local", demoPassword, "Demo Credit Analyst", models.RoleCreditAnalyst)
		seedUser("supervisor@dashen.local", demoPassword, "Demo Supervisor", models.RoleSupervisor)
		seedUser("member@dashen.local", demoPassword, "Demo Committee Member", models.RoleCommitteMember)
		seedUser("committee@dashen.local", demoPassword, "Demo Approval Committee", models.RoleApprovalCommitte)
	}
}

func seedUser(email, password, name, role string) {
	var existing models.User
	if err := repositories.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Printf("User %s already exists, skipping", email)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	user := models.User{
		Email:        email,
		Password:     string(hashed),
		Name:         name,
		Role:         role,
		TokenVersion: 1,
	}

	if err := repositories.DB.Create(&user).Error; err != nil {
		log.Fatal("Failed to create user:", err)
	}

	log.Printf("✅ Created %s account %s", role, email)
}

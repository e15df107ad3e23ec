package cmd

import (
	"errors"
	"fmt"
	"log"

	userDatamodel "github.com/frahmantamala/school-management/internal/core/datamodel/user"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with bootstrap data",
	Long:  `Seed institutions and bootstrap accounts. Every seeded account starts on the configured default password and must change it at first login.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			if err := db.Exec("DELETE FROM users").Error; err != nil {
				log.Fatalf("failed to clear users: %v", err)
			}
			if err := db.Exec("DELETE FROM institutions").Error; err != nil {
				log.Fatalf("failed to clear institutions: %v", err)
			}
			fmt.Println("Cleared existing data")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Security.DefaultPassword), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash default password: %v", err)
		}

		institutions := []userDatamodel.Institution{
			{Name: "Greenfield Academy", Address: "Jl. Merdeka No. 1"},
			{Name: "Riverside High School", Address: "Jl. Sudirman No. 45"},
		}

		institutionIDs := map[string]int64{}
		for i := range institutions {
			inst := &institutions[i]

			var existing userDatamodel.Institution
			err := db.Where("name = ?", inst.Name).First(&existing).Error
			if err == nil {
				institutionIDs[inst.Name] = existing.ID
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Fatalf("failed to look up institution %s: %v", inst.Name, err)
			}

			if err := db.Create(inst).Error; err != nil {
				log.Fatalf("failed to insert institution %s: %v", inst.Name, err)
			}
			institutionIDs[inst.Name] = inst.ID
			fmt.Println("Seeded institution:", inst.Name)
		}

		greenfield := institutionIDs["Greenfield Academy"]
		riverside := institutionIDs["Riverside High School"]

		accounts := []userDatamodel.User{
			{Email: "superadmin@school.id", FirstName: "Super", LastName: "Admin", Role: "superadmin"},
			{Email: "admin.greenfield@school.id", FirstName: "Gita", LastName: "Pratama", Role: "admin", InstitutionID: &greenfield},
			{Email: "admin.riverside@school.id", FirstName: "Raka", LastName: "Wijaya", Role: "admin", InstitutionID: &riverside},
			{Email: "teacher.greenfield@school.id", FirstName: "Sari", LastName: "Lestari", Role: "teacher", InstitutionID: &greenfield},
			{Email: "parent.greenfield@school.id", FirstName: "Budi", LastName: "Santoso", Role: "parent", InstitutionID: &greenfield},
			{Email: "student.greenfield@school.id", FirstName: "Dewi", LastName: "Santoso", Role: "student", InstitutionID: &greenfield},
		}

		for i := range accounts {
			acc := &accounts[i]

			var existing userDatamodel.User
			err := db.Where("email = ?", acc.Email).First(&existing).Error
			if err == nil {
				fmt.Println("user already exists, skipping:", acc.Email)
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Fatalf("failed to look up user %s: %v", acc.Email, err)
			}

			acc.PasswordHash = string(hash)
			acc.Status = "active"
			acc.IsPasswordChanged = false

			if err := db.Create(acc).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", acc.Email, err)
			}
			fmt.Println("Seeded user:", acc.Email, "role:", acc.Role)
		}

		fmt.Println("Default password:", cfg.Security.DefaultPassword)
		fmt.Println("All seeded accounts must change it on first login.")
	},
}

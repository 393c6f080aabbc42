package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with a starting administrator and a standard user for development.`,
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

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			for _, table := range []string{"connexions", "utilisateurs", "identities"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		seedAccount(db, cfg.Security.BCryptCost, seedEntry{
			Email:     "admin@carpediem.pro",
			FirstName: "Marie",
			LastName:  "Dupont",
			Password:  "motdepasse-admin",
			Role:      1,
		})
		seedAccount(db, cfg.Security.BCryptCost, seedEntry{
			Email:     "paul.martin@carpediem.pro",
			FirstName: "Paul",
			LastName:  "Martin",
			Password:  "motdepasse-paul",
			Role:      2,
			SubDomain: "client",
		})
	},
}

type seedEntry struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
	Role      int
	SubDomain string
}

func seedAccount(db *gorm.DB, bcryptCost int, entry seedEntry) {
	var exists int
	row := db.Raw("SELECT 1 FROM identities WHERE email = ?", entry.Email).Row()
	if err := row.Scan(&exists); err == nil {
		fmt.Println("identity already exists, skipping:", entry.Email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(entry.Password), bcryptCost)
	if err != nil {
		log.Fatalf("failed to hash password for %s: %v", entry.Email, err)
	}

	authID := uuid.New().String()
	now := time.Now()

	if err := db.Exec(
		"INSERT INTO identities (auth_id, email, password_hash, created_at) VALUES (?, ?, ?, ?)",
		authID, entry.Email, string(hash), now,
	).Error; err != nil {
		log.Fatalf("failed to insert identity for %s: %v", entry.Email, err)
	}

	var subDomain interface{}
	if entry.SubDomain != "" {
		subDomain = entry.SubDomain
	}

	if err := db.Exec(
		"INSERT INTO utilisateurs (auth_id, email, prenom, nom, role, sous_domaine, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		authID, entry.Email, entry.FirstName, entry.LastName, entry.Role, subDomain, now, now,
	).Error; err != nil {
		log.Fatalf("failed to insert account for %s: %v", entry.Email, err)
	}

	fmt.Println("Seeded account:", entry.Email)
}

// Command seed loads a handful of demo users and study groups into the
// database so a fresh checkout has something to log in with.
package main

import (
	"fmt"
	"log"
	"time"

	"github.com/khushi-1907/virtual-study-group/internal/config"
	"github.com/khushi-1907/virtual-study-group/internal/database"
	"github.com/khushi-1907/virtual-study-group/internal/models"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type demoUser struct {
	name     string
	email    string
	password string
}

type demoGroup struct {
	name        string
	description string
	creator     string // email of the demo user who creates it
}

var demoUsers = []demoUser{
	{"Alice Johnson", "alice@example.com", "password123"},
	{"Bob Martinez", "bob@example.com", "password123"},
	{"Chitra Rao", "chitra@example.com", "password123"},
}

var demoGroups = []demoGroup{
	{"Calc Study", "Calculus II problem sessions", "alice@example.com"},
	{"OS Reading Group", "Weekly operating systems paper club", "bob@example.com"},
	{"Algorithms Prep", "Interview practice, two evenings a week", "alice@example.com"},
}

func main() {
	_ = godotenv.Load()

	if err := config.LoadConfig(); err != nil {
		log.Printf("Warning: Failed to load YAML config: %v", err)
	}

	db, err := database.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	userIDs := make(map[string]uuid.UUID)
	now := time.Now()

	for _, u := range demoUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("Failed to hash password:", err)
		}

		id := uuid.New()
		err = db.QueryRow(`
			INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (email) DO UPDATE SET updated_at = EXCLUDED.updated_at
			RETURNING id
		`, id, u.name, u.email, string(hash), models.RoleStudent, now, now).Scan(&id)
		if err != nil {
			log.Printf("Error seeding user %s: %v", u.email, err)
			continue
		}

		userIDs[u.email] = id
		fmt.Printf("Seeded user %s\n", u.email)
	}

	for _, g := range demoGroups {
		creatorID, ok := userIDs[g.creator]
		if !ok {
			log.Printf("Skipping group %s: creator %s was not seeded", g.name, g.creator)
			continue
		}

		groupID := uuid.New()
		_, err := db.Exec(`
			INSERT INTO groups (id, name, description, created_by, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, groupID, g.name, g.description, creatorID, now, now)
		if err != nil {
			log.Printf("Error seeding group %s: %v", g.name, err)
			continue
		}

		// Every demo user joins every demo group.
		for _, id := range userIDs {
			_, err := db.Exec(`
				INSERT INTO group_members (id, group_id, user_id, joined_at)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (group_id, user_id) DO NOTHING
			`, uuid.New(), groupID, id, now)
			if err != nil {
				log.Printf("Error adding member to %s: %v", g.name, err)
			}
		}

		fmt.Printf("Seeded group %s\n", g.name)
	}

	fmt.Println("Demo data seeding completed!")
}

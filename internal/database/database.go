package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/khushi-1907/virtual-study-group/internal/config"

	_ "github.com/lib/pq"
)

func InitDB() (*sql.DB, error) {
	// A full DSN (DATABASE_URL) wins over the individual parameters.
	dsn := config.GetEnv("DATABASE_URL", "")
	if dsn == "" {
		host := config.GetEnv("DB_HOST", "localhost")
		port := config.GetEnv("DB_PORT", "5432")
		user := config.GetEnv("DB_USER", "studygroup_user")
		password := config.GetEnv("DB_PASSWORD", "studygroup_password")
		dbname := config.GetEnv("DB_NAME", "studygroup_db")
		sslmode := config.GetEnv("DB_SSLMODE", "disable")

		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, password, dbname, sslmode)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		return nil, err
	}

	slog.Info("database connected")
	return db, nil
}

func RunMigrations(db *sql.DB) error {
	// Create users table
	usersTable := `
	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'student',
		reset_token VARCHAR(64),
		reset_token_expires_at TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	// Create groups table
	groupsTable := `
	CREATE TABLE IF NOT EXISTS groups (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(255) NOT NULL,
		description TEXT,
		created_by UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	// Create group_members table
	groupMembersTable := `
	CREATE TABLE IF NOT EXISTS group_members (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		group_id UUID NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		joined_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(group_id, user_id)
	);`

	// Create messages table
	messagesTable := `
	CREATE TABLE IF NOT EXISTS messages (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		group_id UUID NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
		sender_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		content TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	// Create files table
	filesTable := `
	CREATE TABLE IF NOT EXISTS files (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		group_id UUID NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
		uploaded_by UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		file_name VARCHAR(255) NOT NULL,
		file_url VARCHAR(500) NOT NULL,
		file_size BIGINT DEFAULT 0,
		file_type VARCHAR(255),
		uploaded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	messagesIndex := `
	CREATE INDEX IF NOT EXISTS idx_messages_group_created
		ON messages (group_id, created_at);`

	filesIndex := `
	CREATE INDEX IF NOT EXISTS idx_files_group
		ON files (group_id);`

	migrations := []string{
		usersTable,
		groupsTable,
		groupMembersTable,
		messagesTable,
		filesTable,
		messagesIndex,
		filesIndex,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	slog.Info("database migrations completed")
	return nil
}

package app

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"tutortribe/internal/db"
)

// SeedDemoUsers inserts one account per role when the users table is empty.
// Registration happens out of band, so a fresh install needs these to log in.
func SeedDemoUsers(conn *sql.DB, domain string, log *zap.SugaredLogger) error {
	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		log.Infow("users table already populated, skipping seed", "count", count)
		return nil
	}

	demo := []struct {
		name     string
		password string
		role     db.Role
	}{
		{"teststudent" + domain, "student123", db.RoleStudent},
		{"testtutor" + domain, "tutor123", db.RoleTutor},
		{"testadmin" + domain, "admin123", db.RoleAdmin},
	}

	for _, u := range demo {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", u.name, err)
		}
		_, err = conn.Exec(
			`INSERT INTO users (username, password_hash, role) VALUES ($1, $2, $3)`,
			u.name, string(hash), u.role,
		)
		if err != nil {
			return fmt.Errorf("insert %s: %w", u.name, err)
		}
	}

	log.Infow("seeded demo users", "count", len(demo))
	return nil
}

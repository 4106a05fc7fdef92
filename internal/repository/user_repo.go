package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"tutortribe/internal/db"
)

type UserRepository interface {
	GetByUsername(username string) (*db.User, error)
	GetByID(id int) (*db.User, error)
	ListUsers() ([]db.User, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(conn *sql.DB) UserRepository {
	return &userRepository{db: conn}
}

func (r *userRepository) GetByUsername(username string) (*db.User, error) {
	var u db.User
	err := r.db.QueryRow(
		`SELECT id, username, password_hash, role, created_at FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying user by username: %w", err)
	}
	return &u, nil
}

func (r *userRepository) GetByID(id int) (*db.User, error) {
	var u db.User
	err := r.db.QueryRow(
		`SELECT id, username, password_hash, role, created_at FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying user by id: %w", err)
	}
	return &u, nil
}

func (r *userRepository) ListUsers() ([]db.User, error) {
	rows, err := r.db.Query(`SELECT id, username, password_hash, role, created_at FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []db.User
	for rows.Next() {
		var u db.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

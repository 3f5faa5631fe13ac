package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"journal-service/models"
)

// CreateUser inserts a new account. Returns ErrDuplicate if the username is
// already taken.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error) {
	user := &models.User{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	query := s.db.Rebind(`INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query, user.Username, user.PasswordHash, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	return user, nil
}

// GetUser fetches an account by username. Returns ErrNotFound if absent.
func (s *Store) GetUser(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	query := s.db.Rebind(`SELECT username, password_hash, created_at FROM users WHERE username = ?`)
	err := s.db.GetContext(ctx, &user, query, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns every account, ordered by username.
func (s *Store) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	users := []models.UserSummary{}
	err := s.db.SelectContext(ctx, &users, `SELECT username, created_at FROM users ORDER BY username`)
	if err != nil {
		return nil, err
	}
	return users, nil
}

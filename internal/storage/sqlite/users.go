package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"agileboard/internal/apperr"
	"agileboard/internal/auth"
	"agileboard/internal/models"
)

// errInvalidCredentials is the single value returned for every failed login.
// An unknown identifier and a wrong password are indistinguishable.
var errInvalidCredentials = apperr.Unauthorized("invalid credentials")

// CreateUser hashes the password and persists a new user. Username and email
// uniqueness is enforced by the storage constraints; a violation surfaces as
// a conflict error.
func (s *Store) CreateUser(ctx context.Context, username, email, password, role string) (models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return models.User{}, apperr.Validation("username, email and password are required")
	}
	if role == "" {
		role = models.DefaultRole
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO users(username, email, password_hash, role) VALUES(?, ?, ?, ?)`,
		username, email, hash, role)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, apperr.Wrap(apperr.CodeConflict, "username or email already taken", err)
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, fmt.Errorf("user id: %w", err)
	}
	return s.UserByID(ctx, id)
}

// UserByID fetches a user by primary key.
func (s *Store) UserByID(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `SELECT id, username, email, password_hash, role, created_at FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, apperr.NotFound("user not found")
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// AuthenticateUser checks a login. The identifier matches either username or
// email exactly; any failure returns the same unauthorized error.
func (s *Store) AuthenticateUser(ctx context.Context, identifier, password string) (models.User, error) {
	if identifier == "" || password == "" {
		return models.User{}, apperr.Validation("identifier and password are required")
	}

	var u models.User
	err := s.db.QueryRowContext(ctx, `SELECT id, username, email, password_hash, role, created_at FROM users WHERE username = ? OR email = ?`,
		identifier, identifier).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, errInvalidCredentials
	}
	if err != nil {
		return models.User{}, fmt.Errorf("lookup user: %w", err)
	}

	if !auth.CheckPassword(u.PasswordHash, password) {
		return models.User{}, errInvalidCredentials
	}
	return u, nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// User is the staff profile attached to an auth identity
type User struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Email       string     `db:"email" json:"email"`
	Name        string     `db:"name" json:"name"`
	Role        string     `db:"role" json:"role"`
	Status      string     `db:"status" json:"status"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
	LastLoginAt *time.Time `db:"last_login_at" json:"last_login_at,omitempty"`
}

// Credentials is the login identity for an email address
type Credentials struct {
	UserID         uuid.UUID `db:"id"`
	Email          string    `db:"email"`
	HashedPassword string    `db:"hashed_password"`
}

type CreateUserParams struct {
	Email          string
	Name           string
	HashedPassword string
	Role           string
	Status         string
}

const userColumns = `id, email, name, role, status, created_at, updated_at, last_login_at`

const sqlCreateAuthIdentity = `
INSERT INTO auth_identities (email, hashed_password)
VALUES ($1, $2)
RETURNING id`

const sqlCreateUserProfile = `
INSERT INTO users (id, email, name, role, status)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + userColumns

// CreateUserWithIdentity creates the auth identity and its profile in one transaction.
func (s *Store) CreateUserWithIdentity(ctx context.Context, params CreateUserParams) (User, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	var user User
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var id uuid.UUID
		if err := tx.GetContext(ctx, &id, sqlCreateAuthIdentity, email, params.HashedPassword); err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyExists
			}
			s.logger.Error(ctx, "failed to create auth identity", err)
			return fmt.Errorf("failed to create auth identity: %w", err)
		}
		if err := tx.GetContext(ctx, &user, sqlCreateUserProfile, id, email, params.Name, params.Role, params.Status); err != nil {
			s.logger.Error(ctx, "failed to create user profile", err)
			return fmt.Errorf("failed to create user profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return User{}, err
	}
	return user, nil
}

const sqlGetCredentialsByEmail = `
SELECT id, email, hashed_password
FROM auth_identities
WHERE email = $1`

func (s *Store) GetCredentialsByEmail(ctx context.Context, email string) (Credentials, error) {
	var creds Credentials
	err := s.db.GetContext(ctx, &creds, sqlGetCredentialsByEmail, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Credentials{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get credentials by email", err)
		return Credentials{}, fmt.Errorf("failed to get credentials by email: %w", err)
	}
	return creds, nil
}

const sqlGetUserByID = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	var user User
	err := s.db.GetContext(ctx, &user, sqlGetUserByID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get user by id", err)
		return User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

const sqlGetUserByEmail = `SELECT ` + userColumns + ` FROM users WHERE email = $1`

func (s *Store) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var user User
	err := s.db.GetContext(ctx, &user, sqlGetUserByEmail, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get user by email", err)
		return User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

const sqlListUsers = `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

func (s *Store) ListUsers(ctx context.Context) ([]User, error) {
	users := []User{}
	if err := s.db.SelectContext(ctx, &users, sqlListUsers); err != nil {
		s.logger.Error(ctx, "failed to list users", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

const sqlUpdateUserStatus = `
UPDATE users
SET status = $3, updated_at = NOW()
WHERE id = $1 AND status = $2
RETURNING ` + userColumns

// UpdateUserStatus moves a user from one status to another. It returns
// ErrStatusConflict when the user exists but is no longer in the from status.
func (s *Store) UpdateUserStatus(ctx context.Context, id uuid.UUID, from, to string) (User, error) {
	var user User
	err := s.db.GetContext(ctx, &user, sqlUpdateUserStatus, id, from, to)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, s.missOrConflict(ctx, "users", id)
		}
		s.logger.Error(ctx, "failed to update user status", err)
		return User{}, fmt.Errorf("failed to update user status: %w", err)
	}
	return user, nil
}

const sqlUpdateUserRole = `
UPDATE users
SET role = $2, updated_at = NOW()
WHERE id = $1 AND status = 'active'
RETURNING ` + userColumns

// UpdateUserRole changes the role of an active user.
func (s *Store) UpdateUserRole(ctx context.Context, id uuid.UUID, role string) (User, error) {
	var user User
	err := s.db.GetContext(ctx, &user, sqlUpdateUserRole, id, role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, s.missOrConflict(ctx, "users", id)
		}
		s.logger.Error(ctx, "failed to update user role", err)
		return User{}, fmt.Errorf("failed to update user role: %w", err)
	}
	return user, nil
}

const sqlTouchLastLogin = `UPDATE users SET last_login_at = NOW() WHERE id = $1`

func (s *Store) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, sqlTouchLastLogin, id); err != nil {
		s.logger.Error(ctx, "failed to update last login", err)
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

const sqlDeleteUserProfile = `DELETE FROM users WHERE id = $1 AND ($2 = '' OR status = $2) RETURNING ` + userColumns

const sqlDeleteAuthIdentity = `DELETE FROM auth_identities WHERE id = $1`

// DeleteUser removes the profile and then the auth identity.
func (s *Store) DeleteUser(ctx context.Context, id uuid.UUID) (User, error) {
	return s.deleteUser(ctx, id, "")
}

// DeletePendingUser removes a user only while it is still awaiting approval.
func (s *Store) DeletePendingUser(ctx context.Context, id uuid.UUID) (User, error) {
	return s.deleteUser(ctx, id, UserStatusPendingApproval)
}

func (s *Store) deleteUser(ctx context.Context, id uuid.UUID, requiredStatus string) (User, error) {
	var deleted User
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &deleted, sqlDeleteUserProfile, id, requiredStatus); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return s.missOrConflict(ctx, "users", id)
			}
			s.logger.Error(ctx, "failed to delete user profile", err)
			return fmt.Errorf("failed to delete user profile: %w", err)
		}
		if _, err := tx.ExecContext(ctx, sqlDeleteAuthIdentity, id); err != nil {
			s.logger.Error(ctx, "failed to delete auth identity", err)
			return fmt.Errorf("failed to delete auth identity: %w", err)
		}
		return nil
	})
	if err != nil {
		return User{}, err
	}
	return deleted, nil
}

// missOrConflict distinguishes a missing row from a conditional update that lost its race.
func (s *Store) missOrConflict(ctx context.Context, table string, id uuid.UUID) error {
	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1)`, table)
	if err := s.db.GetContext(ctx, &exists, query, id); err != nil {
		s.logger.Error(ctx, "failed to check row existence", err)
		return fmt.Errorf("failed to check %s existence: %w", table, err)
	}
	if !exists {
		return ErrNotFound
	}
	return ErrStatusConflict
}

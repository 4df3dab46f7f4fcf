// Package store persists user accounts through sqlx. It speaks SQLite for
// embedded and test deployments and Postgres for production, selected by
// driver name at open time.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/userhub/userhub/internal/model"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("record already exists")
)

// Store manages user records backed by a SQL database.
type Store struct {
	db *sqlx.DB
}

// Open connects to the database and runs migrations. Supported drivers are
// "sqlite" and "postgres". For sqlite, pass an empty DSN for in-memory or a
// directory path for file-backed storage.
func Open(driver, dsn string) (*Store, error) {
	var db *sqlx.DB
	var err error

	switch driver {
	case "sqlite", "":
		if dsn == "" {
			dsn = ":memory:?_journal_mode=WAL"
		} else {
			if err := os.MkdirAll(dsn, 0755); err != nil {
				return nil, fmt.Errorf("create data dir: %w", err)
			}
			dsn = filepath.Join(dsn, "userhub.db") + "?_journal_mode=WAL&_busy_timeout=5000"
		}
		db, err = sqlx.Connect("sqlite", dsn)
		if err == nil {
			db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes
		}
	case "postgres":
		db, err = sqlx.Connect("pgx", dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies database connectivity. Used by the health endpoint.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// CreateUser inserts a new user record. A missing ID is assigned a fresh
// UUID. Returns ErrConflict when the email is already taken; the UNIQUE
// column on email is the authoritative guard against duplicate accounts.
func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	query := s.db.Rebind(`
		INSERT INTO users (id, email, password_hash, first_name, last_name, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.IsActive, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetUserByEmail fetches a user by email address.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	query := s.db.Rebind(`SELECT * FROM users WHERE email = ?`)
	if err := s.db.GetContext(ctx, &u, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

// GetUserByID fetches a user by ID.
func (s *Store) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	query := s.db.Rebind(`SELECT * FROM users WHERE id = ?`)
	if err := s.db.GetContext(ctx, &u, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &u, nil
}

// UpdateUser persists changes to an existing user. Returns ErrNotFound if the
// record no longer exists and ErrConflict if an email change collides with
// another account.
func (s *Store) UpdateUser(ctx context.Context, u *model.User) error {
	u.UpdatedAt = time.Now().UTC()

	query := s.db.Rebind(`
		UPDATE users
		SET email = ?, password_hash = ?, first_name = ?, last_name = ?, is_active = ?, updated_at = ?
		WHERE id = ?`)
	res, err := s.db.ExecContext(ctx, query,
		u.Email, u.PasswordHash, u.FirstName, u.LastName, u.IsActive, u.UpdatedAt, u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("update user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUser removes a user by ID. Returns ErrNotFound if no record matched.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	query := s.db.Rebind(`DELETE FROM users WHERE id = ?`)
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListUsers returns a page of users ordered by creation time, plus the total
// record count for pagination metadata. An offset past the end yields an
// empty slice, not an error.
func (s *Store) ListUsers(ctx context.Context, offset, limit int) ([]model.User, int64, error) {
	var total int64
	if err := s.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	users := []model.User{}
	query := s.db.Rebind(`SELECT * FROM users ORDER BY created_at, id LIMIT ? OFFSET ?`)
	if err := s.db.SelectContext(ctx, &users, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

// isUniqueViolation reports whether err is a uniqueness-constraint failure.
// Matched by message text so the check works across sqlite and postgres.
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tickdesk/tickdesk/internal/database"
	"github.com/tickdesk/tickdesk/internal/models"
)

// UserRepository defines the persistence contract for accounts.
type UserRepository interface {
	Insert(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Search(ctx context.Context, query string) ([]models.User, error)
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id string) error
}

// UserSQLRepository handles database operations for the users table.
type UserSQLRepository struct {
	db *sql.DB
}

// NewUserRepository creates a user repository backed by the given
// database handle.
func NewUserRepository(db *sql.DB) *UserSQLRepository {
	return &UserSQLRepository{db: db}
}

const userColumns = `id, username, password_hash, role, created_at, updated_at`

// Insert stores a new account. A username collision surfaces as
// ErrDuplicate.
func (r *UserSQLRepository) Insert(ctx context.Context, u *models.User) error {
	query := database.ConvertPlaceholders(`
		INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Username, u.PasswordHash, u.Role, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID retrieves an account, or ErrNotFound.
func (r *UserSQLRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := database.ConvertPlaceholders(`
		SELECT ` + userColumns + ` FROM users WHERE id = ?`)
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), id)
}

// GetByUsername retrieves an account by its unique username.
func (r *UserSQLRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := database.ConvertPlaceholders(`
		SELECT ` + userColumns + ` FROM users WHERE username = ?`)
	return r.scanOne(r.db.QueryRowContext(ctx, query, username), username)
}

// List returns all accounts sorted by username.
func (r *UserSQLRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	return scanUsers(rows)
}

// Search returns accounts whose username contains the query substring,
// sorted by username.
func (r *UserSQLRepository) Search(ctx context.Context, query string) ([]models.User, error) {
	stmt := database.ConvertPlaceholders(`
		SELECT ` + userColumns + ` FROM users WHERE username LIKE ? ORDER BY username`)

	rows, err := r.db.QueryContext(ctx, stmt, "%"+query+"%")
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	defer rows.Close()
	return scanUsers(rows)
}

// Update rewrites the account row.
func (r *UserSQLRepository) Update(ctx context.Context, u *models.User) error {
	query := database.ConvertPlaceholders(`
		UPDATE users SET username = ?, password_hash = ?, role = ?, updated_at = ?
		WHERE id = ?`)

	res, err := r.db.ExecContext(ctx, query,
		u.Username, u.PasswordHash, u.Role, u.UpdatedAt, u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("update user %s: %w", u.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an account permanently.
func (r *UserSQLRepository) Delete(ctx context.Context, id string) error {
	query := database.ConvertPlaceholders(`DELETE FROM users WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserSQLRepository) scanOne(row *sql.Row, key string) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user %s: %w", key, err)
	}
	return &u, nil
}

func scanUsers(rows *sql.Rows) ([]models.User, error) {
	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/tickdesk/tickdesk/internal/database"
	"github.com/tickdesk/tickdesk/internal/models"
)

// CompanyRepository defines the persistence contract for companies.
// Names are unique; listings come back sorted by name.
type CompanyRepository interface {
	Insert(ctx context.Context, c *models.Company) error
	GetByID(ctx context.Context, id string) (*models.Company, error)
	List(ctx context.Context) ([]models.Company, error)
	Update(ctx context.Context, c *models.Company) error
	Delete(ctx context.Context, id string) error
}

// CompanySQLRepository handles database operations for the companies table.
type CompanySQLRepository struct {
	db *sql.DB
}

// NewCompanyRepository creates a company repository backed by the given
// database handle.
func NewCompanyRepository(db *sql.DB) *CompanySQLRepository {
	return &CompanySQLRepository{db: db}
}

// Insert stores a new company. A name collision surfaces as ErrDuplicate.
func (r *CompanySQLRepository) Insert(ctx context.Context, c *models.Company) error {
	query := database.ConvertPlaceholders(`
		INSERT INTO companies (id, name, paid, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.Paid, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID retrieves a single company, or ErrNotFound.
func (r *CompanySQLRepository) GetByID(ctx context.Context, id string) (*models.Company, error) {
	query := database.ConvertPlaceholders(`
		SELECT id, name, paid, created_at, updated_at FROM companies WHERE id = ?`)

	var c models.Company
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.Name, &c.Paid, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get company %s: %w", id, err)
	}
	return &c, nil
}

// List returns all companies sorted by name.
func (r *CompanySQLRepository) List(ctx context.Context) ([]models.Company, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, paid, created_at, updated_at FROM companies ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var companies []models.Company
	for rows.Next() {
		var c models.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Paid, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

// Update rewrites the company row.
func (r *CompanySQLRepository) Update(ctx context.Context, c *models.Company) error {
	query := database.ConvertPlaceholders(`
		UPDATE companies SET name = ?, paid = ?, updated_at = ? WHERE id = ?`)

	res, err := r.db.ExecContext(ctx, query, c.Name, c.Paid, c.UpdatedAt, c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("update company %s: %w", c.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a company. Tickets referencing it keep the dangling
// name; the reference is soft.
func (r *CompanySQLRepository) Delete(ctx context.Context, id string) error {
	query := database.ConvertPlaceholders(`DELETE FROM companies WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete company %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// isUniqueViolation recognizes uniqueness errors across the three
// supported drivers without importing their error types here.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}

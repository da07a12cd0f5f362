package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tickdesk/tickdesk/internal/database"
	"github.com/tickdesk/tickdesk/internal/models"
)

// TicketRepository defines the persistence contract for tickets.
// Listings are sorted by creation time, newest first.
type TicketRepository interface {
	Insert(ctx context.Context, t *models.Ticket) error
	GetByID(ctx context.Context, id string) (*models.Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]models.Ticket, error)
	Update(ctx context.Context, t *models.Ticket) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}

// TicketSQLRepository handles database operations for the tickets table.
type TicketSQLRepository struct {
	db *sql.DB
}

// NewTicketRepository creates a ticket repository backed by the given
// database handle.
func NewTicketRepository(db *sql.DB) *TicketSQLRepository {
	return &TicketSQLRepository{db: db}
}

const ticketColumns = `id, title, description, assigned_to, created_by, company,
	priority, due_date, status, done_at, paid, rate, currency, created_at, updated_at`

// Insert stores a new ticket row.
func (r *TicketSQLRepository) Insert(ctx context.Context, t *models.Ticket) error {
	if t.ID == "" {
		return errors.New("ticket ID is required")
	}

	query := database.ConvertPlaceholders(`
		INSERT INTO tickets (` + ticketColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.Title, t.Description, t.AssignedTo, t.CreatedBy, t.Company,
		t.Priority, nullTime(t.DueDate), t.Status, nullTime(t.DoneAt),
		t.Paid, nullFloat(t.Rate), t.Currency, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

// GetByID retrieves a single ticket, or ErrNotFound.
func (r *TicketSQLRepository) GetByID(ctx context.Context, id string) (*models.Ticket, error) {
	query := database.ConvertPlaceholders(`
		SELECT ` + ticketColumns + ` FROM tickets WHERE id = ?`)

	t, err := scanTicket(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get ticket %s: %w", id, err)
	}
	return t, nil
}

// List returns tickets matching the filter, newest first.
func (r *TicketSQLRepository) List(ctx context.Context, filter TicketFilter) ([]models.Ticket, error) {
	var (
		where []string
		args  []any
	)
	if filter.AssignedTo != "" {
		where = append(where, "assigned_to = ?")
		args = append(args, filter.AssignedTo)
	}
	if filter.Company != "" {
		where = append(where, "company = ?")
		args = append(args, filter.Company)
	}
	if filter.Paid != "" {
		where = append(where, "paid = ?")
		args = append(args, filter.Paid)
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.DueFrom != nil {
		where = append(where, "due_date >= ?")
		args = append(args, *filter.DueFrom)
	}
	if filter.DueTo != nil {
		where = append(where, "due_date <= ?")
		args = append(args, *filter.DueTo)
	}

	query := `SELECT ` + ticketColumns + ` FROM tickets`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, database.ConvertPlaceholders(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []models.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, *t)
	}
	return tickets, rows.Err()
}

// Update rewrites every mutable column of the ticket row. The caller
// composed the full post-update state, so status and done_at land in the
// same statement.
func (r *TicketSQLRepository) Update(ctx context.Context, t *models.Ticket) error {
	query := database.ConvertPlaceholders(`
		UPDATE tickets
		SET title = ?, description = ?, assigned_to = ?, company = ?,
			priority = ?, due_date = ?, status = ?, done_at = ?,
			paid = ?, rate = ?, currency = ?, updated_at = ?
		WHERE id = ?`)

	res, err := r.db.ExecContext(ctx, query,
		t.Title, t.Description, t.AssignedTo, t.Company,
		t.Priority, nullTime(t.DueDate), t.Status, nullTime(t.DoneAt),
		t.Paid, nullFloat(t.Rate), t.Currency, t.UpdatedAt, t.ID)
	if err != nil {
		return fmt.Errorf("update ticket %s: %w", t.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a ticket permanently.
func (r *TicketSQLRepository) Delete(ctx context.Context, id string) error {
	query := database.ConvertPlaceholders(`DELETE FROM tickets WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete ticket %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAll clears the tickets table and returns the number of rows
// removed. Admin maintenance operation.
func (r *TicketSQLRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tickets`)
	if err != nil {
		return 0, fmt.Errorf("clear tickets: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear tickets: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(row rowScanner) (*models.Ticket, error) {
	var (
		t       models.Ticket
		dueDate sql.NullTime
		doneAt  sql.NullTime
		rate    sql.NullFloat64
	)
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.AssignedTo, &t.CreatedBy,
		&t.Company, &t.Priority, &dueDate, &t.Status, &doneAt,
		&t.Paid, &rate, &t.Currency, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if dueDate.Valid {
		d := dueDate.Time
		t.DueDate = &d
	}
	if doneAt.Valid {
		d := doneAt.Time
		t.DoneAt = &d
	}
	if rate.Valid {
		v := rate.Float64
		t.Rate = &v
	}
	return &t, nil
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

package repository

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/tickdesk/tickdesk/internal/models"
)

// MemoryTicketRepository is an in-memory TicketRepository used by tests
// and by the seed command before a database exists.
type MemoryTicketRepository struct {
	mu      sync.RWMutex
	tickets map[string]models.Ticket
}

// NewMemoryTicketRepository creates an empty in-memory repository.
func NewMemoryTicketRepository() *MemoryTicketRepository {
	return &MemoryTicketRepository{tickets: make(map[string]models.Ticket)}
}

// Insert stores a new ticket.
func (r *MemoryTicketRepository) Insert(ctx context.Context, t *models.Ticket) error {
	if t.ID == "" {
		return errors.New("ticket ID is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[t.ID]; ok {
		return ErrDuplicate
	}
	r.tickets[t.ID] = *t
	return nil
}

// GetByID retrieves a ticket copy, or ErrNotFound.
func (r *MemoryTicketRepository) GetByID(ctx context.Context, id string) (*models.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tickets[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

// List returns matching tickets, newest first.
func (r *MemoryTicketRepository) List(ctx context.Context, filter TicketFilter) ([]models.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tickets := make([]models.Ticket, 0, len(r.tickets))
	for _, t := range r.tickets {
		if matchesFilter(&t, filter) {
			tickets = append(tickets, t)
		}
	}
	sort.Slice(tickets, func(i, j int) bool {
		return tickets[i].CreatedAt.After(tickets[j].CreatedAt)
	})
	return tickets, nil
}

// Update replaces the stored ticket.
func (r *MemoryTicketRepository) Update(ctx context.Context, t *models.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[t.ID]; !ok {
		return ErrNotFound
	}
	r.tickets[t.ID] = *t
	return nil
}

// Delete removes a ticket.
func (r *MemoryTicketRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[id]; !ok {
		return ErrNotFound
	}
	delete(r.tickets, id)
	return nil
}

// DeleteAll clears the store and returns the removed count.
func (r *MemoryTicketRepository) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.tickets))
	r.tickets = make(map[string]models.Ticket)
	return n, nil
}

func matchesFilter(t *models.Ticket, f TicketFilter) bool {
	if f.AssignedTo != "" && t.AssignedTo != f.AssignedTo {
		return false
	}
	if f.Company != "" && t.Company != f.Company {
		return false
	}
	if f.Paid != "" && t.Paid != f.Paid {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.DueFrom != nil && (t.DueDate == nil || t.DueDate.Before(*f.DueFrom)) {
		return false
	}
	if f.DueTo != nil && (t.DueDate == nil || t.DueDate.After(*f.DueTo)) {
		return false
	}
	return true
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tickdesk/tickdesk/internal/models"
	"github.com/tickdesk/tickdesk/internal/permissions"
	"github.com/tickdesk/tickdesk/internal/repository"
)

// TicketService implements the ticket lifecycle: creation, partial
// updates with the status/paid transition rules, deletion and permission
// filtered listing. All authorization runs through the permissions
// package before any write reaches the repository.
type TicketService struct {
	repo repository.TicketRepository
	now  func() time.Time
}

// NewTicketService creates a ticket service on top of the given
// repository.
func NewTicketService(repo repository.TicketRepository) *TicketService {
	return &TicketService{repo: repo, now: time.Now}
}

// CreateTicketInput carries the client-supplied fields for a new
// ticket. CreatedBy is never part of it; it comes from the identity.
type CreateTicketInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssignedTo  string     `json:"assignedTo"`
	Company     string     `json:"company"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	Rate        *float64   `json:"rate"`
	Currency    string     `json:"currency"`
}

// Create validates the input, applies defaults and persists a fresh
// ticket. The creator is taken from the identity, not the payload.
func (s *TicketService) Create(ctx context.Context, id models.Identity, in CreateTicketInput) (*models.Ticket, error) {
	if !permissions.CanCreateTicket(id) {
		return nil, ErrForbidden
	}
	if in.Title == "" {
		return nil, invalidField("title", "is required")
	}
	if in.AssignedTo == "" {
		return nil, invalidField("assignedTo", "is required")
	}
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}
	if !models.ValidPriority(in.Priority) {
		return nil, invalidField("priority", "must be low, medium or high")
	}
	if in.Currency == "" {
		in.Currency = models.CurrencyIQD
	}
	if !models.ValidCurrency(in.Currency) {
		return nil, invalidField("currency", "must be USD or IQD")
	}
	if in.Rate != nil && *in.Rate < 0 {
		return nil, invalidField("rate", "must not be negative")
	}

	now := s.now().UTC()
	t := &models.Ticket{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		AssignedTo:  in.AssignedTo,
		CreatedBy:   id.Username,
		Company:     in.Company,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		Status:      models.StatusOpen,
		Paid:        models.PaidNo,
		Rate:        in.Rate,
		Currency:    in.Currency,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Get returns a single ticket if the identity may view it.
func (s *TicketService) Get(ctx context.Context, id models.Identity, ticketID string) (*models.Ticket, error) {
	t, err := s.repo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !permissions.CanViewTicket(id, t) {
		return nil, ErrForbidden
	}
	return t, nil
}

// Update applies a partial update under the lifecycle rules:
//
//   - a status-only update needs CanMarkDone, anything else CanEditTicket
//   - paid may go no -> yes but never yes -> no, for anyone
//   - the first transition into done stamps DoneAt; later transitions
//     in or out of done leave it untouched
//
// Fields absent from the update are left unchanged. The status/DoneAt
// pair is composed here and written in a single repository call.
func (s *TicketService) Update(ctx context.Context, id models.Identity, ticketID string, upd models.TicketUpdate) (*models.Ticket, error) {
	t, err := s.repo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if upd.StatusOnly() {
		if !permissions.CanMarkDone(id, t) {
			return nil, ErrForbidden
		}
	} else if !permissions.CanEditTicket(id, t) {
		return nil, ErrForbidden
	}

	if err := validateUpdate(&upd); err != nil {
		return nil, err
	}

	// The one transition nobody may make, admins included.
	if upd.Paid != nil && *upd.Paid == models.PaidNo && t.Paid == models.PaidYes {
		return nil, ErrInvalidTransition
	}

	now := s.now().UTC()
	if upd.Title != nil {
		t.Title = *upd.Title
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	if upd.AssignedTo != nil {
		t.AssignedTo = *upd.AssignedTo
	}
	if upd.Company != nil {
		t.Company = *upd.Company
	}
	if upd.Priority != nil {
		t.Priority = *upd.Priority
	}
	if upd.DueDate != nil {
		t.DueDate = upd.DueDate
	}
	if upd.Status != nil {
		t.Status = *upd.Status
		if t.Status == models.StatusDone && t.DoneAt == nil {
			doneAt := now
			t.DoneAt = &doneAt
		}
	}
	if upd.Paid != nil {
		t.Paid = *upd.Paid
	}
	if upd.Rate != nil {
		t.Rate = upd.Rate
	}
	if upd.Currency != nil {
		t.Currency = *upd.Currency
	}
	t.UpdatedAt = now

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes a ticket permanently. Admin only.
func (s *TicketService) Delete(ctx context.Context, id models.Identity, ticketID string) error {
	if !permissions.CanDeleteTicket(id) {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, ticketID)
}

// List returns tickets matching the filter. Non-admin callers only ever
// receive tickets they created or are assigned to; the visibility
// filter is applied here, after the store query, so no handler can
// forget it.
func (s *TicketService) List(ctx context.Context, id models.Identity, filter repository.TicketFilter) ([]models.Ticket, error) {
	tickets, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return permissions.FilterViewable(id, tickets), nil
}

// Clear wipes every ticket and returns how many were removed. Admin
// maintenance operation.
func (s *TicketService) Clear(ctx context.Context, id models.Identity) (int64, error) {
	if !permissions.IsAdmin(id) {
		return 0, ErrForbidden
	}
	return s.repo.DeleteAll(ctx)
}

func validateUpdate(upd *models.TicketUpdate) error {
	if upd.Title != nil && *upd.Title == "" {
		return invalidField("title", "must not be empty")
	}
	if upd.AssignedTo != nil && *upd.AssignedTo == "" {
		return invalidField("assignedTo", "must not be empty")
	}
	if upd.Status != nil && !models.ValidStatus(*upd.Status) {
		return invalidField("status", "must be open, in_progress or done")
	}
	if upd.Priority != nil && !models.ValidPriority(*upd.Priority) {
		return invalidField("priority", "must be low, medium or high")
	}
	if upd.Paid != nil && !models.ValidPaid(*upd.Paid) {
		return invalidField("paid", "must be yes or no")
	}
	if upd.Currency != nil && !models.ValidCurrency(*upd.Currency) {
		return invalidField("currency", "must be USD or IQD")
	}
	if upd.Rate != nil && *upd.Rate < 0 {
		return invalidField("rate", "must not be negative")
	}
	return nil
}

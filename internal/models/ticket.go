package models

import "time"

// Ticket status values. Reopening a done ticket is allowed; DoneAt keeps
// the first completion time either way.
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
)

// Ticket priority values.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Paid flag values. The flag is one-way: once "yes" it never goes back.
const (
	PaidNo  = "no"
	PaidYes = "yes"
)

// Supported billing currencies.
const (
	CurrencyUSD = "USD"
	CurrencyIQD = "IQD"
)

// Ticket is the central entity of the dashboard.
type Ticket struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssignedTo  string     `json:"assignedTo"`
	CreatedBy   string     `json:"createdBy"`
	Company     string     `json:"company,omitempty"` // soft reference to Company.Name
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Status      string     `json:"status"`
	DoneAt      *time.Time `json:"doneAt,omitempty"`
	Paid        string     `json:"paid"`
	Rate        *float64   `json:"rate,omitempty"`
	Currency    string     `json:"currency"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// IsDone reports whether the ticket is currently in the done state.
func (t *Ticket) IsDone() bool {
	return t.Status == StatusDone
}

// IsPaid reports whether the ticket has been marked paid.
func (t *Ticket) IsPaid() bool {
	return t.Paid == PaidYes
}

// ValidStatus reports whether s is one of the known status values.
func ValidStatus(s string) bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// ValidPriority reports whether p is one of the known priority values.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ValidPaid reports whether p is a known paid flag value.
func ValidPaid(p string) bool {
	return p == PaidNo || p == PaidYes
}

// ValidCurrency reports whether c is a supported currency.
func ValidCurrency(c string) bool {
	return c == CurrencyUSD || c == CurrencyIQD
}

// TicketUpdate carries a partial update. Nil fields are left unchanged;
// this is PATCH semantics end to end, so the zero value is a no-op.
type TicketUpdate struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	AssignedTo  *string    `json:"assignedTo,omitempty"`
	Company     *string    `json:"company,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Paid        *string    `json:"paid,omitempty"`
	Rate        *float64   `json:"rate,omitempty"`
	Currency    *string    `json:"currency,omitempty"`
}

// IsZero reports whether the update changes nothing.
func (u *TicketUpdate) IsZero() bool {
	return u.Title == nil && u.Description == nil && u.AssignedTo == nil &&
		u.Company == nil && u.Priority == nil && u.DueDate == nil &&
		u.Status == nil && u.Paid == nil && u.Rate == nil && u.Currency == nil
}

// StatusOnly reports whether the update touches nothing but the status
// field. Such updates are allowed under the narrower mark-done
// permission instead of full edit rights.
func (u *TicketUpdate) StatusOnly() bool {
	return u.Status != nil && u.Title == nil && u.Description == nil &&
		u.AssignedTo == nil && u.Company == nil && u.Priority == nil &&
		u.DueDate == nil && u.Paid == nil && u.Rate == nil && u.Currency == nil
}

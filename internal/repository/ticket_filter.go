package repository

import "time"

// TicketFilter narrows a ticket listing. All set fields compose with
// logical AND; the zero value matches everything. The due date range is
// inclusive on both ends.
type TicketFilter struct {
	AssignedTo string
	Company    string
	Paid       string
	Status     string
	DueFrom    *time.Time
	DueTo      *time.Time
}

// IsZero reports whether the filter matches everything.
func (f TicketFilter) IsZero() bool {
	return f.AssignedTo == "" && f.Company == "" && f.Paid == "" &&
		f.Status == "" && f.DueFrom == nil && f.DueTo == nil
}

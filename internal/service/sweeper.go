package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tickdesk/tickdesk/internal/metrics"
	"github.com/tickdesk/tickdesk/internal/models"
	"github.com/tickdesk/tickdesk/internal/repository"
)

// OverdueSweeper periodically recomputes the open and overdue ticket
// gauges. It only reads; nothing in the sweep mutates tickets.
type OverdueSweeper struct {
	tickets repository.TicketRepository
	log     zerolog.Logger
	now     func() time.Time
}

// NewOverdueSweeper creates a sweeper over the given repository.
func NewOverdueSweeper(tickets repository.TicketRepository, log zerolog.Logger) *OverdueSweeper {
	return &OverdueSweeper{tickets: tickets, log: log, now: time.Now}
}

// Run performs one sweep. Wired to a cron schedule by the serve command.
func (s *OverdueSweeper) Run(ctx context.Context) {
	tickets, err := s.tickets.List(ctx, repository.TicketFilter{})
	if err != nil {
		s.log.Error().Err(err).Msg("overdue sweep failed")
		return
	}

	now := s.now()
	var open, overdue int
	for i := range tickets {
		t := &tickets[i]
		if t.Status == models.StatusDone {
			continue
		}
		open++
		if t.DueDate != nil && t.DueDate.Before(now) {
			overdue++
		}
	}

	metrics.TicketsOpen.Set(float64(open))
	metrics.TicketsOverdue.Set(float64(overdue))
	s.log.Debug().Int("open", open).Int("overdue", overdue).Msg("overdue sweep complete")
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickdesk/tickdesk/internal/models"
	"github.com/tickdesk/tickdesk/internal/repository"
)

var (
	adminID = models.Identity{Username: "root", Role: models.RoleAdmin}
	aliceID = models.Identity{Username: "alice", Role: models.RoleUser}
	bobID   = models.Identity{Username: "bob", Role: models.RoleUser}
	carolID = models.Identity{Username: "carol", Role: models.RoleUser}
)

func newTicketService(t *testing.T) (*TicketService, *repository.MemoryTicketRepository) {
	t.Helper()
	repo := repository.NewMemoryTicketRepository()
	return NewTicketService(repo), repo
}

func createTicket(t *testing.T, svc *TicketService, assignedTo string) *models.Ticket {
	t.Helper()
	ticket, err := svc.Create(context.Background(), adminID, CreateTicketInput{
		Title:      "Printer on fire",
		AssignedTo: assignedTo,
	})
	require.NoError(t, err)
	return ticket
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestTicketService_Create(t *testing.T) {
	t.Run("AppliesDefaults", func(t *testing.T) {
		svc, _ := newTicketService(t)

		ticket, err := svc.Create(context.Background(), adminID, CreateTicketInput{
			Title:      "Set up VPN",
			AssignedTo: "bob",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, ticket.ID)
		assert.Equal(t, "root", ticket.CreatedBy)
		assert.Equal(t, models.StatusOpen, ticket.Status)
		assert.Equal(t, models.PaidNo, ticket.Paid)
		assert.Equal(t, models.PriorityMedium, ticket.Priority)
		assert.Equal(t, models.CurrencyIQD, ticket.Currency)
		assert.Nil(t, ticket.DoneAt)
	})

	t.Run("RequiresTitle", func(t *testing.T) {
		svc, _ := newTicketService(t)
		_, err := svc.Create(context.Background(), adminID, CreateTicketInput{AssignedTo: "bob"})
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})

	t.Run("RequiresAssignee", func(t *testing.T) {
		svc, _ := newTicketService(t)
		_, err := svc.Create(context.Background(), adminID, CreateTicketInput{Title: "x"})
		assert.True(t, IsValidation(err))
	})

	t.Run("RejectsNegativeRate", func(t *testing.T) {
		svc, _ := newTicketService(t)
		_, err := svc.Create(context.Background(), adminID, CreateTicketInput{
			Title: "x", AssignedTo: "bob", Rate: floatPtr(-5),
		})
		assert.True(t, IsValidation(err))
	})

	t.Run("NonAdminForbidden", func(t *testing.T) {
		svc, _ := newTicketService(t)
		_, err := svc.Create(context.Background(), aliceID, CreateTicketInput{
			Title: "x", AssignedTo: "bob",
		})
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestTicketService_PaidIsMonotonic(t *testing.T) {
	svc, _ := newTicketService(t)
	ticket := createTicket(t, svc, "bob")

	// no -> no is a trivial no-op, allowed
	_, err := svc.Update(context.Background(), bobID, ticket.ID, models.TicketUpdate{Paid: strPtr(models.PaidNo)})
	require.NoError(t, err)

	// no -> yes
	updated, err := svc.Update(context.Background(), adminID, ticket.ID, models.TicketUpdate{Paid: strPtr(models.PaidYes)})
	require.NoError(t, err)
	assert.Equal(t, models.PaidYes, updated.Paid)

	// yes -> no is rejected for everyone, admin included
	_, err = svc.Update(context.Background(), adminID, ticket.ID, models.TicketUpdate{Paid: strPtr(models.PaidNo)})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.Update(context.Background(), bobID, ticket.ID, models.TicketUpdate{Paid: strPtr(models.PaidNo)})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// the stored value is untouched by the rejected attempts
	current, err := svc.Get(context.Background(), adminID, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaidYes, current.Paid)

	// yes -> yes remains fine
	_, err = svc.Update(context.Background(), adminID, ticket.ID, models.TicketUpdate{Paid: strPtr(models.PaidYes)})
	assert.NoError(t, err)
}

func TestTicketService_DoneAtSetOnce(t *testing.T) {
	svc, _ := newTicketService(t)
	ticket := createTicket(t, svc, "bob")
	require.Nil(t, ticket.DoneAt)

	done, err := svc.Update(context.Background(), bobID, ticket.ID, models.TicketUpdate{Status: strPtr(models.StatusDone)})
	require.NoError(t, err)
	require.NotNil(t, done.DoneAt)
	firstDoneAt := *done.DoneAt

	// reopening keeps the historical completion time
	reopened, err := svc.Update(context.Background(), bobID, ticket.ID, models.TicketUpdate{Status: strPtr(models.StatusOpen)})
	require.NoError(t, err)
	require.NotNil(t, reopened.DoneAt)
	assert.Equal(t, firstDoneAt, *reopened.DoneAt)

	// completing again does not move it either
	time.Sleep(2 * time.Millisecond)
	again, err := svc.Update(context.Background(), bobID, ticket.ID, models.TicketUpdate{Status: strPtr(models.StatusDone)})
	require.NoError(t, err)
	assert.Equal(t, firstDoneAt, *again.DoneAt)
}

func TestTicketService_UpdatePermissions(t *testing.T) {
	t.Run("AssigneeCanMarkDone", func(t *testing.T) {
		svc, _ := newTicketService(t)
		ticket := createTicket(t, svc, "bob")

		_, err := svc.Update(context.Background(), bobID, ticket.ID, models.TicketUpdate{Status: strPtr(models.StatusDone)})
		assert.NoError(t, err)
	})

	t.Run("CreatorCannotMarkDone", func(t *testing.T) {
		svc, _ := newTicketService(t)
		repo := repository.NewMemoryTicketRepository()
		svc = NewTicketService(repo)
		now := time.Now().UTC()
		require.NoError(t, repo.Insert(context.Background(), &models.Ticket{
			ID: "t1", Title: "x", AssignedTo: "bob", CreatedBy: "alice",
			Status: models.StatusOpen, Paid: models.PaidNo,
			Priority: models.PriorityMedium, Currency: models.CurrencyIQD,
			CreatedAt: now, UpdatedAt: now,
		}))

		_, err := svc.Update(context.Background(), aliceID, "t1", models.TicketUpdate{Status: strPtr(models.StatusDone)})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("StrangerCannotEdit", func(t *testing.T) {
		svc, _ := newTicketService(t)
		ticket := createTicket(t, svc, "bob")

		_, err := svc.Update(context.Background(), carolID, ticket.ID, models.TicketUpdate{Title: strPtr("hijack")})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("AssigneeCannotEditBeyondStatusWithoutEditRights", func(t *testing.T) {
		// Assignee has full edit rights by the oracle, so a combined
		// status+title update from the assignee is fine.
		svc, _ := newTicketService(t)
		ticket := createTicket(t, svc, "bob")

		_, err := svc.Update(context.Background(), bobID, ticket.ID, models.TicketUpdate{
			Status: strPtr(models.StatusInProgress),
			Title:  strPtr("renamed"),
		})
		assert.NoError(t, err)
	})

	t.Run("UnknownTicketIsNotFound", func(t *testing.T) {
		svc, _ := newTicketService(t)
		_, err := svc.Update(context.Background(), adminID, "missing", models.TicketUpdate{Title: strPtr("x")})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestTicketService_PartialUpdateLeavesOtherFields(t *testing.T) {
	svc, _ := newTicketService(t)
	ticket, err := svc.Create(context.Background(), adminID, CreateTicketInput{
		Title:       "Install backups",
		Description: "nightly job",
		AssignedTo:  "bob",
		Company:     "Acme",
		Rate:        floatPtr(150),
		Currency:    models.CurrencyUSD,
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), adminID, ticket.ID, models.TicketUpdate{
		Priority: strPtr(models.PriorityHigh),
	})
	require.NoError(t, err)
	assert.Equal(t, "Install backups", updated.Title)
	assert.Equal(t, "nightly job", updated.Description)
	assert.Equal(t, "Acme", updated.Company)
	assert.Equal(t, models.CurrencyUSD, updated.Currency)
	require.NotNil(t, updated.Rate)
	assert.Equal(t, 150.0, *updated.Rate)
	assert.Equal(t, models.PriorityHigh, updated.Priority)
}

func TestTicketService_Scenario_DoneThenPaid(t *testing.T) {
	// Ticket assigned to bob, created by alice. Bob completes it, admin
	// marks it paid; after that nobody can unmark it.
	repo := repository.NewMemoryTicketRepository()
	svc := NewTicketService(repo)
	now := time.Now().UTC()
	require.NoError(t, repo.Insert(context.Background(), &models.Ticket{
		ID: "t1", Title: "Quarterly audit", AssignedTo: "bob", CreatedBy: "alice",
		Status: models.StatusOpen, Paid: models.PaidNo,
		Priority: models.PriorityMedium, Currency: models.CurrencyIQD,
		CreatedAt: now, UpdatedAt: now,
	}))

	done, err := svc.Update(context.Background(), bobID, "t1", models.TicketUpdate{Status: strPtr(models.StatusDone)})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, done.Status)
	assert.NotNil(t, done.DoneAt)

	// paid no -> no: trivially fine
	_, err = svc.Update(context.Background(), bobID, "t1", models.TicketUpdate{Paid: strPtr(models.PaidNo)})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), adminID, "t1", models.TicketUpdate{Paid: strPtr(models.PaidYes)})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), adminID, "t1", models.TicketUpdate{Paid: strPtr(models.PaidNo)})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	final, err := svc.Get(context.Background(), adminID, "t1")
	require.NoError(t, err)
	assert.Equal(t, models.PaidYes, final.Paid)
}

func TestTicketService_ListFiltersByViewer(t *testing.T) {
	repo := repository.NewMemoryTicketRepository()
	svc := NewTicketService(repo)
	now := time.Now().UTC()
	require.NoError(t, repo.Insert(context.Background(), &models.Ticket{
		ID: "t1", Title: "x", AssignedTo: "bob", CreatedBy: "alice",
		Status: models.StatusOpen, Paid: models.PaidNo,
		Priority: models.PriorityMedium, Currency: models.CurrencyIQD,
		CreatedAt: now, UpdatedAt: now,
	}))

	t.Run("UnrelatedUserGetsEmptyList", func(t *testing.T) {
		tickets, err := svc.List(context.Background(), carolID, repository.TicketFilter{})
		require.NoError(t, err)
		assert.Empty(t, tickets)
	})

	t.Run("AssigneeSeesTicket", func(t *testing.T) {
		tickets, err := svc.List(context.Background(), bobID, repository.TicketFilter{})
		require.NoError(t, err)
		assert.Len(t, tickets, 1)
	})

	t.Run("CreatorSeesTicket", func(t *testing.T) {
		tickets, err := svc.List(context.Background(), aliceID, repository.TicketFilter{})
		require.NoError(t, err)
		assert.Len(t, tickets, 1)
	})

	t.Run("AdminSeesTicket", func(t *testing.T) {
		tickets, err := svc.List(context.Background(), adminID, repository.TicketFilter{})
		require.NoError(t, err)
		assert.Len(t, tickets, 1)
	})

	t.Run("GetIsForbiddenForStranger", func(t *testing.T) {
		_, err := svc.Get(context.Background(), carolID, "t1")
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestTicketService_DeleteAndClear(t *testing.T) {
	svc, _ := newTicketService(t)
	ticket := createTicket(t, svc, "bob")

	t.Run("NonAdminCannotDelete", func(t *testing.T) {
		err := svc.Delete(context.Background(), bobID, ticket.ID)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("NonAdminCannotClear", func(t *testing.T) {
		_, err := svc.Clear(context.Background(), bobID)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("AdminClearReportsCount", func(t *testing.T) {
		createTicket(t, svc, "alice")
		n, err := svc.Clear(context.Background(), adminID)
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)
	})

	t.Run("AdminDeleteMissingIsNotFound", func(t *testing.T) {
		err := svc.Delete(context.Background(), adminID, ticket.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestTicketService_UpdateValidation(t *testing.T) {
	svc, _ := newTicketService(t)
	ticket := createTicket(t, svc, "bob")

	cases := []struct {
		name string
		upd  models.TicketUpdate
	}{
		{"EmptyTitle", models.TicketUpdate{Title: strPtr("")}},
		{"EmptyAssignee", models.TicketUpdate{AssignedTo: strPtr("")}},
		{"BadStatus", models.TicketUpdate{Status: strPtr("closed")}},
		{"BadPriority", models.TicketUpdate{Priority: strPtr("urgent")}},
		{"BadPaid", models.TicketUpdate{Paid: strPtr("maybe")}},
		{"BadCurrency", models.TicketUpdate{Currency: strPtr("EUR")}},
		{"NegativeRate", models.TicketUpdate{Rate: floatPtr(-1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Update(context.Background(), adminID, ticket.ID, tc.upd)
			assert.True(t, IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

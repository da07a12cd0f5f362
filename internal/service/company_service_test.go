package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickdesk/tickdesk/internal/models"
	"github.com/tickdesk/tickdesk/internal/repository"
)

func TestCompanyService_Create(t *testing.T) {
	svc := NewCompanyService(repository.NewMemoryCompanyRepository())

	t.Run("NonAdminForbidden", func(t *testing.T) {
		_, err := svc.Create(context.Background(), aliceID, "Acme")
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("EmptyNameRejected", func(t *testing.T) {
		_, err := svc.Create(context.Background(), adminID, "")
		assert.True(t, IsValidation(err))
	})

	t.Run("Success", func(t *testing.T) {
		c, err := svc.Create(context.Background(), adminID, "Acme")
		require.NoError(t, err)
		assert.Equal(t, "Acme", c.Name)
		assert.Equal(t, models.PaidNo, c.Paid)
	})

	t.Run("DuplicateNameConflicts", func(t *testing.T) {
		_, err := svc.Create(context.Background(), adminID, "Acme")
		assert.ErrorIs(t, err, ErrConflict)
	})
}

func TestCompanyService_ListSortedByName(t *testing.T) {
	svc := NewCompanyService(repository.NewMemoryCompanyRepository())
	for _, name := range []string{"Zenith", "Acme", "Milltown"} {
		_, err := svc.Create(context.Background(), adminID, name)
		require.NoError(t, err)
	}

	companies, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, companies, 3)
	assert.Equal(t, "Acme", companies[0].Name)
	assert.Equal(t, "Milltown", companies[1].Name)
	assert.Equal(t, "Zenith", companies[2].Name)
}

func TestCompanyService_PaidIsMonotonic(t *testing.T) {
	svc := NewCompanyService(repository.NewMemoryCompanyRepository())
	c, err := svc.Create(context.Background(), adminID, "Acme")
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), adminID, c.ID, CompanyUpdate{Paid: strPtr(models.PaidYes)})
	require.NoError(t, err)
	assert.Equal(t, models.PaidYes, updated.Paid)

	_, err = svc.Update(context.Background(), adminID, c.ID, CompanyUpdate{Paid: strPtr(models.PaidNo)})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCompanyService_UpdateAndDelete(t *testing.T) {
	svc := NewCompanyService(repository.NewMemoryCompanyRepository())
	c, err := svc.Create(context.Background(), adminID, "Acme")
	require.NoError(t, err)

	t.Run("Rename", func(t *testing.T) {
		updated, err := svc.Update(context.Background(), adminID, c.ID, CompanyUpdate{Name: strPtr("Acme Ltd")})
		require.NoError(t, err)
		assert.Equal(t, "Acme Ltd", updated.Name)
	})

	t.Run("RenameToExistingConflicts", func(t *testing.T) {
		other, err := svc.Create(context.Background(), adminID, "Globex")
		require.NoError(t, err)
		_, err = svc.Update(context.Background(), adminID, other.ID, CompanyUpdate{Name: strPtr("Acme Ltd")})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("NonAdminCannotDelete", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(context.Background(), bobID, c.ID), ErrForbidden)
	})

	t.Run("DeleteThenNotFound", func(t *testing.T) {
		require.NoError(t, svc.Delete(context.Background(), adminID, c.ID))
		_, err := svc.Update(context.Background(), adminID, c.ID, CompanyUpdate{Name: strPtr("X")})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

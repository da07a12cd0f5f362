package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tickdesk/tickdesk/internal/models"
	"github.com/tickdesk/tickdesk/internal/repository"
)

func newAuthService(t *testing.T) (*AuthService, *repository.MemoryUserRepository) {
	t.Helper()
	users := repository.NewMemoryUserRepository()
	svc := NewAuthService(users, []byte("test-secret"), time.Hour)
	return svc, users
}

func seedUser(t *testing.T, users *repository.MemoryUserRepository, username, password, role string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, users.Insert(context.Background(), &models.User{
		ID: username + "-id", Username: username, PasswordHash: string(hash), Role: role,
	}))
}

func TestAuthService_Login(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, users := newAuthService(t)
		seedUser(t, users, "alice", "s3cret", models.RoleUser)

		user, token, err := svc.Login(context.Background(), "alice", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.NotEmpty(t, token)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		svc, users := newAuthService(t)
		seedUser(t, users, "alice", "s3cret", models.RoleUser)

		_, _, err := svc.Login(context.Background(), "alice", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		svc, _ := newAuthService(t)
		_, _, err := svc.Login(context.Background(), "ghost", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	svc, users := newAuthService(t)
	seedUser(t, users, "root", "hunter2", models.RoleAdmin)

	_, token, err := svc.Login(context.Background(), "root", "hunter2")
	require.NoError(t, err)

	identity, err := svc.IdentityFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "root", identity.Username)
	assert.Equal(t, models.RoleAdmin, identity.Role)
}

func TestAuthService_RejectsBadTokens(t *testing.T) {
	svc, _ := newAuthService(t)

	t.Run("Garbage", func(t *testing.T) {
		_, err := svc.IdentityFromToken("not-a-token")
		assert.Error(t, err)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := NewAuthService(repository.NewMemoryUserRepository(), []byte("other-secret"), time.Hour)
		token, err := other.GenerateToken(&models.User{Username: "alice", Role: models.RoleUser})
		require.NoError(t, err)

		_, err = svc.IdentityFromToken(token)
		assert.Error(t, err)
	})

	t.Run("Expired", func(t *testing.T) {
		expired := NewAuthService(repository.NewMemoryUserRepository(), []byte("test-secret"), time.Hour)
		expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := expired.GenerateToken(&models.User{Username: "alice", Role: models.RoleUser})
		require.NoError(t, err)

		_, err = svc.IdentityFromToken(token)
		assert.Error(t, err)
	})
}

func TestAuthService_UnknownRoleDowngradesToUser(t *testing.T) {
	svc, _ := newAuthService(t)
	token, err := svc.GenerateToken(&models.User{Username: "odd", Role: "superuser"})
	require.NoError(t, err)

	identity, err := svc.IdentityFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, identity.Role)
}

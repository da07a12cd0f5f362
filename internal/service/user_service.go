package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tickdesk/tickdesk/internal/models"
	"github.com/tickdesk/tickdesk/internal/permissions"
	"github.com/tickdesk/tickdesk/internal/repository"
)

// UserService implements admin-gated account management.
type UserService struct {
	repo repository.UserRepository
	now  func() time.Time
}

// NewUserService creates a user service on top of the given repository.
func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo, now: time.Now}
}

// UserUpdate carries a partial account update. Nil fields are left
// unchanged.
type UserUpdate struct {
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
}

// Create registers a new account with a bcrypt-hashed password.
func (s *UserService) Create(ctx context.Context, id models.Identity, username, password, role string) (*models.User, error) {
	if !permissions.CanCreateUser(id) {
		return nil, ErrForbidden
	}
	if username == "" {
		return nil, invalidField("username", "is required")
	}
	if password == "" {
		return nil, invalidField("password", "is required")
	}
	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		return nil, invalidField("role", "must be user or admin")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Insert(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return user, nil
}

// List returns all accounts. Admin only.
func (s *UserService) List(ctx context.Context, id models.Identity) ([]models.User, error) {
	if !permissions.IsAdmin(id) {
		return nil, ErrForbidden
	}
	return s.repo.List(ctx)
}

// Search returns accounts whose username contains the query. Admin only.
func (s *UserService) Search(ctx context.Context, id models.Identity, query string) ([]models.User, error) {
	if !permissions.IsAdmin(id) {
		return nil, ErrForbidden
	}
	return s.repo.Search(ctx, query)
}

// Update changes an account's password and/or role.
func (s *UserService) Update(ctx context.Context, id models.Identity, userID string, upd UserUpdate) (*models.User, error) {
	if !permissions.CanUpdateUser(id) {
		return nil, ErrForbidden
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if upd.Password != nil {
		if *upd.Password == "" {
			return nil, invalidField("password", "must not be empty")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if upd.Role != nil {
		if !models.ValidRole(*upd.Role) {
			return nil, invalidField("role", "must be user or admin")
		}
		user.Role = *upd.Role
	}
	user.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes an account permanently.
func (s *UserService) Delete(ctx context.Context, id models.Identity, userID string) error {
	if !permissions.CanDeleteUser(id) {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, userID)
}

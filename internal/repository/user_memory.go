package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/tickdesk/tickdesk/internal/models"
)

// MemoryUserRepository is an in-memory UserRepository for tests.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

// NewMemoryUserRepository creates an empty in-memory repository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]models.User)}
}

// Insert stores a new account, enforcing username uniqueness.
func (r *MemoryUserRepository) Insert(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return ErrDuplicate
		}
	}
	r.users[u.ID] = *u
	return nil
}

// GetByID retrieves an account copy, or ErrNotFound.
func (r *MemoryUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

// GetByUsername retrieves an account by username, or ErrNotFound.
func (r *MemoryUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username {
			copy := u
			return &copy, nil
		}
	}
	return nil, ErrNotFound
}

// List returns all accounts sorted by username.
func (r *MemoryUserRepository) List(ctx context.Context) ([]models.User, error) {
	return r.Search(ctx, "")
}

// Search returns accounts whose username contains the query substring.
func (r *MemoryUserRepository) Search(ctx context.Context, query string) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		if query == "" || strings.Contains(u.Username, query) {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].Username < users[j].Username
	})
	return users, nil
}

// Update replaces the stored account, enforcing username uniqueness.
func (r *MemoryUserRepository) Update(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return ErrNotFound
	}
	for id, existing := range r.users {
		if id != u.ID && existing.Username == u.Username {
			return ErrDuplicate
		}
	}
	r.users[u.ID] = *u
	return nil
}

// Delete removes an account.
func (r *MemoryUserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}

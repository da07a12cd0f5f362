package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/tickdesk/tickdesk/internal/models"
)

// MemoryCompanyRepository is an in-memory CompanyRepository for tests.
type MemoryCompanyRepository struct {
	mu        sync.RWMutex
	companies map[string]models.Company
}

// NewMemoryCompanyRepository creates an empty in-memory repository.
func NewMemoryCompanyRepository() *MemoryCompanyRepository {
	return &MemoryCompanyRepository{companies: make(map[string]models.Company)}
}

// Insert stores a new company, enforcing name uniqueness.
func (r *MemoryCompanyRepository) Insert(ctx context.Context, c *models.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.companies {
		if existing.Name == c.Name {
			return ErrDuplicate
		}
	}
	r.companies[c.ID] = *c
	return nil
}

// GetByID retrieves a company copy, or ErrNotFound.
func (r *MemoryCompanyRepository) GetByID(ctx context.Context, id string) (*models.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.companies[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

// List returns all companies sorted by name.
func (r *MemoryCompanyRepository) List(ctx context.Context) ([]models.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	companies := make([]models.Company, 0, len(r.companies))
	for _, c := range r.companies {
		companies = append(companies, c)
	}
	sort.Slice(companies, func(i, j int) bool {
		return companies[i].Name < companies[j].Name
	})
	return companies, nil
}

// Update replaces the stored company, enforcing name uniqueness.
func (r *MemoryCompanyRepository) Update(ctx context.Context, c *models.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[c.ID]; !ok {
		return ErrNotFound
	}
	for id, existing := range r.companies {
		if id != c.ID && existing.Name == c.Name {
			return ErrDuplicate
		}
	}
	r.companies[c.ID] = *c
	return nil
}

// Delete removes a company.
func (r *MemoryCompanyRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[id]; !ok {
		return ErrNotFound
	}
	delete(r.companies, id)
	return nil
}

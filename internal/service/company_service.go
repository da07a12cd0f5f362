package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tickdesk/tickdesk/internal/models"
	"github.com/tickdesk/tickdesk/internal/permissions"
	"github.com/tickdesk/tickdesk/internal/repository"
)

// CompanyService manages the flat company reference list. Tickets point
// at companies by name only, so deleting a company never cascades.
type CompanyService struct {
	repo repository.CompanyRepository
	now  func() time.Time
}

// NewCompanyService creates a company service on top of the given
// repository.
func NewCompanyService(repo repository.CompanyRepository) *CompanyService {
	return &CompanyService{repo: repo, now: time.Now}
}

// CompanyUpdate carries a partial company update.
type CompanyUpdate struct {
	Name *string `json:"name,omitempty"`
	Paid *string `json:"paid,omitempty"`
}

// Create adds a company. Duplicate names surface as ErrConflict.
func (s *CompanyService) Create(ctx context.Context, id models.Identity, name string) (*models.Company, error) {
	if !permissions.CanManageCompanies(id) {
		return nil, ErrForbidden
	}
	if name == "" {
		return nil, invalidField("name", "is required")
	}

	now := s.now().UTC()
	c := &models.Company{
		ID:        uuid.NewString(),
		Name:      name,
		Paid:      models.PaidNo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return c, nil
}

// List returns all companies sorted by name.
func (s *CompanyService) List(ctx context.Context) ([]models.Company, error) {
	return s.repo.List(ctx)
}

// Update renames a company or flips its paid flag. The paid flag is
// one-way here as well: yes never goes back to no.
func (s *CompanyService) Update(ctx context.Context, id models.Identity, companyID string, upd CompanyUpdate) (*models.Company, error) {
	if !permissions.CanManageCompanies(id) {
		return nil, ErrForbidden
	}

	c, err := s.repo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		if *upd.Name == "" {
			return nil, invalidField("name", "must not be empty")
		}
		c.Name = *upd.Name
	}
	if upd.Paid != nil {
		if !models.ValidPaid(*upd.Paid) {
			return nil, invalidField("paid", "must be yes or no")
		}
		if *upd.Paid == models.PaidNo && c.Paid == models.PaidYes {
			return nil, ErrInvalidTransition
		}
		c.Paid = *upd.Paid
	}
	c.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return c, nil
}

// Delete removes a company from the reference list.
func (s *CompanyService) Delete(ctx context.Context, id models.Identity, companyID string) error {
	if !permissions.CanManageCompanies(id) {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, companyID)
}

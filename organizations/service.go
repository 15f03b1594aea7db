package organizations

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/user/grantflow-go/apperror"
)

// Pagination defaults and cap for List.
const (
	defaultListLimit = 5
	maxListLimit     = 100
)

// Service holds the business rules over the Store: field validation,
// pagination defaults and clamping, and translation of store sentinels into
// API errors.
type Service struct {
	store Store
}

// NewService creates an organizations Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create validates and persists a new organization, returning the record
// with its generated id and timestamps.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Organization, error) {
	for field, value := range map[string]string{
		"organization_name": req.Name,
		"address":           req.Address,
		"contact_info":      req.ContactInfo,
	} {
		if strings.TrimSpace(value) == "" {
			return nil, apperror.NewValidationError(field+" must not be empty", nil)
		}
	}

	org := &Organization{
		Name:        req.Name,
		Address:     req.Address,
		ContactInfo: req.ContactInfo,
	}
	if err := s.store.Insert(ctx, org); err != nil {
		return nil, apperror.NewDatabaseError("failed to create organization", err)
	}
	return org, nil
}

// List returns a page of organizations. Skip defaults to 0 and limit to 5
// when absent; both must be non-negative. An explicit limit of 0 returns
// zero rows. A requested limit above 100 is silently clamped to 100, never
// an error. A keyword filters by case-insensitive substring match on the
// organization name.
func (s *Service) List(ctx context.Context, params ListParams) ([]Organization, error) {
	if params.Skip < 0 {
		return nil, apperror.NewValidationError("skip must be greater than or equal to 0", nil)
	}

	limit := defaultListLimit
	if params.Limit != nil {
		if *params.Limit < 0 {
			return nil, apperror.NewValidationError("limit must be greater than or equal to 0", nil)
		}
		limit = *params.Limit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	orgs, err := s.store.List(ctx, params.Keyword, params.Skip, limit)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list organizations", err)
	}
	return orgs, nil
}

// Get fetches one organization by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Organization, error) {
	org, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrOrganizationNotFound) {
			return nil, apperror.NewNotFoundError("Organization not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get organization", err)
	}
	return org, nil
}

// Update applies the fields present in patch and returns the refreshed
// record. An update carrying no fields returns the current record unchanged.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch UpdateRequest) (*Organization, error) {
	if patch.empty() {
		return s.Get(ctx, id)
	}

	org, err := s.store.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, ErrOrganizationNotFound) {
			return nil, apperror.NewNotFoundError("Organization not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to update organization", err)
	}
	return org, nil
}

// Delete removes an organization. Deleting an id that does not exist, or
// the same id twice, reports NotFound.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrOrganizationNotFound) {
			return apperror.NewNotFoundError("Organization not found", nil)
		}
		return apperror.NewDatabaseError("failed to delete organization", err)
	}
	return nil
}

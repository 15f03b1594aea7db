package organizations

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrOrganizationNotFound reports that no organization matched the id.
// The service translates it into a NotFound API error.
var ErrOrganizationNotFound = errors.New("organization not found")

// Store persists organization records.
type Store interface {
	// Insert persists the organization and fills in the generated id and
	// timestamps.
	Insert(ctx context.Context, org *Organization) error

	// List returns organizations ordered by creation time (id as
	// tiebreaker). A non-empty keyword filters by case-insensitive
	// substring match on the name. Skip and limit are assumed already
	// validated and clamped by the caller.
	List(ctx context.Context, keyword string, skip, limit int) ([]Organization, error)

	// Get fetches one organization by id.
	Get(ctx context.Context, id uuid.UUID) (*Organization, error)

	// Update applies the non-nil fields of patch and returns the refreshed
	// record. Returns ErrOrganizationNotFound when the id does not exist.
	Update(ctx context.Context, id uuid.UUID, patch UpdateRequest) (*Organization, error)

	// Delete removes the organization; ErrOrganizationNotFound when no row
	// was affected.
	Delete(ctx context.Context, id uuid.UUID) error
}

package property

import (
	"context"
	"strings"
	"time"

	"dreamstay/internal/domain/shared/apperr"
)

// Property is the listing entity the booking core collaborates with. Beyond
// the approval flag it is immutable as far as the reservation engine is
// concerned; inventory records are owned by it and share its lifetime.
type Property struct {
	ID          int64
	HostID      int64
	Title       string
	Description string
	Location    string
	IsApproved  bool
	PhotoURLs   []string
	CreatedAt   time.Time
}

// OwnedBy reports whether the given principal owns this property.
func (p *Property) OwnedBy(hostID int64) bool {
	return p.HostID == hostID
}

// NewProperty validates host input for creation. Same host, same title and
// location is prohibited; the repository enforces that with a Conflict.
func NewProperty(hostID int64, title, description, location string, now time.Time) (*Property, error) {
	title = strings.TrimSpace(title)
	location = strings.TrimSpace(location)
	if title == "" || location == "" {
		return nil, apperr.Validation("title and location are required")
	}
	return &Property{
		HostID:      hostID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Location:    location,
		CreatedAt:   now.UTC(),
	}, nil
}

// SearchFilter narrows the candidate set for the search aggregator. Both
// terms are case-insensitive substring matches; approved properties only.
type SearchFilter struct {
	Location string
	Title    string
}

func (f SearchFilter) Empty() bool {
	return strings.TrimSpace(f.Location) == "" && strings.TrimSpace(f.Title) == ""
}

type Repository interface {
	// ByID returns the property or a NotFound error.
	ByID(ctx context.Context, id int64) (*Property, error)

	// Insert allocates the integer id and fails with Conflict when the host
	// already has a property with the same title and location.
	Insert(ctx context.Context, p *Property) error

	// Save overwrites mutable fields (approval flag, photos).
	Save(ctx context.Context, p *Property) error

	// ListByHost returns the host's properties ordered by id.
	ListByHost(ctx context.Context, hostID int64) ([]Property, error)

	// SearchApproved returns approved properties matching the filter,
	// ordered by id ascending for deterministic paging.
	SearchApproved(ctx context.Context, filter SearchFilter) ([]Property, error)
}

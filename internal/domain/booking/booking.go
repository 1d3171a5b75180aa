package booking

import (
	"context"
	"strings"
	"time"

	"dreamstay/internal/domain/shared/apperr"
	"dreamstay/internal/domain/shared/money"
	"dreamstay/internal/domain/shared/stay"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Booking is a confirmed stay. TotalPrice is the exact sum of the reserved
// nights' prices at commit time and is immutable afterwards.
type Booking struct {
	ID          int64
	GuestID     int64
	PropertyID  int64
	CheckIn     stay.DateKey
	CheckOut    stay.DateKey
	TotalPrice  money.Amount
	Status      Status
	VoucherCode string
	CreatedAt   time.Time
}

// Stay returns the half-open interval this booking consumed.
func (b *Booking) Stay() stay.Stay {
	return stay.Stay{CheckIn: b.CheckIn, CheckOut: b.CheckOut}
}

// GuestContact is the contact block handed to voucher rendering downstream.
type GuestContact struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// Validate rejects a contact with missing fields, naming each one.
func (c GuestContact) Validate() error {
	var missing []string
	if strings.TrimSpace(c.FirstName) == "" {
		missing = append(missing, "first_name")
	}
	if strings.TrimSpace(c.LastName) == "" {
		missing = append(missing, "last_name")
	}
	if strings.TrimSpace(c.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(c.Phone) == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return apperr.Validation("missing guest fields: " + strings.Join(missing, ", "))
	}
	return nil
}

// DestinationCount is one row of the trending aggregate: a location and how
// many confirmed bookings it has accumulated.
type DestinationCount struct {
	Location     string
	Reservations int64
}

// Repository persists bookings. Insert allocates the integer id.
type Repository interface {
	Insert(ctx context.Context, b *Booking) error
	ByID(ctx context.Context, id int64) (*Booking, error)

	// ListByGuest returns the guest's bookings, newest first.
	ListByGuest(ctx context.Context, guestID int64) ([]Booking, error)

	// TopDestinations aggregates confirmed bookings by property location,
	// most reserved first. Read-only; results may be cached by callers.
	TopDestinations(ctx context.Context, limit int) ([]DestinationCount, error)
}

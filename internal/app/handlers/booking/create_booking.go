package booking

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"dreamstay/internal/app/dto"
	"dreamstay/internal/app/middleware"
	"dreamstay/internal/app/services/availability"
	"dreamstay/internal/app/uow"
	domainbooking "dreamstay/internal/domain/booking"
	"dreamstay/internal/domain/shared/apperr"
	"dreamstay/internal/domain/shared/stay"
)

const createBookingKey = "booking.create"

// DefaultCommitTimeout bounds how long a single commit attempt may hold row
// locks before the attempt is abandoned and reported as a conflict.
const DefaultCommitTimeout = 5 * time.Second

type CreateBookingCommand struct {
	GuestID         int64
	PropertyID      int64
	CheckIn         string
	CheckOut        string
	Contact         domainbooking.GuestContact
	IdempotencyKeyV string
}

func (c CreateBookingCommand) Key() string { return createBookingKey }

func (c CreateBookingCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c CreateBookingCommand) ResultPrototype() any { return &dto.BookingDTO{} }

func (c CreateBookingCommand) Validate() error {
	if c.PropertyID <= 0 {
		return apperr.Validation("property id is required")
	}
	if _, err := stay.ParseRange(c.CheckIn, c.CheckOut); err != nil {
		return err
	}
	return c.Contact.Validate()
}

var ErrUnitOfWorkRequired = errors.New("booking: unit of work required")

// CreateBookingHandler runs the reservation commit protocol: re-check every
// night, flip each one under a per-row reserved guard, and write the booking,
// all inside one unit of work. Any lost night aborts the whole stay.
type CreateBookingHandler struct {
	UoWFactory    uow.UoWFactory
	CommitTimeout time.Duration
	Now           func() time.Time
}

func (h *CreateBookingHandler) Handle(ctx context.Context, cmd CreateBookingCommand) (*dto.BookingDTO, error) {
	s, err := stay.ParseRange(cmd.CheckIn, cmd.CheckOut)
	if err != nil {
		return nil, err
	}
	if err := cmd.Contact.Validate(); err != nil {
		return nil, err
	}
	now := h.now()
	if s.CheckIn.Before(stay.DateOf(now)) {
		return nil, apperr.Validation("cannot book dates in the past")
	}

	ctx, cancel := context.WithTimeout(ctx, h.commitTimeout())
	defer cancel()

	unit, ok := uow.FromContext(ctx)
	managed := false
	committed := false
	if !ok {
		if h.UoWFactory == nil {
			return nil, ErrUnitOfWorkRequired
		}
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{})
		if err != nil {
			return nil, err
		}
		ctx = uow.BindContext(ctx, unit)
		managed = true
	}
	if managed {
		defer func() {
			if !committed {
				_ = unit.Rollback(ctx)
			}
		}()
	}

	prop, err := unit.Properties().ByID(ctx, cmd.PropertyID)
	if err != nil {
		return nil, err
	}
	if !prop.IsApproved {
		return nil, apperr.NotFound("property not found or not approved")
	}

	records, err := availability.Check(ctx, unit.Inventory(), prop.ID, s)
	if err != nil {
		return nil, err
	}
	total := availability.TotalPrice(records)

	if err := unit.Inventory().Reserve(ctx, prop.ID, s.Dates()); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperr.Conflict("reservation attempt timed out, please retry")
		}
		return nil, err
	}

	b := &domainbooking.Booking{
		GuestID:     cmd.GuestID,
		PropertyID:  prop.ID,
		CheckIn:     s.CheckIn,
		CheckOut:    s.CheckOut,
		TotalPrice:  total,
		Status:      domainbooking.StatusConfirmed,
		VoucherCode: uuid.NewString(),
		CreatedAt:   now.UTC(),
	}
	if err := unit.Bookings().Insert(ctx, b); err != nil {
		return nil, err
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return nil, err
		}
		committed = true
	}

	result := dto.MapBooking(b)
	h.recordConfirmedEvent(ctx, b, prop.Location, cmd.Contact)
	return &result, nil
}

// confirmedEvent is the fan-out payload for downstream consumers (voucher
// mailer, analytics). Envelope fields follow the CloudEvents attribute names.
type confirmedEvent struct {
	SpecVersion string             `json:"specversion"`
	Type        string             `json:"type"`
	Source      string             `json:"source"`
	ID          string             `json:"id"`
	Time        time.Time          `json:"time"`
	Data        confirmedEventData `json:"data"`
}

type confirmedEventData struct {
	BookingID   int64  `json:"booking_id"`
	PropertyID  int64  `json:"property_id"`
	GuestID     int64  `json:"guest_id"`
	Location    string `json:"location"`
	CheckIn     string `json:"check_in"`
	CheckOut    string `json:"check_out"`
	TotalPrice  string `json:"total_price"`
	VoucherCode string `json:"voucher_code"`
	GuestEmail  string `json:"guest_email"`
	GuestName   string `json:"guest_name"`
}

func (h *CreateBookingHandler) recordConfirmedEvent(ctx context.Context, b *domainbooking.Booking, location string, contact domainbooking.GuestContact) {
	buf, ok := middleware.EventBufferFromContext(ctx)
	if !ok {
		return
	}
	payload, err := json.Marshal(confirmedEvent{
		SpecVersion: "1.0",
		Type:        "booking.confirmed",
		Source:      "dreamstay/bookings",
		ID:          uuid.NewString(),
		Time:        time.Now().UTC(),
		Data: confirmedEventData{
			BookingID:   b.ID,
			PropertyID:  b.PropertyID,
			GuestID:     b.GuestID,
			Location:    location,
			CheckIn:     b.CheckIn.String(),
			CheckOut:    b.CheckOut.String(),
			TotalPrice:  b.TotalPrice.String(),
			VoucherCode: b.VoucherCode,
			GuestEmail:  contact.Email,
			GuestName:   contact.FirstName + " " + contact.LastName,
		},
	})
	if err != nil {
		return
	}
	buf.Append(middleware.Event{
		Topic:   "bookings",
		Key:     b.VoucherCode,
		Payload: payload,
		Headers: map[string]string{"content-type": "application/cloudevents+json"},
	})
}

func (h *CreateBookingHandler) commitTimeout() time.Duration {
	if h.CommitTimeout > 0 {
		return h.CommitTimeout
	}
	return DefaultCommitTimeout
}

func (h *CreateBookingHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

package booking

import (
	"context"
	"errors"

	"dreamstay/internal/app/dto"
	"dreamstay/internal/app/uow"
	"dreamstay/internal/domain/shared/apperr"
)

const (
	listGuestBookingsKey = "booking.list_by_guest"
	getBookingKey        = "booking.get"
)

type ListGuestBookingsQuery struct {
	GuestID int64
}

func (q ListGuestBookingsQuery) Key() string { return listGuestBookingsKey }

// ListGuestBookingsHandler returns a guest's booking history, newest first,
// joined with listing titles for display.
type ListGuestBookingsHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListGuestBookingsHandler) Handle(ctx context.Context, q ListGuestBookingsQuery) (*dto.GuestBookingCollection, error) {
	ctx, unit, done, err := readUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	defer done()

	list, err := unit.Bookings().ListByGuest(ctx, q.GuestID)
	if err != nil {
		return nil, err
	}
	out := &dto.GuestBookingCollection{Items: make([]dto.GuestBookingSummary, 0, len(list))}
	for _, b := range list {
		prop, err := unit.Properties().ByID(ctx, b.PropertyID)
		if err != nil {
			if apperr.IsKind(err, apperr.KindNotFound) {
				prop = nil
			} else {
				return nil, err
			}
		}
		out.Items = append(out.Items, dto.MapGuestBookingSummary(b, prop))
	}
	return out, nil
}

type GetBookingQuery struct {
	BookingID int64
	GuestID   int64
}

func (q GetBookingQuery) Key() string { return getBookingKey }

// GetBookingHandler returns one booking for voucher display. Bookings of
// other guests read as not found rather than forbidden, so ids cannot be
// enumerated.
type GetBookingHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetBookingHandler) Handle(ctx context.Context, q GetBookingQuery) (*dto.BookingDTO, error) {
	ctx, unit, done, err := readUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	defer done()

	b, err := unit.Bookings().ByID(ctx, q.BookingID)
	if err != nil {
		return nil, err
	}
	if b.GuestID != q.GuestID {
		return nil, apperr.NotFound("booking not found")
	}
	result := dto.MapBooking(b)
	return &result, nil
}

// readUnit reuses a unit of work from the context when one is present and
// otherwise begins a read-only unit that is rolled back when done. Callers
// must read through the returned context so a session-backed unit sees its
// own state.
func readUnit(ctx context.Context, factory uow.UoWFactory) (context.Context, uow.UnitOfWork, func(), error) {
	if unit, ok := uow.FromContext(ctx); ok {
		return ctx, unit, func() {}, nil
	}
	if factory == nil {
		return ctx, nil, nil, errors.New("booking: unit of work required")
	}
	unit, err := factory.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return ctx, nil, nil, err
	}
	bound := uow.BindContext(ctx, unit)
	return bound, unit, func() { _ = unit.Rollback(bound) }, nil
}

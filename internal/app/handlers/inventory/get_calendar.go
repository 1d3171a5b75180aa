package inventory

import (
	"context"
	"time"

	"dreamstay/internal/app/dto"
	"dreamstay/internal/app/uow"
	"dreamstay/internal/domain/shared/apperr"
	"dreamstay/internal/domain/shared/stay"
)

const getCalendarKey = "inventory.get_calendar"

const defaultCalendarWindowDays = 90

// GetCalendarQuery returns a host's inventory over [From, To). Empty bounds
// default to a 90 day window starting today.
type GetCalendarQuery struct {
	HostID     int64
	PropertyID int64
	From       string
	To         string
}

func (q GetCalendarQuery) Key() string { return getCalendarKey }

type GetCalendarHandler struct {
	UoWFactory uow.UoWFactory
	Now        func() time.Time
}

func (h *GetCalendarHandler) Handle(ctx context.Context, q GetCalendarQuery) (*dto.Calendar, error) {
	from, to, err := h.window(q.From, q.To)
	if err != nil {
		return nil, err
	}

	unit, ok := uow.FromContext(ctx)
	managed := false
	if !ok {
		if h.UoWFactory == nil {
			return nil, ErrUnitOfWorkRequired
		}
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{ReadOnly: true})
		if err != nil {
			return nil, err
		}
		ctx = uow.BindContext(ctx, unit)
		managed = true
	}
	if managed {
		defer func() { _ = unit.Rollback(ctx) }()
	}

	if _, err := loadOwnedProperty(ctx, unit, q.PropertyID, q.HostID); err != nil {
		return nil, err
	}
	records, err := unit.Inventory().Range(ctx, q.PropertyID, from, to)
	if err != nil {
		return nil, err
	}
	calendar := dto.MapCalendar(q.PropertyID, records)
	return &calendar, nil
}

func (h *GetCalendarHandler) window(fromRaw, toRaw string) (stay.DateKey, stay.DateKey, error) {
	today := stay.DateOf(clockNow(h.Now))
	from := today
	if fromRaw != "" {
		parsed, err := stay.ParseDate(fromRaw)
		if err != nil {
			return stay.DateKey{}, stay.DateKey{}, err
		}
		from = parsed
	}
	to := stay.DateOf(from.Time().AddDate(0, 0, defaultCalendarWindowDays))
	if toRaw != "" {
		parsed, err := stay.ParseDate(toRaw)
		if err != nil {
			return stay.DateKey{}, stay.DateKey{}, err
		}
		to = parsed
	}
	if !to.After(from) {
		return stay.DateKey{}, stay.DateKey{}, apperr.Validation("to must be after from")
	}
	return from, to, nil
}

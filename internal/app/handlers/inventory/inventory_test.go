package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dreamstay/internal/app/dto"
	inventoryapp "dreamstay/internal/app/handlers/inventory"
	domaininventory "dreamstay/internal/domain/inventory"
	domainproperty "dreamstay/internal/domain/property"
	"dreamstay/internal/domain/shared/apperr"
	"dreamstay/internal/domain/shared/stay"
	"dreamstay/internal/infra/storage/memory"
)

const hostID = int64(7)

type calendarFixture struct {
	inventory *memory.InventoryRepository
	factory   memory.Factory
	propID    int64
}

func now() time.Time {
	return time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
}

func newCalendarFixture(t *testing.T) *calendarFixture {
	t.Helper()
	properties := memory.NewPropertyRepository()
	inventory := memory.NewInventoryRepository()
	factory := memory.Factory{
		PropertyRepo:  properties,
		InventoryRepo: inventory,
		BookingRepo:   memory.NewBookingRepository(properties),
	}
	prop := &domainproperty.Property{
		HostID:    hostID,
		Title:     "Loft Downtown",
		Location:  "Lisbon",
		CreatedAt: now(),
	}
	require.NoError(t, properties.Insert(context.Background(), prop))
	return &calendarFixture{inventory: inventory, factory: factory, propID: prop.ID}
}

func (f *calendarFixture) record(t *testing.T, raw string) *domaininventory.Record {
	t.Helper()
	d, err := stay.ParseDate(raw)
	require.NoError(t, err)
	rec, err := f.inventory.Get(context.Background(), f.propID, d)
	require.NoError(t, err)
	return rec
}

func boolPtr(v bool) *bool { return &v }

func strPtr(v string) *string { return &v }

// TestAddRecord_defaultsToAvailable verifies that adding a single date
// without flags produces a sellable night.
func TestAddRecord_defaultsToAvailable(t *testing.T) {
	f := newCalendarFixture(t)
	h := &inventoryapp.AddRecordHandler{UoWFactory: f.factory, Now: now}

	entry, err := h.Handle(context.Background(), inventoryapp.AddRecordCommand{
		HostID:     hostID,
		PropertyID: f.propID,
		Date:       "2026-07-10",
		Price:      "150.00",
	})
	require.NoError(t, err)
	require.Equal(t, "2026-07-10", entry.Date)
	require.Equal(t, "150.00", entry.Price)
	require.True(t, entry.IsAvailable)
	require.False(t, entry.IsBlocked)
	require.True(t, f.record(t, "2026-07-10").Bookable())
}

func TestAddRecord_pastDateRejected(t *testing.T) {
	f := newCalendarFixture(t)
	h := &inventoryapp.AddRecordHandler{UoWFactory: f.factory, Now: now}

	_, err := h.Handle(context.Background(), inventoryapp.AddRecordCommand{
		HostID:     hostID,
		PropertyID: f.propID,
		Date:       "2026-05-31",
		Price:      "150.00",
	})
	require.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestAddRecord_duplicateDateConflicts(t *testing.T) {
	f := newCalendarFixture(t)
	h := &inventoryapp.AddRecordHandler{UoWFactory: f.factory, Now: now}
	cmd := inventoryapp.AddRecordCommand{
		HostID:     hostID,
		PropertyID: f.propID,
		Date:       "2026-07-10",
		Price:      "150.00",
	}

	_, err := h.Handle(context.Background(), cmd)
	require.NoError(t, err)
	_, err = h.Handle(context.Background(), cmd)
	require.True(t, apperr.IsKind(err, apperr.KindConflict))
}

// TestAddRecord_foreignProperty verifies that a host cannot manage another
// host's calendar.
func TestAddRecord_foreignProperty(t *testing.T) {
	f := newCalendarFixture(t)
	h := &inventoryapp.AddRecordHandler{UoWFactory: f.factory, Now: now}

	_, err := h.Handle(context.Background(), inventoryapp.AddRecordCommand{
		HostID:     hostID + 1,
		PropertyID: f.propID,
		Date:       "2026-07-10",
		Price:      "150.00",
	})
	require.True(t, apperr.IsKind(err, apperr.KindAuthorization))
}

// TestBulkCreate_mixedOutcomes verifies the partial-success contract: good
// dates are created, malformed ones are skipped with a reason, duplicates
// are reported, and past dates vanish from the outcome list entirely.
func TestBulkCreate_mixedOutcomes(t *testing.T) {
	f := newCalendarFixture(t)
	add := &inventoryapp.AddRecordHandler{UoWFactory: f.factory, Now: now}
	_, err := add.Handle(context.Background(), inventoryapp.AddRecordCommand{
		HostID: hostID, PropertyID: f.propID, Date: "2026-07-02", Price: "80.00",
	})
	require.NoError(t, err)

	h := &inventoryapp.BulkCreateHandler{UoWFactory: f.factory, Now: now}
	result, err := h.Handle(context.Background(), inventoryapp.BulkCreateCommand{
		HostID:     hostID,
		PropertyID: f.propID,
		Entries: []inventoryapp.BulkEntry{
			{Date: "2026-07-01", Price: "80.00", IsAvailable: boolPtr(true)},
			{Date: "2026-07-02", Price: "80.00"},
			{Date: "not-a-date", Price: "80.00"},
			{Date: "2026-05-01", Price: "80.00"},
			{Date: "2026-07-03", Price: "-5"},
		},
	})
	require.NoError(t, err)
	require.Len(t, result.Outcomes, 4)

	require.Equal(t, dto.OutcomeCreated, result.Outcomes[0].Outcome)
	require.Equal(t, "2026-07-01", result.Outcomes[0].Date)

	require.Equal(t, dto.OutcomeSkippedDuplicate, result.Outcomes[1].Outcome)
	require.Equal(t, "record already exists for this date", result.Outcomes[1].Reason)

	require.Equal(t, dto.OutcomeSkippedInvalid, result.Outcomes[2].Outcome)
	require.Equal(t, "not-a-date", result.Outcomes[2].Date)

	require.Equal(t, dto.OutcomeSkippedInvalid, result.Outcomes[3].Outcome)
	require.Equal(t, "2026-07-03", result.Outcomes[3].Date)
}

// TestBulkCreate_flagsDefaultClosed verifies that bulk-seeded nights are not
// sellable until the host opens them.
func TestBulkCreate_flagsDefaultClosed(t *testing.T) {
	f := newCalendarFixture(t)
	h := &inventoryapp.BulkCreateHandler{UoWFactory: f.factory, Now: now}

	_, err := h.Handle(context.Background(), inventoryapp.BulkCreateCommand{
		HostID:     hostID,
		PropertyID: f.propID,
		Entries:    []inventoryapp.BulkEntry{{Date: "2026-07-01", Price: "80.00"}},
	})
	require.NoError(t, err)

	rec := f.record(t, "2026-07-01")
	require.False(t, rec.IsAvailable)
	require.False(t, rec.Bookable())
}

// TestBulkUpdate_outcomes walks one request through every update outcome:
// a price change on a live record, a reserved night, a missing record, a
// past date, and an entry with nothing to change.
func TestBulkUpdate_outcomes(t *testing.T) {
	f := newCalendarFixture(t)
	seed := &inventoryapp.BulkCreateHandler{UoWFactory: f.factory, Now: now}
	_, err := seed.Handle(context.Background(), inventoryapp.BulkCreateCommand{
		HostID:     hostID,
		PropertyID: f.propID,
		Entries: []inventoryapp.BulkEntry{
			{Date: "2026-07-01", Price: "80.00", IsAvailable: boolPtr(true)},
			{Date: "2026-07-02", Price: "80.00", IsAvailable: boolPtr(true)},
		},
	})
	require.NoError(t, err)

	reserved, err := stay.ParseDate("2026-07-02")
	require.NoError(t, err)
	require.NoError(t, f.inventory.Reserve(context.Background(), f.propID, []stay.DateKey{reserved}))

	h := &inventoryapp.BulkUpdateHandler{UoWFactory: f.factory, Now: now}
	result, err := h.Handle(context.Background(), inventoryapp.BulkUpdateCommand{
		HostID:     hostID,
		PropertyID: f.propID,
		Entries: []inventoryapp.UpdateEntry{
			{Date: "2026-07-01", Price: strPtr("95.00")},
			{Date: "2026-07-02", IsBlocked: boolPtr(true)},
			{Date: "2026-07-09", Price: strPtr("95.00")},
			{Date: "2026-05-01", Price: strPtr("95.00")},
			{Date: "2026-07-01"},
		},
	})
	require.NoError(t, err)
	require.Len(t, result.Outcomes, 5)

	require.Equal(t, dto.OutcomeUpdated, result.Outcomes[0].Outcome)
	require.Equal(t, dto.OutcomeError, result.Outcomes[1].Outcome)
	require.Equal(t, "cannot update reserved date", result.Outcomes[1].Reason)
	require.Equal(t, dto.OutcomeError, result.Outcomes[2].Outcome)
	require.Equal(t, "record not found", result.Outcomes[2].Reason)
	require.Equal(t, dto.OutcomeError, result.Outcomes[3].Outcome)
	require.Equal(t, "cannot update past dates", result.Outcomes[3].Reason)
	require.Equal(t, dto.OutcomeError, result.Outcomes[4].Outcome)
	require.Equal(t, "no fields to update", result.Outcomes[4].Reason)

	require.Equal(t, "95.00", f.record(t, "2026-07-01").Price.String())
	require.True(t, f.record(t, "2026-07-02").IsReserved)
	require.False(t, f.record(t, "2026-07-02").IsBlocked)
}

// TestGetCalendar_window verifies range bounds: [from, to) returns only the
// requested nights in ascending order.
func TestGetCalendar_window(t *testing.T) {
	f := newCalendarFixture(t)
	seed := &inventoryapp.BulkCreateHandler{UoWFactory: f.factory, Now: now}
	_, err := seed.Handle(context.Background(), inventoryapp.BulkCreateCommand{
		HostID:     hostID,
		PropertyID: f.propID,
		Entries: []inventoryapp.BulkEntry{
			{Date: "2026-07-03", Price: "80.00", IsAvailable: boolPtr(true)},
			{Date: "2026-07-01", Price: "80.00", IsAvailable: boolPtr(true)},
			{Date: "2026-07-05", Price: "80.00", IsAvailable: boolPtr(true)},
		},
	})
	require.NoError(t, err)

	h := &inventoryapp.GetCalendarHandler{UoWFactory: f.factory, Now: now}
	cal, err := h.Handle(context.Background(), inventoryapp.GetCalendarQuery{
		HostID:     hostID,
		PropertyID: f.propID,
		From:       "2026-07-01",
		To:         "2026-07-05",
	})
	require.NoError(t, err)
	require.Len(t, cal.Entries, 2)
	require.Equal(t, "2026-07-01", cal.Entries[0].Date)
	require.Equal(t, "2026-07-03", cal.Entries[1].Date)
}

func TestGetCalendar_invertedRangeRejected(t *testing.T) {
	f := newCalendarFixture(t)
	h := &inventoryapp.GetCalendarHandler{UoWFactory: f.factory, Now: now}

	_, err := h.Handle(context.Background(), inventoryapp.GetCalendarQuery{
		HostID:     hostID,
		PropertyID: f.propID,
		From:       "2026-07-05",
		To:         "2026-07-01",
	})
	require.True(t, apperr.IsKind(err, apperr.KindValidation))
}

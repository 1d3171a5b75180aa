package inventory

import (
	"context"
	"time"

	"dreamstay/internal/app/dto"
	"dreamstay/internal/app/uow"
	domaininventory "dreamstay/internal/domain/inventory"
	"dreamstay/internal/domain/shared/apperr"
	"dreamstay/internal/domain/shared/money"
	"dreamstay/internal/domain/shared/stay"
)

const bulkCreateKey = "inventory.bulk_create"

// BulkEntry is one date of a bulk create request. Price is the decimal
// string as received on the wire; flags default to false when omitted, so a
// freshly seeded calendar is not sellable until the host opens it.
type BulkEntry struct {
	Date        string
	Price       string
	IsAvailable *bool
	IsBlocked   *bool
}

// BulkCreateCommand seeds inventory records for many dates at once. The
// operation is partial by contract: each date succeeds or is skipped on its
// own, an invalid date never poisons its neighbors.
type BulkCreateCommand struct {
	HostID     int64
	PropertyID int64
	Entries    []BulkEntry
}

func (c BulkCreateCommand) Key() string { return bulkCreateKey }

func (c BulkCreateCommand) Validate() error {
	if c.PropertyID <= 0 {
		return apperr.Validation("property id is required")
	}
	if len(c.Entries) == 0 {
		return apperr.Validation("at least one date entry is required")
	}
	return nil
}

type BulkCreateHandler struct {
	UoWFactory uow.UoWFactory
	Now        func() time.Time
}

func (h *BulkCreateHandler) Handle(ctx context.Context, cmd BulkCreateCommand) (*dto.BulkResult, error) {
	ctx, scope, err := enterUnit(ctx, h.UoWFactory, uow.TxOptions{})
	if err != nil {
		return nil, err
	}
	result, err := h.handle(ctx, scope.unit, cmd)
	if err := scope.finish(ctx, err); err != nil {
		return nil, err
	}
	return result, nil
}

func (h *BulkCreateHandler) handle(ctx context.Context, unit uow.UnitOfWork, cmd BulkCreateCommand) (*dto.BulkResult, error) {
	if _, err := loadOwnedProperty(ctx, unit, cmd.PropertyID, cmd.HostID); err != nil {
		return nil, err
	}
	now := clockNow(h.Now)
	today := stay.DateOf(now)

	result := &dto.BulkResult{PropertyID: cmd.PropertyID, Outcomes: make([]dto.DateOutcome, 0, len(cmd.Entries))}
	for _, entry := range cmd.Entries {
		date, err := stay.ParseDate(entry.Date)
		if err != nil {
			result.Outcomes = append(result.Outcomes, dto.DateOutcome{
				Date:    entry.Date,
				Outcome: dto.OutcomeSkippedInvalid,
				Reason:  "invalid date format",
			})
			continue
		}
		if date.Before(today) {
			// Past dates are dropped without an outcome row: seeding a
			// season with a range that starts yesterday is routine, not an
			// error worth reporting.
			continue
		}
		price, err := money.ParsePositive(entry.Price)
		if err != nil {
			result.Outcomes = append(result.Outcomes, dto.DateOutcome{
				Date:    date.String(),
				Outcome: dto.OutcomeSkippedInvalid,
				Reason:  "price must be a positive amount with at most two decimals",
			})
			continue
		}
		rec := domaininventory.Record{
			PropertyID: cmd.PropertyID,
			Date:       date,
			Price:      price,
			CreatedAt:  now.UTC(),
		}
		if entry.IsAvailable != nil {
			rec.IsAvailable = *entry.IsAvailable
		}
		if entry.IsBlocked != nil {
			rec.IsBlocked = *entry.IsBlocked
		}
		if err := unit.Inventory().Insert(ctx, rec); err != nil {
			if apperr.IsKind(err, apperr.KindConflict) {
				result.Outcomes = append(result.Outcomes, dto.DateOutcome{
					Date:    date.String(),
					Outcome: dto.OutcomeSkippedDuplicate,
					Reason:  "record already exists for this date",
				})
				continue
			}
			return nil, err
		}
		result.Outcomes = append(result.Outcomes, dto.DateOutcome{
			Date:    date.String(),
			Outcome: dto.OutcomeCreated,
		})
	}
	return result, nil
}

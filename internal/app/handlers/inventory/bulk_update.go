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

const bulkUpdateKey = "inventory.bulk_update"

// UpdateEntry is one date of a bulk update. Nil fields are left as they are;
// only the supplied fields change.
type UpdateEntry struct {
	Date        string
	Price       *string
	IsAvailable *bool
	IsBlocked   *bool
}

// BulkUpdateCommand edits existing inventory records date by date with the
// same partial-success contract as bulk create. Reserved nights are immune:
// the store refuses the mutation and the date reports an error outcome.
type BulkUpdateCommand struct {
	HostID     int64
	PropertyID int64
	Entries    []UpdateEntry
}

func (c BulkUpdateCommand) Key() string { return bulkUpdateKey }

func (c BulkUpdateCommand) Validate() error {
	if c.PropertyID <= 0 {
		return apperr.Validation("property id is required")
	}
	if len(c.Entries) == 0 {
		return apperr.Validation("at least one date entry is required")
	}
	return nil
}

type BulkUpdateHandler struct {
	UoWFactory uow.UoWFactory
	Now        func() time.Time
}

func (h *BulkUpdateHandler) Handle(ctx context.Context, cmd BulkUpdateCommand) (*dto.BulkResult, error) {
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

func (h *BulkUpdateHandler) handle(ctx context.Context, unit uow.UnitOfWork, cmd BulkUpdateCommand) (*dto.BulkResult, error) {
	if _, err := loadOwnedProperty(ctx, unit, cmd.PropertyID, cmd.HostID); err != nil {
		return nil, err
	}
	today := stay.DateOf(clockNow(h.Now))

	result := &dto.BulkResult{PropertyID: cmd.PropertyID, Outcomes: make([]dto.DateOutcome, 0, len(cmd.Entries))}
	for _, entry := range cmd.Entries {
		date, err := stay.ParseDate(entry.Date)
		if err != nil {
			result.Outcomes = append(result.Outcomes, dto.DateOutcome{
				Date:    entry.Date,
				Outcome: dto.OutcomeError,
				Reason:  "invalid date format",
			})
			continue
		}
		if date.Before(today) {
			result.Outcomes = append(result.Outcomes, dto.DateOutcome{
				Date:    date.String(),
				Outcome: dto.OutcomeError,
				Reason:  "cannot update past dates",
			})
			continue
		}
		mutation := domaininventory.Mutation{
			IsAvailable: entry.IsAvailable,
			IsBlocked:   entry.IsBlocked,
		}
		if entry.Price != nil {
			price, err := money.ParsePositive(*entry.Price)
			if err != nil {
				result.Outcomes = append(result.Outcomes, dto.DateOutcome{
					Date:    date.String(),
					Outcome: dto.OutcomeError,
					Reason:  "price must be a positive amount with at most two decimals",
				})
				continue
			}
			mutation.Price = &price
		}
		if mutation.Empty() {
			result.Outcomes = append(result.Outcomes, dto.DateOutcome{
				Date:    date.String(),
				Outcome: dto.OutcomeError,
				Reason:  "no fields to update",
			})
			continue
		}
		if err := unit.Inventory().Apply(ctx, cmd.PropertyID, date, mutation); err != nil {
			switch {
			case apperr.IsKind(err, apperr.KindNotFound):
				result.Outcomes = append(result.Outcomes, dto.DateOutcome{
					Date:    date.String(),
					Outcome: dto.OutcomeError,
					Reason:  "record not found",
				})
			case apperr.IsKind(err, apperr.KindConflict):
				result.Outcomes = append(result.Outcomes, dto.DateOutcome{
					Date:    date.String(),
					Outcome: dto.OutcomeError,
					Reason:  "cannot update reserved date",
				})
			default:
				return nil, err
			}
			continue
		}
		result.Outcomes = append(result.Outcomes, dto.DateOutcome{
			Date:    date.String(),
			Outcome: dto.OutcomeUpdated,
		})
	}
	return result, nil
}

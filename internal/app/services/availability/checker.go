// Package availability implements the range availability check shared by the
// search aggregator and the reservation commit protocol.
package availability

import (
	"context"

	domaininventory "dreamstay/internal/domain/inventory"
	"dreamstay/internal/domain/shared/apperr"
	"dreamstay/internal/domain/shared/money"
	"dreamstay/internal/domain/shared/stay"
)

// Check fetches the bookable records covering every night of the stay. The
// contract is all nights or none: a single missing or non-bookable night
// fails the whole range with Conflict, which is what lets the commit protocol
// treat the returned set as atomic input. The records come back ordered by
// date ascending, one per night.
func Check(ctx context.Context, records domaininventory.Repository, propertyID int64, s stay.Stay) ([]domaininventory.Record, error) {
	dates := s.Dates()
	if len(dates) == 0 {
		return nil, apperr.Validation("check-out must be after check-in")
	}
	found, err := records.Bookable(ctx, propertyID, dates)
	if err != nil {
		return nil, err
	}
	if len(found) != len(dates) {
		return nil, apperr.Conflict("some dates are not available for booking")
	}
	return found, nil
}

// TotalPrice sums the records' nightly prices. The exact sum, no rounding;
// display rounding belongs to the presentation layer.
func TotalPrice(records []domaininventory.Record) money.Amount {
	var total money.Amount
	for _, r := range records {
		total = total.Add(r.Price)
	}
	return total
}

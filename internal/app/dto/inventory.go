package dto

import (
	domaininventory "dreamstay/internal/domain/inventory"
)

// Bulk edit outcome labels. Every date in a bulk request resolves to exactly
// one outcome; partial success is the contract for the bulk paths.
const (
	OutcomeCreated          = "created"
	OutcomeSkippedDuplicate = "skipped-duplicate"
	OutcomeSkippedInvalid   = "skipped-invalid"
	OutcomeUpdated          = "updated"
	OutcomeError            = "error"
)

// DateOutcome reports what happened to a single date of a bulk request.
type DateOutcome struct {
	Date    string `json:"date"`
	Outcome string `json:"outcome"`
	Reason  string `json:"reason,omitempty"`
}

// BulkResult is the per-date outcome list, in request order.
type BulkResult struct {
	PropertyID int64         `json:"property_id"`
	Outcomes   []DateOutcome `json:"outcomes"`
}

// CalendarEntry is one inventory record as shown to its host.
type CalendarEntry struct {
	Date        string `json:"date"`
	Price       string `json:"price"`
	IsAvailable bool   `json:"is_available"`
	IsBlocked   bool   `json:"is_blocked"`
	IsReserved  bool   `json:"is_reserved"`
}

// Calendar is a property's inventory over a date range, ascending.
type Calendar struct {
	PropertyID int64           `json:"property_id"`
	Entries    []CalendarEntry `json:"entries"`
}

func MapCalendar(propertyID int64, records []domaininventory.Record) Calendar {
	entries := make([]CalendarEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, CalendarEntry{
			Date:        r.Date.String(),
			Price:       r.Price.String(),
			IsAvailable: r.IsAvailable,
			IsBlocked:   r.IsBlocked,
			IsReserved:  r.IsReserved,
		})
	}
	return Calendar{PropertyID: propertyID, Entries: entries}
}

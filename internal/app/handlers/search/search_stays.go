// Package search implements the stay search aggregator: approved listings
// filtered by location and title, joined with their inventory over the
// requested date range.
package search

import (
	"context"
	"errors"
	"strings"

	"dreamstay/internal/app/dto"
	"dreamstay/internal/app/services/availability"
	"dreamstay/internal/app/uow"
	domaininventory "dreamstay/internal/domain/inventory"
	domainproperty "dreamstay/internal/domain/property"
	"dreamstay/internal/domain/shared/apperr"
	"dreamstay/internal/domain/shared/stay"
)

const searchStaysKey = "search.stays"

// Search modes. Exact keeps only listings where every requested night is
// bookable; partial also returns listings with gaps, with a per-night
// breakdown so the caller can see which nights are missing.
const (
	ModeExact   = "exact"
	ModePartial = "partial"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

var ErrUnitOfWorkRequired = errors.New("search: unit of work required")

type SearchStaysQuery struct {
	Location string
	Title    string
	CheckIn  string
	CheckOut string
	Mode     string
	Limit    int
	Offset   int
}

func (q SearchStaysQuery) Key() string { return searchStaysKey }

type SearchStaysHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *SearchStaysHandler) Handle(ctx context.Context, q SearchStaysQuery) (*dto.SearchResponse, error) {
	s, err := stay.ParseRange(q.CheckIn, q.CheckOut)
	if err != nil {
		return nil, err
	}
	mode, err := parseMode(q.Mode)
	if err != nil {
		return nil, err
	}
	limit, offset := normalizePage(q.Limit, q.Offset)

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

	props, err := unit.Properties().SearchApproved(ctx, domainproperty.SearchFilter{
		Location: q.Location,
		Title:    q.Title,
	})
	if err != nil {
		return nil, err
	}

	matched := make([]dto.SearchResult, 0, len(props))
	for i := range props {
		result, include, err := h.evaluate(ctx, unit.Inventory(), &props[i], s, mode)
		if err != nil {
			return nil, err
		}
		if include {
			matched = append(matched, result)
		}
	}

	resp := &dto.SearchResponse{
		Items:  page(matched, limit, offset),
		Total:  len(matched),
		Limit:  limit,
		Offset: offset,
	}
	return resp, nil
}

// evaluate joins one listing with its inventory over the stay. Listings are
// already ordered by id from the repository, so the response ordering is
// deterministic across pages.
func (h *SearchStaysHandler) evaluate(ctx context.Context, records domaininventory.Repository, prop *domainproperty.Property, s stay.Stay, mode string) (dto.SearchResult, bool, error) {
	found, err := records.Range(ctx, prop.ID, s.CheckIn, s.CheckOut)
	if err != nil {
		return dto.SearchResult{}, false, err
	}
	byDate := make(map[string]domaininventory.Record, len(found))
	for _, r := range found {
		byDate[r.Date.String()] = r
	}

	dates := s.Dates()
	nights := make([]dto.NightBreakdown, 0, len(dates))
	bookable := make([]domaininventory.Record, 0, len(dates))
	for _, d := range dates {
		night := dto.NightBreakdown{Date: d.String()}
		if rec, ok := byDate[d.String()]; ok && rec.Bookable() {
			night.Available = true
			night.Price = rec.Price.String()
			bookable = append(bookable, rec)
		}
		nights = append(nights, night)
	}

	fully := len(bookable) == len(dates)
	result := dto.SearchResult{
		PropertyID:     prop.ID,
		Title:          prop.Title,
		Location:       prop.Location,
		AvailableFrom:  s.CheckIn.String(),
		AvailableTo:    s.CheckOut.String(),
		TotalNights:    len(dates),
		FullyAvailable: fully,
	}
	if fully {
		total := availability.TotalPrice(bookable)
		result.TotalPrice = total.String()
		result.PricePerNight = total.DivRound(len(dates)).String()
	}

	switch mode {
	case ModeExact:
		return result, fully, nil
	default:
		result.Nights = nights
		return result, len(bookable) > 0, nil
	}
}

func parseMode(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", ModeExact:
		return ModeExact, nil
	case ModePartial:
		return ModePartial, nil
	default:
		return "", apperr.Validation("mode must be exact or partial")
	}
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func page(items []dto.SearchResult, limit, offset int) []dto.SearchResult {
	if offset >= len(items) {
		return []dto.SearchResult{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

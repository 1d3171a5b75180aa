// Package destinations serves the trending destinations aggregate: locations
// ranked by confirmed reservations, cached in process for a few minutes.
package destinations

import (
	"context"
	"errors"
	"sync"
	"time"

	"dreamstay/internal/app/dto"
	"dreamstay/internal/app/uow"
	domainbooking "dreamstay/internal/domain/booking"
	"dreamstay/internal/domain/shared/apperr"
)

const trendingKey = "destinations.trending"

const (
	DefaultTTL   = 5 * time.Minute
	defaultLimit = 10
	maxLimit     = 50
)

var ErrUnitOfWorkRequired = errors.New("destinations: unit of work required")

type TrendingQuery struct {
	Limit int
}

func (q TrendingQuery) Key() string { return trendingKey }

type cacheEntry struct {
	rows     []domainbooking.DestinationCount
	cachedAt time.Time
}

// TrendingHandler answers the trending query from a per-limit TTL cache so
// the landing page does not run the aggregation on every hit. The cache is
// process local; a fresh process starts cold.
type TrendingHandler struct {
	UoWFactory uow.UoWFactory
	TTL        time.Duration
	Now        func() time.Time

	mu    sync.Mutex
	cache map[int]cacheEntry
}

func (h *TrendingHandler) Handle(ctx context.Context, q TrendingQuery) (*dto.TrendingResponse, error) {
	limit, err := normalizeLimit(q.Limit)
	if err != nil {
		return nil, err
	}
	now := h.now()

	if rows, ok := h.cached(limit, now); ok {
		resp := dto.MapTrending(rows, limit, true)
		return &resp, nil
	}

	rows, err := h.load(ctx, limit)
	if err != nil {
		return nil, err
	}
	h.store(limit, rows, now)

	resp := dto.MapTrending(rows, limit, false)
	return &resp, nil
}

func (h *TrendingHandler) load(ctx context.Context, limit int) ([]domainbooking.DestinationCount, error) {
	unit, ok := uow.FromContext(ctx)
	managed := false
	if !ok {
		if h.UoWFactory == nil {
			return nil, ErrUnitOfWorkRequired
		}
		var err error
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
	return unit.Bookings().TopDestinations(ctx, limit)
}

func (h *TrendingHandler) cached(limit int, now time.Time) ([]domainbooking.DestinationCount, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	entry, ok := h.cache[limit]
	if !ok || now.Sub(entry.cachedAt) >= h.ttl() {
		return nil, false
	}
	return entry.rows, true
}

func (h *TrendingHandler) store(limit int, rows []domainbooking.DestinationCount, now time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cache == nil {
		h.cache = make(map[int]cacheEntry)
	}
	h.cache[limit] = cacheEntry{rows: rows, cachedAt: now}
}

func (h *TrendingHandler) ttl() time.Duration {
	if h.TTL > 0 {
		return h.TTL
	}
	return DefaultTTL
}

func (h *TrendingHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func normalizeLimit(limit int) (int, error) {
	if limit == 0 {
		return defaultLimit, nil
	}
	if limit < 0 {
		return 0, apperr.Validation("limit must be positive")
	}
	if limit > maxLimit {
		return maxLimit, nil
	}
	return limit, nil
}

package dto

import (
	domainbooking "dreamstay/internal/domain/booking"
)

type TrendingDestination struct {
	Location     string `json:"location"`
	Reservations int64  `json:"reservations"`
}

// TrendingResponse is served from a TTL cache; rows can lag live bookings
// by up to the cache TTL.
type TrendingResponse struct {
	Limit    int                   `json:"limit"`
	Trending []TrendingDestination `json:"trending"`
	Cached   bool                  `json:"cached"`
}

func MapTrending(rows []domainbooking.DestinationCount, limit int, cached bool) TrendingResponse {
	items := make([]TrendingDestination, 0, len(rows))
	for _, row := range rows {
		items = append(items, TrendingDestination{Location: row.Location, Reservations: row.Reservations})
	}
	return TrendingResponse{Limit: limit, Trending: items, Cached: cached}
}

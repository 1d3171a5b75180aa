package dto

// NightBreakdown is one night of a partial-mode search result, computed
// independently per date.
type NightBreakdown struct {
	Date      string `json:"date"`
	Available bool   `json:"available"`
	Price     string `json:"price,omitempty"`
}

// SearchResult is one property in a search response. PricePerNight is the
// display average (total divided by nights, rounded to the minor unit); the
// total itself stays an unrounded sum.
type SearchResult struct {
	PropertyID     int64            `json:"property_id"`
	Title          string           `json:"title"`
	Location       string           `json:"location"`
	PricePerNight  string           `json:"price_per_night,omitempty"`
	TotalPrice     string           `json:"total_price,omitempty"`
	AvailableFrom  string           `json:"available_from"`
	AvailableTo    string           `json:"available_to"`
	TotalNights    int              `json:"total_nights"`
	FullyAvailable bool             `json:"fully_available"`
	Nights         []NightBreakdown `json:"nights,omitempty"`
}

// SearchResponse is the paged, ordered search result list.
type SearchResponse struct {
	Items  []SearchResult `json:"items"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

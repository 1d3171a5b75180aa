package dto

import (
	"time"

	domainbooking "dreamstay/internal/domain/booking"
	domainproperty "dreamstay/internal/domain/property"
)

// BookingDTO is the booking record handed back to the transport layer and,
// downstream, to voucher rendering.
type BookingDTO struct {
	ID          int64     `json:"id"`
	PropertyID  int64     `json:"property_id"`
	GuestID     int64     `json:"guest_id"`
	CheckIn     string    `json:"check_in"`
	CheckOut    string    `json:"check_out"`
	Nights      int       `json:"nights"`
	TotalPrice  string    `json:"total_price"`
	Status      string    `json:"status"`
	VoucherCode string    `json:"voucher_code"`
	CreatedAt   time.Time `json:"created_at"`
}

func MapBooking(b *domainbooking.Booking) BookingDTO {
	return BookingDTO{
		ID:          b.ID,
		PropertyID:  b.PropertyID,
		GuestID:     b.GuestID,
		CheckIn:     b.CheckIn.String(),
		CheckOut:    b.CheckOut.String(),
		Nights:      b.Stay().Nights(),
		TotalPrice:  b.TotalPrice.String(),
		Status:      string(b.Status),
		VoucherCode: b.VoucherCode,
		CreatedAt:   b.CreatedAt,
	}
}

// GuestBookingSummary is one row of a guest's booking history.
type GuestBookingSummary struct {
	ID         int64     `json:"id"`
	PropertyID int64     `json:"property_id"`
	Title      string    `json:"title"`
	Location   string    `json:"location"`
	CheckIn    string    `json:"check_in"`
	CheckOut   string    `json:"check_out"`
	TotalPrice string    `json:"total_price"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type GuestBookingCollection struct {
	Items []GuestBookingSummary `json:"items"`
}

func MapGuestBookingSummary(b domainbooking.Booking, prop *domainproperty.Property) GuestBookingSummary {
	summary := GuestBookingSummary{
		ID:         b.ID,
		PropertyID: b.PropertyID,
		CheckIn:    b.CheckIn.String(),
		CheckOut:   b.CheckOut.String(),
		TotalPrice: b.TotalPrice.String(),
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt,
	}
	if prop != nil {
		summary.Title = prop.Title
		summary.Location = prop.Location
	}
	return summary
}

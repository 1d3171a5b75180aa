package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"dreamstay/internal/app/dto"
	bookingapp "dreamstay/internal/app/handlers/booking"
	"dreamstay/internal/app/queries"
)

type MeHTTP interface {
	ListBookings(c *gin.Context)
}

type MeHandler struct {
	Queries queries.Bus
}

func (h MeHandler) ListBookings(c *gin.Context) {
	p, ok := requireRole(c, "guest")
	if !ok {
		return
	}
	result, err := queries.Ask[bookingapp.ListGuestBookingsQuery, *dto.GuestBookingCollection](c.Request.Context(), h.Queries, bookingapp.ListGuestBookingsQuery{
		GuestID: p.ID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

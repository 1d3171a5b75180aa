package ginserver

import (
	"net/http"
	"strconv"

	gin "github.com/gin-gonic/gin"

	"dreamstay/internal/app/commands"
	"dreamstay/internal/app/dto"
	bookingapp "dreamstay/internal/app/handlers/booking"
	"dreamstay/internal/app/queries"
	domainbooking "dreamstay/internal/domain/booking"
)

type BookingHTTP interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
}

type BookingHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type createBookingRequest struct {
	PropertyID int64               `json:"property_id"`
	CheckIn    string              `json:"check_in"`
	CheckOut   string              `json:"check_out"`
	Guest      guestContactRequest `json:"guest"`
}

type guestContactRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

func (h BookingHandler) Create(c *gin.Context) {
	p, ok := requireRole(c, "guest")
	if !ok {
		return
	}
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	cmd := bookingapp.CreateBookingCommand{
		GuestID:    p.ID,
		PropertyID: req.PropertyID,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Contact: domainbooking.GuestContact{
			FirstName: req.Guest.FirstName,
			LastName:  req.Guest.LastName,
			Email:     req.Guest.Email,
			Phone:     req.Guest.Phone,
		},
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[bookingapp.CreateBookingCommand, *dto.BookingDTO](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h BookingHandler) Get(c *gin.Context) {
	p, ok := requireRole(c, "guest")
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}
	result, err := queries.Ask[bookingapp.GetBookingQuery, *dto.BookingDTO](c.Request.Context(), h.Queries, bookingapp.GetBookingQuery{
		BookingID: id,
		GuestID:   p.ID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

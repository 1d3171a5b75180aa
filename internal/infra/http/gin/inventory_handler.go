package ginserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	gin "github.com/gin-gonic/gin"

	"dreamstay/internal/app/commands"
	"dreamstay/internal/app/dto"
	inventoryapp "dreamstay/internal/app/handlers/inventory"
	"dreamstay/internal/app/queries"
)

type HostInventoryHTTP interface {
	AddRecord(c *gin.Context)
	BulkCreate(c *gin.Context)
	BulkUpdate(c *gin.Context)
	Calendar(c *gin.Context)
}

type InventoryHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

// Prices arrive as json.Number so "99.90" survives the trip without float
// rounding.
type addRecordRequest struct {
	Date        string       `json:"date"`
	Price       *json.Number `json:"price"`
	IsAvailable *bool        `json:"is_available"`
}

type bulkEntryRequest struct {
	Date        string       `json:"date"`
	Price       *json.Number `json:"price"`
	IsAvailable *bool        `json:"is_available"`
	IsBlocked   *bool        `json:"is_blocked"`
}

type bulkRequest struct {
	Entries []bulkEntryRequest `json:"entries"`
}

func (h InventoryHandler) AddRecord(c *gin.Context) {
	p, propertyID, ok := hostProperty(c)
	if !ok {
		return
	}
	var req addRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	result, err := commands.Dispatch[inventoryapp.AddRecordCommand, *dto.CalendarEntry](c.Request.Context(), h.Commands, inventoryapp.AddRecordCommand{
		HostID:      p.ID,
		PropertyID:  propertyID,
		Date:        req.Date,
		Price:       numberString(req.Price),
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h InventoryHandler) BulkCreate(c *gin.Context) {
	p, propertyID, ok := hostProperty(c)
	if !ok {
		return
	}
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	cmd := inventoryapp.BulkCreateCommand{HostID: p.ID, PropertyID: propertyID}
	for _, entry := range req.Entries {
		cmd.Entries = append(cmd.Entries, inventoryapp.BulkEntry{
			Date:        entry.Date,
			Price:       numberString(entry.Price),
			IsAvailable: entry.IsAvailable,
			IsBlocked:   entry.IsBlocked,
		})
	}
	result, err := commands.Dispatch[inventoryapp.BulkCreateCommand, *dto.BulkResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusMultiStatus, result)
}

func (h InventoryHandler) BulkUpdate(c *gin.Context) {
	p, propertyID, ok := hostProperty(c)
	if !ok {
		return
	}
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	cmd := inventoryapp.BulkUpdateCommand{HostID: p.ID, PropertyID: propertyID}
	for _, entry := range req.Entries {
		update := inventoryapp.UpdateEntry{
			Date:        entry.Date,
			IsAvailable: entry.IsAvailable,
			IsBlocked:   entry.IsBlocked,
		}
		if entry.Price != nil {
			price := entry.Price.String()
			update.Price = &price
		}
		cmd.Entries = append(cmd.Entries, update)
	}
	result, err := commands.Dispatch[inventoryapp.BulkUpdateCommand, *dto.BulkResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusMultiStatus, result)
}

func (h InventoryHandler) Calendar(c *gin.Context) {
	p, propertyID, ok := hostProperty(c)
	if !ok {
		return
	}
	result, err := queries.Ask[inventoryapp.GetCalendarQuery, *dto.Calendar](c.Request.Context(), h.Queries, inventoryapp.GetCalendarQuery{
		HostID:     p.ID,
		PropertyID: propertyID,
		From:       c.Query("from"),
		To:         c.Query("to"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func hostProperty(c *gin.Context) (principal, int64, bool) {
	p, ok := requireRole(c, "host")
	if !ok {
		return principal{}, 0, false
	}
	propertyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || propertyID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property id"})
		return principal{}, 0, false
	}
	return p, propertyID, true
}

func numberString(n *json.Number) string {
	if n == nil {
		return ""
	}
	return n.String()
}

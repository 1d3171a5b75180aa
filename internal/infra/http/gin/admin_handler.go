package ginserver

import (
	"net/http"
	"strconv"

	gin "github.com/gin-gonic/gin"

	"dreamstay/internal/app/commands"
	"dreamstay/internal/app/dto"
	propertyapp "dreamstay/internal/app/handlers/property"
)

type AdminHTTP interface {
	SetApproval(c *gin.Context)
}

type AdminHandler struct {
	Commands commands.Bus
}

type approvalRequest struct {
	Approved bool `json:"approved"`
}

func (h AdminHandler) SetApproval(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	propertyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || propertyID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property id"})
		return
	}
	var req approvalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	result, err := commands.Dispatch[propertyapp.ApprovePropertyCommand, *dto.PropertyDTO](c.Request.Context(), h.Commands, propertyapp.ApprovePropertyCommand{
		PropertyID: propertyID,
		Approved:   req.Approved,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

package ginserver

import (
	"net/http"
	"strconv"

	gin "github.com/gin-gonic/gin"

	"dreamstay/internal/app/commands"
	"dreamstay/internal/app/dto"
	propertyapp "dreamstay/internal/app/handlers/property"
	"dreamstay/internal/app/policies"
	"dreamstay/internal/app/queries"
)

type HostPropertyHTTP interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	UploadPhoto(c *gin.Context)
}

type PropertyHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
	Photos   policies.PhotoStore
}

type createPropertyRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

func (h PropertyHandler) List(c *gin.Context) {
	p, ok := requireRole(c, "host")
	if !ok {
		return
	}
	result, err := queries.Ask[propertyapp.ListHostPropertiesQuery, *dto.PropertyCollection](c.Request.Context(), h.Queries, propertyapp.ListHostPropertiesQuery{
		HostID: p.ID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h PropertyHandler) Create(c *gin.Context) {
	p, ok := requireRole(c, "host")
	if !ok {
		return
	}
	var req createPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	result, err := commands.Dispatch[propertyapp.CreatePropertyCommand, *dto.PropertyDTO](c.Request.Context(), h.Commands, propertyapp.CreatePropertyCommand{
		HostID:      p.ID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// UploadPhoto streams a multipart photo to object storage and records the
// resulting URL on the listing.
func (h PropertyHandler) UploadPhoto(c *gin.Context) {
	p, ok := requireRole(c, "host")
	if !ok {
		return
	}
	if h.Photos == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "photo storage unavailable"})
		return
	}
	propertyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || propertyID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property id"})
		return
	}
	header, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read photo file"})
		return
	}
	defer file.Close()

	url, err := h.Photos.Upload(c.Request.Context(), propertyID, header.Filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "photo upload failed"})
		return
	}
	result, err := commands.Dispatch[propertyapp.AttachPhotoCommand, *dto.PropertyDTO](c.Request.Context(), h.Commands, propertyapp.AttachPhotoCommand{
		HostID:     p.ID,
		PropertyID: propertyID,
		PhotoURL:   url,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

package ginserver

import (
	"net/http"
	"strconv"

	gin "github.com/gin-gonic/gin"

	"dreamstay/internal/app/dto"
	searchapp "dreamstay/internal/app/handlers/search"
	"dreamstay/internal/app/queries"
)

type SearchHTTP interface {
	Search(c *gin.Context)
}

type SearchHandler struct {
	Queries queries.Bus
}

// Search is public: no principal required.
func (h SearchHandler) Search(c *gin.Context) {
	result, err := queries.Ask[searchapp.SearchStaysQuery, *dto.SearchResponse](c.Request.Context(), h.Queries, searchapp.SearchStaysQuery{
		Location: c.Query("location"),
		Title:    c.Query("title"),
		CheckIn:  c.Query("check_in"),
		CheckOut: c.Query("check_out"),
		Mode:     c.Query("mode"),
		Limit:    intQuery(c, "limit"),
		Offset:   intQuery(c, "offset"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func intQuery(c *gin.Context, name string) int {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}

package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"dreamstay/internal/app/dto"
	destinationsapp "dreamstay/internal/app/handlers/destinations"
	"dreamstay/internal/app/queries"
)

type DestinationsHTTP interface {
	Trending(c *gin.Context)
}

type DestinationsHandler struct {
	Queries queries.Bus
}

func (h DestinationsHandler) Trending(c *gin.Context) {
	result, err := queries.Ask[destinationsapp.TrendingQuery, *dto.TrendingResponse](c.Request.Context(), h.Queries, destinationsapp.TrendingQuery{
		Limit: intQuery(c, "limit"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

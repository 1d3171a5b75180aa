package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"dreamstay/internal/infra/config"
	"dreamstay/internal/infra/obs"
)

type Handlers struct {
	Auth          AuthHTTP
	Booking       BookingHTTP
	Me            MeHTTP
	Search        SearchHTTP
	Destinations  DestinationsHTTP
	HostProperty  HostPropertyHTTP
	HostInventory HostInventoryHTTP
	Admin         AdminHTTP

	AuthMiddleware gin.HandlerFunc
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))
	if h.AuthMiddleware != nil {
		router.Use(h.AuthMiddleware)
	}

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Auth != nil {
		api.POST("/auth/register", h.Auth.Register)
		api.POST("/auth/login", h.Auth.Login)
		api.POST("/auth/logout", h.Auth.Logout)
		api.GET("/auth/me", h.Auth.Me)
	}
	if h.Search != nil {
		api.GET("/search", h.Search.Search)
	}
	if h.Destinations != nil {
		api.GET("/destinations/trending", h.Destinations.Trending)
	}
	if h.Booking != nil {
		api.POST("/bookings", h.Booking.Create)
		api.GET("/bookings/:id", h.Booking.Get)
	}
	if h.Me != nil {
		api.GET("/me/bookings", h.Me.ListBookings)
	}
	if h.HostProperty != nil {
		hostGroup := api.Group("/host/properties")
		hostGroup.GET("", h.HostProperty.List)
		hostGroup.POST("", h.HostProperty.Create)
		hostGroup.POST("/:id/photos", h.HostProperty.UploadPhoto)
		if h.HostInventory != nil {
			hostGroup.POST("/:id/availability", h.HostInventory.AddRecord)
			hostGroup.POST("/:id/availability/bulk", h.HostInventory.BulkCreate)
			hostGroup.PATCH("/:id/availability/bulk", h.HostInventory.BulkUpdate)
			hostGroup.GET("/:id/calendar", h.HostInventory.Calendar)
		}
	}
	if h.Admin != nil {
		api.POST("/admin/properties/:id/approval", h.Admin.SetApproval)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}

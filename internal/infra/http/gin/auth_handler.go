package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"dreamstay/internal/app/dto"
	authsvc "dreamstay/internal/app/services/auth"
)

type AuthHTTP interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Logout(c *gin.Context)
	Me(c *gin.Context)
}

type AuthHandler struct {
	Service *authsvc.Service
	Logger  *slog.Logger
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h AuthHandler) Register(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "auth service unavailable"})
		return
	}
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	result, err := h.Service.Register(c.Request.Context(), authsvc.RegisterParams{
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAuthResponse(result.User, result.Token))
}

func (h AuthHandler) Login(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "auth service unavailable"})
		return
	}
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	result, err := h.Service.Login(c.Request.Context(), authsvc.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		// Invalid credentials read as unauthorized, not forbidden.
		if err == authsvc.ErrInvalidCredentials {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAuthResponse(result.User, result.Token))
}

func (h AuthHandler) Logout(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "auth service unavailable"})
		return
	}
	token := bearerTokenFromContext(c)
	if err := h.Service.Logout(c.Request.Context(), token); err != nil {
		if h.Logger != nil {
			h.Logger.Warn("logout failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h AuthHandler) Me(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "auth required"})
		return
	}
	c.JSON(http.StatusOK, dto.UserDTO{
		ID:        p.ID,
		Email:     p.Email,
		Role:      p.Role,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Phone:     p.Phone,
		CreatedAt: p.CreatedAt,
	})
}

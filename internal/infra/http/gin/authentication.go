package ginserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	gin "github.com/gin-gonic/gin"

	"dreamstay/internal/app/services/auth"
	domainauth "dreamstay/internal/domain/auth"
)

const principalContextKey = "dreamstay.principal"

type principal struct {
	ID        int64
	Email     string
	Role      string
	FirstName string
	LastName  string
	Phone     string
	Token     string
	CreatedAt time.Time
}

func (p principal) HasRole(role string) bool {
	return strings.EqualFold(p.Role, strings.TrimSpace(role))
}

type AuthMiddleware struct {
	Service *auth.Service
	Logger  *slog.Logger
}

func (m AuthMiddleware) Handle(c *gin.Context) {
	token := extractBearerToken(c.GetHeader("Authorization"))
	if token == "" || m.Service == nil {
		c.Next()
		return
	}
	resolved, err := m.Service.ResolveToken(c.Request.Context(), token)
	if err != nil {
		if !errors.Is(err, domainauth.ErrSessionNotFound) && m.Logger != nil {
			m.Logger.Debug("token validation failed", "error", err)
		}
		c.Next()
		return
	}
	user := resolved.User
	setPrincipal(c, principal{
		ID:        user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone,
		Token:     token,
		CreatedAt: user.CreatedAt,
	})
	c.Next()
}

func setPrincipal(c *gin.Context, p principal) {
	c.Set(principalContextKey, p)
}

func currentPrincipal(c *gin.Context) (principal, bool) {
	val, exists := c.Get(principalContextKey)
	if !exists {
		return principal{}, false
	}
	p, ok := val.(principal)
	return p, ok
}

func requireRole(c *gin.Context, role string) (principal, bool) {
	p, ok := currentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "auth required"})
		return principal{}, false
	}
	if role != "" && !p.HasRole(role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return principal{}, false
	}
	return p, true
}

func bearerTokenFromContext(c *gin.Context) string {
	if p, ok := currentPrincipal(c); ok && p.Token != "" {
		return p.Token
	}
	return extractBearerToken(c.GetHeader("Authorization"))
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

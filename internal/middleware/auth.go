package middleware

import (
	"net/http"
	"strings"

	jwtsvc "salonbook/internal/pkg/jwt"
	"salonbook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Auth requires a valid bearer token and puts customer_id and role on the
// context.
func Auth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, jwt)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid token")
			c.Abort()
			return
		}

		c.Set("customer_id", claims.CustomerID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// OptionalAuth sets the identity when a valid token is present and lets the
// request through either way. Guest booking and rating routes use it: the
// only difference between the flows is whether customer_id exists.
func OptionalAuth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := bearerClaims(c, jwt); ok {
			c.Set("customer_id", claims.CustomerID)
			c.Set("role", claims.Role)
		}
		c.Next()
	}
}

// RequireRole runs after Auth and gates on the role claim.
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != requiredRole {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return RequireRole("admin")
}

func bearerClaims(c *gin.Context, jwt *jwtsvc.Service) (*jwtsvc.Claims, bool) {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return nil, false
	}

	tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	if tokenStr == "" {
		return nil, false
	}

	claims, err := jwt.ValidateToken(tokenStr)
	if err != nil {
		return nil, false
	}
	return claims, true
}

// CustomerID returns the authenticated customer id, or nil for guests.
func CustomerID(c *gin.Context) *int64 {
	v, ok := c.Get("customer_id")
	if !ok {
		return nil
	}
	id, ok := v.(int64)
	if !ok || id == 0 {
		return nil
	}
	return &id
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tigermarine/internal/pkg/jwt"
	"tigermarine/internal/pkg/response"
)

const (
	AdminIDKey = "admin_id"
	RoleKey    = "role"
	RoleAdmin  = "admin"
)

// JWTAuth requires a valid "Bearer <token>" header and stores the admin id
// and role on the context.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c, jwtService) {
			return
		}
		c.Next()
	}
}

// RequireRole ensures that the authenticated caller has the specified role.
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !hasRole(c, requiredRole) {
			return
		}
		c.Next()
	}
}

// AdminGuard protects admin routes. When required is false every request
// passes, which keeps the catalog editable without login in development.
func AdminGuard(jwtService *jwt.Service, required bool) gin.HandlerFunc {
	if !required {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if !authenticate(c, jwtService) || !hasRole(c, RoleAdmin) {
			return
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, jwtService *jwt.Service) bool {
	header := c.GetHeader("Authorization")
	if header == "" {
		response.Error(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
		c.Abort()
		return false
	}

	scheme, token, ok := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		response.Error(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be Bearer <token>")
		c.Abort()
		return false
	}

	claims, err := jwtService.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		c.Abort()
		return false
	}

	c.Set(AdminIDKey, claims.AdminID)
	c.Set(RoleKey, claims.Role)
	return true
}

func hasRole(c *gin.Context, requiredRole string) bool {
	role := c.GetString(RoleKey)
	if role == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
		c.Abort()
		return false
	}
	if role != requiredRole {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
		c.Abort()
		return false
	}
	return true
}

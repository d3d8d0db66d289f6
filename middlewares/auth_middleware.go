package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rcsmith8/starter-restaurant-reservation/utils"
)

// Context keys set from a verified token.
const (
	UserIDKey = "user_id"
	RoleKey   = "role"
)

// AuthMiddleware requires a valid "Authorization: Bearer <token>" header.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondStatus(c, http.StatusUnauthorized, "Authorization header missing")
			return
		}
		if !authenticate(c, authHeader) {
			return
		}
		c.Next()
	}
}

// OptionalAuth reads a bearer token when one is sent and passes anonymous requests
// through. A token that is sent but invalid is still rejected.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			if !authenticate(c, authHeader) {
				return
			}
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, authHeader string) bool {
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		utils.RespondStatus(c, http.StatusUnauthorized, "Authorization header must use the Bearer scheme")
		return false
	}
	claims, err := utils.ParseToken(tokenString)
	if err != nil {
		utils.RespondStatus(c, http.StatusUnauthorized, "Invalid or expired token")
		return false
	}
	c.Set(UserIDKey, claims.UserID)
	c.Set(RoleKey, claims.Role)
	return true
}

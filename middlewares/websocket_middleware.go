package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rcsmith8/starter-restaurant-reservation/utils"
)

// WebSocketAuthMiddleware reads the token from the query string, since browsers
// cannot set headers on a websocket handshake.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			utils.RespondStatus(c, http.StatusUnauthorized, "token query parameter missing")
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			utils.RespondStatus(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(RoleKey, claims.Role)
		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

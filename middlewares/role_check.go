package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rcsmith8/starter-restaurant-reservation/utils"
)

// RequireRole lets the request through when the authenticated role is one of roles.
// It must run after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(RoleKey)
		if !exists {
			utils.RespondStatus(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		for _, role := range roles {
			if userRole == role {
				c.Next()
				return
			}
		}
		utils.RespondStatus(c, http.StatusForbidden, "you do not have permission for this action")
	}
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rcsmith8/starter-restaurant-reservation/dashboard"
	"github.com/rcsmith8/starter-restaurant-reservation/middlewares"
	"github.com/rcsmith8/starter-restaurant-reservation/models"
	"github.com/rcsmith8/starter-restaurant-reservation/utils"
)

type DashboardController struct {
	Hub      *dashboard.Hub
	upgrader websocket.Upgrader
}

// NewDashboardController accepts websocket upgrades from the given origins; an empty
// list or "*" allows any origin.
func NewDashboardController(hub *dashboard.Hub, allowedOrigins []string) *DashboardController {
	return &DashboardController{
		Hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return middlewares.OriginAllowed(allowedOrigins, r.Header.Get("Origin"))
			},
		},
	}
}

// Connect -> GET /ws/dashboard?token=
func (dc *DashboardController) Connect(c *gin.Context) {
	role := c.GetString(middlewares.RoleKey)
	if role != models.RoleAdmin && role != models.RoleStaff {
		utils.RespondStatus(c, http.StatusForbidden, "staff access required")
		return
	}

	ws, err := dc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	dc.Hub.Register(ws, role)

	// The feed is one way; reading only notices the client leaving.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
	dc.Hub.Unregister(ws)
}

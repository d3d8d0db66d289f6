package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rcsmith8/starter-restaurant-reservation/services"
	"github.com/rcsmith8/starter-restaurant-reservation/utils"
)

type AdminController struct {
	Stats services.StatsService
}

func NewAdminController(stats services.StatsService) *AdminController {
	return &AdminController{Stats: stats}
}

// GetDashboardStats -> table occupancy and reservation counts for ?date= (today by default)
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	stats, err := ac.Stats.Dashboard(c.Request.Context(), c.Query("date"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, stats)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-floor/services"
	"github.com/yeremiapane/restaurant-floor/utils"
)

type AdminController struct {
	Floor *services.Floor
}

func NewAdminController(floor *services.Floor) *AdminController {
	return &AdminController{Floor: floor}
}

// GetDashboardStats returns table and reservation aggregates together.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	stats, err := ac.Floor.Stats.Dashboard(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dashboard statistics", stats)
}

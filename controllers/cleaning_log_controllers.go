package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-floor/services"
	"github.com/yeremiapane/restaurant-floor/utils"
)

// CleaningLogController is read-only; logs are written when tables enter
// and leave cleaning.
type CleaningLogController struct {
	Floor *services.Floor
}

func NewCleaningLogController(floor *services.Floor) *CleaningLogController {
	return &CleaningLogController{Floor: floor}
}

// GetAllCleaningLogs, optionally for one ?table_id=
func (clc *CleaningLogController) GetAllCleaningLogs(c *gin.Context) {
	logs, err := clc.Floor.Tables.CleaningLogs(c.Request.Context(), c.Query("table_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All cleaning logs", logs)
}

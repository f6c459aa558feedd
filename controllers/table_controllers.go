package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-floor/models"
	"github.com/yeremiapane/restaurant-floor/services"
	"github.com/yeremiapane/restaurant-floor/utils"
)

type TableController struct {
	Floor *services.Floor
}

func NewTableController(floor *services.Floor) *TableController {
	return &TableController{Floor: floor}
}

// CreateTable -> admin adds a table to the floor
func (tc *TableController) CreateTable(c *gin.Context) {
	var req services.TableInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Floor.Tables.AddTable(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables lists active tables, optionally only those in ?state=
func (tc *TableController) GetAllTables(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		tables []models.Table
		err    error
	)
	if state := c.Query("state"); state != "" {
		tables, err = tc.Floor.Tables.ListByState(ctx, models.TableState(state))
	} else {
		tables, err = tc.Floor.Tables.ListActive(ctx)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

func (tc *TableController) GetTableByID(c *gin.Context) {
	table, err := tc.Floor.Tables.GetByID(c.Request.Context(), c.Param("table_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

type transitionRequest struct {
	State models.TableState `json:"state" binding:"required"`
	services.TransitionPayload
}

// TransitionTable moves a table to the requested state.
func (tc *TableController) TransitionTable(c *gin.Context) {
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	req.Actor = staffName(c)

	table, err := tc.Floor.Tables.Transition(c.Request.Context(), c.Param("table_id"), req.State, req.TransitionPayload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table status updated", table)
}

func (tc *TableController) AssignServer(c *gin.Context) {
	var req struct {
		Server string `json:"server"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Floor.Tables.AssignServer(c.Request.Context(), c.Param("table_id"), req.Server)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Server assigned", table)
}

// DeleteTable deactivates the table; reservations holding it are released.
func (tc *TableController) DeleteTable(c *gin.Context) {
	table, err := tc.Floor.Assignments.RetireTable(c.Request.Context(), c.Param("table_id"), staffName(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{
		"id": table.ID,
	})
}

func (tc *TableController) GetTableStats(c *gin.Context) {
	stats, err := tc.Floor.Stats.TableStats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table statistics", stats)
}

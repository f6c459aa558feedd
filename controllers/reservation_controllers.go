package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-floor/models"
	"github.com/yeremiapane/restaurant-floor/services"
	"github.com/yeremiapane/restaurant-floor/utils"
)

type ReservationController struct {
	Floor *services.Floor
}

func NewReservationController(floor *services.Floor) *ReservationController {
	return &ReservationController{Floor: floor}
}

// CreateReservation is the public booking intake.
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req services.ReservationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.Floor.Reservations.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Reservation created", reservation)
}

// GetAllReservations supports ?date=YYYY-MM-DD and ?state=
func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	reservations, err := rc.Floor.Reservations.ListFiltered(c.Request.Context(), services.ReservationFilter{
		Date:  c.Query("date"),
		State: models.ReservationState(c.Query("state")),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}

func (rc *ReservationController) GetReservationByID(c *gin.Context) {
	reservation, err := rc.Floor.Reservations.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation detail", reservation)
}

func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	var patch services.ReservationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.Floor.Reservations.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation updated", reservation)
}

func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	id := c.Param("id")
	if err := rc.Floor.Reservations.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation deleted", gin.H{"id": id})
}

func (rc *ReservationController) ConfirmReservation(c *gin.Context) {
	rc.lifecycle(c, "Reservation confirmed", rc.Floor.Reservations.Confirm)
}

func (rc *ReservationController) CompleteReservation(c *gin.Context) {
	rc.lifecycle(c, "Reservation completed", rc.Floor.Reservations.Complete)
}

func (rc *ReservationController) CancelReservation(c *gin.Context) {
	rc.lifecycle(c, "Reservation cancelled", rc.Floor.Reservations.Cancel)
}

func (rc *ReservationController) lifecycle(c *gin.Context, message string, step func(context.Context, string) (*models.Reservation, error)) {
	reservation, err := step(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, message, reservation)
}

func (rc *ReservationController) AssignTable(c *gin.Context) {
	var req struct {
		TableID string `json:"table_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.Floor.Assignments.AssignTable(c.Request.Context(), c.Param("id"), req.TableID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table assigned", reservation)
}

func (rc *ReservationController) ReleaseTable(c *gin.Context) {
	reservation, err := rc.Floor.Assignments.ReleaseTable(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table released", reservation)
}

// OccupyTable seats the party at its assigned table. The server defaults to
// the staff member making the request.
func (rc *ReservationController) OccupyTable(c *gin.Context) {
	var req struct {
		Occupants int    `json:"occupants"`
		Server    string `json:"server"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Server == "" {
		req.Server = staffName(c)
	}

	seating, err := rc.Floor.Assignments.OccupyFromReservation(c.Request.Context(), c.Param("id"), req.Occupants, req.Server)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Party seated", seating)
}

func (rc *ReservationController) GetReservationStats(c *gin.Context) {
	stats, err := rc.Floor.Stats.ReservationStats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation statistics", stats)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rcsmith8/starter-restaurant-reservation/services"
	"github.com/rcsmith8/starter-restaurant-reservation/utils"
)

type ReservationController struct {
	Service services.ReservationService
}

func NewReservationController(service services.ReservationService) *ReservationController {
	return &ReservationController{Service: service}
}

// ListReservations -> GET /reservations?date= or ?mobile_number=
func (rc *ReservationController) ListReservations(c *gin.Context) {
	reservations, err := rc.Service.List(c.Request.Context(), services.ListFilter{
		Date:         c.Query("date"),
		MobileNumber: c.Query("mobile_number"),
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, reservations)
}

func (rc *ReservationController) CreateReservation(c *gin.Context) {
	data, err := bindData(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	reservation, err := rc.Service.Create(c.Request.Context(), data)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, reservation)
}

func (rc *ReservationController) GetReservation(c *gin.Context) {
	id, ok := idParam(c, "reservation_id")
	if !ok {
		utils.RespondError(c, services.ReservationNotFound(c.Param("reservation_id")))
		return
	}
	reservation, err := rc.Service.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, reservation)
}

func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	id, ok := idParam(c, "reservation_id")
	if !ok {
		utils.RespondError(c, services.ReservationNotFound(c.Param("reservation_id")))
		return
	}
	data, err := bindData(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	reservation, err := rc.Service.Update(c.Request.Context(), id, data)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, reservation)
}

// UpdateReservationStatus -> PUT /reservations/:reservation_id/status
func (rc *ReservationController) UpdateReservationStatus(c *gin.Context) {
	id, ok := idParam(c, "reservation_id")
	if !ok {
		utils.RespondError(c, services.ReservationNotFound(c.Param("reservation_id")))
		return
	}
	data, err := bindData(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	reservation, err := rc.Service.UpdateStatus(c.Request.Context(), id, data)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, reservation)
}

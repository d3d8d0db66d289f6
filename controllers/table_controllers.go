package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rcsmith8/starter-restaurant-reservation/services"
	"github.com/rcsmith8/starter-restaurant-reservation/utils"
)

type TableController struct {
	Service services.TableService
}

func NewTableController(service services.TableService) *TableController {
	return &TableController{Service: service}
}

// GetAllTables -> every table ordered by name
func (tc *TableController) GetAllTables(c *gin.Context) {
	tables, err := tc.Service.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, tables)
}

func (tc *TableController) CreateTable(c *gin.Context) {
	data, err := bindData(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	table, err := tc.Service.Create(c.Request.Context(), data)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, table)
}

// SeatTable -> PUT /tables/:table_id/seat {data: {reservation_id}}
func (tc *TableController) SeatTable(c *gin.Context) {
	id, ok := idParam(c, "table_id")
	if !ok {
		utils.RespondError(c, services.TableNotFound(c.Param("table_id")))
		return
	}
	data, err := bindData(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	table, err := tc.Service.Seat(c.Request.Context(), id, data)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, table)
}

// FinishTable -> DELETE /tables/:table_id/seat
func (tc *TableController) FinishTable(c *gin.Context) {
	id, ok := idParam(c, "table_id")
	if !ok {
		utils.RespondError(c, services.TableNotFound(c.Param("table_id")))
		return
	}
	table, err := tc.Service.Finish(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, table)
}

func (tc *TableController) DeleteTable(c *gin.Context) {
	id, ok := idParam(c, "table_id")
	if !ok {
		utils.RespondError(c, services.TableNotFound(c.Param("table_id")))
		return
	}
	if err := tc.Service.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

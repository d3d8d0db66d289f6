package Controllers_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcsmith8/starter-restaurant-reservation/validation"
)

type tableJSON struct {
	ID            uint   `json:"table_id"`
	TableName     string `json:"table_name"`
	Capacity      int    `json:"capacity"`
	ReservationID *uint  `json:"reservation_id"`
}

func createTable(t *testing.T, router http.Handler, name string, capacity int) tableJSON {
	t.Helper()
	code, resp := doJSON(t, router, http.MethodPost, "/tables",
		wrap(map[string]interface{}{"table_name": name, "capacity": capacity}), "")
	require.Equal(t, http.StatusCreated, code, resp.Error)
	var tbl tableJSON
	decode(t, resp.Data, &tbl)
	return tbl
}

func seatURL(id uint) string {
	return "/tables/" + strconv.Itoa(int(id)) + "/seat"
}

func TestGetAllTables(t *testing.T) {
	router := setupRouterForTest(setupTestDB(t))
	createTable(t, router, "Bar #1", 1)
	createTable(t, router, "#1", 6)

	code, resp := doJSON(t, router, http.MethodGet, "/tables", nil, "")
	require.Equal(t, http.StatusOK, code)
	var tables []tableJSON
	decode(t, resp.Data, &tables)
	require.Len(t, tables, 2)
	assert.Equal(t, "#1", tables[0].TableName)
	assert.Equal(t, "Bar #1", tables[1].TableName)
	assert.Nil(t, tables[0].ReservationID)
}

func TestCreateTableErrors(t *testing.T) {
	router := setupRouterForTest(setupTestDB(t))
	createTable(t, router, "Patio", 4)

	code, resp := doJSON(t, router, http.MethodPost, "/tables",
		wrap(map[string]interface{}{"table_name": "Patio", "capacity": 2}), "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, validation.MsgTableNameTaken, resp.Error)

	code, resp = doJSON(t, router, http.MethodPost, "/tables",
		wrap(map[string]interface{}{"table_name": "A", "capacity": 0}), "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, []interface{}{validation.MsgTableNameShort, validation.MsgCapacity}, resp.Error)
}

func TestSeatAndFinishTable(t *testing.T) {
	router := setupRouterForTest(setupTestDB(t))
	tbl := createTable(t, router, "#1", 6)
	r := createReservation(t, router, nextWednesday, "18:00", 4)

	code, resp := doJSON(t, router, http.MethodPut, seatURL(tbl.ID),
		wrap(map[string]interface{}{"reservation_id": r.ID}), "")
	require.Equal(t, http.StatusOK, code, resp.Error)
	var seated tableJSON
	decode(t, resp.Data, &seated)
	require.NotNil(t, seated.ReservationID)
	assert.Equal(t, r.ID, *seated.ReservationID)

	code, resp = doJSON(t, router, http.MethodGet, "/reservations/"+strconv.Itoa(int(r.ID)), nil, "")
	require.Equal(t, http.StatusOK, code)
	var got reservationJSON
	decode(t, resp.Data, &got)
	assert.Equal(t, "seated", got.Status)

	code, resp = doJSON(t, router, http.MethodDelete, seatURL(tbl.ID), nil, "")
	require.Equal(t, http.StatusOK, code, resp.Error)
	var freed tableJSON
	decode(t, resp.Data, &freed)
	assert.Nil(t, freed.ReservationID)

	code, resp = doJSON(t, router, http.MethodDelete, seatURL(tbl.ID), nil, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Table is currently not occupied.", resp.Error)
}

func TestSeatTableErrors(t *testing.T) {
	router := setupRouterForTest(setupTestDB(t))
	bar := createTable(t, router, "Bar #1", 1)
	r := createReservation(t, router, nextWednesday, "18:00", 2)

	code, resp := doJSON(t, router, http.MethodPut, seatURL(bar.ID),
		wrap(map[string]interface{}{"reservation_id": r.ID}), "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "This table does not have sufficient capacity for this reservation (party of 2).", resp.Error)

	code, resp = doJSON(t, router, http.MethodPut, seatURL(bar.ID), wrap(map[string]interface{}{}), "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, validation.MsgReservationIDField, resp.Error)

	code, resp = doJSON(t, router, http.MethodPut, seatURL(bar.ID),
		wrap(map[string]interface{}{"reservation_id": 404}), "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Reservation with id: 404 does not exist.", resp.Error)

	code, resp = doJSON(t, router, http.MethodPut, "/tables/500/seat",
		wrap(map[string]interface{}{"reservation_id": r.ID}), "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Table with id: 500 does not exist.", resp.Error)

	code, resp = doJSON(t, router, http.MethodDelete, "/tables/x/seat", nil, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Table with id: x does not exist.", resp.Error)
}

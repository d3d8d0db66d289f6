package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcsmith8/starter-restaurant-reservation/validation"
)

type reservationJSON struct {
	ID              uint   `json:"reservation_id"`
	FirstName       string `json:"first_name"`
	ReservationDate string `json:"reservation_date"`
	ReservationTime string `json:"reservation_time"`
	People          int    `json:"people"`
	Status          string `json:"status"`
}

func createReservation(t *testing.T, router http.Handler, date, at string, people int) reservationJSON {
	t.Helper()
	code, resp := doJSON(t, router, http.MethodPost, "/reservations", reservationBody(date, at, people), "")
	require.Equal(t, http.StatusCreated, code, resp.Error)
	var r reservationJSON
	decode(t, resp.Data, &r)
	return r
}

func TestCreateReservation(t *testing.T) {
	router := setupRouterForTest(setupTestDB(t))

	r := createReservation(t, router, nextWednesday, "18:00", 2)
	assert.NotZero(t, r.ID)
	assert.Equal(t, "booked", r.Status)
	assert.Equal(t, nextWednesday, r.ReservationDate)
	assert.Equal(t, "18:00", r.ReservationTime)
}

func TestCreateReservationErrors(t *testing.T) {
	router := setupRouterForTest(setupTestDB(t))

	code, resp := doJSON(t, router, http.MethodPost, "/reservations", map[string]interface{}{}, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, validation.MsgMissingData, resp.Error)

	code, resp = doJSON(t, router, http.MethodPost, "/reservations", nil, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, validation.MsgMissingData, resp.Error)

	code, resp = doJSON(t, router, http.MethodPost, "/reservations", reservationBody("2026-10-20", "22:00", 2), "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, []interface{}{validation.MsgClosedDay, validation.MsgOutsideHours}, resp.Error)

	body := reservationBody(nextWednesday, "18:00", 2)
	body["data"].(map[string]interface{})["people"] = "2"
	code, resp = doJSON(t, router, http.MethodPost, "/reservations", body, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, validation.MsgPeople, resp.Error)
}

func TestGetReservation(t *testing.T) {
	router := setupRouterForTest(setupTestDB(t))
	r := createReservation(t, router, nextWednesday, "18:00", 2)

	code, resp := doJSON(t, router, http.MethodGet, "/reservations/1", nil, "")
	require.Equal(t, http.StatusOK, code)
	var got reservationJSON
	decode(t, resp.Data, &got)
	assert.Equal(t, r, got)

	code, resp = doJSON(t, router, http.MethodGet, "/reservations/99", nil, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Reservation with id: 99 does not exist.", resp.Error)

	code, resp = doJSON(t, router, http.MethodGet, "/reservations/abc", nil, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Reservation with id: abc does not exist.", resp.Error)
}

func TestListReservations(t *testing.T) {
	router := setupRouterForTest(setupTestDB(t))
	createReservation(t, router, nextWednesday, "20:00", 2)
	createReservation(t, router, nextWednesday, "11:30", 2)

	code, resp := doJSON(t, router, http.MethodGet, "/reservations?date="+nextWednesday, nil, "")
	require.Equal(t, http.StatusOK, code)
	var list []reservationJSON
	decode(t, resp.Data, &list)
	require.Len(t, list, 2)
	assert.Equal(t, "11:30", list[0].ReservationTime)
	assert.Equal(t, "20:00", list[1].ReservationTime)

	code, resp = doJSON(t, router, http.MethodGet, "/reservations?mobile_number=555-0164", nil, "")
	require.Equal(t, http.StatusOK, code)
	decode(t, resp.Data, &list)
	assert.Len(t, list, 2)

	code, resp = doJSON(t, router, http.MethodGet, "/reservations", nil, "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(resp.Data))

	code, _ = doJSON(t, router, http.MethodGet, "/reservations?date=10-21-2026", nil, "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestUpdateReservationAndStatus(t *testing.T) {
	router := setupRouterForTest(setupTestDB(t))
	createReservation(t, router, nextWednesday, "18:00", 2)

	code, resp := doJSON(t, router, http.MethodPut, "/reservations/1", reservationBody(nextWednesday, "19:45", 6), "")
	require.Equal(t, http.StatusOK, code, resp.Error)
	var updated reservationJSON
	decode(t, resp.Data, &updated)
	assert.Equal(t, "19:45", updated.ReservationTime)
	assert.Equal(t, 6, updated.People)

	code, resp = doJSON(t, router, http.MethodPut, "/reservations/1/status", wrap(map[string]interface{}{"status": "cancelled"}), "")
	require.Equal(t, http.StatusOK, code)
	decode(t, resp.Data, &updated)
	assert.Equal(t, "cancelled", updated.Status)

	code, resp = doJSON(t, router, http.MethodPut, "/reservations/1/status", wrap(map[string]interface{}{"status": "booked"}), "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "A cancelled reservation cannot be updated or cancelled.", resp.Error)

	code, resp = doJSON(t, router, http.MethodPut, "/reservations/7/status", wrap(map[string]interface{}{"status": "cancelled"}), "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Reservation with id: 7 does not exist.", resp.Error)
}

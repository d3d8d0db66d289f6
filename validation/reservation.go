package validation

import (
	"fmt"
	"regexp"
	"time"

	"github.com/rcsmith8/starter-restaurant-reservation/models"
)

type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	MinPeople = 1
	MaxPeople = 6

	ClosedDay = time.Tuesday
)

// Service window, in minutes after midnight, both ends inclusive.
const (
	OpensAt  = 10*60 + 30
	ClosesAt = 21*60 + 30
)

const (
	MsgFirstName    = "Reservation must include a first_name."
	MsgLastName     = "Reservation must include a last_name."
	MsgMobileNumber = "Reservation must include a mobile_number formatted as XXX-XXX-XXXX or XXX-XXXX."
	MsgDate         = "Reservation must include a reservation_date in this format: YYYY-MM-DD."
	MsgTime         = "Reservation must include a reservation_time in this format: HH:MM."
	MsgPeople       = "Reservation must indicate the number of people in a party, ranging from 1 to 6."
	MsgPast         = "Reservations cannot be made in the past. Only future reservations are allowed."
	MsgClosedDay    = "Reservations cannot be made on a Tuesday, when the restaurant is closed."
	MsgOutsideHours = "The reservation time cannot be before 10:30 AM or after 9:30 PM."
)

var (
	dateRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe   = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)
	mobileRe = regexp.MustCompile(`^\+?[0-9()\-. ]+$`)
)

const minMobileDigits = 7

// Reservation validates a create or full-update payload and returns the normalized
// reservation. The returned reservation never carries an ID; on create its status is
// booked, on update it is whatever the payload asked for (empty when absent).
func Reservation(data map[string]interface{}, mode Mode, clock Clock) (models.Reservation, error) {
	if err := RequireData(data); err != nil {
		return models.Reservation{}, err
	}
	var (
		c   collector
		out models.Reservation
	)

	if s, ok := stringField(data, "first_name"); ok {
		out.FirstName = s
	} else {
		c.add("first_name", MsgFirstName)
	}
	if s, ok := stringField(data, "last_name"); ok {
		out.LastName = s
	} else {
		c.add("last_name", MsgLastName)
	}
	if s, ok := stringField(data, "mobile_number"); ok && validMobile(s) {
		out.MobileNumber = s
	} else {
		c.add("mobile_number", MsgMobileNumber)
	}

	date, dateOK := parseDate(data)
	if dateOK {
		out.ReservationDate = date.Format(DateLayout)
	} else {
		c.add("reservation_date", MsgDate)
	}
	clockTime, timeOK := parseTime(data)
	if timeOK {
		out.ReservationTime = clockTime.Format(TimeLayout)
	} else {
		c.add("reservation_time", MsgTime)
	}

	if n, ok := intField(data, "people"); ok && n >= MinPeople && n <= MaxPeople {
		out.People = n
	} else {
		c.add("people", MsgPeople)
	}

	status, hasStatus := data["status"]
	switch mode {
	case ModeCreate:
		if hasStatus && status != nil && status != "" && status != string(models.StatusBooked) {
			c.add("status", fmt.Sprintf("New reservation cannot have status of %v.", status))
		}
		out.Status = models.StatusBooked
	case ModeUpdate:
		if hasStatus && status != nil && status != "" {
			if s, ok := status.(string); !ok || !models.Status(s).Valid() {
				c.add("status", fmt.Sprintf("Reservation status %v is not valid.", status))
			} else {
				out.Status = models.Status(s)
			}
		}
	}

	if dateOK && timeOK {
		now := clock.Now()
		at := time.Date(date.Year(), date.Month(), date.Day(),
			clockTime.Hour(), clockTime.Minute(), 0, 0, now.Location())
		if at.Before(now) {
			c.add("reservation_date", MsgPast)
		}
	}
	if dateOK && date.Weekday() == ClosedDay {
		c.add("reservation_date", MsgClosedDay)
	}
	if timeOK {
		if m := clockTime.Hour()*60 + clockTime.Minute(); m < OpensAt || m > ClosesAt {
			c.add("reservation_time", MsgOutsideHours)
		}
	}

	if err := c.err(); err != nil {
		return models.Reservation{}, err
	}
	return out, nil
}

func validMobile(s string) bool {
	return mobileRe.MatchString(s) && len(models.DigitsOnly(s)) >= minMobileDigits
}

func parseDate(data map[string]interface{}) (time.Time, bool) {
	s, ok := stringField(data, "reservation_date")
	if !ok || !dateRe.MatchString(s) {
		return time.Time{}, false
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// parseTime accepts HH:MM and HH:MM:SS; seconds are dropped.
func parseTime(data map[string]interface{}) (time.Time, bool) {
	s, ok := stringField(data, "reservation_time")
	if !ok || !timeRe.MatchString(s) {
		return time.Time{}, false
	}
	t, err := time.Parse(TimeLayout, s[:5])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseDate validates a `date` query value.
func ParseDate(s string) (string, error) {
	if !dateRe.MatchString(s) {
		return "", New("date", MsgDate)
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", New("date", MsgDate)
	}
	return s, nil
}

const (
	MsgStatusRequired     = "Reservation status is required."
	MsgReservationIDField = "The reservation_id is missing from the request body."
	MsgReservationIDValue = "The reservation_id must be a positive integer."
)

// StatusRequest validates the body of a status-only update.
func StatusRequest(data map[string]interface{}) (models.Status, error) {
	if err := RequireData(data); err != nil {
		return "", err
	}
	raw, ok := data["status"]
	if !ok || raw == nil || raw == "" {
		return "", New("status", MsgStatusRequired)
	}
	s, ok := raw.(string)
	if !ok || !models.Status(s).Valid() {
		return "", Newf("status", "Reservation status %v is not valid.", raw)
	}
	return models.Status(s), nil
}

// SeatRequest validates the body of a seat request and returns the reservation id.
func SeatRequest(data map[string]interface{}) (uint, error) {
	if err := RequireData(data); err != nil {
		return 0, err
	}
	id, present, ok := idField(data, "reservation_id")
	if !present {
		return 0, New("reservation_id", MsgReservationIDField)
	}
	if !ok {
		return 0, New("reservation_id", MsgReservationIDValue)
	}
	return id, nil
}

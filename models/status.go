package models

import "fmt"

type Status string

const (
	StatusBooked    Status = "booked"
	StatusSeated    Status = "seated"
	StatusFinished  Status = "finished"
	StatusCancelled Status = "cancelled"
)

var Statuses = []Status{StatusBooked, StatusSeated, StatusFinished, StatusCancelled}

func (s Status) Valid() bool {
	switch s {
	case StatusBooked, StatusSeated, StatusFinished, StatusCancelled:
		return true
	}
	return false
}

// Event is something that happens to a reservation and may move its status.
type Event string

const (
	EventBook   Event = "book"
	EventSeat   Event = "seat"
	EventFinish Event = "finish"
	EventCancel Event = "cancel"
)

type transition struct {
	From  Status
	Event Event
	To    Status
}

// The empty status is a reservation that has not been stored yet.
var transitions = []transition{
	{From: "", Event: EventBook, To: StatusBooked},
	{From: StatusBooked, Event: EventBook, To: StatusBooked},
	{From: StatusBooked, Event: EventSeat, To: StatusSeated},
	{From: StatusBooked, Event: EventCancel, To: StatusCancelled},
	{From: StatusSeated, Event: EventFinish, To: StatusFinished},
}

// TransitionError is returned when an event is not allowed from the current status.
type TransitionError struct {
	From  Status
	Event Event
}

func (e *TransitionError) Error() string {
	switch {
	case e.From == StatusSeated && e.Event == EventSeat:
		return "reservation has already been seated"
	case e.From == StatusBooked && e.Event == EventFinish:
		return "A booked reservation must be seated before it can be finished."
	case e.From == "":
		return fmt.Sprintf("A new reservation cannot be %s.", e.Event.pastTense())
	}
	return fmt.Sprintf("A %s reservation cannot be %s.", e.From, e.Event.pastTense())
}

func (ev Event) pastTense() string {
	switch ev {
	case EventBook:
		return "booked"
	case EventSeat:
		return "seated"
	case EventFinish:
		return "finished"
	case EventCancel:
		return "cancelled"
	}
	return string(ev)
}

// Transition returns the status reached from `from` when `ev` happens.
func Transition(from Status, ev Event) (Status, error) {
	for _, tr := range transitions {
		if tr.From == from && tr.Event == ev {
			return tr.To, nil
		}
	}
	return from, &TransitionError{From: from, Event: ev}
}

// EventFor maps a status requested by a client to the event that would produce it.
func EventFor(target Status) (Event, bool) {
	switch target {
	case StatusBooked:
		return EventBook, true
	case StatusSeated:
		return EventSeat, true
	case StatusFinished:
		return EventFinish, true
	case StatusCancelled:
		return EventCancel, true
	}
	return "", false
}

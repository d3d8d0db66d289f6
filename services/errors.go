package services

import (
	"errors"
	"fmt"
)

// NotFoundError is returned when a reservation or table id does not resolve.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id: %s does not exist.", e.Entity, e.ID)
}

func ReservationNotFound(id interface{}) error {
	return &NotFoundError{Entity: "Reservation", ID: fmt.Sprint(id)}
}

func TableNotFound(id interface{}) error {
	return &NotFoundError{Entity: "Table", ID: fmt.Sprint(id)}
}

// RuleError is a request that is well formed but breaks a seating or status rule.
type RuleError struct {
	Message string
}

func (e *RuleError) Error() string {
	return e.Message
}

func ruleErrorf(format string, args ...interface{}) error {
	return &RuleError{Message: fmt.Sprintf(format, args...)}
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("admin access required")
)

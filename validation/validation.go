// Package validation checks reservation and table payloads before they reach the store.
//
// Checks never stop at the first failure: every applicable message is collected, in
// order and without duplicates, into an *Error.
package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Problem is one failed check.
type Problem struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a rejected payload. It always carries at least one problem.
type Error struct {
	Problems []Problem
}

func (e *Error) Error() string {
	return strings.Join(e.Messages(), " ")
}

func (e *Error) Messages() []string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, p.Message)
	}
	return msgs
}

// Payload is the value sent back to the client: the message itself when there is
// only one, the ordered list otherwise.
func (e *Error) Payload() interface{} {
	msgs := e.Messages()
	if len(msgs) == 1 {
		return msgs[0]
	}
	return msgs
}

func New(field, message string) *Error {
	return &Error{Problems: []Problem{{Field: field, Message: message}}}
}

func Newf(field, format string, args ...interface{}) *Error {
	return New(field, fmt.Sprintf(format, args...))
}

const MsgMissingData = "Request body must have data property."

// RequireData rejects a request whose body had no `data` object.
func RequireData(data map[string]interface{}) error {
	if data == nil {
		return New("data", MsgMissingData)
	}
	return nil
}

// Clock supplies "now" in the restaurant's time zone.
type Clock interface {
	Now() time.Time
}

type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// ClockFunc adapts a plain function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

type collector struct {
	problems []Problem
	seen     map[string]struct{}
}

func (c *collector) add(field, message string) {
	if c.seen == nil {
		c.seen = make(map[string]struct{})
	}
	if _, dup := c.seen[message]; dup {
		return
	}
	c.seen[message] = struct{}{}
	c.problems = append(c.problems, Problem{Field: field, Message: message})
}

func (c *collector) err() error {
	if len(c.problems) == 0 {
		return nil
	}
	return &Error{Problems: c.problems}
}

func stringField(data map[string]interface{}, key string) (string, bool) {
	v, ok := data[key]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// intField accepts JSON numbers with an integral value. Strings are rejected so
// that "2" and 2 are not treated alike.
func intField(data map[string]interface{}, key string) (int, bool) {
	switch v := data[key].(type) {
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	case uint:
		return int(v), true
	}
	return 0, false
}

// idField accepts a positive integer given either as a JSON number or a numeric string.
func idField(data map[string]interface{}, key string) (uint, bool, bool) {
	v, present := data[key]
	if !present || v == nil || v == "" {
		return 0, false, false
	}
	if s, ok := v.(string); ok {
		n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
		if err != nil || n == 0 {
			return 0, true, false
		}
		return uint(n), true, true
	}
	n, ok := intField(data, key)
	if !ok || n <= 0 {
		return 0, true, false
	}
	return uint(n), true, true
}

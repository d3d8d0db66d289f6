package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rcsmith8/starter-restaurant-reservation/validation"
)

// envelope is the request body shape shared by every write endpoint: {"data": {...}}.
type envelope struct {
	Data map[string]interface{} `json:"data"`
}

// bindData reads the data object of the request body. A missing, empty or malformed
// body yields the same validation error as a body without data.
func bindData(c *gin.Context) (map[string]interface{}, error) {
	var body envelope
	if err := c.ShouldBindJSON(&body); err != nil || body.Data == nil {
		return nil, validation.New("data", validation.MsgMissingData)
	}
	return body.Data, nil
}

// idParam parses a positive numeric path parameter. ok is false for anything else,
// which callers report as not found.
func idParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

package validation

import (
	"github.com/rcsmith8/starter-restaurant-reservation/models"
)

const (
	MsgTableName      = "New table must be given a table_name."
	MsgTableNameShort = "The table_name must be at least 2 characters long."
	MsgTableNameTaken = "This table name exists already. Please choose a new one."
	MsgCapacity       = "New table capacity must be at least 1."

	MinTableNameLen = 2
)

// NameLookup reports whether a table with the given name already exists.
type NameLookup func(name string) (bool, error)

// Table validates a create-table payload. taken may be nil to skip the uniqueness
// check; an error from it is returned as is.
func Table(data map[string]interface{}, taken NameLookup) (models.Table, error) {
	if err := RequireData(data); err != nil {
		return models.Table{}, err
	}
	var (
		c   collector
		out models.Table
	)

	name, ok := stringField(data, "table_name")
	switch {
	case !ok:
		c.add("table_name", MsgTableName)
	case len([]rune(name)) < MinTableNameLen:
		c.add("table_name", MsgTableNameShort)
	default:
		out.TableName = name
		if taken != nil {
			exists, err := taken(name)
			if err != nil {
				return models.Table{}, err
			}
			if exists {
				c.add("table_name", MsgTableNameTaken)
			}
		}
	}

	if n, ok := intField(data, "capacity"); ok && n >= 1 {
		out.Capacity = n
	} else {
		c.add("capacity", MsgCapacity)
	}

	if err := c.err(); err != nil {
		return models.Table{}, err
	}
	return out, nil
}

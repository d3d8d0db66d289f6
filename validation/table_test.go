package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noneTaken(string) (bool, error) { return false, nil }

func TestTableValid(t *testing.T) {
	tbl, err := Table(map[string]interface{}{"table_name": "A1", "capacity": float64(4)}, noneTaken)
	require.NoError(t, err)
	assert.Equal(t, "A1", tbl.TableName)
	assert.Equal(t, 4, tbl.Capacity)
	assert.Nil(t, tbl.ReservationID)
}

func TestTableRejections(t *testing.T) {
	tests := []struct {
		name string
		data map[string]interface{}
		want []string
	}{
		{"no data", nil, []string{MsgMissingData}},
		{"empty", map[string]interface{}{}, []string{MsgTableName, MsgCapacity}},
		{"short name", map[string]interface{}{"table_name": "A", "capacity": float64(2)}, []string{MsgTableNameShort}},
		{"zero capacity", map[string]interface{}{"table_name": "A1", "capacity": float64(0)}, []string{MsgCapacity}},
		{"string capacity", map[string]interface{}{"table_name": "A1", "capacity": "4"}, []string{MsgCapacity}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Table(tt.data, noneTaken)
			assert.Equal(t, tt.want, messagesOf(t, err))
		})
	}
}

func TestTableNameTaken(t *testing.T) {
	taken := func(name string) (bool, error) { return name == "Bar #1", nil }
	_, err := Table(map[string]interface{}{"table_name": "Bar #1", "capacity": float64(0)}, taken)
	assert.Equal(t, []string{MsgTableNameTaken, MsgCapacity}, messagesOf(t, err))
}

func TestTableLookupError(t *testing.T) {
	boom := errors.New("db down")
	_, err := Table(map[string]interface{}{"table_name": "A1", "capacity": float64(1)},
		func(string) (bool, error) { return false, boom })
	assert.ErrorIs(t, err, boom)
}

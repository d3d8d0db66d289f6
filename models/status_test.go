package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		event   Event
		want    Status
		wantErr bool
	}{
		{name: "create books", from: "", event: EventBook, want: StatusBooked},
		{name: "booked stays booked", from: StatusBooked, event: EventBook, want: StatusBooked},
		{name: "booked to seated", from: StatusBooked, event: EventSeat, want: StatusSeated},
		{name: "booked to cancelled", from: StatusBooked, event: EventCancel, want: StatusCancelled},
		{name: "seated to finished", from: StatusSeated, event: EventFinish, want: StatusFinished},
		{name: "create cannot seat", from: "", event: EventSeat, wantErr: true},
		{name: "booked cannot finish", from: StatusBooked, event: EventFinish, wantErr: true},
		{name: "seated twice", from: StatusSeated, event: EventSeat, wantErr: true},
		{name: "seated cannot cancel", from: StatusSeated, event: EventCancel, wantErr: true},
		{name: "finished is terminal", from: StatusFinished, event: EventBook, wantErr: true},
		{name: "finished cannot seat", from: StatusFinished, event: EventSeat, wantErr: true},
		{name: "cancelled is terminal", from: StatusCancelled, event: EventSeat, wantErr: true},
		{name: "cancelled cannot rebook", from: StatusCancelled, event: EventBook, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transition(tt.from, tt.event)
			if tt.wantErr {
				var terr *TransitionError
				require.True(t, errors.As(err, &terr))
				assert.Equal(t, tt.from, terr.From)
				assert.Equal(t, tt.from, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransitionErrorNamesCurrentStatus(t *testing.T) {
	_, err := Transition(StatusFinished, EventSeat)
	assert.EqualError(t, err, "A finished reservation cannot be seated.")

	_, err = Transition(StatusCancelled, EventBook)
	assert.EqualError(t, err, "A cancelled reservation cannot be booked.")
}

func TestEventFor(t *testing.T) {
	for _, s := range Statuses {
		ev, ok := EventFor(s)
		require.True(t, ok, s)
		assert.NotEmpty(t, ev)
	}
	_, ok := EventFor("unknown")
	assert.False(t, ok)
	assert.False(t, Status("unknown").Valid())
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "8005550199", DigitsOnly("(800) 555-0199"))
	assert.Equal(t, "", DigitsOnly("--"))
}

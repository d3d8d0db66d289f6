package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rcsmith8/starter-restaurant-reservation/models"
	"github.com/rcsmith8/starter-restaurant-reservation/repository"
	"github.com/sirupsen/logrus"
)

const changeBatchSize = 100

// Broadcaster pushes an event to every connected dashboard client.
type Broadcaster interface {
	Broadcast(event string, data interface{})
}

// Publisher forwards an event to the message broker.
type Publisher interface {
	PublishJSON(ctx context.Context, routingKey string, v interface{}) error
}

// Change describes one changed record. Dashboard clients receive it under the
// event name of the hub message.
type Change struct {
	Action    string      `json:"action"`
	RecordID  uint        `json:"record_id"`
	ChangedAt time.Time   `json:"changed_at"`
	Data      interface{} `json:"data,omitempty"`
}

// ChangeEvent is the broker message: the change plus its routing key.
type ChangeEvent struct {
	Event string `json:"event"`
	Change
}

// ChangeMonitor drains the change feed written by the repositories. Hub and Publisher
// are both optional.
type ChangeMonitor struct {
	Changes      repository.ChangeRepository
	Reservations repository.ReservationRepository
	Tables       repository.TableRepository
	Hub          Broadcaster
	Publisher    Publisher
	Interval     time.Duration
	Log          *logrus.Logger

	stopChan  chan struct{}
	done      chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
}

func NewChangeMonitor(changes repository.ChangeRepository, reservations repository.ReservationRepository,
	tables repository.TableRepository, log *logrus.Logger) *ChangeMonitor {
	return &ChangeMonitor{
		Changes:      changes,
		Reservations: reservations,
		Tables:       tables,
		Interval:     1 * time.Second,
		Log:          log,
		stopChan:     make(chan struct{}),
		done:         make(chan struct{}),
	}
}

func (cm *ChangeMonitor) Start() {
	cm.startOnce.Do(cm.run)
}

func (cm *ChangeMonitor) run() {
	if cm.Interval <= 0 {
		cm.Interval = time.Second
	}
	go func() {
		defer close(cm.done)
		ticker := time.NewTicker(cm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if _, err := cm.ProcessPending(context.Background()); err != nil {
					cm.Log.WithError(err).Error("Error processing changes")
				}
			case <-cm.stopChan:
				return
			}
		}
	}()
}

// Stop ends the polling loop and waits for the batch in flight. A monitor stopped
// before it was started will not start afterwards.
func (cm *ChangeMonitor) Stop() {
	cm.startOnce.Do(func() {
		close(cm.done)
	})
	cm.stopOnce.Do(func() {
		close(cm.stopChan)
	})
	<-cm.done
}

// ProcessPending delivers one batch of unprocessed changes and marks them processed.
// It returns how many changes were handled.
func (cm *ChangeMonitor) ProcessPending(ctx context.Context) (int, error) {
	changes, err := cm.Changes.Pending(ctx, changeBatchSize)
	if err != nil {
		return 0, err
	}
	if len(changes) == 0 {
		return 0, nil
	}
	cm.Log.WithField("count", len(changes)).Debug("Found unprocessed changes")

	ids := make([]uint, 0, len(changes))
	for _, change := range changes {
		cm.deliver(ctx, change)
		ids = append(ids, change.ID)
	}
	if err := cm.Changes.MarkProcessed(ctx, ids); err != nil {
		return 0, err
	}
	return len(changes), nil
}

func (cm *ChangeMonitor) deliver(ctx context.Context, change models.DBChange) {
	ev := ChangeEvent{
		Event: change.Event,
		Change: Change{
			Action:    change.ActionType,
			RecordID:  change.RecordID,
			ChangedAt: change.ChangedAt,
		},
	}
	if change.ActionType != models.ActionDelete {
		data, err := cm.load(ctx, change)
		if err != nil {
			cm.Log.WithError(err).WithFields(logrus.Fields{
				"table":     change.TableName,
				"record_id": change.RecordID,
			}).Warn("Error loading changed record")
		}
		ev.Data = data
	}

	if cm.Hub != nil {
		cm.Hub.Broadcast(ev.Event, ev.Change)
	}
	if cm.Publisher != nil {
		if err := cm.Publisher.PublishJSON(ctx, ev.Event, ev); err != nil {
			cm.Log.WithError(err).WithField("event", ev.Event).Error("Error publishing change")
		}
	}
}

func (cm *ChangeMonitor) load(ctx context.Context, change models.DBChange) (interface{}, error) {
	var (
		data interface{}
		err  error
	)
	switch change.TableName {
	case "reservations":
		data, err = cm.Reservations.FindByID(ctx, change.RecordID)
	case "tables":
		data, err = cm.Tables.FindByID(ctx, change.RecordID)
	default:
		return nil, nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

package services

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rcsmith8/starter-restaurant-reservation/database"
	"github.com/rcsmith8/starter-restaurant-reservation/models"
	"github.com/rcsmith8/starter-restaurant-reservation/repository"
	"github.com/rcsmith8/starter-restaurant-reservation/validation"
)

// Thursday 2026-10-15, noon.
var fixedNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

const (
	today         = "2026-10-15"
	nextWednesday = "2026-10-21"
)

type testEnv struct {
	db           *gorm.DB
	reservations ReservationService
	tables       TableService
	stats        StatsService
	resRepo      repository.ReservationRepository
	tableRepo    repository.TableRepository
	log          *logrus.Logger
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.OpenInMemory(t.Name())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	clock := validation.ClockFunc(func() time.Time { return fixedNow })
	log := quietLogger()
	resRepo := repository.NewReservationRepository(db)
	tableRepo := repository.NewTableRepository(db)
	return &testEnv{
		db:           db,
		reservations: NewReservationService(resRepo, tableRepo, clock, log),
		tables:       NewTableService(tableRepo, resRepo, log),
		stats:        NewStatsService(resRepo, tableRepo, clock),
		resRepo:      resRepo,
		tableRepo:    tableRepo,
		log:          log,
	}
}

func reservationData(date, at string, people int) map[string]interface{} {
	return map[string]interface{}{
		"first_name":       "Rick",
		"last_name":        "Sanchez",
		"mobile_number":    "202-555-0164",
		"reservation_date": date,
		"reservation_time": at,
		"people":           float64(people),
	}
}

func (e *testEnv) book(t *testing.T, date, at string, people int) *models.Reservation {
	t.Helper()
	r, err := e.reservations.Create(context.Background(), reservationData(date, at, people))
	require.NoError(t, err)
	return r
}

func (e *testEnv) table(t *testing.T, name string, capacity int) *models.Table {
	t.Helper()
	tbl, err := e.tables.Create(context.Background(), map[string]interface{}{
		"table_name": name,
		"capacity":   float64(capacity),
	})
	require.NoError(t, err)
	return tbl
}

func (e *testEnv) status(t *testing.T, id uint) models.Status {
	t.Helper()
	r, err := e.resRepo.FindByID(context.Background(), id)
	require.NoError(t, err)
	return r.Status
}

func requireRule(t *testing.T, err error, msg string) {
	t.Helper()
	var rule *RuleError
	require.True(t, errors.As(err, &rule), "expected *RuleError, got %v", err)
	require.Equal(t, msg, rule.Message)
}

func requireNotFound(t *testing.T, err error, msg string) {
	t.Helper()
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf), "expected *NotFoundError, got %v", err)
	require.Equal(t, msg, nf.Error())
}

func messagesOf(t *testing.T, err error) []string {
	t.Helper()
	var verr *validation.Error
	require.True(t, errors.As(err, &verr), "expected *validation.Error, got %v", err)
	return verr.Messages()
}

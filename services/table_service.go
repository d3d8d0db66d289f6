package services

import (
	"context"
	"errors"

	"github.com/rcsmith8/starter-restaurant-reservation/models"
	"github.com/rcsmith8/starter-restaurant-reservation/repository"
	"github.com/rcsmith8/starter-restaurant-reservation/validation"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type TableService interface {
	List(ctx context.Context) ([]models.Table, error)
	Create(ctx context.Context, data map[string]interface{}) (*models.Table, error)
	Seat(ctx context.Context, tableID uint, data map[string]interface{}) (*models.Table, error)
	Finish(ctx context.Context, tableID uint) (*models.Table, error)
	Delete(ctx context.Context, tableID uint) error
}

type tableService struct {
	tables       repository.TableRepository
	reservations repository.ReservationRepository
	log          *logrus.Logger
}

func NewTableService(tables repository.TableRepository, reservations repository.ReservationRepository,
	log *logrus.Logger) TableService {
	return &tableService{
		tables:       tables,
		reservations: reservations,
		log:          log,
	}
}

func (s *tableService) List(ctx context.Context) ([]models.Table, error) {
	return s.tables.List(ctx)
}

func (s *tableService) Create(ctx context.Context, data map[string]interface{}) (*models.Table, error) {
	var created models.Table
	err := s.tables.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		in, err := validation.Table(data, func(name string) (bool, error) {
			return s.tables.ExistsByName(ctx, tx, name)
		})
		if err != nil {
			return err
		}
		if err := s.tables.Create(ctx, tx, &in); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return validation.New("table_name", validation.MsgTableNameTaken)
			}
			return err
		}
		created = in
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"table_id":   created.ID,
		"table_name": created.TableName,
		"capacity":   created.Capacity,
	}).Info("Table created")
	return &created, nil
}

// Seat assigns a booked reservation to a free table with enough room and marks it seated.
// Both rows are locked for the duration of the transaction.
func (s *tableService) Seat(ctx context.Context, tableID uint, data map[string]interface{}) (*models.Table, error) {
	reservationID, err := validation.SeatRequest(data)
	if err != nil {
		return nil, err
	}

	var seated *models.Table
	err = s.tables.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := s.reservations.FindByIDForUpdate(ctx, tx, reservationID)
		if errors.Is(err, repository.ErrNotFound) {
			return ReservationNotFound(reservationID)
		}
		if err != nil {
			return err
		}
		next, err := models.Transition(r.Status, models.EventSeat)
		if err != nil {
			if r.Status == models.StatusSeated {
				return ruleErrorf("Reservation %d has already been seated.", r.ID)
			}
			return err
		}

		t, err := s.tables.FindByIDForUpdate(ctx, tx, tableID)
		if errors.Is(err, repository.ErrNotFound) {
			return TableNotFound(tableID)
		}
		if err != nil {
			return err
		}
		if t.Capacity < r.People {
			return ruleErrorf("This table does not have sufficient capacity for this reservation (party of %d).", r.People)
		}
		if t.Occupied() {
			return ruleErrorf("Table %s is currently occupied.", t.TableName)
		}

		if err := s.tables.Assign(ctx, tx, t.ID, r.ID); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ruleErrorf("Reservation %d has already been seated.", r.ID)
			}
			return err
		}
		if err := s.reservations.UpdateStatus(ctx, tx, r.ID, next); err != nil {
			return err
		}
		t.ReservationID = &r.ID
		seated = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"table_id":       tableID,
		"reservation_id": reservationID,
	}).Info("Reservation seated")
	return seated, nil
}

// Finish frees an occupied table and marks its reservation finished.
func (s *tableService) Finish(ctx context.Context, tableID uint) (*models.Table, error) {
	var (
		freed         *models.Table
		reservationID uint
	)
	err := s.tables.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := s.tables.FindByIDForUpdate(ctx, tx, tableID)
		if errors.Is(err, repository.ErrNotFound) {
			return TableNotFound(tableID)
		}
		if err != nil {
			return err
		}
		if !t.Occupied() {
			return ruleErrorf("Table is currently not occupied.")
		}
		reservationID = *t.ReservationID

		r, err := s.reservations.FindByIDForUpdate(ctx, tx, reservationID)
		if err != nil {
			return err
		}
		next, err := models.Transition(r.Status, models.EventFinish)
		if err != nil {
			return err
		}
		if err := s.tables.Clear(ctx, tx, t.ID); err != nil {
			return err
		}
		if err := s.reservations.UpdateStatus(ctx, tx, r.ID, next); err != nil {
			return err
		}
		t.ReservationID = nil
		freed = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"table_id":       tableID,
		"reservation_id": reservationID,
	}).Info("Table finished")
	return freed, nil
}

func (s *tableService) Delete(ctx context.Context, tableID uint) error {
	err := s.tables.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := s.tables.FindByIDForUpdate(ctx, tx, tableID)
		if errors.Is(err, repository.ErrNotFound) {
			return TableNotFound(tableID)
		}
		if err != nil {
			return err
		}
		if t.Occupied() {
			return ruleErrorf("Table %s is currently occupied and cannot be deleted.", t.TableName)
		}
		return s.tables.Delete(ctx, tx, t.ID)
	})
	if err != nil {
		return err
	}
	s.log.WithField("table_id", tableID).Info("Table deleted")
	return nil
}

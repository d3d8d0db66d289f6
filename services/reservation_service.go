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

// ListFilter selects reservations by date or by a phone number fragment. Date wins
// when both are set.
type ListFilter struct {
	Date         string
	MobileNumber string
}

type ReservationService interface {
	List(ctx context.Context, filter ListFilter) ([]models.Reservation, error)
	Create(ctx context.Context, data map[string]interface{}) (*models.Reservation, error)
	Get(ctx context.Context, id uint) (*models.Reservation, error)
	Update(ctx context.Context, id uint, data map[string]interface{}) (*models.Reservation, error)
	UpdateStatus(ctx context.Context, id uint, data map[string]interface{}) (*models.Reservation, error)
}

type reservationService struct {
	reservations repository.ReservationRepository
	tables       repository.TableRepository
	clock        validation.Clock
	log          *logrus.Logger
}

func NewReservationService(reservations repository.ReservationRepository, tables repository.TableRepository,
	clock validation.Clock, log *logrus.Logger) ReservationService {
	return &reservationService{
		reservations: reservations,
		tables:       tables,
		clock:        clock,
		log:          log,
	}
}

func (s *reservationService) List(ctx context.Context, filter ListFilter) ([]models.Reservation, error) {
	if filter.Date == "" && filter.MobileNumber != "" {
		return s.reservations.SearchByMobile(ctx, filter.MobileNumber)
	}
	date := filter.Date
	if date == "" {
		date = s.clock.Now().Format(validation.DateLayout)
	}
	date, err := validation.ParseDate(date)
	if err != nil {
		return nil, err
	}
	return s.reservations.ListByDate(ctx, date)
}

func (s *reservationService) Create(ctx context.Context, data map[string]interface{}) (*models.Reservation, error) {
	in, err := validation.Reservation(data, validation.ModeCreate, s.clock)
	if err != nil {
		return nil, err
	}
	if in.Status, err = models.Transition("", models.EventBook); err != nil {
		return nil, err
	}
	err = s.reservations.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.reservations.Create(ctx, tx, &in)
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"reservation_id": in.ID,
		"date":           in.ReservationDate,
		"time":           in.ReservationTime,
		"people":         in.People,
	}).Info("Reservation created")
	return &in, nil
}

func (s *reservationService) Get(ctx context.Context, id uint) (*models.Reservation, error) {
	r, err := s.reservations.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ReservationNotFound(id)
	}
	return r, err
}

// Update replaces every client-editable field of a booked reservation.
func (s *reservationService) Update(ctx context.Context, id uint, data map[string]interface{}) (*models.Reservation, error) {
	var result *models.Reservation
	err := s.reservations.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.lockReservation(ctx, tx, id)
		if err != nil {
			return err
		}
		if current.Status != models.StatusBooked {
			return ruleErrorf("A %s reservation cannot be updated or cancelled.", current.Status)
		}
		in, err := validation.Reservation(data, validation.ModeUpdate, s.clock)
		if err != nil {
			return err
		}
		next := current.Status
		if in.Status != "" {
			if next, err = s.clientTransition(ctx, tx, current, in.Status); err != nil {
				return err
			}
		}

		current.FirstName = in.FirstName
		current.LastName = in.LastName
		current.MobileNumber = in.MobileNumber
		current.ReservationDate = in.ReservationDate
		current.ReservationTime = in.ReservationTime
		current.People = in.People
		current.Status = next
		if err := s.reservations.Save(ctx, tx, current); err != nil {
			return err
		}
		result = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.WithField("reservation_id", id).Info("Reservation updated")
	return result, nil
}

// UpdateStatus applies a status requested directly by a client.
func (s *reservationService) UpdateStatus(ctx context.Context, id uint, data map[string]interface{}) (*models.Reservation, error) {
	var result *models.Reservation
	err := s.reservations.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.lockReservation(ctx, tx, id)
		if err != nil {
			return err
		}
		target, err := validation.StatusRequest(data)
		if err != nil {
			return err
		}
		if current.Status != models.StatusBooked {
			return ruleErrorf("A %s reservation cannot be updated or cancelled.", current.Status)
		}
		next, err := s.clientTransition(ctx, tx, current, target)
		if err != nil {
			return err
		}
		if err := s.reservations.UpdateStatus(ctx, tx, id, next); err != nil {
			return err
		}
		current.Status = next
		result = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"reservation_id": id,
		"status":         result.Status,
	}).Info("Reservation status changed")
	return result, nil
}

// clientTransition checks a status a client asked for against the state machine.
// Seating is only accepted when a table already holds the reservation.
func (s *reservationService) clientTransition(ctx context.Context, tx *gorm.DB, current *models.Reservation,
	target models.Status) (models.Status, error) {
	ev, ok := models.EventFor(target)
	if !ok {
		return current.Status, validation.Newf("status", "Reservation status %s is not valid.", target)
	}
	if ev == models.EventSeat {
		_, err := s.tables.FindByReservation(ctx, tx, current.ID)
		if errors.Is(err, repository.ErrNotFound) {
			return current.Status, ruleErrorf("Reservation %d can only be seated by assigning it to a table.", current.ID)
		}
		if err != nil {
			return current.Status, err
		}
	}
	return models.Transition(current.Status, ev)
}

func (s *reservationService) lockReservation(ctx context.Context, tx *gorm.DB, id uint) (*models.Reservation, error) {
	r, err := s.reservations.FindByIDForUpdate(ctx, tx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ReservationNotFound(id)
	}
	return r, err
}

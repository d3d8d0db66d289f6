package services

import (
	"context"

	"github.com/rcsmith8/starter-restaurant-reservation/models"
	"github.com/rcsmith8/starter-restaurant-reservation/repository"
	"github.com/rcsmith8/starter-restaurant-reservation/validation"
)

type DashboardStats struct {
	Date           string                  `json:"date"`
	TablesTotal    int64                   `json:"tables_total"`
	TablesOccupied int64                   `json:"tables_occupied"`
	TablesFree     int64                   `json:"tables_free"`
	Reservations   map[models.Status]int64 `json:"reservations"`
}

type StatsService interface {
	Dashboard(ctx context.Context, date string) (*DashboardStats, error)
}

type statsService struct {
	reservations repository.ReservationRepository
	tables       repository.TableRepository
	clock        validation.Clock
}

func NewStatsService(reservations repository.ReservationRepository, tables repository.TableRepository,
	clock validation.Clock) StatsService {
	return &statsService{reservations: reservations, tables: tables, clock: clock}
}

// Dashboard summarizes table occupancy and the reservations of one day, today when
// date is empty.
func (s *statsService) Dashboard(ctx context.Context, date string) (*DashboardStats, error) {
	if date == "" {
		date = s.clock.Now().Format(validation.DateLayout)
	}
	date, err := validation.ParseDate(date)
	if err != nil {
		return nil, err
	}

	occupied, total, err := s.tables.CountOccupied(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.reservations.CountByStatusOnDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return &DashboardStats{
		Date:           date,
		TablesTotal:    total,
		TablesOccupied: occupied,
		TablesFree:     total - occupied,
		Reservations:   counts,
	}, nil
}

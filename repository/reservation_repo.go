package repository

import (
	"context"

	"github.com/rcsmith8/starter-restaurant-reservation/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const reservationsTable = "reservations"

type ReservationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, r *models.Reservation) error
	FindByID(ctx context.Context, id uint) (*models.Reservation, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Reservation, error)
	ListByDate(ctx context.Context, date string) ([]models.Reservation, error)
	SearchByMobile(ctx context.Context, fragment string) ([]models.Reservation, error)
	Save(ctx context.Context, tx *gorm.DB, r *models.Reservation) error
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.Status) error
	CountByStatusOnDate(ctx context.Context, date string) (map[models.Status]int64, error)
	GetDB() *gorm.DB
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *reservationRepository) Create(ctx context.Context, tx *gorm.DB, res *models.Reservation) error {
	if err := tx.WithContext(ctx).Create(res).Error; err != nil {
		return translate(err)
	}
	return recordChange(ctx, tx, reservationsTable, res.ID, models.ActionInsert, "reservation.created")
}

func (r *reservationRepository) FindByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var res models.Reservation
	if err := r.db.WithContext(ctx).First(&res, id).Error; err != nil {
		return nil, translate(err)
	}
	return &res, nil
}

// FindByIDForUpdate locks the reservation row for the rest of tx.
func (r *reservationRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Reservation, error) {
	var res models.Reservation
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&res, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &res, nil
}

func (r *reservationRepository) ListByDate(ctx context.Context, date string) ([]models.Reservation, error) {
	reservations := make([]models.Reservation, 0)
	err := r.db.WithContext(ctx).
		Where("reservation_date = ?", date).
		Order("reservation_time ASC, id ASC").
		Find(&reservations).Error
	return reservations, err
}

// SearchByMobile matches the digits of fragment anywhere in the stored number,
// ignoring separators on both sides.
func (r *reservationRepository) SearchByMobile(ctx context.Context, fragment string) ([]models.Reservation, error) {
	reservations := make([]models.Reservation, 0)
	digits := models.DigitsOnly(fragment)
	if digits == "" {
		return reservations, nil
	}
	err := r.db.WithContext(ctx).
		Where("mobile_digits LIKE ?", "%"+digits+"%").
		Order("reservation_date ASC, reservation_time ASC, id ASC").
		Find(&reservations).Error
	return reservations, err
}

func (r *reservationRepository) Save(ctx context.Context, tx *gorm.DB, res *models.Reservation) error {
	if err := tx.WithContext(ctx).Save(res).Error; err != nil {
		return translate(err)
	}
	return recordChange(ctx, tx, reservationsTable, res.ID, models.ActionUpdate, "reservation.updated")
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.Status) error {
	result := tx.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return recordChange(ctx, tx, reservationsTable, id, models.ActionUpdate, "reservation."+string(status))
}

func (r *reservationRepository) CountByStatusOnDate(ctx context.Context, date string) (map[models.Status]int64, error) {
	var rows []struct {
		Status models.Status
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Select("status, count(*) AS count").
		Where("reservation_date = ?", date).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[models.Status]int64, len(models.Statuses))
	for _, s := range models.Statuses {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

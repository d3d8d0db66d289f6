package repository

import (
	"context"

	"github.com/rcsmith8/starter-restaurant-reservation/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const tablesTable = "tables"

type TableRepository interface {
	Create(ctx context.Context, tx *gorm.DB, t *models.Table) error
	FindByID(ctx context.Context, id uint) (*models.Table, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Table, error)
	ExistsByName(ctx context.Context, tx *gorm.DB, name string) (bool, error)
	FindByReservation(ctx context.Context, tx *gorm.DB, reservationID uint) (*models.Table, error)
	List(ctx context.Context) ([]models.Table, error)
	Assign(ctx context.Context, tx *gorm.DB, tableID, reservationID uint) error
	Clear(ctx context.Context, tx *gorm.DB, tableID uint) error
	Delete(ctx context.Context, tx *gorm.DB, tableID uint) error
	CountOccupied(ctx context.Context) (occupied, total int64, err error)
	GetDB() *gorm.DB
}

type tableRepository struct {
	db *gorm.DB
}

func NewTableRepository(db *gorm.DB) TableRepository {
	return &tableRepository{db: db}
}

func (r *tableRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *tableRepository) Create(ctx context.Context, tx *gorm.DB, t *models.Table) error {
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		return translate(err)
	}
	return recordChange(ctx, tx, tablesTable, t.ID, models.ActionInsert, "table.created")
}

func (r *tableRepository) FindByID(ctx context.Context, id uint) (*models.Table, error) {
	var t models.Table
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

// FindByIDForUpdate locks the table row for the rest of tx.
func (r *tableRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Table, error) {
	var t models.Table
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&t, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (r *tableRepository) ExistsByName(ctx context.Context, tx *gorm.DB, name string) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Table{}).
		Where("table_name = ?", name).
		Count(&count).Error
	return count > 0, err
}

func (r *tableRepository) FindByReservation(ctx context.Context, tx *gorm.DB, reservationID uint) (*models.Table, error) {
	var t models.Table
	err := tx.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		First(&t).Error
	if err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (r *tableRepository) List(ctx context.Context) ([]models.Table, error) {
	tables := make([]models.Table, 0)
	err := r.db.WithContext(ctx).Order("table_name ASC").Find(&tables).Error
	return tables, err
}

func (r *tableRepository) Assign(ctx context.Context, tx *gorm.DB, tableID, reservationID uint) error {
	err := tx.WithContext(ctx).
		Model(&models.Table{}).
		Where("id = ?", tableID).
		Update("reservation_id", reservationID).Error
	if err != nil {
		return translate(err)
	}
	return recordChange(ctx, tx, tablesTable, tableID, models.ActionUpdate, "table.seated")
}

func (r *tableRepository) Clear(ctx context.Context, tx *gorm.DB, tableID uint) error {
	err := tx.WithContext(ctx).
		Model(&models.Table{}).
		Where("id = ?", tableID).
		Update("reservation_id", gorm.Expr("NULL")).Error
	if err != nil {
		return err
	}
	return recordChange(ctx, tx, tablesTable, tableID, models.ActionUpdate, "table.finished")
}

func (r *tableRepository) Delete(ctx context.Context, tx *gorm.DB, tableID uint) error {
	result := tx.WithContext(ctx).Delete(&models.Table{}, tableID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return recordChange(ctx, tx, tablesTable, tableID, models.ActionDelete, "table.deleted")
}

func (r *tableRepository) CountOccupied(ctx context.Context) (int64, int64, error) {
	var occupied, total int64
	db := r.db.WithContext(ctx).Model(&models.Table{})
	if err := db.Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).Model(&models.Table{}).
		Where("reservation_id IS NOT NULL").
		Count(&occupied).Error; err != nil {
		return 0, 0, err
	}
	return occupied, total, nil
}

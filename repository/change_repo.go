package repository

import (
	"context"

	"github.com/rcsmith8/starter-restaurant-reservation/models"
	"gorm.io/gorm"
)

type ChangeRepository interface {
	Pending(ctx context.Context, limit int) ([]models.DBChange, error)
	MarkProcessed(ctx context.Context, ids []uint) error
}

type changeRepository struct {
	db *gorm.DB
}

func NewChangeRepository(db *gorm.DB) ChangeRepository {
	return &changeRepository{db: db}
}

func (r *changeRepository) Pending(ctx context.Context, limit int) ([]models.DBChange, error) {
	var changes []models.DBChange
	err := r.db.WithContext(ctx).
		Where("processed = ?", false).
		Order("id ASC").
		Limit(limit).
		Find(&changes).Error
	return changes, err
}

func (r *changeRepository) MarkProcessed(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.DBChange{}).
		Where("id IN ?", ids).
		Update("processed", true).Error
}

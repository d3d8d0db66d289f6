// Package repository is the persistence gateway: thin gorm queries with no rules of
// their own. Methods that take a tx run on it, so callers can group writes.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rcsmith8/starter-restaurant-reservation/models"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}

// recordChange appends a row to the change feed on the same tx as the change.
func recordChange(ctx context.Context, tx *gorm.DB, table string, id uint, action, event string) error {
	return tx.WithContext(ctx).Create(&models.DBChange{
		TableName:  table,
		RecordID:   id,
		ActionType: action,
		Event:      event,
		ChangedAt:  time.Now().UTC(),
	}).Error
}

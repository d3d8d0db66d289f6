package models

import (
	"time"
)

const (
	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// DBChange is a row of the change feed. Repositories write one in the same
// transaction as the change itself; services.ChangeMonitor drains them.
type DBChange struct {
	ID         uint      `gorm:"primaryKey"`
	TableName  string    `gorm:"type:varchar(50);not null;index:idx_table_action"`
	RecordID   uint      `gorm:"not null"`
	ActionType string    `gorm:"type:varchar(10);not null;index:idx_table_action"`
	Event      string    `gorm:"type:varchar(50);not null"`
	ChangedAt  time.Time `gorm:"not null"`
	Processed  bool      `gorm:"default:false;index:idx_processed"`
}

// AllModels lists every model managed by AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Reservation{},
		&Table{},
		&DBChange{},
	}
}

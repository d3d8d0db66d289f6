package database

import (
	"fmt"
	"strings"

	"github.com/rcsmith8/starter-restaurant-reservation/models"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenSQLite opens a sqlite database. It is used for local runs and by the tests.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
}

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB, log *logrus.Logger) error {
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if log != nil {
		log.Info("AutoMigrate completed")
	}
	return nil
}

// Seed inserts the restaurant's starting tables when there are none yet.
func Seed(db *gorm.DB, log *logrus.Logger) error {
	var count int64
	if err := db.Model(&models.Table{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	tables := []models.Table{
		{TableName: "Bar #1", Capacity: 1},
		{TableName: "Bar #2", Capacity: 1},
		{TableName: "#1", Capacity: 6},
		{TableName: "#2", Capacity: 6},
	}
	if err := db.Create(&tables).Error; err != nil {
		return fmt.Errorf("seed tables: %w", err)
	}
	if log != nil {
		log.WithField("tables", len(tables)).Info("Seeded tables")
	}
	return nil
}

// OpenInMemory opens a private in-memory sqlite database with the schema migrated.
// One connection keeps every query on the same database.
func OpenInMemory(name string) (*gorm.DB, error) {
	name = strings.NewReplacer("/", "_", " ", "_").Replace(name)
	db, err := OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	if err := Migrate(db, nil); err != nil {
		return nil, err
	}
	return db, nil
}

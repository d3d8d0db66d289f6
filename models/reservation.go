package models

import (
	"strings"
	"time"
	"unicode"

	"gorm.io/gorm"
)

type Reservation struct {
	ID              uint      `gorm:"primaryKey" json:"reservation_id"`
	FirstName       string    `gorm:"type:varchar(255);not null" json:"first_name"`
	LastName        string    `gorm:"type:varchar(255);not null" json:"last_name"`
	MobileNumber    string    `gorm:"type:varchar(50);not null" json:"mobile_number"`
	MobileDigits    string    `gorm:"type:varchar(50);index" json:"-"`
	ReservationDate string    `gorm:"type:varchar(10);not null;index" json:"reservation_date"`
	ReservationTime string    `gorm:"type:varchar(5);not null" json:"reservation_time"`
	People          int       `gorm:"not null" json:"people"`
	Status          Status    `gorm:"type:varchar(20);not null;default:'booked'" json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BeforeSave keeps the digits-only copy of the mobile number used by phone search.
func (r *Reservation) BeforeSave(tx *gorm.DB) error {
	r.MobileDigits = DigitsOnly(r.MobileNumber)
	return nil
}

func DigitsOnly(s string) string {
	var b strings.Builder
	for _, c := range s {
		if unicode.IsDigit(c) {
			b.WriteRune(c)
		}
	}
	return b.String()
}

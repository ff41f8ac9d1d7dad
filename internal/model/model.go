package model

import (
	"time"
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:120;not null"`
	Email        string `gorm:"size:120;not null;uniqueIndex"`
	PasswordHash string `gorm:"size:200;not null"`
	ProfilePic   string `gorm:"size:200"`
}

type Train struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"size:120;not null"`
	Number      string  `gorm:"size:20;not null;uniqueIndex"`
	FromStation string  `gorm:"size:120"`
	ToStation   string  `gorm:"size:120"`
	Depart      string  `gorm:"size:20"`
	Arrive      string  `gorm:"size:20"`
	Duration    string  `gorm:"size:30"`
	Fare        float64 `gorm:"not null"`
}

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

type SeatClass string

const (
	SeatClassEconomy SeatClass = "Economy"
	SeatClassSleeper SeatClass = "Sleeper"
	SeatClassAC      SeatClass = "AC"
)

func (c SeatClass) Valid() bool {
	switch c {
	case SeatClassEconomy, SeatClassSleeper, SeatClassAC:
		return true
	}
	return false
}

type Booking struct {
	ID              uint      `gorm:"primaryKey"`
	UserID          uint      `gorm:"not null;index"`
	TrainID         uint      `gorm:"not null;index"`
	Train           Train     `gorm:"foreignKey:TrainID"`
	PassengerName   string    `gorm:"size:120;not null"`
	PassengerAge    int       `gorm:"not null"`
	PassengerGender Gender    `gorm:"type:varchar(10);not null"`
	TravelDate      time.Time `gorm:"type:date;not null;index"`
	SeatClass       SeatClass `gorm:"type:varchar(30);not null"`
	// Fare is snapshotted from the train at booking time and never recomputed.
	Fare          float64 `gorm:"not null"`
	Paid          bool    `gorm:"not null;default:false"`
	TransactionID string  `gorm:"size:200"`
	BookedAt      time.Time
	PaidAt        *time.Time
}

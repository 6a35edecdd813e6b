package models

import (
	"gorm.io/gorm"
)

type ReminderType string

const (
	ReminderWater      ReminderType = "water"
	ReminderExercise   ReminderType = "exercise"
	ReminderWeight     ReminderType = "weight"
	ReminderMedication ReminderType = "medication"
)

func (t ReminderType) Valid() bool {
	switch t {
	case ReminderWater, ReminderExercise, ReminderWeight, ReminderMedication:
		return true
	}
	return false
}

// Reminder is a user-configured nudge. Storage and CRUD only; there is
// no delivery scheduler in this service.
type Reminder struct {
	gorm.Model
	UserID     uint         `gorm:"index;not null" json:"userId"`
	Type       ReminderType `gorm:"not null" json:"type"`
	Title      string       `gorm:"not null" json:"title"`
	Message    string       `json:"message,omitempty"`
	Time       string       `gorm:"not null" json:"time"` // HH:MM
	IsActive   bool         `json:"isActive"`
	DaysOfWeek string       `json:"daysOfWeek,omitempty"` // JSON array of day numbers
}

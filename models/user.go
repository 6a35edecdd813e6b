package models

import (
	"time"

	"gorm.io/gorm"
)

// CoachStyle selects the tone of generated coach messages.
type CoachStyle string

const (
	CoachEncouraging CoachStyle = "encouraging"
	CoachMotivating  CoachStyle = "motivating"
	CoachInformative CoachStyle = "informative"
	CoachFriendly    CoachStyle = "friendly"
)

func (s CoachStyle) Valid() bool {
	switch s {
	case CoachEncouraging, CoachMotivating, CoachInformative, CoachFriendly:
		return true
	}
	return false
}

type User struct {
	gorm.Model
	Email         string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash  string     `gorm:"not null" json:"-"`
	Name          string     `gorm:"not null" json:"name"`
	Age           *int       `json:"age"`
	Height        *float64   `json:"height"`        // cm
	CurrentWeight *float64   `json:"currentWeight"` // kg
	CoachStyle    CoachStyle `gorm:"default:encouraging" json:"coachStyle"`

	EmailVerified          bool       `json:"emailVerified"`
	EmailVerificationToken string     `json:"-"`
	PasswordResetToken     string     `json:"-"`
	PasswordResetExpires   *time.Time `json:"-"`
}

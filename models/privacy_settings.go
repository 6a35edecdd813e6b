package models

import (
	"gorm.io/gorm"
)

// PrivacySettings holds one user's per-category sharing flags for the
// family dashboard. Created together with the User at registration.
type PrivacySettings struct {
	gorm.Model
	UserID            uint `gorm:"uniqueIndex;not null" json:"userId"`
	WaterIntakeShared bool `json:"waterIntakeShared"`
	ExerciseShared    bool `json:"exerciseShared"`
	WeightShared      bool `json:"weightShared"`
	SleepShared       bool `json:"sleepShared"`
	VitalSignsShared  bool `json:"vitalSignsShared"`
	GoalsShared       bool `json:"goalsShared"`
}

// DefaultPrivacySettings returns the flags a new account starts with.
func DefaultPrivacySettings(userID uint) PrivacySettings {
	return PrivacySettings{
		UserID:            userID,
		WaterIntakeShared: true,
		ExerciseShared:    true,
		WeightShared:      false,
		SleepShared:       true,
		VitalSignsShared:  false,
		GoalsShared:       true,
	}
}

// Allows reports whether the category for the given metric kind is
// shared with family members.
func (p PrivacySettings) Allows(kind MetricKind) bool {
	switch kind {
	case KindWater:
		return p.WaterIntakeShared
	case KindExercise:
		return p.ExerciseShared
	case KindWeight:
		return p.WeightShared
	case KindSleep:
		return p.SleepShared
	case KindBloodPressure, KindHeartRate, KindTemperature:
		return p.VitalSignsShared
	}
	return false
}

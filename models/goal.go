package models

import (
	"time"

	"gorm.io/gorm"
)

type GoalType string

const (
	GoalWeightLoss        GoalType = "weight_loss"
	GoalWeightGain        GoalType = "weight_gain"
	GoalWeightMaintenance GoalType = "weight_maintenance"
	GoalBMITarget         GoalType = "bmi_target"
	GoalExerciseMinutes   GoalType = "exercise_minutes"
	GoalWaterIntake       GoalType = "water_intake"
	GoalSleepHours        GoalType = "sleep_hours"
	GoalBloodPressure     GoalType = "blood_pressure"
	GoalHeartRate         GoalType = "heart_rate"
)

func (t GoalType) Valid() bool {
	switch t {
	case GoalWeightLoss, GoalWeightGain, GoalWeightMaintenance, GoalBMITarget,
		GoalExerciseMinutes, GoalWaterIntake, GoalSleepHours,
		GoalBloodPressure, GoalHeartRate:
		return true
	}
	return false
}

// Monotonic goals move from a start value toward a target; the rest
// are band goals scored by proximity to the target.
func (t GoalType) Monotonic() bool {
	switch t {
	case GoalWeightLoss, GoalWeightGain, GoalExerciseMinutes,
		GoalWaterIntake, GoalSleepHours:
		return true
	}
	return false
}

// DailyCumulative goals measure today's accumulated total rather than
// a point-in-time reading.
func (t GoalType) DailyCumulative() bool {
	switch t {
	case GoalExerciseMinutes, GoalWaterIntake, GoalSleepHours:
		return true
	}
	return false
}

// MetricKind returns the log kind a goal's current value is derived
// from when no snapshot exists.
func (t GoalType) MetricKind() MetricKind {
	switch t {
	case GoalWeightLoss, GoalWeightGain, GoalWeightMaintenance, GoalBMITarget:
		return KindWeight
	case GoalExerciseMinutes:
		return KindExercise
	case GoalWaterIntake:
		return KindWater
	case GoalSleepHours:
		return KindSleep
	case GoalBloodPressure:
		return KindBloodPressure
	case GoalHeartRate:
		return KindHeartRate
	}
	return ""
}

type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalAbandoned GoalStatus = "abandoned"
)

func (s GoalStatus) Valid() bool {
	return s == GoalActive || s == GoalCompleted || s == GoalAbandoned
}

// Terminal statuses admit no further transitions.
func (s GoalStatus) Terminal() bool {
	return s == GoalCompleted || s == GoalAbandoned
}

type Goal struct {
	gorm.Model
	UserID       uint       `gorm:"index;not null" json:"userId"`
	Type         GoalType   `gorm:"not null" json:"type"`
	TargetValue  float64    `gorm:"not null" json:"targetValue"`
	StartValue   float64    `json:"startValue"`
	CurrentValue *float64   `json:"currentValue,omitempty"`
	StartDate    time.Time  `gorm:"not null" json:"startDate"`
	TargetDate   time.Time  `gorm:"not null" json:"targetDate"`
	Status       GoalStatus `gorm:"default:active" json:"status"`
	IsShared     bool       `json:"isShared"`
	ActionPlan   string     `json:"actionPlan,omitempty"`
}

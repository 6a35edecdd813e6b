package models

import (
	"time"

	"gorm.io/gorm"
)

// MetricKind identifies one of the seven health log tables. Listing,
// export and the family visibility filter are written once against
// this kind instead of per table.
type MetricKind string

const (
	KindWater         MetricKind = "water"
	KindExercise      MetricKind = "exercise"
	KindWeight        MetricKind = "weight"
	KindSleep         MetricKind = "sleep"
	KindBloodPressure MetricKind = "blood_pressure"
	KindHeartRate     MetricKind = "heart_rate"
	KindTemperature   MetricKind = "temperature"
)

// AllMetricKinds in the order logs are aggregated and exported.
var AllMetricKinds = []MetricKind{
	KindWater, KindExercise, KindWeight, KindSleep,
	KindBloodPressure, KindHeartRate, KindTemperature,
}

func (k MetricKind) Valid() bool {
	for _, known := range AllMetricKinds {
		if k == known {
			return true
		}
	}
	return false
}

// HealthLog is implemented by every log model so generic code can
// treat the seven kinds uniformly.
type HealthLog interface {
	Kind() MetricKind
	LogID() uint
	OwnerID() uint
	LoggedTime() time.Time
}

type ActivityType string

const (
	ActivityWalking          ActivityType = "walking"
	ActivityRunning          ActivityType = "running"
	ActivityHiking           ActivityType = "hiking"
	ActivityCycling          ActivityType = "cycling"
	ActivitySwimming         ActivityType = "swimming"
	ActivityYoga             ActivityType = "yoga"
	ActivityStrengthTraining ActivityType = "strength_training"
	ActivitySports           ActivityType = "sports"
	ActivityOther            ActivityType = "other"
)

func (a ActivityType) Valid() bool {
	switch a {
	case ActivityWalking, ActivityRunning, ActivityHiking, ActivityCycling,
		ActivitySwimming, ActivityYoga, ActivityStrengthTraining,
		ActivitySports, ActivityOther:
		return true
	}
	return false
}

type SleepQuality string

const (
	SleepPoor      SleepQuality = "poor"
	SleepFair      SleepQuality = "fair"
	SleepGood      SleepQuality = "good"
	SleepExcellent SleepQuality = "excellent"
)

func (q SleepQuality) Valid() bool {
	switch q {
	case SleepPoor, SleepFair, SleepGood, SleepExcellent:
		return true
	}
	return false
}

type HeartRateContext string

const (
	HeartRateResting HeartRateContext = "resting"
	HeartRateActive  HeartRateContext = "active"
)

func (t HeartRateContext) Valid() bool {
	return t == HeartRateResting || t == HeartRateActive
}

type TemperatureMethod string

const (
	TempOral     TemperatureMethod = "oral"
	TempForehead TemperatureMethod = "forehead"
	TempEar      TemperatureMethod = "ear"
	TempArmpit   TemperatureMethod = "armpit"
)

func (m TemperatureMethod) Valid() bool {
	switch m {
	case TempOral, TempForehead, TempEar, TempArmpit:
		return true
	}
	return false
}

// LoggedAt is when the measurement happened; CreatedAt (gorm.Model) is
// when it was recorded. The two diverge on backfilled entries.

type WaterLog struct {
	gorm.Model
	UserID   uint      `gorm:"index;not null" json:"userId"`
	Amount   float64   `gorm:"not null" json:"amount"` // ml
	LoggedAt time.Time `gorm:"index;not null" json:"loggedAt"`
}

func (l WaterLog) Kind() MetricKind      { return KindWater }
func (l WaterLog) LogID() uint           { return l.ID }
func (l WaterLog) OwnerID() uint         { return l.UserID }
func (l WaterLog) LoggedTime() time.Time { return l.LoggedAt }

type ExerciseLog struct {
	gorm.Model
	UserID         uint         `gorm:"index;not null" json:"userId"`
	ActivityType   ActivityType `gorm:"not null" json:"activityType"`
	CustomActivity string       `json:"customActivity,omitempty"`
	Duration       int          `gorm:"not null" json:"duration"` // minutes
	Distance       *float64     `json:"distance,omitempty"`       // km
	Notes          string       `json:"notes,omitempty"`
	LoggedAt       time.Time    `gorm:"index;not null" json:"loggedAt"`
}

func (l ExerciseLog) Kind() MetricKind      { return KindExercise }
func (l ExerciseLog) LogID() uint           { return l.ID }
func (l ExerciseLog) OwnerID() uint         { return l.UserID }
func (l ExerciseLog) LoggedTime() time.Time { return l.LoggedAt }

type WeightLog struct {
	gorm.Model
	UserID   uint      `gorm:"index;not null" json:"userId"`
	Weight   float64   `gorm:"not null" json:"weight"` // kg
	Waist    *float64  `json:"waist,omitempty"`        // cm
	Hips     *float64  `json:"hips,omitempty"`         // cm
	LoggedAt time.Time `gorm:"index;not null" json:"loggedAt"`
}

func (l WeightLog) Kind() MetricKind      { return KindWeight }
func (l WeightLog) LogID() uint           { return l.ID }
func (l WeightLog) OwnerID() uint         { return l.UserID }
func (l WeightLog) LoggedTime() time.Time { return l.LoggedAt }

type SleepLog struct {
	gorm.Model
	UserID   uint         `gorm:"index;not null" json:"userId"`
	Duration int          `gorm:"not null" json:"duration"` // minutes
	Bedtime  *time.Time   `json:"bedtime,omitempty"`
	WakeTime *time.Time   `json:"wakeTime,omitempty"`
	Quality  SleepQuality `json:"quality,omitempty"`
	Notes    string       `json:"notes,omitempty"`
	LoggedAt time.Time    `gorm:"index;not null" json:"loggedAt"`
}

func (l SleepLog) Kind() MetricKind      { return KindSleep }
func (l SleepLog) LogID() uint           { return l.ID }
func (l SleepLog) OwnerID() uint         { return l.UserID }
func (l SleepLog) LoggedTime() time.Time { return l.LoggedAt }

type BloodPressureLog struct {
	gorm.Model
	UserID    uint      `gorm:"index;not null" json:"userId"`
	Systolic  int       `gorm:"not null" json:"systolic"`
	Diastolic int       `gorm:"not null" json:"diastolic"`
	Pulse     *int      `json:"pulse,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	LoggedAt  time.Time `gorm:"index;not null" json:"loggedAt"`
}

func (l BloodPressureLog) Kind() MetricKind      { return KindBloodPressure }
func (l BloodPressureLog) LogID() uint           { return l.ID }
func (l BloodPressureLog) OwnerID() uint         { return l.UserID }
func (l BloodPressureLog) LoggedTime() time.Time { return l.LoggedAt }

type HeartRateLog struct {
	gorm.Model
	UserID   uint             `gorm:"index;not null" json:"userId"`
	BPM      int              `gorm:"not null" json:"bpm"`
	Context  HeartRateContext `gorm:"default:resting" json:"type"`
	Notes    string           `json:"notes,omitempty"`
	LoggedAt time.Time        `gorm:"index;not null" json:"loggedAt"`
}

func (l HeartRateLog) Kind() MetricKind      { return KindHeartRate }
func (l HeartRateLog) LogID() uint           { return l.ID }
func (l HeartRateLog) OwnerID() uint         { return l.UserID }
func (l HeartRateLog) LoggedTime() time.Time { return l.LoggedAt }

type TemperatureLog struct {
	gorm.Model
	UserID      uint              `gorm:"index;not null" json:"userId"`
	Temperature float64           `gorm:"not null" json:"temperature"` // Celsius
	Method      TemperatureMethod `json:"method,omitempty"`
	Symptoms    string            `json:"symptoms,omitempty"`
	Notes       string            `json:"notes,omitempty"`
	LoggedAt    time.Time         `gorm:"index;not null" json:"loggedAt"`
}

func (l TemperatureLog) Kind() MetricKind      { return KindTemperature }
func (l TemperatureLog) LogID() uint           { return l.ID }
func (l TemperatureLog) OwnerID() uint         { return l.UserID }
func (l TemperatureLog) LoggedTime() time.Time { return l.LoggedAt }

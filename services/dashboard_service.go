package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/maxarisa/family-health-app/models"
	"github.com/maxarisa/family-health-app/utils"
)

// Default targets shown on the dashboard. Per-user overrides are not
// modeled; water/exercise/sleep goals of record live in the goals
// table.
const (
	DefaultWaterGoalML    = 2000.0
	DefaultExerciseGoal   = 30
	DefaultSleepGoalHours = 8.0
)

// Weight trend compares the latest reading against the most recent one
// at least trendLookback older. Differences inside trendThreshold
// count as stable.
const (
	trendLookback  = 7 * 24 * time.Hour
	trendThreshold = 0.5 // kg
)

const maxStreakDays = 365

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

type WaterSummary struct {
	Current float64 `json:"current"`
	Goal    float64 `json:"goal"`
	Unit    string  `json:"unit"`
}

type ExerciseSummary struct {
	Minutes int `json:"minutes"`
	Goal    int `json:"goal"`
}

type WeightSummary struct {
	Current *float64 `json:"current"`
	Trend   string   `json:"trend"` // up | down | stable
	BMI     *float64 `json:"bmi,omitempty"`
}

type SleepSummary struct {
	Hours   float64             `json:"hours"`
	Goal    float64             `json:"goal"`
	Quality models.SleepQuality `json:"quality,omitempty"`
}

type VitalSignsSummary struct {
	BloodPressure *models.BloodPressureLog `json:"bloodPressure"`
	HeartRate     *models.HeartRateLog     `json:"heartRate"`
	Temperature   *models.TemperatureLog   `json:"temperature"`
}

type StreakSummary struct {
	Water    int `json:"water"`
	Exercise int `json:"exercise"`
	Logging  int `json:"logging"`
}

type DashboardSummary struct {
	Water      WaterSummary      `json:"water"`
	Exercise   ExerciseSummary   `json:"exercise"`
	Weight     WeightSummary     `json:"weight"`
	Sleep      SleepSummary      `json:"sleep"`
	VitalSigns VitalSignsSummary `json:"vitalSigns"`
	Streaks    StreakSummary     `json:"streaks"`
}

// Summary builds the same-day dashboard for one user. Each metric is
// read with its own query; a log written mid-aggregation may or may
// not be reflected.
func (s *DashboardService) Summary(userID uint, now time.Time) (*DashboardSummary, error) {
	start, end := dayWindow(now)

	out := &DashboardSummary{}
	out.Water.Goal = DefaultWaterGoalML
	out.Water.Unit = "ml"
	out.Exercise.Goal = DefaultExerciseGoal
	out.Sleep.Goal = DefaultSleepGoalHours
	out.Weight.Trend = "stable"

	if err := s.db.Model(&models.WaterLog{}).
		Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, start, end).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&out.Water.Current).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.ExerciseLog{}).
		Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, start, end).
		Select("COALESCE(SUM(duration), 0)").
		Scan(&out.Exercise.Minutes).Error; err != nil {
		return nil, err
	}

	if err := s.fillWeight(userID, out); err != nil {
		return nil, err
	}

	var sleep models.SleepLog
	err := s.db.
		Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, start, end).
		Order("logged_at DESC, id DESC").
		First(&sleep).Error
	switch {
	case err == nil:
		out.Sleep.Hours = round2(float64(sleep.Duration) / 60.0)
		out.Sleep.Quality = sleep.Quality
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	// Vitals keep latest-known-value semantics, not "today only".
	var bp models.BloodPressureLog
	if err := s.latest(userID, &bp); err == nil {
		out.VitalSigns.BloodPressure = &bp
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var hr models.HeartRateLog
	if err := s.latest(userID, &hr); err == nil {
		out.VitalSigns.HeartRate = &hr
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var temp models.TemperatureLog
	if err := s.latest(userID, &temp); err == nil {
		out.VitalSigns.Temperature = &temp
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.fillStreaks(userID, now, out); err != nil {
		return nil, err
	}

	return out, nil
}

func (s *DashboardService) latest(userID uint, dest interface{}) error {
	return s.db.
		Where("user_id = ?", userID).
		Order("logged_at DESC, id DESC").
		First(dest).Error
}

func (s *DashboardService) fillWeight(userID uint, out *DashboardSummary) error {
	var latest models.WeightLog
	err := s.latest(userID, &latest)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	out.Weight.Current = &latest.Weight

	var user models.User
	if err := s.db.First(&user, userID).Error; err == nil && user.Height != nil {
		if bmi, err := utils.CalculateBMI(*user.Height, latest.Weight); err == nil {
			rounded := round2(bmi)
			out.Weight.BMI = &rounded
		}
	}

	var prior models.WeightLog
	err = s.db.
		Where("user_id = ? AND logged_at <= ?", userID, latest.LoggedAt.Add(-trendLookback)).
		Order("logged_at DESC, id DESC").
		First(&prior).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	switch delta := latest.Weight - prior.Weight; {
	case delta > trendThreshold:
		out.Weight.Trend = "up"
	case delta < -trendThreshold:
		out.Weight.Trend = "down"
	}
	return nil
}

func (s *DashboardService) fillStreaks(userID uint, now time.Time, out *DashboardSummary) error {
	water, err := s.streak(userID, now, func(q *gorm.DB) *gorm.DB {
		return q.Model(&models.WaterLog{})
	})
	if err != nil {
		return err
	}
	exercise, err := s.streak(userID, now, func(q *gorm.DB) *gorm.DB {
		return q.Model(&models.ExerciseLog{})
	})
	if err != nil {
		return err
	}

	out.Streaks.Water = water
	out.Streaks.Exercise = exercise

	// Logging streak counts days with at least one entry of any kind.
	logging := 0
	day := now
	for logging < maxStreakDays {
		any, err := s.anyLogOn(userID, day)
		if err != nil {
			return err
		}
		if !any {
			break
		}
		logging++
		day = day.AddDate(0, 0, -1)
	}
	out.Streaks.Logging = logging
	return nil
}

func (s *DashboardService) streak(userID uint, now time.Time, table func(*gorm.DB) *gorm.DB) (int, error) {
	count := 0
	day := now
	for count < maxStreakDays {
		start, end := dayWindow(day)
		var n int64
		if err := table(s.db).
			Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, start, end).
			Count(&n).Error; err != nil {
			return 0, err
		}
		if n == 0 {
			break
		}
		count++
		day = day.AddDate(0, 0, -1)
	}
	return count, nil
}

func (s *DashboardService) anyLogOn(userID uint, day time.Time) (bool, error) {
	start, end := dayWindow(day)
	tables := []interface{}{
		&models.WaterLog{}, &models.ExerciseLog{}, &models.WeightLog{},
		&models.SleepLog{}, &models.BloodPressureLog{},
		&models.HeartRateLog{}, &models.TemperatureLog{},
	}
	for _, t := range tables {
		var n int64
		if err := s.db.Model(t).
			Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, start, end).
			Count(&n).Error; err != nil {
			return false, err
		}
		if n > 0 {
			return true, nil
		}
	}
	return false, nil
}

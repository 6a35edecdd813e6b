package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxarisa/family-health-app/models"
)

func TestDashboardWaterAccumulatesWithinDay(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "water@example.com")
	logs := NewHealthLogService(db, nil)
	dash := NewDashboardService(db)

	_, err := logs.LogWater(user.ID, WaterLogInput{Amount: 500})
	require.NoError(t, err)

	summary, err := dash.Summary(user.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 500.0, summary.Water.Current)
	assert.Equal(t, DefaultWaterGoalML, summary.Water.Goal)

	_, err = logs.LogWater(user.ID, WaterLogInput{Amount: 300})
	require.NoError(t, err)

	summary, err = dash.Summary(user.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 800.0, summary.Water.Current)
}

func TestDashboardResetsOnEmptyDay(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "empty@example.com")
	logs := NewHealthLogService(db, nil)
	dash := NewDashboardService(db)

	yesterday := time.Now().AddDate(0, 0, -1)
	_, err := logs.LogWater(user.ID, WaterLogInput{Amount: 900, LoggedAt: &yesterday})
	require.NoError(t, err)
	_, err = logs.LogExercise(user.ID, ExerciseLogInput{
		ActivityType: models.ActivityRunning,
		Duration:     45,
		LoggedAt:     &yesterday,
	})
	require.NoError(t, err)

	summary, err := dash.Summary(user.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.Water.Current)
	assert.Equal(t, 0, summary.Exercise.Minutes)
}

func TestDashboardSleepHoursFromTodayOnly(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "sleep@example.com")
	logs := NewHealthLogService(db, nil)
	dash := NewDashboardService(db)

	yesterday := time.Now().AddDate(0, 0, -1)
	_, err := logs.LogSleep(user.ID, SleepLogInput{Duration: 300, LoggedAt: &yesterday})
	require.NoError(t, err)

	summary, err := dash.Summary(user.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.Sleep.Hours)

	_, err = logs.LogSleep(user.ID, SleepLogInput{Duration: 450, Quality: models.SleepGood})
	require.NoError(t, err)

	summary, err = dash.Summary(user.ID, time.Now())
	require.NoError(t, err)
	assert.InDelta(t, 7.5, summary.Sleep.Hours, 0.01)
	assert.Equal(t, models.SleepGood, summary.Sleep.Quality)
}

func TestDashboardVitalsKeepLatestKnownValue(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "vitals@example.com")
	logs := NewHealthLogService(db, nil)
	dash := NewDashboardService(db)

	lastWeek := time.Now().AddDate(0, 0, -8)
	_, err := logs.LogBloodPressure(user.ID, BloodPressureLogInput{
		Systolic: 120, Diastolic: 80, LoggedAt: &lastWeek,
	})
	require.NoError(t, err)
	_, err = logs.LogHeartRate(user.ID, HeartRateLogInput{BPM: 62, LoggedAt: &lastWeek})
	require.NoError(t, err)

	summary, err := dash.Summary(user.ID, time.Now())
	require.NoError(t, err)
	require.NotNil(t, summary.VitalSigns.BloodPressure)
	assert.Equal(t, 120, summary.VitalSigns.BloodPressure.Systolic)
	require.NotNil(t, summary.VitalSigns.HeartRate)
	assert.Equal(t, 62, summary.VitalSigns.HeartRate.BPM)
	assert.Nil(t, summary.VitalSigns.Temperature)
}

func TestDashboardWeightTrend(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "trend@example.com")
	logs := NewHealthLogService(db, nil)
	dash := NewDashboardService(db)

	// A single reading has no trend.
	_, err := logs.LogWeight(user.ID, WeightLogInput{Weight: 80})
	require.NoError(t, err)

	summary, err := dash.Summary(user.ID, time.Now())
	require.NoError(t, err)
	require.NotNil(t, summary.Weight.Current)
	assert.Equal(t, "stable", summary.Weight.Trend)

	db.Where("user_id = ?", user.ID).Delete(&models.WeightLog{})

	// Down more than the threshold against a reading 10 days back.
	tenDaysAgo := time.Now().AddDate(0, 0, -10)
	_, err = logs.LogWeight(user.ID, WeightLogInput{Weight: 82, LoggedAt: &tenDaysAgo})
	require.NoError(t, err)
	_, err = logs.LogWeight(user.ID, WeightLogInput{Weight: 80})
	require.NoError(t, err)

	summary, err = dash.Summary(user.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "down", summary.Weight.Trend)
	assert.Equal(t, 80.0, *summary.Weight.Current)
}

func TestDashboardBMIWhenHeightKnown(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "bmi@example.com")
	height := 180.0
	require.NoError(t, db.Model(user).Update("height", height).Error)

	logs := NewHealthLogService(db, nil)
	dash := NewDashboardService(db)

	_, err := logs.LogWeight(user.ID, WeightLogInput{Weight: 81})
	require.NoError(t, err)

	summary, err := dash.Summary(user.ID, time.Now())
	require.NoError(t, err)
	require.NotNil(t, summary.Weight.BMI)
	assert.InDelta(t, 25.0, *summary.Weight.BMI, 0.01)
}

func TestDashboardStreaks(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "streaks@example.com")
	logs := NewHealthLogService(db, nil)
	dash := NewDashboardService(db)

	for days := 0; days < 3; days++ {
		at := time.Now().AddDate(0, 0, -days)
		_, err := logs.LogWater(user.ID, WaterLogInput{Amount: 250, LoggedAt: &at})
		require.NoError(t, err)
	}
	// Gap at day -3, so the streak stops at 3.
	fourBack := time.Now().AddDate(0, 0, -4)
	_, err := logs.LogWater(user.ID, WaterLogInput{Amount: 250, LoggedAt: &fourBack})
	require.NoError(t, err)

	summary, err := dash.Summary(user.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Streaks.Water)
	assert.Equal(t, 0, summary.Streaks.Exercise)
	assert.Equal(t, 3, summary.Streaks.Logging)
}

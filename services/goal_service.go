package services

import (
	"errors"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/maxarisa/family-health-app/models"
	"github.com/maxarisa/family-health-app/utils"
)

type GoalService struct {
	db *gorm.DB
}

func NewGoalService(db *gorm.DB) *GoalService {
	return &GoalService{db: db}
}

type CreateGoalInput struct {
	Type        models.GoalType `json:"type"`
	TargetValue float64         `json:"targetValue"`
	StartDate   *time.Time      `json:"startDate"`
	TargetDate  time.Time       `json:"targetDate"`
	IsShared    *bool           `json:"isShared"`
	ActionPlan  string          `json:"actionPlan"`
}

// Create snapshots the metric's value at creation as the goal's start
// value; the progress formula measures movement from there.
func (s *GoalService) Create(userID uint, in CreateGoalInput) (*models.Goal, error) {
	if !in.Type.Valid() {
		return nil, utils.NewValidationError("Unknown goal type")
	}
	if in.TargetValue <= 0 {
		return nil, utils.NewValidationError("Target value must be a positive number")
	}

	startDate := time.Now()
	if in.StartDate != nil {
		startDate = *in.StartDate
	}
	if !in.TargetDate.After(startDate) {
		return nil, utils.NewValidationError("Target date must be after the start date")
	}

	startValue, _, err := s.currentMetricValue(userID, in.Type, time.Now())
	if err != nil {
		return nil, err
	}

	isShared := true
	if in.IsShared != nil {
		isShared = *in.IsShared
	}

	goal := models.Goal{
		UserID:      userID,
		Type:        in.Type,
		TargetValue: in.TargetValue,
		StartValue:  startValue,
		StartDate:   startDate,
		TargetDate:  in.TargetDate,
		Status:      models.GoalActive,
		IsShared:    isShared,
		ActionPlan:  in.ActionPlan,
	}
	if err := s.db.Create(&goal).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

func (s *GoalService) List(userID uint, status models.GoalStatus) ([]models.Goal, error) {
	if status != "" && !status.Valid() {
		return nil, utils.NewValidationError("Unknown goal status")
	}

	q := s.db.Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var goals []models.Goal
	if err := q.Order("created_at DESC").Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

// Get answers not-found for goals owned by someone else.
func (s *GoalService) Get(userID, goalID uint) (*models.Goal, error) {
	var goal models.Goal
	err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("Goal not found")
	}
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

type UpdateGoalInput struct {
	TargetValue  *float64           `json:"targetValue"`
	CurrentValue *float64           `json:"currentValue"`
	TargetDate   *time.Time         `json:"targetDate"`
	Status       *models.GoalStatus `json:"status"`
	IsShared     *bool              `json:"isShared"`
	ActionPlan   *string            `json:"actionPlan"`
}

func (s *GoalService) Update(userID, goalID uint, in UpdateGoalInput) (*models.Goal, error) {
	goal, err := s.Get(userID, goalID)
	if err != nil {
		return nil, err
	}

	if in.Status != nil && *in.Status != goal.Status {
		if !in.Status.Valid() {
			return nil, utils.NewValidationError("Unknown goal status")
		}
		// completed and abandoned are terminal.
		if goal.Status.Terminal() {
			return nil, utils.NewValidationError("Goal is already " + string(goal.Status))
		}
		goal.Status = *in.Status
	}

	if in.TargetValue != nil {
		if *in.TargetValue <= 0 {
			return nil, utils.NewValidationError("Target value must be a positive number")
		}
		goal.TargetValue = *in.TargetValue
	}
	if in.TargetDate != nil {
		if !in.TargetDate.After(goal.StartDate) {
			return nil, utils.NewValidationError("Target date must be after the start date")
		}
		goal.TargetDate = *in.TargetDate
	}
	if in.CurrentValue != nil {
		goal.CurrentValue = in.CurrentValue
	}
	if in.IsShared != nil {
		goal.IsShared = *in.IsShared
	}
	if in.ActionPlan != nil {
		goal.ActionPlan = *in.ActionPlan
	}

	if err := s.db.Save(goal).Error; err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *GoalService) Delete(userID, goalID uint) error {
	res := s.db.Where("id = ? AND user_id = ?", goalID, userID).Delete(&models.Goal{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.NewNotFoundError("Goal not found")
	}
	return nil
}

type GoalProgress struct {
	GoalID       uint              `json:"goalId"`
	Progress     float64           `json:"progress"`
	CurrentValue float64           `json:"currentValue"`
	TargetValue  float64           `json:"targetValue"`
	Status       models.GoalStatus `json:"status"`
}

// Progress computes the 0-100 completion figure. An explicit
// current-value snapshot on the goal wins; otherwise the value is
// derived from the user's logs. Reaching 100 completes an active goal.
func (s *GoalService) Progress(userID, goalID uint) (*GoalProgress, error) {
	goal, err := s.Get(userID, goalID)
	if err != nil {
		return nil, err
	}

	current := goal.StartValue
	if goal.CurrentValue != nil {
		current = *goal.CurrentValue
	} else {
		derived, ok, err := s.currentMetricValue(userID, goal.Type, time.Now())
		if err != nil {
			return nil, err
		}
		if ok {
			current = derived
		}
	}

	progress := computeProgress(goal.Type, goal.StartValue, goal.TargetValue, current)

	if progress >= 100 && goal.Status == models.GoalActive {
		goal.Status = models.GoalCompleted
		if err := s.db.Model(goal).Update("status", models.GoalCompleted).Error; err != nil {
			return nil, err
		}
		logrus.WithFields(logrus.Fields{"user_id": userID, "goal_id": goalID}).
			Info("goal auto-completed")
	}

	return &GoalProgress{
		GoalID:       goal.ID,
		Progress:     progress,
		CurrentValue: round2(current),
		TargetValue:  goal.TargetValue,
		Status:       goal.Status,
	}, nil
}

// computeProgress applies the monotonic formula for directional goals
// and a proximity score for band goals.
func computeProgress(goalType models.GoalType, start, target, current float64) float64 {
	if goalType.Monotonic() {
		denom := target - start
		if denom == 0 {
			if current == target {
				return 100
			}
			return 0
		}
		return round2(clamp((current-start)/denom*100, 0, 100))
	}

	if target == 0 {
		if current == 0 {
			return 100
		}
		return 0
	}
	return round2(100 - math.Min(100, math.Abs(current-target)/target*100))
}

// currentMetricValue derives a goal's current value from the metric
// store: daily-cumulative kinds use today's totals, the rest use the
// latest reading. ok is false when no relevant log exists.
func (s *GoalService) currentMetricValue(userID uint, goalType models.GoalType, now time.Time) (float64, bool, error) {
	if goalType.DailyCumulative() {
		start, end := dayWindow(now)
		switch goalType.MetricKind() {
		case models.KindWater:
			return s.daySum(&models.WaterLog{}, "amount", userID, start, end)
		case models.KindExercise:
			return s.daySum(&models.ExerciseLog{}, "duration", userID, start, end)
		case models.KindSleep:
			var sleep models.SleepLog
			err := s.db.
				Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, start, end).
				Order("logged_at DESC, id DESC").
				First(&sleep).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, false, nil
			}
			if err != nil {
				return 0, false, err
			}
			return float64(sleep.Duration) / 60.0, true, nil
		}
		return 0, false, nil
	}

	// bmi_target reads the weight table too but needs the profile height.
	if goalType == models.GoalBMITarget {
		weight, ok, err := s.latestWeight(userID)
		if err != nil || !ok {
			return 0, false, err
		}
		var user models.User
		if err := s.db.First(&user, userID).Error; err != nil {
			return 0, false, err
		}
		if user.Height == nil {
			return 0, false, nil
		}
		bmi, err := utils.CalculateBMI(*user.Height, weight)
		if err != nil {
			return 0, false, nil
		}
		return bmi, true, nil
	}

	switch goalType.MetricKind() {
	case models.KindWeight:
		return s.latestWeight(userID)

	case models.KindBloodPressure:
		var bp models.BloodPressureLog
		err := s.db.Where("user_id = ?", userID).
			Order("logged_at DESC, id DESC").First(&bp).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		if err != nil {
			return 0, false, err
		}
		return float64(bp.Systolic), true, nil

	case models.KindHeartRate:
		var hr models.HeartRateLog
		err := s.db.Where("user_id = ?", userID).
			Order("logged_at DESC, id DESC").First(&hr).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		if err != nil {
			return 0, false, err
		}
		return float64(hr.BPM), true, nil
	}

	return 0, false, nil
}

// daySum totals one column over the day window; ok is false when the
// window holds no rows at all.
func (s *GoalService) daySum(model interface{}, column string, userID uint, start, end time.Time) (float64, bool, error) {
	q := s.db.Model(model).
		Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, start, end)
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, false, err
	}
	var total float64
	if err := q.Select("COALESCE(SUM(" + column + "), 0)").Scan(&total).Error; err != nil {
		return 0, false, err
	}
	return total, n > 0, nil
}

func (s *GoalService) latestWeight(userID uint) (float64, bool, error) {
	var w models.WeightLog
	err := s.db.Where("user_id = ?", userID).
		Order("logged_at DESC, id DESC").First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return w.Weight, true, nil
}

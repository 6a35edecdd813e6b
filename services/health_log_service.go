package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/maxarisa/family-health-app/models"
	"github.com/maxarisa/family-health-app/utils"
)

const defaultLogListLimit = 50

type HealthLogService struct {
	db       *gorm.DB
	uploader utils.Uploader
}

func NewHealthLogService(db *gorm.DB, uploader utils.Uploader) *HealthLogService {
	return &HealthLogService{db: db, uploader: uploader}
}

// loggedAtOrNow keeps the event time distinct from the insert time so
// backfilled entries land on their real day.
func loggedAtOrNow(loggedAt *time.Time) time.Time {
	if loggedAt != nil {
		return *loggedAt
	}
	return time.Now()
}

type WaterLogInput struct {
	Amount   float64    `json:"amount"`
	LoggedAt *time.Time `json:"loggedAt"`
}

func (s *HealthLogService) LogWater(userID uint, in WaterLogInput) (*models.WaterLog, error) {
	if in.Amount <= 0 {
		return nil, utils.NewValidationError("Amount must be a positive number")
	}
	log := models.WaterLog{
		UserID:   userID,
		Amount:   in.Amount,
		LoggedAt: loggedAtOrNow(in.LoggedAt),
	}
	if err := s.db.Create(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

type ExerciseLogInput struct {
	ActivityType   models.ActivityType `json:"activityType"`
	CustomActivity string              `json:"customActivity"`
	Duration       int                 `json:"duration"`
	Distance       *float64            `json:"distance"`
	Notes          string              `json:"notes"`
	LoggedAt       *time.Time          `json:"loggedAt"`
}

func (s *HealthLogService) LogExercise(userID uint, in ExerciseLogInput) (*models.ExerciseLog, error) {
	if in.ActivityType == "" || in.Duration <= 0 {
		return nil, utils.NewValidationError("Activity type and duration are required")
	}
	if !in.ActivityType.Valid() {
		return nil, utils.NewValidationError("Unknown activity type")
	}
	log := models.ExerciseLog{
		UserID:         userID,
		ActivityType:   in.ActivityType,
		CustomActivity: in.CustomActivity,
		Duration:       in.Duration,
		Distance:       in.Distance,
		Notes:          in.Notes,
		LoggedAt:       loggedAtOrNow(in.LoggedAt),
	}
	if err := s.db.Create(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

type WeightLogInput struct {
	Weight   float64    `json:"weight"`
	Waist    *float64   `json:"waist"`
	Hips     *float64   `json:"hips"`
	LoggedAt *time.Time `json:"loggedAt"`
}

func (s *HealthLogService) LogWeight(userID uint, in WeightLogInput) (*models.WeightLog, error) {
	if in.Weight <= 0 {
		return nil, utils.NewValidationError("Weight must be a positive number")
	}
	log := models.WeightLog{
		UserID:   userID,
		Weight:   in.Weight,
		Waist:    in.Waist,
		Hips:     in.Hips,
		LoggedAt: loggedAtOrNow(in.LoggedAt),
	}
	if err := s.db.Create(&log).Error; err != nil {
		return nil, err
	}

	// Keep the profile's current weight in step with the newest log.
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).
		Update("current_weight", in.Weight).Error; err != nil {
		logrus.WithField("user_id", userID).Warn("failed to refresh profile weight")
	}
	return &log, nil
}

type SleepLogInput struct {
	Duration int                 `json:"duration"`
	Bedtime  *time.Time          `json:"bedtime"`
	WakeTime *time.Time          `json:"wakeTime"`
	Quality  models.SleepQuality `json:"quality"`
	Notes    string              `json:"notes"`
	LoggedAt *time.Time          `json:"loggedAt"`
}

func (s *HealthLogService) LogSleep(userID uint, in SleepLogInput) (*models.SleepLog, error) {
	if in.Duration <= 0 {
		return nil, utils.NewValidationError("Duration must be a positive number")
	}
	if in.Quality != "" && !in.Quality.Valid() {
		return nil, utils.NewValidationError("Unknown sleep quality")
	}
	log := models.SleepLog{
		UserID:   userID,
		Duration: in.Duration,
		Bedtime:  in.Bedtime,
		WakeTime: in.WakeTime,
		Quality:  in.Quality,
		Notes:    in.Notes,
		LoggedAt: loggedAtOrNow(in.LoggedAt),
	}
	if err := s.db.Create(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

type BloodPressureLogInput struct {
	Systolic  int        `json:"systolic"`
	Diastolic int        `json:"diastolic"`
	Pulse     *int       `json:"pulse"`
	Notes     string     `json:"notes"`
	LoggedAt  *time.Time `json:"loggedAt"`
}

func (s *HealthLogService) LogBloodPressure(userID uint, in BloodPressureLogInput) (*models.BloodPressureLog, error) {
	if in.Systolic <= 0 || in.Diastolic <= 0 {
		return nil, utils.NewValidationError("Valid systolic and diastolic values are required")
	}
	log := models.BloodPressureLog{
		UserID:    userID,
		Systolic:  in.Systolic,
		Diastolic: in.Diastolic,
		Pulse:     in.Pulse,
		Notes:     in.Notes,
		LoggedAt:  loggedAtOrNow(in.LoggedAt),
	}
	if err := s.db.Create(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

type HeartRateLogInput struct {
	BPM      int                     `json:"bpm"`
	Context  models.HeartRateContext `json:"type"`
	Notes    string                  `json:"notes"`
	LoggedAt *time.Time              `json:"loggedAt"`
}

func (s *HealthLogService) LogHeartRate(userID uint, in HeartRateLogInput) (*models.HeartRateLog, error) {
	if in.BPM <= 0 {
		return nil, utils.NewValidationError("Valid BPM value is required")
	}
	if in.Context == "" {
		in.Context = models.HeartRateResting
	}
	if !in.Context.Valid() {
		return nil, utils.NewValidationError("Heart rate type must be resting or active")
	}
	log := models.HeartRateLog{
		UserID:   userID,
		BPM:      in.BPM,
		Context:  in.Context,
		Notes:    in.Notes,
		LoggedAt: loggedAtOrNow(in.LoggedAt),
	}
	if err := s.db.Create(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

type TemperatureLogInput struct {
	Temperature float64                  `json:"temperature"`
	Method      models.TemperatureMethod `json:"method"`
	Symptoms    string                   `json:"symptoms"`
	Notes       string                   `json:"notes"`
	LoggedAt    *time.Time               `json:"loggedAt"`
}

func (s *HealthLogService) LogTemperature(userID uint, in TemperatureLogInput) (*models.TemperatureLog, error) {
	if in.Temperature <= 0 {
		return nil, utils.NewValidationError("Valid temperature value is required")
	}
	if in.Method != "" && !in.Method.Valid() {
		return nil, utils.NewValidationError("Unknown temperature method")
	}
	log := models.TemperatureLog{
		UserID:      userID,
		Temperature: in.Temperature,
		Method:      in.Method,
		Symptoms:    in.Symptoms,
		Notes:       in.Notes,
		LoggedAt:    loggedAtOrNow(in.LoggedAt),
	}
	if err := s.db.Create(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

// LogEntry tags a log with its kind when the seven tables are merged
// into one listing.
type LogEntry struct {
	Type models.MetricKind
	Log  models.HealthLog
}

func (e LogEntry) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(e.Log)
	if err != nil {
		return nil, err
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	fields["type"] = e.Type
	return json.Marshal(fields)
}

type LogFilter struct {
	Kind  models.MetricKind
	Start *time.Time
	End   *time.Time
	Limit int
}

func fetchLogs[T models.HealthLog](db *gorm.DB, userID uint, f LogFilter) ([]T, error) {
	q := db.Where("user_id = ?", userID)
	if f.Start != nil {
		q = q.Where("logged_at >= ?", *f.Start)
	}
	if f.End != nil {
		q = q.Where("logged_at <= ?", *f.End)
	}
	var rows []T
	err := q.Order("logged_at DESC, id DESC").Limit(f.Limit).Find(&rows).Error
	return rows, err
}

func appendEntries[T models.HealthLog](entries []LogEntry, rows []T) []LogEntry {
	for _, r := range rows {
		entries = append(entries, LogEntry{Type: r.Kind(), Log: r})
	}
	return entries
}

// List merges the requested kinds, newest first.
func (s *HealthLogService) List(userID uint, f LogFilter) ([]LogEntry, error) {
	if f.Kind != "" && !f.Kind.Valid() {
		return nil, utils.NewValidationError("Unknown log type")
	}
	if f.Limit <= 0 {
		f.Limit = defaultLogListLimit
	}

	want := func(k models.MetricKind) bool { return f.Kind == "" || f.Kind == k }

	entries := make([]LogEntry, 0)
	if want(models.KindWater) {
		rows, err := fetchLogs[models.WaterLog](s.db, userID, f)
		if err != nil {
			return nil, err
		}
		entries = appendEntries(entries, rows)
	}
	if want(models.KindExercise) {
		rows, err := fetchLogs[models.ExerciseLog](s.db, userID, f)
		if err != nil {
			return nil, err
		}
		entries = appendEntries(entries, rows)
	}
	if want(models.KindWeight) {
		rows, err := fetchLogs[models.WeightLog](s.db, userID, f)
		if err != nil {
			return nil, err
		}
		entries = appendEntries(entries, rows)
	}
	if want(models.KindSleep) {
		rows, err := fetchLogs[models.SleepLog](s.db, userID, f)
		if err != nil {
			return nil, err
		}
		entries = appendEntries(entries, rows)
	}
	if want(models.KindBloodPressure) {
		rows, err := fetchLogs[models.BloodPressureLog](s.db, userID, f)
		if err != nil {
			return nil, err
		}
		entries = appendEntries(entries, rows)
	}
	if want(models.KindHeartRate) {
		rows, err := fetchLogs[models.HeartRateLog](s.db, userID, f)
		if err != nil {
			return nil, err
		}
		entries = appendEntries(entries, rows)
	}
	if want(models.KindTemperature) {
		rows, err := fetchLogs[models.TemperatureLog](s.db, userID, f)
		if err != nil {
			return nil, err
		}
		entries = appendEntries(entries, rows)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Log.LoggedTime().After(entries[j].Log.LoggedTime())
	})
	if len(entries) > f.Limit {
		entries = entries[:f.Limit]
	}
	return entries, nil
}

// LogUpdateInput carries the editable fields across all kinds; only
// the ones relevant to the addressed kind are applied.
type LogUpdateInput struct {
	Amount      *float64                  `json:"amount"`
	Duration    *int                      `json:"duration"`
	Weight      *float64                  `json:"weight"`
	Systolic    *int                      `json:"systolic"`
	Diastolic   *int                      `json:"diastolic"`
	BPM         *int                      `json:"bpm"`
	Temperature *float64                  `json:"temperature"`
	Quality     *models.SleepQuality      `json:"quality"`
	Method      *models.TemperatureMethod `json:"method"`
	Notes       *string                   `json:"notes"`
	LoggedAt    *time.Time                `json:"loggedAt"`
}

func requirePositiveFloat(v *float64, msg string) error {
	if v != nil && *v <= 0 {
		return utils.NewValidationError(msg)
	}
	return nil
}

func requirePositiveInt(v *int, msg string) error {
	if v != nil && *v <= 0 {
		return utils.NewValidationError(msg)
	}
	return nil
}

// findOwned loads a log row by id and confirms ownership. A row that
// exists but belongs to someone else reads as not found.
func findOwned[T models.HealthLog](db *gorm.DB, userID, id uint) (T, error) {
	var row T
	err := db.Where("id = ? AND user_id = ?", id, userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return row, utils.NewNotFoundError("Health log not found")
	}
	return row, err
}

// Update edits one log. The kind is required because ids are scoped
// per table.
func (s *HealthLogService) Update(userID uint, kind models.MetricKind, id uint, in LogUpdateInput) (LogEntry, error) {
	if !kind.Valid() {
		return LogEntry{}, utils.NewValidationError("Unknown log type")
	}

	apply := func(log models.HealthLog, changes map[string]interface{}) (LogEntry, error) {
		if in.LoggedAt != nil {
			changes["logged_at"] = *in.LoggedAt
		}
		if len(changes) > 0 {
			if err := s.db.Model(log).Updates(changes).Error; err != nil {
				return LogEntry{}, err
			}
		}
		return LogEntry{Type: kind, Log: log}, nil
	}

	switch kind {
	case models.KindWater:
		row, err := findOwned[models.WaterLog](s.db, userID, id)
		if err != nil {
			return LogEntry{}, err
		}
		if err := requirePositiveFloat(in.Amount, "Amount must be a positive number"); err != nil {
			return LogEntry{}, err
		}
		changes := map[string]interface{}{}
		if in.Amount != nil {
			changes["amount"] = *in.Amount
			row.Amount = *in.Amount
		}
		if in.LoggedAt != nil {
			row.LoggedAt = *in.LoggedAt
		}
		return apply(&row, changes)

	case models.KindExercise:
		row, err := findOwned[models.ExerciseLog](s.db, userID, id)
		if err != nil {
			return LogEntry{}, err
		}
		if err := requirePositiveInt(in.Duration, "Duration must be a positive number"); err != nil {
			return LogEntry{}, err
		}
		changes := map[string]interface{}{}
		if in.Duration != nil {
			changes["duration"] = *in.Duration
			row.Duration = *in.Duration
		}
		if in.LoggedAt != nil {
			row.LoggedAt = *in.LoggedAt
		}
		if in.Notes != nil {
			changes["notes"] = *in.Notes
			row.Notes = *in.Notes
		}
		return apply(&row, changes)

	case models.KindWeight:
		row, err := findOwned[models.WeightLog](s.db, userID, id)
		if err != nil {
			return LogEntry{}, err
		}
		if err := requirePositiveFloat(in.Weight, "Weight must be a positive number"); err != nil {
			return LogEntry{}, err
		}
		changes := map[string]interface{}{}
		if in.Weight != nil {
			changes["weight"] = *in.Weight
			row.Weight = *in.Weight
		}
		if in.LoggedAt != nil {
			row.LoggedAt = *in.LoggedAt
		}
		return apply(&row, changes)

	case models.KindSleep:
		row, err := findOwned[models.SleepLog](s.db, userID, id)
		if err != nil {
			return LogEntry{}, err
		}
		if err := requirePositiveInt(in.Duration, "Duration must be a positive number"); err != nil {
			return LogEntry{}, err
		}
		if in.Quality != nil && !in.Quality.Valid() {
			return LogEntry{}, utils.NewValidationError("Unknown sleep quality")
		}
		changes := map[string]interface{}{}
		if in.Duration != nil {
			changes["duration"] = *in.Duration
			row.Duration = *in.Duration
		}
		if in.Quality != nil {
			changes["quality"] = *in.Quality
			row.Quality = *in.Quality
		}
		if in.LoggedAt != nil {
			row.LoggedAt = *in.LoggedAt
		}
		if in.Notes != nil {
			changes["notes"] = *in.Notes
			row.Notes = *in.Notes
		}
		return apply(&row, changes)

	case models.KindBloodPressure:
		row, err := findOwned[models.BloodPressureLog](s.db, userID, id)
		if err != nil {
			return LogEntry{}, err
		}
		if err := requirePositiveInt(in.Systolic, "Valid systolic and diastolic values are required"); err != nil {
			return LogEntry{}, err
		}
		if err := requirePositiveInt(in.Diastolic, "Valid systolic and diastolic values are required"); err != nil {
			return LogEntry{}, err
		}
		changes := map[string]interface{}{}
		if in.Systolic != nil {
			changes["systolic"] = *in.Systolic
			row.Systolic = *in.Systolic
		}
		if in.Diastolic != nil {
			changes["diastolic"] = *in.Diastolic
			row.Diastolic = *in.Diastolic
		}
		if in.LoggedAt != nil {
			row.LoggedAt = *in.LoggedAt
		}
		if in.Notes != nil {
			changes["notes"] = *in.Notes
			row.Notes = *in.Notes
		}
		return apply(&row, changes)

	case models.KindHeartRate:
		row, err := findOwned[models.HeartRateLog](s.db, userID, id)
		if err != nil {
			return LogEntry{}, err
		}
		if err := requirePositiveInt(in.BPM, "Valid BPM value is required"); err != nil {
			return LogEntry{}, err
		}
		changes := map[string]interface{}{}
		if in.BPM != nil {
			changes["bpm"] = *in.BPM
			row.BPM = *in.BPM
		}
		if in.LoggedAt != nil {
			row.LoggedAt = *in.LoggedAt
		}
		if in.Notes != nil {
			changes["notes"] = *in.Notes
			row.Notes = *in.Notes
		}
		return apply(&row, changes)

	case models.KindTemperature:
		row, err := findOwned[models.TemperatureLog](s.db, userID, id)
		if err != nil {
			return LogEntry{}, err
		}
		if err := requirePositiveFloat(in.Temperature, "Valid temperature value is required"); err != nil {
			return LogEntry{}, err
		}
		if in.Method != nil && !in.Method.Valid() {
			return LogEntry{}, utils.NewValidationError("Unknown temperature method")
		}
		changes := map[string]interface{}{}
		if in.Temperature != nil {
			changes["temperature"] = *in.Temperature
			row.Temperature = *in.Temperature
		}
		if in.Method != nil {
			changes["method"] = *in.Method
			row.Method = *in.Method
		}
		if in.LoggedAt != nil {
			row.LoggedAt = *in.LoggedAt
		}
		if in.Notes != nil {
			changes["notes"] = *in.Notes
			row.Notes = *in.Notes
		}
		return apply(&row, changes)
	}

	return LogEntry{}, utils.NewValidationError("Unknown log type")
}

// Delete removes one owned log row.
func (s *HealthLogService) Delete(userID uint, kind models.MetricKind, id uint) error {
	if !kind.Valid() {
		return utils.NewValidationError("Unknown log type")
	}

	var model interface{}
	switch kind {
	case models.KindWater:
		model = &models.WaterLog{}
	case models.KindExercise:
		model = &models.ExerciseLog{}
	case models.KindWeight:
		model = &models.WeightLog{}
	case models.KindSleep:
		model = &models.SleepLog{}
	case models.KindBloodPressure:
		model = &models.BloodPressureLog{}
	case models.KindHeartRate:
		model = &models.HeartRateLog{}
	case models.KindTemperature:
		model = &models.TemperatureLog{}
	}

	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.NewNotFoundError("Health log not found")
	}
	return nil
}

// Export gathers every log the user owns, serializes it, and uploads
// the file to object storage.
func (s *HealthLogService) Export(ctx context.Context, userID uint) (string, error) {
	if s.uploader == nil {
		return "", utils.NewInternalError("export storage not configured")
	}

	// No limit for exports; use a window large enough for everything.
	entries, err := s.List(userID, LogFilter{Limit: 1 << 30})
	if err != nil {
		return "", err
	}

	payload := map[string]interface{}{
		"userId":     userID,
		"exportedAt": time.Now().UTC(),
		"logs":       entries,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("exports/user-%d-%d.json", userID, time.Now().UnixNano())
	url, err := s.uploader.Upload(ctx, key, "application/json", data)
	if err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).
			Error("health data export upload failed")
		return "", utils.NewInternalError("export upload failed")
	}
	return url, nil
}

package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/maxarisa/family-health-app/models"
	"github.com/maxarisa/family-health-app/utils"
)

type ReminderService struct {
	db *gorm.DB
}

func NewReminderService(db *gorm.DB) *ReminderService {
	return &ReminderService{db: db}
}

func validReminderTime(value string) bool {
	_, err := time.Parse("15:04", value)
	return err == nil
}

type ReminderInput struct {
	Type       models.ReminderType `json:"type"`
	Title      string              `json:"title"`
	Message    string              `json:"message"`
	Time       string              `json:"time"`
	IsActive   *bool               `json:"isActive"`
	DaysOfWeek string              `json:"daysOfWeek"`
}

func (s *ReminderService) Create(userID uint, in ReminderInput) (*models.Reminder, error) {
	if !in.Type.Valid() {
		return nil, utils.NewValidationError("Unknown reminder type")
	}
	if in.Title == "" {
		return nil, utils.NewValidationError("Title is required")
	}
	if !validReminderTime(in.Time) {
		return nil, utils.NewValidationError("Time must be in HH:MM format")
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	reminder := models.Reminder{
		UserID:     userID,
		Type:       in.Type,
		Title:      in.Title,
		Message:    in.Message,
		Time:       in.Time,
		IsActive:   active,
		DaysOfWeek: in.DaysOfWeek,
	}
	if err := s.db.Create(&reminder).Error; err != nil {
		return nil, err
	}
	return &reminder, nil
}

func (s *ReminderService) List(userID uint) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := s.db.Where("user_id = ?", userID).Order("time ASC").Find(&reminders).Error
	return reminders, err
}

type ReminderUpdateInput struct {
	Title      *string `json:"title"`
	Message    *string `json:"message"`
	Time       *string `json:"time"`
	IsActive   *bool   `json:"isActive"`
	DaysOfWeek *string `json:"daysOfWeek"`
}

func (s *ReminderService) Update(userID, id uint, in ReminderUpdateInput) (*models.Reminder, error) {
	var reminder models.Reminder
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&reminder).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("Reminder not found")
	}
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, utils.NewValidationError("Title is required")
		}
		reminder.Title = *in.Title
	}
	if in.Message != nil {
		reminder.Message = *in.Message
	}
	if in.Time != nil {
		if !validReminderTime(*in.Time) {
			return nil, utils.NewValidationError("Time must be in HH:MM format")
		}
		reminder.Time = *in.Time
	}
	if in.IsActive != nil {
		reminder.IsActive = *in.IsActive
	}
	if in.DaysOfWeek != nil {
		reminder.DaysOfWeek = *in.DaysOfWeek
	}

	if err := s.db.Save(&reminder).Error; err != nil {
		return nil, err
	}
	return &reminder, nil
}

func (s *ReminderService) Delete(userID, id uint) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Reminder{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.NewNotFoundError("Reminder not found")
	}
	return nil
}

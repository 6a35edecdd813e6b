package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/maxarisa/family-health-app/models"
)

// CoachService stands in for the external message generator: it
// returns a short motivational string plus its trigger category, keyed
// by the user's configured coach style.
type CoachService struct {
	db *gorm.DB
}

func NewCoachService(db *gorm.DB) *CoachService {
	return &CoachService{db: db}
}

type CoachMessage struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

var dailyMessages = map[models.CoachStyle][]string{
	models.CoachEncouraging: {
		"Good morning! Ready to make today a healthy day? Let's start by staying hydrated!",
		"Every small step counts. What will you log first today?",
		"You showed up today, and that's what matters. Let's make it count!",
	},
	models.CoachMotivating: {
		"No excuses today. Crush your water goal before noon!",
		"Champions log their workouts. Are you a champion?",
		"Push harder than yesterday. Your goals won't chase themselves.",
	},
	models.CoachInformative: {
		"Hydration supports focus and energy. Aim for 2000 ml spread across the day.",
		"Thirty minutes of moderate exercise daily lowers cardiovascular risk measurably.",
		"Consistent sleep and wake times improve sleep quality more than total duration alone.",
	},
	models.CoachFriendly: {
		"Hey there! How about a glass of water to kick things off?",
		"Hope you slept well! Don't forget to jot it down.",
		"A quick walk with the family counts too. Enjoy your day!",
	},
}

var promptMessages = map[string]string{
	"water":    "You're doing great! Just a little more to reach your daily water goal.",
	"exercise": "A short walk still moves the needle. Lace up and log it!",
	"sleep":    "Winding down early tonight pays off tomorrow morning.",
	"weight":   "Trends matter more than single readings. Keep logging steadily.",
}

const defaultPrompt = "You're doing great! Keep up the healthy habits."

// DailyMessage rotates through the user's style bank by day so the
// message changes daily but stays stable within a day.
func (s *CoachService) DailyMessage(userID uint, now time.Time) (*CoachMessage, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}

	style := user.CoachStyle
	bank, ok := dailyMessages[style]
	if !ok {
		bank = dailyMessages[models.CoachEncouraging]
	}

	return &CoachMessage{
		Message: bank[now.YearDay()%len(bank)],
		Type:    "daily_checkin",
	}, nil
}

func (s *CoachService) Prompt(context string) *CoachMessage {
	message, ok := promptMessages[context]
	if !ok {
		message = defaultPrompt
	}
	return &CoachMessage{Message: message, Type: "motivational"}
}

// Celebration mirrors the fixed achievement map of the generator.
func (s *CoachService) Celebration(achievementType, value string) *CoachMessage {
	var message string
	switch achievementType {
	case "streak":
		message = fmt.Sprintf("Incredible! You've maintained a %s-day streak! Keep up the amazing work!", value)
	case "goal_complete":
		message = "Congratulations! You've achieved your goal! Time to set a new challenge!"
	case "personal_best":
		message = "New personal best! You've outdone yourself. This is what progress looks like!"
	default:
		message = "Amazing achievement! You should be proud of yourself!"
	}
	return &CoachMessage{Message: message, Type: "celebration"}
}

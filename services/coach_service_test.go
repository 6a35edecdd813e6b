package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxarisa/family-health-app/models"
)

func TestDailyMessageStableWithinDayAndStyled(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "coach@example.com")
	coach := NewCoachService(db)

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	first, err := coach.DailyMessage(user.ID, now)
	require.NoError(t, err)
	assert.Equal(t, "daily_checkin", first.Type)
	assert.Contains(t, dailyMessages[models.CoachEncouraging], first.Message)

	again, err := coach.DailyMessage(user.ID, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, first.Message, again.Message)

	require.NoError(t, db.Model(user).Update("coach_style", models.CoachMotivating).Error)
	styled, err := coach.DailyMessage(user.ID, now)
	require.NoError(t, err)
	assert.Contains(t, dailyMessages[models.CoachMotivating], styled.Message)
}

func TestPromptFallsBackOnUnknownContext(t *testing.T) {
	coach := NewCoachService(nil)

	known := coach.Prompt("water")
	assert.Equal(t, promptMessages["water"], known.Message)
	assert.Equal(t, "motivational", known.Type)

	unknown := coach.Prompt("meditation")
	assert.Equal(t, defaultPrompt, unknown.Message)
}

func TestCelebrationMessages(t *testing.T) {
	coach := NewCoachService(nil)

	streak := coach.Celebration("streak", "7")
	assert.Contains(t, streak.Message, "7-day streak")
	assert.Equal(t, "celebration", streak.Type)

	goal := coach.Celebration("goal_complete", "")
	assert.Contains(t, goal.Message, "Congratulations")

	other := coach.Celebration("mystery", "")
	assert.Equal(t, "Amazing achievement! You should be proud of yourself!", other.Message)
}

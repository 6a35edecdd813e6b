package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxarisa/family-health-app/models"
	"github.com/maxarisa/family-health-app/utils"
)

func TestReminderCreateValidatesTimeFormat(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "reminder@example.com")
	reminders := NewReminderService(db)

	_, err := reminders.Create(user.ID, ReminderInput{
		Type: models.ReminderWater, Title: "Drink up", Time: "25:99",
	})
	require.Error(t, err)
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Status)

	reminder, err := reminders.Create(user.ID, ReminderInput{
		Type: models.ReminderWater, Title: "Drink up", Time: "09:30",
	})
	require.NoError(t, err)
	assert.True(t, reminder.IsActive)
}

func TestReminderInactiveOnCreateSticks(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "reminder-off@example.com")
	reminders := NewReminderService(db)

	reminder, err := reminders.Create(user.ID, ReminderInput{
		Type: models.ReminderExercise, Title: "Evening walk", Time: "18:00",
		IsActive: ptrBool(false),
	})
	require.NoError(t, err)

	var reloaded models.Reminder
	require.NoError(t, db.First(&reloaded, reminder.ID).Error)
	assert.False(t, reloaded.IsActive)
}

func TestReminderUpdateAndDeleteScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "reminder-owner@example.com")
	other := createTestUser(t, db, "reminder-other@example.com")
	reminders := NewReminderService(db)

	reminder, err := reminders.Create(owner.ID, ReminderInput{
		Type: models.ReminderMedication, Title: "Evening dose", Time: "22:00",
	})
	require.NoError(t, err)

	_, err = reminders.Update(other.ID, reminder.ID, ReminderUpdateInput{
		Title: ptrString("Hijacked"),
	})
	require.Error(t, err)
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Status)

	updated, err := reminders.Update(owner.ID, reminder.ID, ReminderUpdateInput{
		Time:     ptrString("21:30"),
		IsActive: ptrBool(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "21:30", updated.Time)
	assert.False(t, updated.IsActive)

	require.Error(t, reminders.Delete(other.ID, reminder.ID))
	require.NoError(t, reminders.Delete(owner.ID, reminder.ID))

	list, err := reminders.List(owner.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

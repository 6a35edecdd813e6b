package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxarisa/family-health-app/models"
	"github.com/maxarisa/family-health-app/utils"
)

func TestUpdateProfilePartialFields(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "profile@example.com")
	users := NewUserService(db, newFamilyService(db, nil))

	updated, err := users.UpdateProfile(user.ID, UpdateProfileInput{
		Age:    ptrInt(34),
		Height: ptrFloat(172),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Age)
	assert.Equal(t, 34, *updated.Age)
	assert.Equal(t, "Test User", updated.Name)
	assert.Nil(t, updated.CurrentWeight)

	_, err = users.UpdateProfile(user.ID, UpdateProfileInput{Height: ptrFloat(-1)})
	require.Error(t, err)
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Status)
}

func TestUpdatePrivacySettingsPersistsFalse(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "privacy@example.com")
	users := NewUserService(db, newFamilyService(db, nil))

	updated, err := users.UpdatePrivacySettings(user.ID, UpdatePrivacyInput{
		WaterIntakeShared: ptrBool(false),
		WeightShared:      ptrBool(true),
	})
	require.NoError(t, err)
	assert.False(t, updated.WaterIntakeShared)
	assert.True(t, updated.WeightShared)
	assert.True(t, updated.SleepShared)

	var reloaded models.PrivacySettings
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&reloaded).Error)
	assert.False(t, reloaded.WaterIntakeShared)
	assert.True(t, reloaded.WeightShared)
}

func TestUpdateCoachStyle(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "coach-style@example.com")
	users := NewUserService(db, newFamilyService(db, nil))

	updated, err := users.UpdateCoachStyle(user.ID, models.CoachMotivating)
	require.NoError(t, err)
	assert.Equal(t, models.CoachMotivating, updated.CoachStyle)

	_, err = users.UpdateCoachStyle(user.ID, "sarcastic")
	require.Error(t, err)
}

func TestDeleteAccountRemovesOwnedData(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "delete-acct@example.com")
	families := newFamilyService(db, nil)
	users := NewUserService(db, families)
	logs := NewHealthLogService(db, nil)

	_, err := logs.LogWater(user.ID, WaterLogInput{Amount: 500})
	require.NoError(t, err)
	goal := models.Goal{
		UserID: user.ID, Type: models.GoalWaterIntake, TargetValue: 2000,
		StartDate: time.Now(), TargetDate: time.Now().AddDate(0, 1, 0),
		Status: models.GoalActive,
	}
	require.NoError(t, db.Create(&goal).Error)

	require.NoError(t, users.DeleteAccount(user.ID))

	var n int64
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&models.WaterLog{}).Where("user_id = ?", user.ID).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&models.Goal{}).Where("user_id = ?", user.ID).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&models.PrivacySettings{}).Where("user_id = ?", user.ID).Count(&n).Error)
	assert.Zero(t, n)
}

func TestDeleteAccountHandsOffFamilyAdmin(t *testing.T) {
	db := newTestDB(t)
	admin := createTestUser(t, db, "delete-admin@example.com")
	member := createTestUser(t, db, "delete-member@example.com")
	families := newFamilyService(db, nil)
	users := NewUserService(db, families)

	family, err := families.Create(admin.ID, "Departing Family")
	require.NoError(t, err)
	joinFamily(t, db, family.ID, member.ID, time.Now().Add(time.Minute))

	require.NoError(t, users.DeleteAccount(admin.ID))

	var reloaded models.Family
	require.NoError(t, db.First(&reloaded, family.ID).Error)
	assert.Equal(t, member.ID, reloaded.AdminID)
}

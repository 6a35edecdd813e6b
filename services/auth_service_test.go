package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxarisa/family-health-app/models"
	"github.com/maxarisa/family-health-app/utils"
)

func TestRegisterCreatesUserWithDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	mailer := &fakeMailer{}
	auth := NewAuthService(db, mailer)

	user, token, err := auth.Register(RegisterInput{
		Email:    "Anna@Example.com",
		Password: "s3cret-pass",
		Name:     "Anna",
	})
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", user.Email)
	assert.Equal(t, models.CoachEncouraging, user.CoachStyle)
	assert.Nil(t, user.Age)
	assert.Nil(t, user.Height)
	assert.Nil(t, user.CurrentWeight)
	assert.False(t, user.EmailVerified)
	assert.NotEmpty(t, token)
	assert.Len(t, mailer.verifications, 1)

	// The bearer token identifies the new account.
	userID, email, err := utils.ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, user.Email, email)

	var settings models.PrivacySettings
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&settings).Error)
	assert.True(t, settings.WaterIntakeShared)
	assert.False(t, settings.WeightShared)
	assert.False(t, settings.VitalSignsShared)
}

func TestRegisterRejectsCaseInsensitiveDuplicate(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	auth := NewAuthService(db, nil)

	_, _, err := auth.Register(RegisterInput{
		Email: "family@example.com", Password: "pass-one", Name: "First",
	})
	require.NoError(t, err)

	_, _, err = auth.Register(RegisterInput{
		Email: "Family@Example.COM", Password: "pass-two", Name: "Second",
	})
	require.Error(t, err)
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Status)

	var n int64
	require.NoError(t, db.Model(&models.User{}).
		Where("email = ?", "family@example.com").Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestRegisterValidation(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	auth := NewAuthService(db, nil)

	_, _, err := auth.Register(RegisterInput{Email: "x@example.com", Password: "pw"})
	require.Error(t, err)

	_, _, err = auth.Register(RegisterInput{
		Email: "x@example.com", Password: "pw", Name: "X", CoachStyle: "bossy",
	})
	require.Error(t, err)
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Status)
}

func TestLoginUniformFailureMessage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	auth := NewAuthService(db, nil)

	_, _, err := auth.Register(RegisterInput{
		Email: "login@example.com", Password: "right-password", Name: "Login",
	})
	require.NoError(t, err)

	user, token, err := auth.Login("Login@Example.com", "right-password")
	require.NoError(t, err)
	assert.Equal(t, "login@example.com", user.Email)
	assert.NotEmpty(t, token)

	_, _, wrongPass := auth.Login("login@example.com", "wrong-password")
	require.Error(t, wrongPass)
	_, _, noUser := auth.Login("nobody@example.com", "whatever-pass")
	require.Error(t, noUser)

	passErr, ok := utils.AsAppError(wrongPass)
	require.True(t, ok)
	userErr, ok := utils.AsAppError(noUser)
	require.True(t, ok)
	assert.Equal(t, 401, passErr.Status)
	assert.Equal(t, 401, userErr.Status)
	assert.Equal(t, passErr.Message, userErr.Message)
}

func TestPasswordResetFlow(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	mailer := &fakeMailer{}
	auth := NewAuthService(db, mailer)

	_, _, err := auth.Register(RegisterInput{
		Email: "reset@example.com", Password: "old-password", Name: "Reset",
	})
	require.NoError(t, err)

	// Unknown emails get the same silent success.
	require.NoError(t, auth.RequestPasswordReset("unknown@example.com"))
	assert.Empty(t, mailer.resetCodes)

	require.NoError(t, auth.RequestPasswordReset("reset@example.com"))
	require.Len(t, mailer.resetCodes, 1)
	code := mailer.resetCodes[0]

	require.Error(t, auth.ResetPassword("not-the-code", "new-password"))
	require.NoError(t, auth.ResetPassword(code, "new-password"))

	_, _, err = auth.Login("reset@example.com", "old-password")
	require.Error(t, err)
	_, _, err = auth.Login("reset@example.com", "new-password")
	require.NoError(t, err)

	// Codes are single use.
	require.Error(t, auth.ResetPassword(code, "another-password"))
}

func TestVerifyEmailFlow(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	mailer := &fakeMailer{}
	auth := NewAuthService(db, mailer)

	user, _, err := auth.Register(RegisterInput{
		Email: "verify@example.com", Password: "some-password", Name: "Verify",
	})
	require.NoError(t, err)
	require.Len(t, mailer.verifications, 1)

	require.Error(t, auth.VerifyEmail("bogus-token"))
	require.NoError(t, auth.VerifyEmail(mailer.verifications[0]))

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.True(t, reloaded.EmailVerified)

	// The token is cleared once used.
	require.Error(t, auth.VerifyEmail(mailer.verifications[0]))
}

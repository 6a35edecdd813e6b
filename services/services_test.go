package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/maxarisa/family-health-app/config"
	"github.com/maxarisa/family-health-app/models"
)

var testDBSeq atomic.Int64

// newTestDB opens a uniquely named in-memory sqlite database so tests
// never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:servicetest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := models.User{
		Email:        email,
		PasswordHash: "x",
		Name:         "Test User",
		CoachStyle:   models.CoachEncouraging,
	}
	require.NoError(t, db.Create(&user).Error)
	settings := models.DefaultPrivacySettings(user.ID)
	require.NoError(t, db.Create(&settings).Error)
	return &user
}

func ptrFloat(v float64) *float64 { return &v }
func ptrInt(v int) *int           { return &v }
func ptrBool(v bool) *bool        { return &v }
func ptrString(v string) *string  { return &v }
func ptrTime(v time.Time) *time.Time {
	return &v
}

type fakeMailer struct {
	invites       []string
	resetCodes    []string
	verifications []string
}

func (m *fakeMailer) SendFamilyInvite(to, familyName, token string) error {
	m.invites = append(m.invites, to)
	return nil
}

func (m *fakeMailer) SendResetCode(to, code string) error {
	m.resetCodes = append(m.resetCodes, code)
	return nil
}

func (m *fakeMailer) SendVerificationEmail(to, token string) error {
	m.verifications = append(m.verifications, token)
	return nil
}

type fakeUploader struct {
	keys []string
	data [][]byte
}

func (u *fakeUploader) Upload(_ context.Context, key, _ string, data []byte) (string, error) {
	u.keys = append(u.keys, key)
	u.data = append(u.data, data)
	return "https://uploads.test/" + key, nil
}

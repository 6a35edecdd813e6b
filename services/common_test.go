package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayWindowEndsAtNextMidnight(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2026-03-08 is a 23-hour day in New York (spring forward).
	start, end := dayWindow(time.Date(2026, 3, 8, 15, 0, 0, 0, loc))
	assert.Equal(t, time.Date(2026, 3, 8, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, loc), end)
	assert.Equal(t, 23*time.Hour, end.Sub(start))

	// 2026-11-01 is a 25-hour day (fall back).
	start, end = dayWindow(time.Date(2026, 11, 1, 15, 0, 0, 0, loc))
	assert.Equal(t, time.Date(2026, 11, 2, 0, 0, 0, 0, loc), end)
	assert.Equal(t, 25*time.Hour, end.Sub(start))
}

func TestClampAndRound(t *testing.T) {
	assert.Equal(t, 0.0, clamp(-5, 0, 100))
	assert.Equal(t, 100.0, clamp(150, 0, 100))
	assert.Equal(t, 42.0, clamp(42, 0, 100))
	assert.Equal(t, 33.33, round2(100.0/3.0))
}

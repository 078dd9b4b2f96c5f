package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	valid := []string{"00:00", "09:00", "12:30", "23:59"}
	for _, s := range valid {
		ts, err := NewTimeStringFromString(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, ts.String())
	}

	invalid := []string{"", "9:00:00", "24:00", "12:60", "noon", "12.30"}
	for _, s := range invalid {
		_, err := NewTimeStringFromString(s)
		assert.ErrorIs(t, err, ErrInvalidTimeFormat, s)
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("10:45")

	shifted, err := ts.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:15"), shifted)

	back, err := ts.AddMinutes(-45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:00"), back)

	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_Comparison(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("21:00"))
	assert.True(t, TimeString("21:00").IsAfter("09:00"))
	assert.False(t, TimeString("12:00").IsBefore("12:00"))
	assert.False(t, TimeString("12:00").IsAfter("12:00"))
}

func TestTimeString_At(t *testing.T) {
	date := time.Date(2026, 9, 15, 23, 59, 59, 0, time.UTC)

	instant := TimeString("09:30").At(date)

	assert.Equal(t, time.Date(2026, 9, 15, 9, 30, 0, 0, time.UTC), instant)
}

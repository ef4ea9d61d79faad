package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"09:00", false},
		{"00:00", false},
		{"23:59", false},
		{"9:00", true},
		{"24:00", true},
		{"12:60", true},
		{"12-30", true},
		{"", true},
		{"noon", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	ts, err := NewTimeStringFromMinutes(0)
	require.NoError(t, err)
	assert.Equal(t, "00:00", ts.String())

	ts, err = NewTimeStringFromMinutes(615)
	require.NoError(t, err)
	assert.Equal(t, "10:15", ts.String())

	ts, err = NewTimeStringFromMinutes(23*60 + 59)
	require.NoError(t, err)
	assert.Equal(t, "23:59", ts.String())

	_, err = NewTimeStringFromMinutes(-1)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	_, err = NewTimeStringFromMinutes(24 * 60)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeStringMinutesOfDay(t *testing.T) {
	ts := TimeString("14:30")
	minutes, err := ts.MinutesOfDay()
	require.NoError(t, err)
	assert.Equal(t, 14*60+30, minutes)

	_, err = TimeString("bad").MinutesOfDay()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts := TimeString("10:00")

	moved, err := ts.AddMinutes(75)
	require.NoError(t, err)
	assert.Equal(t, "11:15", moved.String())

	moved, err = ts.AddMinutes(-30)
	require.NoError(t, err)
	assert.Equal(t, "09:30", moved.String())

	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeStringOrdering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:00").IsAfter("09:59"))
	assert.False(t, TimeString("12:00").IsBefore("12:00"))
}

func TestTimeStringAt(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	date := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	ts := TimeString("09:30")

	bound, err := ts.At(date, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 13, 9, 30, 0, 0, loc), bound)

	_, err = TimeString("oops").At(date, loc)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeStringScan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:45"))
	assert.Equal(t, "10:45", ts.String())

	require.NoError(t, ts.Scan([]byte("08:15")))
	assert.Equal(t, "08:15", ts.String())

	require.NoError(t, ts.Scan(time.Date(2025, 1, 1, 7, 5, 0, 0, time.UTC)))
	assert.Equal(t, "07:05", ts.String())

	assert.Error(t, ts.Scan("25:00"))
	assert.Error(t, ts.Scan(42))
}

func TestTimeStringValue(t *testing.T) {
	v, err := TimeString("16:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "16:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("junk").Value()
	assert.Error(t, err)
}

func TestTimeStringJSON(t *testing.T) {
	data, err := TimeString("11:00").MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"11:00"`, string(data))

	var ts TimeString
	require.NoError(t, ts.UnmarshalJSON([]byte(`"13:45"`)))
	assert.Equal(t, "13:45", ts.String())
}

package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    TimeString
		wantErr bool
	}{
		{name: "canonical", in: "14:00", want: "14:00"},
		{name: "single digit hour", in: "9:30", want: "09:30"},
		{name: "postgres time with seconds", in: "08:15:00", want: "08:15"},
		{name: "hour out of range", in: "24:00", wantErr: true},
		{name: "minute out of range", in: "10:60", wantErr: true},
		{name: "short minute", in: "10:5", wantErr: true},
		{name: "seconds are dropped", in: "09:00:30", want: "09:00"},
		{name: "seconds not a number", in: "09:00:zz", wantErr: true},
		{name: "seconds out of range", in: "09:00:60", wantErr: true},
		{name: "short seconds", in: "09:00:5", wantErr: true},
		{name: "signed minute", in: "09:+5", wantErr: true},
		{name: "garbage", in: "ten", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	next, err := TimeString("09:30").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), next)

	_, err = TimeString("23:30").AddMinutes(30)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:01").IsAfter("10:00"))
	assert.True(t, TimeString("9:00").Equal("09:00"))
}

func TestNewDateStringFromString(t *testing.T) {
	d, err := NewDateStringFromString("2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, DateString("2024-06-10"), d)

	_, err = NewDateStringFromString("2024-02-30")
	assert.ErrorIs(t, err, ErrInvalidDateString)

	_, err = NewDateStringFromString("10/06/2024")
	assert.ErrorIs(t, err, ErrInvalidDateString)
}

func TestDateString_At_UsesLocalComponents(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)

	at, err := DateString("2024-06-10").At("23:30", loc)
	require.NoError(t, err)

	// Дата не должна "уехать" на следующий день из-за пересчета в UTC
	y, m, d := at.Date()
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.June, m)
	assert.Equal(t, 10, d)
	assert.Equal(t, 23, at.Hour())
	assert.Equal(t, 30, at.Minute())
	assert.Equal(t, loc, at.Location())
}

func TestDateString_Weekday(t *testing.T) {
	wd, err := DateString("2024-06-10").Weekday()
	require.NoError(t, err)
	assert.Equal(t, time.Monday, wd)
}

func TestDateString_Scan(t *testing.T) {
	var d DateString
	require.NoError(t, d.Scan(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, DateString("2024-06-10"), d)

	var tm TimeString
	require.NoError(t, tm.Scan([]byte("14:00:00")))
	assert.Equal(t, TimeString("14:00"), tm)
}

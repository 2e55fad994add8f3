package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	t.Run("valid values", func(t *testing.T) {
		for _, s := range []string{"00:00", "09:30", "23:59", "24:00"} {
			ts, err := NewTimeStringFromString(s)
			require.NoError(t, err, s)
			assert.Equal(t, s, ts.String())
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		for _, s := range []string{"", "9", "25:00", "24:01", "10:60", "abc"} {
			_, err := NewTimeStringFromString(s)
			assert.Error(t, err, s)
		}
	})
}

func TestTimeString_TotalMinutes(t *testing.T) {
	cases := []struct {
		in      TimeString
		minutes int
	}{
		{"00:00", 0},
		{"09:30", 570},
		{"23:59", 1439},
		{"24:00", 1440},
	}

	for _, tc := range cases {
		got, err := tc.in.TotalMinutes()
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.minutes, got, tc.in)
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	t.Run("within day", func(t *testing.T) {
		got, err := TimeString("09:30").AddMinutes(90)
		require.NoError(t, err)
		assert.Equal(t, TimeString("11:00"), got)
	})

	t.Run("lands exactly on end of day", func(t *testing.T) {
		got, err := TimeString("23:00").AddMinutes(60)
		require.NoError(t, err)
		assert.Equal(t, TimeString("24:00"), got)
	})

	t.Run("crossing midnight rejected", func(t *testing.T) {
		_, err := TimeString("23:30").AddMinutes(60)
		assert.Error(t, err)
	})
}

func TestTimeString_Comparison(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("22:00"))
	assert.False(t, TimeString("22:00").IsBefore("09:00"))
	assert.True(t, TimeString("22:00").IsAfter("09:00"))
	assert.False(t, TimeString("09:00").IsAfter("09:00"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
}

func TestTimeString_Scan(t *testing.T) {
	t.Run("plain string", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("10:30"))
		assert.Equal(t, TimeString("10:30"), ts)
	})

	t.Run("postgres time with seconds", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("10:30:00"))
		assert.Equal(t, TimeString("10:30"), ts)
	})

	t.Run("bytes", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan([]byte("08:15")))
		assert.Equal(t, TimeString("08:15"), ts)
	})

	t.Run("time.Time", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan(time.Date(2026, 9, 1, 18, 45, 0, 0, time.UTC)))
		assert.Equal(t, TimeString("18:45"), ts)
	})

	t.Run("invalid value", func(t *testing.T) {
		var ts TimeString
		assert.Error(t, ts.Scan("25:99"))
		assert.Error(t, ts.Scan(42))
	})
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	_, err = TimeString("bad").Value()
	assert.Error(t, err)
}

package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.June, d.Month())
	assert.Equal(t, 1, d.Day())
	assert.Equal(t, IST.String(), d.Location().String())

	_, err = ParseDate("01-06-2025")
	assert.Error(t, err)
}

func TestStartOfDay(t *testing.T) {
	d, err := ParseDate("2025-06-01")
	require.NoError(t, err)

	late := d.Add(23*time.Hour + 59*time.Minute)
	assert.True(t, StartOfDay(late).Equal(d))
}

func TestToIST(t *testing.T) {
	utc := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	ist := ToIST(utc)
	assert.Equal(t, 5, ist.Hour())
	assert.Equal(t, 30, ist.Minute())
}

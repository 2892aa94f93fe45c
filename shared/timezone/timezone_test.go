package timezone_test

import (
	"clinic/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLocation(t *testing.T) {
	loc := timezone.GetLocation()

	require.NotNil(t, loc)
	assert.Same(t, loc, timezone.GetLocation())
	assert.Equal(t, loc, timezone.Now().Location())
}

func TestToAppTime(t *testing.T) {
	instant := time.Date(2024, 3, 20, 8, 30, 0, 0, time.UTC)

	converted := timezone.ToAppTime(instant)

	assert.True(t, converted.Equal(instant))
	assert.Equal(t, timezone.GetLocation(), converted.Location())
}

func TestParseAndFormat(t *testing.T) {
	parsed, err := timezone.Parse("2006-01-02 15:04", "2024-03-20 09:00")
	require.NoError(t, err)

	assert.Equal(t, timezone.GetLocation(), parsed.Location())
	assert.Equal(t, "2024-03-20 09:00", timezone.Format(parsed, "2006-01-02 15:04"))

	_, err = timezone.Parse("2006-01-02", "20/03/2024")
	assert.Error(t, err)
}

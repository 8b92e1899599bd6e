package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromUnixSeconds(t *testing.T) {
	assert.True(t, FromUnixSeconds(0).IsZero())
	assert.True(t, FromUnixSeconds(-5).IsZero())
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), FromUnixSeconds(1709294400))
}

func TestFormatRFC3339(t *testing.T) {
	assert.Equal(t, "", FormatRFC3339(time.Time{}))
	assert.Equal(t, "2024-03-01T12:00:00Z", FormatRFC3339(FromUnixSeconds(1709294400)))
}

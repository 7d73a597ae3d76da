package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocationFallsBackToDefault(t *testing.T) {
	loc := Location("Not/AZone")
	assert.Equal(t, Location(DefaultTimezone).String(), loc.String())
}

func TestIsValid(t *testing.T) {
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Mars/Olympus"))
	assert.True(t, IsValid("UTC"))
}

func TestSystemClockUsesConfiguredLocation(t *testing.T) {
	c := NewClock("UTC")
	assert.Equal(t, time.UTC.String(), c.Location().String())
	assert.Equal(t, "UTC", c.Now().Location().String())
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2030, 1, 2, 3, 4, 0, 0, time.UTC)
	c := FixedClock{At: at, Loc: time.UTC}

	assert.True(t, c.Now().Equal(at))
	assert.Equal(t, time.UTC, c.Location())
}

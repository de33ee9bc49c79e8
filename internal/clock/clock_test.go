package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSystemClockIsUTC(t *testing.T) {
	assert.Equal(t, time.UTC, NewSystemClock().Now().Location())
}

func TestFakeClockAdvance(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.FixedZone("WIB", 7*3600))
	c := NewFakeClock(start)
	assert.True(t, start.Equal(c.Now()))
	assert.Equal(t, time.UTC, c.Now().Location())

	c.Advance(time.Hour)
	assert.True(t, start.Add(time.Hour).Equal(c.Now()))
}

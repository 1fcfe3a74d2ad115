package id

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Monotonic(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	prev := At(now)
	for i := 0; i < 100; i++ {
		next := At(now)
		assert.Greater(t, next, prev)
		prev = next
	}
}

func TestNew_Timestamp(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	parsed, err := ulid.Parse(At(now))
	require.NoError(t, err)
	assert.Equal(t, now, ulid.Time(parsed.Time()).UTC())
	assert.Len(t, New(), 26)
}

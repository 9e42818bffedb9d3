package price

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalDuration(t *testing.T) {
	d, err := IntervalDuration("1h")
	require.NoError(t, err)
	assert.Equal(t, time.Hour, d)

	d, err = IntervalDuration("1d")
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, d)

	_, err = IntervalDuration("3w")
	assert.Error(t, err)
}

func TestParseFloat(t *testing.T) {
	assert.Equal(t, 42.5, parseFloat("42.5"))
	assert.Equal(t, 0.0, parseFloat("garbage"))
}

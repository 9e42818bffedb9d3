package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAlertState_CooldownPerSymbol(t *testing.T) {
	state := NewAlertState(2*time.Hour, 10)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	state.now = func() time.Time { return now }

	assert.False(t, state.OnCooldown("BTCUSDT"))

	state.RecordAlert("BTCUSDT")
	assert.True(t, state.OnCooldown("BTCUSDT"))
	assert.False(t, state.OnCooldown("ETHUSDT"))

	now = now.Add(119 * time.Minute)
	assert.True(t, state.OnCooldown("BTCUSDT"))

	now = now.Add(2 * time.Minute)
	assert.False(t, state.OnCooldown("BTCUSDT"))
}

func TestAlertState_HourlyLimit(t *testing.T) {
	state := NewAlertState(time.Minute, 3)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	state.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		assert.True(t, state.WithinHourlyLimit())
		state.RecordAlert("BTCUSDT")
		now = now.Add(time.Minute)
	}

	assert.False(t, state.WithinHourlyLimit())

	// The window rolls: the first alert ages out after an hour
	now = now.Add(time.Hour)
	assert.True(t, state.WithinHourlyLimit())
}

func TestAlertState_SeparateInstancesAreIndependent(t *testing.T) {
	first := NewAlertState(time.Hour, 1)
	second := NewAlertState(time.Hour, 1)

	first.RecordAlert("BTCUSDT")

	assert.True(t, first.OnCooldown("BTCUSDT"))
	assert.False(t, second.OnCooldown("BTCUSDT"))
	assert.False(t, first.WithinHourlyLimit())
	assert.True(t, second.WithinHourlyLimit())
}

func TestNewAlertState_AppliesDefaults(t *testing.T) {
	state := NewAlertState(0, 0)

	assert.Equal(t, DefaultSymbolCooldown, state.cooldown)
	assert.Equal(t, DefaultMaxAlertsPerHour, state.maxPerHour)
}

func TestWeightConfidence_CapsAtHundred(t *testing.T) {
	assert.InDelta(t, 72.0, weightConfidence(60, 1.2), 1e-9)
	assert.InDelta(t, 100.0, weightConfidence(80, 2.0), 1e-9)
	assert.InDelta(t, 48.0, weightConfidence(60, 0.8), 1e-9)
}

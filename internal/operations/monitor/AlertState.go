package monitor

import (
	"sync"
	"time"
)

const (
	// DefaultSymbolCooldown suppresses repeat alerts for a symbol across
	// all timeframes
	DefaultSymbolCooldown = 120 * time.Minute

	// DefaultMaxAlertsPerHour caps the total alert rate
	DefaultMaxAlertsPerHour = 10
)

// AlertState tracks per-symbol cooldowns and the rolling hourly alert
// count. Each monitor owns its own instance, so two monitors never share
// limits. Safe for concurrent use.
type AlertState struct {
	mu           sync.Mutex
	now          func() time.Time
	cooldown     time.Duration
	maxPerHour   int
	lastAlert    map[string]time.Time
	recentAlerts []time.Time
}

func NewAlertState(cooldown time.Duration, maxPerHour int) *AlertState {
	if cooldown <= 0 {
		cooldown = DefaultSymbolCooldown
	}
	if maxPerHour <= 0 {
		maxPerHour = DefaultMaxAlertsPerHour
	}
	return &AlertState{
		now:        time.Now,
		cooldown:   cooldown,
		maxPerHour: maxPerHour,
		lastAlert:  make(map[string]time.Time),
	}
}

// OnCooldown reports whether the symbol alerted within the cooldown window
func (s *AlertState) OnCooldown(symbol string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	last, ok := s.lastAlert[symbol]
	if !ok {
		return false
	}
	return s.now().Sub(last) < s.cooldown
}

// WithinHourlyLimit reports whether another alert may be sent this hour
func (s *AlertState) WithinHourlyLimit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prune()
	return len(s.recentAlerts) < s.maxPerHour
}

// RecordAlert marks the symbol as alerted now
func (s *AlertState) RecordAlert(symbol string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.lastAlert[symbol] = now
	s.prune()
	s.recentAlerts = append(s.recentAlerts, now)
}

// prune drops alert timestamps older than one hour. Caller holds the lock.
func (s *AlertState) prune() {
	cutoff := s.now().Add(-time.Hour)
	kept := s.recentAlerts[:0]
	for _, t := range s.recentAlerts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	s.recentAlerts = kept
}

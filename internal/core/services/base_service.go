package services

import "time"

// settings holds cross-cutting knobs shared by all services. The clock is
// injected so generation and reconciliation are testable with fixed times.
type settings struct {
	nowFunc func() time.Time
}

func defaultSettings() settings {
	return settings{nowFunc: time.Now}
}

func (s settings) now() time.Time {
	return s.nowFunc().UTC()
}

// Option configures a service at construction time.
type Option func(*settings)

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		s.nowFunc = now
	}
}

func applyOptions(opts []Option) settings {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Package perf tracks mixing performance: how much of each callback's
// real-time deadline the render actually used. The engine reports a sample
// per callback; the monitor keeps a short history and issues warnings when
// the headroom shrinks.
package perf

import (
	"log/slog"
	"sync"
	"time"
)

const (
	// historySize is the number of recent samples retained.
	historySize = 60
	// warnUsage is the deadline fraction above which a warning is issued.
	warnUsage = 0.8
)

// Reporter receives one sample per mix callback. The engine calls it from
// the audio path, so implementations must be cheap and non-blocking.
type Reporter interface {
	ReportCallback(render time.Duration, deadline time.Duration)
}

// Sample is one recorded callback measurement.
type Sample struct {
	Render   time.Duration
	Deadline time.Duration
}

// Usage returns the fraction of the deadline consumed by rendering.
func (s Sample) Usage() float64 {
	if s.Deadline <= 0 {
		return 0
	}
	return float64(s.Render) / float64(s.Deadline)
}

// Monitor implements Reporter with a bounded history and a warning hook.
type Monitor struct {
	log    *slog.Logger
	onWarn func(usage float64)

	mu      sync.Mutex
	history []Sample
	warned  bool
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithLogger sets the logger used for warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Monitor) {
		if logger != nil {
			m.log = logger
		}
	}
}

// WithWarningFunc installs a callback invoked when deadline usage first
// crosses the warning threshold. It is reset once usage recovers.
func WithWarningFunc(fn func(usage float64)) Option {
	return func(m *Monitor) {
		m.onWarn = fn
	}
}

// NewMonitor returns a monitor with an empty history.
func NewMonitor(opts ...Option) *Monitor {
	m := &Monitor{
		log:     slog.New(slog.DiscardHandler),
		history: make([]Sample, 0, historySize),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// ReportCallback records one callback measurement.
func (m *Monitor) ReportCallback(render, deadline time.Duration) {
	s := Sample{Render: render, Deadline: deadline}

	m.mu.Lock()
	if len(m.history) == historySize {
		copy(m.history, m.history[1:])
		m.history = m.history[:historySize-1]
	}
	m.history = append(m.history, s)

	usage := s.Usage()
	warn := usage > warnUsage && !m.warned
	if usage > warnUsage {
		m.warned = true
	} else {
		m.warned = false
	}
	onWarn := m.onWarn
	m.mu.Unlock()

	if warn {
		m.log.Warn("mix callback nearing real-time deadline",
			"usage", usage, "render", render, "deadline", deadline)
		if onWarn != nil {
			onWarn(usage)
		}
	}
}

// History returns a copy of the retained samples, oldest first.
func (m *Monitor) History() []Sample {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Sample(nil), m.history...)
}

// AverageUsage returns the mean deadline usage over the history, 0 when
// empty.
func (m *Monitor) AverageUsage() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.history) == 0 {
		return 0
	}
	var sum float64
	for _, s := range m.history {
		sum += s.Usage()
	}
	return sum / float64(len(m.history))
}

// Package fps measures a rolling frame rate over the last few frames.
package fps

import "time"

// DefaultWindow is the number of time points kept by New(0).
const DefaultWindow = 10

// Meter is a ring of frame timestamps. It is not safe for concurrent use.
type Meter struct {
	now     func() time.Time
	points  []time.Time
	current int
	filled  int
}

type Option func(*Meter)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Meter) { m.now = now }
}

// New keeps window time points; windows below 2 use DefaultWindow.
func New(window int, opts ...Option) *Meter {
	if window < 2 {
		window = DefaultWindow
	}
	m := &Meter{now: time.Now, points: make([]time.Time, window)}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Tick records the end of a frame.
func (m *Meter) Tick() {
	m.points[m.current] = m.now()
	m.current = (m.current + 1) % len(m.points)
	if m.filled < len(m.points) {
		m.filled++
	}
}

// Rate is frames per second averaged over the recorded steps, or 0 until
// two frames with distinct timestamps have been seen.
func (m *Meter) Rate() float64 {
	if m.filled < 2 {
		return 0
	}
	newest := m.points[(m.current-1+len(m.points))%len(m.points)]
	oldest := m.points[(m.current-m.filled+len(m.points))%len(m.points)]
	span := newest.Sub(oldest)
	if span <= 0 {
		return 0
	}
	return float64(m.filled-1) / span.Seconds()
}

// Frames is the number of time points currently held.
func (m *Meter) Frames() int { return m.filled }

package waitlist

import (
	"sync"
	"time"
)

// Status is what the session currently displays. The zero value is the idle state.
type Status struct {
	Outcome Outcome
	Message string
	Success bool
}

func (s Status) IsEmpty() bool {
	return s.Message == ""
}

// Timer is a cancellable scheduled callback.
type Timer interface {
	Stop() bool
}

// ScheduleFunc runs fn once after d.
type ScheduleFunc func(d time.Duration, fn func()) Timer

func scheduleAfter(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// StatusMessage holds the latest submit result and clears it after ttl.
// Showing a new message cancels the pending clear and schedules a fresh one.
type StatusMessage struct {
	mu         sync.Mutex
	ttl        time.Duration
	schedule   ScheduleFunc
	current    Status
	timer      Timer
	generation uint64
	closed     bool
}

func NewStatusMessage(ttl time.Duration, schedule ScheduleFunc) *StatusMessage {
	if schedule == nil {
		schedule = scheduleAfter
	}
	return &StatusMessage{ttl: ttl, schedule: schedule}
}

func (m *StatusMessage) Show(outcome Outcome) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}

	if m.timer != nil {
		m.timer.Stop()
	}

	m.generation++
	gen := m.generation
	m.current = Status{
		Outcome: outcome,
		Message: outcome.Message(),
		Success: outcome.IsSuccess(),
	}
	m.timer = m.schedule(m.ttl, func() { m.expire(gen) })
}

func (m *StatusMessage) Current() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

func (m *StatusMessage) TTL() time.Duration {
	return m.ttl
}

// Close cancels any pending clear. Later Show calls are ignored.
func (m *StatusMessage) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

// A timer that fired after being superseded must not clear the newer message.
func (m *StatusMessage) expire(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.generation {
		return
	}
	m.current = Status{}
	m.timer = nil
}

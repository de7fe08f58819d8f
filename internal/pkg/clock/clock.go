// Package clock abstracts wall time so discount windows and retention
// cutoffs can be tested deterministically.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func NewRealClock() Clock { return systemClock{} }

func (systemClock) Now() time.Time { return time.Now() }

// MockClock is a manually advanced clock for tests.
type MockClock struct {
	now time.Time
}

func NewMockClock(t time.Time) *MockClock { return &MockClock{now: t} }

func (c *MockClock) Now() time.Time { return c.now }

func (c *MockClock) Set(t time.Time)     { c.now = t }
func (c *MockClock) Add(d time.Duration) { c.now = c.now.Add(d) }

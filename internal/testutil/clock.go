// Package testutil provides shared helpers for tests.
package testutil

import "time"

// FixedClock returns the same instant on every call, so date derivation is
// deterministic in tests.
type FixedClock struct {
	T time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time { return c.T }

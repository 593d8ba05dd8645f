package cli

import "time"

// Clock supplies the current time to the cron adapter, so the derived
// target date is testable with a fixed clock.
type Clock interface {
	Now() time.Time
}

// systemClock is the production clock.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

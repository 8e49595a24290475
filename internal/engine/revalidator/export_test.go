package revalidator

import "time"

// SetClock replaces the time source used for timestamps.
// This is exported for testing purposes only.
func (r *Revalidator) SetClock(now func() time.Time) {
	r.now = now
}

// LockedKeys returns the number of ticket keys currently held or awaited.
// This is exported for testing purposes only.
func (r *Revalidator) LockedKeys() int {
	return r.locks.size()
}

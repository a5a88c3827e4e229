package booking

import "sync"

// launchLocks serializes admissions per launch identifier. Reading the
// booked-seat total and writing the new booking is a check-then-act pair;
// holding the launch's mutex across both keeps two concurrent admissions
// from passing the capacity check on the same stale total.
type launchLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newLaunchLocks() *launchLocks {
	return &launchLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock blocks until the launch's mutex is held and returns the unlock
// function. Lock entries are kept for the process lifetime, matching the
// lifetime of the launches themselves.
func (l *launchLocks) Lock(launchID string) func() {
	l.mu.Lock()
	m, ok := l.locks[launchID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[launchID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

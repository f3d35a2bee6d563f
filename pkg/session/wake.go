package session

import "time"

// DefaultWakeLockLimit caps the anti-idle lock as a safety net against a
// session nobody stops.
const DefaultWakeLockLimit = 4 * time.Hour

// WakeLock is an OS facility keeping the device awake while recording. The
// returned release function must be safe to call more than once; limit is
// the longest the lock may be held even if never released.
type WakeLock interface {
	Acquire(limit time.Duration) (release func(), err error)
}

// NopWakeLock is a WakeLock that does nothing, for platforms and tests where
// idle suspension is not a concern.
type NopWakeLock struct{}

func (NopWakeLock) Acquire(time.Duration) (func(), error) {
	return func() {}, nil
}

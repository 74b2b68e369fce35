package state

import (
	"fmt"

	"github.com/gofrs/flock"
)

// RunLock serializes whole runs. Overlapping scheduler invocations must not
// race the state file, so a run that cannot take the lock bows out instead
// of waiting.
type RunLock struct {
	fl *flock.Flock
}

// AcquireRunLock tries to take the lock file at path without blocking. held
// is false when another run already owns it; that is not an error.
func AcquireRunLock(path string) (lock *RunLock, held bool, err error) {
	fl := flock.New(path)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, false, fmt.Errorf("run lock %s: %w", path, err)
	}
	if !locked {
		return nil, false, nil
	}
	return &RunLock{fl: fl}, true, nil
}

func (l *RunLock) Release() {
	if l == nil || l.fl == nil {
		return
	}
	_ = l.fl.Unlock()
}

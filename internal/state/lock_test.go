package state

import (
	"path/filepath"
	"testing"
)

func TestRunLockExcludesSecondAcquirer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.lock")

	first, held, err := AcquireRunLock(path)
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	if !held {
		t.Fatal("first acquire should hold the lock")
	}
	defer first.Release()

	_, held, err = AcquireRunLock(path)
	if err != nil {
		t.Fatalf("second acquire should not error: %v", err)
	}
	if held {
		t.Fatal("second acquire must not get the lock while the first holds it")
	}
}

func TestRunLockReleaseAllowsReacquire(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.lock")

	first, held, err := AcquireRunLock(path)
	if err != nil || !held {
		t.Fatalf("first acquire: held=%v err=%v", held, err)
	}
	first.Release()

	second, held, err := AcquireRunLock(path)
	if err != nil {
		t.Fatalf("reacquire after release: %v", err)
	}
	if !held {
		t.Fatal("released lock should be acquirable again")
	}
	second.Release()
}

func TestRunLockReleaseOnNilIsSafe(t *testing.T) {
	var l *RunLock
	l.Release()
}

package services

import (
	"sync"
	"time"
)

// Clock supplies the current time to every operation so tests can pin it.
type Clock func() time.Time

func SystemClock() time.Time {
	return time.Now()
}

// taskLocks serializes mutating operations per task to keep the journal
// and work-log invariants under concurrent requests.
type taskLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newTaskLocks() *taskLocks {
	return &taskLocks{locks: make(map[uint]*sync.Mutex)}
}

func (t *taskLocks) lock(taskID uint) *sync.Mutex {
	t.mu.Lock()
	m, ok := t.locks[taskID]
	if !ok {
		m = &sync.Mutex{}
		t.locks[taskID] = m
	}
	t.mu.Unlock()
	m.Lock()
	return m
}

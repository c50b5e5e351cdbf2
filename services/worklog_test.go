package services

import (
	"strings"
	"testing"
	"time"

	"github.com/diva1520/task-tracker/constants"
)

func TestLogWorkAccumulatesMinutes(t *testing.T) {
	e := newTestEnv(t)
	worker := e.addUser(t, "alice", constants.RoleWorker)
	task := e.addTask(t, worker, constants.StatusInProgress)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	first, err := e.svc.LogWork(WorkLogRequest{
		TaskID:    task.ID,
		ActorID:   worker.ID,
		Role:      worker.Role,
		StartTime: day.Add(9 * time.Hour),
		EndTime:   day.Add(10*time.Hour + 30*time.Minute),
		Comment:   "morning block",
	})
	if err != nil {
		t.Fatalf("first log: %v", err)
	}
	if first.DurationMinutes != 90 {
		t.Fatalf("expected 90 minutes, got %d", first.DurationMinutes)
	}

	if _, err := e.svc.LogWork(WorkLogRequest{
		TaskID:    task.ID,
		ActorID:   worker.ID,
		Role:      worker.Role,
		StartTime: day.Add(14 * time.Hour),
		EndTime:   day.Add(15 * time.Hour),
	}); err != nil {
		t.Fatalf("second log: %v", err)
	}

	saved, _ := e.tasks.Get(task.ID)
	if saved.TotalWorkedMinutes != 150 {
		t.Fatalf("expected 150 accumulated minutes, got %d", saved.TotalWorkedMinutes)
	}
}

func TestLogWorkRejectsSameDayOverlap(t *testing.T) {
	e := newTestEnv(t)
	worker := e.addUser(t, "alice", constants.RoleWorker)
	first := e.addTask(t, worker, constants.StatusInProgress)
	second := e.addTask(t, worker, constants.StatusInProgress)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if _, err := e.svc.LogWork(WorkLogRequest{
		TaskID:    first.ID,
		ActorID:   worker.ID,
		Role:      worker.Role,
		StartTime: day.Add(9 * time.Hour),
		EndTime:   day.Add(10 * time.Hour),
	}); err != nil {
		t.Fatalf("seed log: %v", err)
	}

	// Overlap is per user across tasks, not per task.
	_, err := e.svc.LogWork(WorkLogRequest{
		TaskID:    second.ID,
		ActorID:   worker.ID,
		Role:      worker.Role,
		StartTime: day.Add(9*time.Hour + 30*time.Minute),
		EndTime:   day.Add(10*time.Hour + 30*time.Minute),
	})
	wantKind(t, err, KindConflict)
	if !strings.Contains(err.Error(), "09:00 - 10:00") {
		t.Fatalf("conflict should cite the clashing interval: %v", err)
	}
}

func TestLogWorkTouchingIntervalsAllowed(t *testing.T) {
	e := newTestEnv(t)
	worker := e.addUser(t, "alice", constants.RoleWorker)
	task := e.addTask(t, worker, constants.StatusInProgress)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if _, err := e.svc.LogWork(WorkLogRequest{
		TaskID:    task.ID,
		ActorID:   worker.ID,
		Role:      worker.Role,
		StartTime: day.Add(9 * time.Hour),
		EndTime:   day.Add(10 * time.Hour),
	}); err != nil {
		t.Fatalf("seed log: %v", err)
	}

	// End meeting the next start is not an overlap.
	if _, err := e.svc.LogWork(WorkLogRequest{
		TaskID:    task.ID,
		ActorID:   worker.ID,
		Role:      worker.Role,
		StartTime: day.Add(10 * time.Hour),
		EndTime:   day.Add(11 * time.Hour),
	}); err != nil {
		t.Fatalf("adjacent log rejected: %v", err)
	}
}

func TestLogWorkValidation(t *testing.T) {
	e := newTestEnv(t)
	worker := e.addUser(t, "alice", constants.RoleWorker)
	task := e.addTask(t, worker, constants.StatusInProgress)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	_, err := e.svc.LogWork(WorkLogRequest{
		TaskID:  task.ID,
		ActorID: worker.ID,
		Role:    worker.Role,
	})
	wantKind(t, err, KindValidation)

	_, err = e.svc.LogWork(WorkLogRequest{
		TaskID:    task.ID,
		ActorID:   worker.ID,
		Role:      worker.Role,
		StartTime: day.Add(10 * time.Hour),
		EndTime:   day.Add(9 * time.Hour),
	})
	wantKind(t, err, KindValidation)

	_, err = e.svc.LogWork(WorkLogRequest{
		TaskID:    task.ID,
		ActorID:   worker.ID,
		Role:      worker.Role,
		StartTime: day.Add(10 * time.Hour),
		EndTime:   day.Add(10 * time.Hour),
	})
	wantKind(t, err, KindValidation)
}

func TestLogWorkOwnershipEnforced(t *testing.T) {
	e := newTestEnv(t)
	owner := e.addUser(t, "alice", constants.RoleWorker)
	other := e.addUser(t, "bob", constants.RoleWorker)
	task := e.addTask(t, owner, constants.StatusInProgress)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	_, err := e.svc.LogWork(WorkLogRequest{
		TaskID:    task.ID,
		ActorID:   other.ID,
		Role:      other.Role,
		StartTime: day.Add(9 * time.Hour),
		EndTime:   day.Add(10 * time.Hour),
	})
	wantKind(t, err, KindAuthorization)
}

func TestLogWorkWithTransition(t *testing.T) {
	e := newTestEnv(t)
	worker := e.addUser(t, "alice", constants.RoleWorker)
	task := e.addTask(t, worker, constants.StatusToDo)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	log, err := e.svc.LogWork(WorkLogRequest{
		TaskID:    task.ID,
		ActorID:   worker.ID,
		Role:      worker.Role,
		StartTime: day.Add(9 * time.Hour),
		EndTime:   day.Add(10 * time.Hour),
		Comment:   "kicked off",
		Status:    constants.StatusInProgress,
	})
	if err != nil {
		t.Fatalf("LogWork with transition: %v", err)
	}
	if log == nil {
		t.Fatal("expected the created log back")
	}

	saved, _ := e.tasks.Get(task.ID)
	if saved.Status != constants.StatusInProgress {
		t.Fatalf("expected IN_PROGRESS after delegated transition, got %s", saved.Status)
	}
}

func TestLogWorkSurvivesRejectedTransition(t *testing.T) {
	e := newTestEnv(t)
	worker := e.addUser(t, "alice", constants.RoleWorker)
	task := e.addTask(t, worker, constants.StatusToDo)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	// The worker cannot complete a task, but the log written before the
	// transition attempt stays recorded.
	log, err := e.svc.LogWork(WorkLogRequest{
		TaskID:    task.ID,
		ActorID:   worker.ID,
		Role:      worker.Role,
		StartTime: day.Add(9 * time.Hour),
		EndTime:   day.Add(10 * time.Hour),
		Comment:   "wrap up",
		Status:    constants.StatusCompleted,
	})
	wantKind(t, err, KindAuthorization)
	if log == nil {
		t.Fatal("log must survive a rejected delegated transition")
	}

	saved, _ := e.tasks.Get(task.ID)
	if saved.Status != constants.StatusToDo {
		t.Fatalf("status must be untouched, got %s", saved.Status)
	}
	if saved.TotalWorkedMinutes != 60 {
		t.Fatalf("expected 60 accumulated minutes, got %d", saved.TotalWorkedMinutes)
	}

	logs, _ := e.logs.ByTask(task.ID)
	if len(logs) != 1 {
		t.Fatalf("expected 1 persisted log, got %d", len(logs))
	}
}

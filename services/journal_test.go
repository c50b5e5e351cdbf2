package services

import (
	"testing"
	"time"

	"github.com/diva1520/task-tracker/constants"
	"github.com/diva1520/task-tracker/models"
)

func newTestJournal(now *time.Time) (*Journal, *fakeDetailStore) {
	details := &fakeDetailStore{}
	return &Journal{Details: details, Clock: func() time.Time { return *now }}, details
}

func TestJournalOpenRejectsSecondOpen(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	journal, _ := newTestJournal(&now)
	task := &models.Task{ID: 1}

	entry, err := journal.Open(task, constants.StatusInProgress, "start")
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if !entry.Open() {
		t.Fatal("fresh entry must have no end timestamp")
	}

	_, err = journal.Open(task, constants.StatusReassign, "again")
	wantKind(t, err, KindConflict)
}

func TestJournalCloseWithoutOpenEntry(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	journal, _ := newTestJournal(&now)

	closed, err := journal.Close(&models.Task{ID: 1}, "nothing")
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	if closed != nil {
		t.Fatalf("expected nil for no open entry, got %+v", closed)
	}
}

func TestJournalCloseStampsEndAndComment(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	journal, details := newTestJournal(&now)
	task := &models.Task{ID: 1}

	if _, err := journal.Open(task, constants.StatusInProgress, "original"); err != nil {
		t.Fatalf("open: %v", err)
	}

	now = now.Add(3 * time.Hour)
	closed, err := journal.Close(task, "revised")
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.EndedAt == nil || !closed.EndedAt.Equal(now) {
		t.Fatalf("end timestamp not stamped from clock, got %v", closed.EndedAt)
	}
	if closed.Comment != "revised" {
		t.Fatalf("non-empty comment must replace the old one, got %q", closed.Comment)
	}

	entries, _ := details.ByTask(task.ID)
	if len(entries) != 1 || entries[0].EndedAt == nil {
		t.Fatal("closed entry not persisted")
	}
}

func TestJournalCloseKeepsCommentWhenEmpty(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	journal, _ := newTestJournal(&now)
	task := &models.Task{ID: 1}

	if _, err := journal.Open(task, constants.StatusReassign, "handover note"); err != nil {
		t.Fatalf("open: %v", err)
	}

	closed, err := journal.Close(task, "")
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.Comment != "handover note" {
		t.Fatalf("empty comment must not erase the original, got %q", closed.Comment)
	}
}

func TestHasEverReassigned(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	journal, _ := newTestJournal(&now)
	task := &models.Task{ID: 1}

	reassigned, err := journal.HasEverReassigned(task.ID)
	if err != nil || reassigned {
		t.Fatalf("fresh task should have no reassignment, got %v %v", reassigned, err)
	}

	if _, err := journal.Open(task, constants.StatusReassign, "moved"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := journal.Close(task, ""); err != nil {
		t.Fatalf("close: %v", err)
	}

	reassigned, err = journal.HasEverReassigned(task.ID)
	if err != nil || !reassigned {
		t.Fatalf("closed REASSIGN entry still counts, got %v %v", reassigned, err)
	}
}

package services

import (
	"github.com/diva1520/task-tracker/constants"
	"github.com/diva1520/task-tracker/models"
)

// Journal owns the task_detail rows. Only the task service decides when to
// open or close an entry; the work-log recorder never touches the journal.
type Journal struct {
	Details DetailStore
	Clock   Clock
}

// Open appends a new journal entry with start=now and no end. The task
// service enforces close-before-open ordering, so an already-open entry
// here is an invariant violation, reported as a conflict.
func (j *Journal) Open(task *models.Task, status constants.Status, comment string) (*models.TaskDetail, error) {
	open, err := j.Details.LatestOpen(task.ID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, Conflictf("task %d already has an open %s journal entry", task.ID, open.Status)
	}

	entry := &models.TaskDetail{
		TaskID:    task.ID,
		Status:    status,
		StartedAt: j.Clock(),
		Comment:   comment,
	}
	if err := j.Details.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Close ends the task's open entry, overwriting its comment when a new one
// is supplied. Returns nil when no entry is open; callers treat that as a
// precondition failure.
func (j *Journal) Close(task *models.Task, comment string) (*models.TaskDetail, error) {
	open, err := j.Details.LatestOpen(task.ID)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, nil
	}

	now := j.Clock()
	open.EndedAt = &now
	if comment != "" {
		open.Comment = comment
	}
	if err := j.Details.Save(open); err != nil {
		return nil, err
	}
	return open, nil
}

// HasEverReassigned enforces the one-reassignment-per-task limit.
func (j *Journal) HasEverReassigned(taskID uint) (bool, error) {
	return j.Details.HasStatus(taskID, constants.StatusReassign)
}

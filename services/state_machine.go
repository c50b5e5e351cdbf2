package services

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/diva1520/task-tracker/constants"
	"github.com/diva1520/task-tracker/models"
)

// TaskService is the single authority over task state. All mutating
// operations on a task are serialized through a per-task lock.
type TaskService struct {
	Tasks    TaskStore
	Details  DetailStore
	WorkLogs WorkLogStore
	Users    UserStore
	Journal  *Journal
	Notifier *Notifier
	Clock    Clock
	Logger   *slog.Logger

	locks *taskLocks
}

func NewTaskService(tasks TaskStore, details DetailStore, workLogs WorkLogStore, users UserStore, notifier *Notifier, clock Clock, logger *slog.Logger) *TaskService {
	if clock == nil {
		clock = SystemClock
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskService{
		Tasks:    tasks,
		Details:  details,
		WorkLogs: workLogs,
		Users:    users,
		Journal:  &Journal{Details: details, Clock: clock},
		Notifier: notifier,
		Clock:    clock,
		Logger:   logger,
		locks:    newTaskLocks(),
	}
}

// ChangeStatusRequest carries everything a transition decision needs:
// the acting user, their role, the requested status, a comment and, for
// reassignment, the new owner.
type ChangeStatusRequest struct {
	TaskID     uint
	ActorID    uint
	Role       constants.Role
	Status     constants.Status
	Comment    string
	NewOwnerID *uint
}

type transitionKey struct {
	role constants.Role
	from constants.Status
	to   constants.Status
}

type transitionRule struct {
	// ownerOnly transitions are open to the task's owner alone;
	// supervisors have no ownership check but their own rules below.
	ownerOnly bool
	apply     func(s *TaskService, task *models.Task, req ChangeStatusRequest) error
}

// transitions is the complete set of legal edges. Anything absent from
// this table is rejected as not permitted for the role.
var transitions = map[transitionKey]transitionRule{}

func init() {
	start := transitionRule{ownerOnly: true, apply: (*TaskService).startProgress}
	transitions[transitionKey{constants.RoleWorker, constants.StatusToDo, constants.StatusInProgress}] = start
	transitions[transitionKey{constants.RoleWorker, constants.StatusReassign, constants.StatusInProgress}] = start

	transitions[transitionKey{constants.RoleWorker, constants.StatusInProgress, constants.StatusReview}] =
		transitionRule{ownerOnly: true, apply: (*TaskService).submitForReview}

	transitions[transitionKey{constants.RoleSupervisor, constants.StatusReview, constants.StatusCompleted}] =
		transitionRule{apply: (*TaskService).complete}

	// A supervisor may reassign from any state, once per task lifetime.
	for _, from := range constants.AllStatuses {
		transitions[transitionKey{constants.RoleSupervisor, from, constants.StatusReassign}] =
			transitionRule{apply: (*TaskService).reassign}
	}
}

// ChangeStatus runs one transition and persists the result. Every
// rejection comes back as a typed *Error; the task is untouched on
// rejection.
func (s *TaskService) ChangeStatus(req ChangeStatusRequest) (*models.Task, error) {
	mu := s.locks.lock(req.TaskID)
	defer mu.Unlock()

	task, err := s.getTask(req.TaskID)
	if err != nil {
		return nil, err
	}
	return s.transition(task, req)
}

// transition assumes the caller holds the task's lock.
func (s *TaskService) transition(task *models.Task, req ChangeStatusRequest) (*models.Task, error) {
	if !req.Status.Valid() {
		return nil, Validationf("unknown status %q", string(req.Status))
	}

	// Requesting the current status is a no-op that may still carry a
	// fresh comment.
	if req.Status == task.Status {
		if strings.TrimSpace(req.Comment) != "" {
			task.Comment = req.Comment
			if err := s.Tasks.Save(task); err != nil {
				return nil, err
			}
		}
		return task, nil
	}

	if strings.TrimSpace(req.Comment) == "" {
		return nil, Validationf("comment is mandatory when moving to %s", req.Status)
	}

	rule, ok := transitions[transitionKey{req.Role, task.Status, req.Status}]
	if !ok {
		return nil, Authorizationf("transition %s -> %s not permitted for role %s", task.Status, req.Status, req.Role)
	}
	if rule.ownerOnly && task.OwnerID != req.ActorID {
		return nil, Authorizationf("you can only move your own tasks")
	}

	oldStatus := task.Status
	if err := rule.apply(s, task, req); err != nil {
		return nil, err
	}

	task.Comment = req.Comment
	if err := s.Tasks.Save(task); err != nil {
		return nil, err
	}

	s.notifyTransition(task, oldStatus, task.Status, req.ActorID)
	return task, nil
}

func (s *TaskService) startProgress(task *models.Task, req ChangeStatusRequest) error {
	// Resuming after a reassignment closes the still-open REASSIGN window.
	// Its comment stays the reassignment comment, not the resume one.
	if _, err := s.Journal.Close(task, ""); err != nil {
		return err
	}
	if _, err := s.Journal.Open(task, constants.StatusInProgress, req.Comment); err != nil {
		return err
	}
	task.Status = constants.StatusInProgress
	return nil
}

func (s *TaskService) submitForReview(task *models.Task, req ChangeStatusRequest) error {
	closed, err := s.Journal.Close(task, req.Comment)
	if err != nil {
		return err
	}
	if closed == nil {
		return Conflictf("task %d has no open journal entry to close", task.ID)
	}
	task.Status = constants.StatusReview
	return nil
}

func (s *TaskService) complete(task *models.Task, req ChangeStatusRequest) error {
	// A task in REVIEW must have been through IN_PROGRESS. No journal
	// trace of that is a data inconsistency, not a user error.
	details, err := s.Details.ByTask(task.ID)
	if err != nil {
		return err
	}
	sawInProgress := false
	for i := range details {
		if details[i].Status == constants.StatusInProgress {
			sawInProgress = true
			break
		}
	}
	if !sawInProgress {
		return Conflictf("task %d not in expected in-progress state", task.ID)
	}

	// Close any still-open entry before sealing the task.
	if _, err := s.Journal.Close(task, req.Comment); err != nil {
		return err
	}

	now := s.Clock()
	task.CompletedAt = &now
	task.Status = constants.StatusCompleted

	if task.DueDate != nil {
		onTime, delay := EvaluateDelay(*task.DueDate, now)
		task.CompletedOnTime = &onTime
		task.DelayMinutes = delay
	}
	return nil
}

func (s *TaskService) reassign(task *models.Task, req ChangeStatusRequest) error {
	reassigned, err := s.Journal.HasEverReassigned(task.ID)
	if err != nil {
		return err
	}
	if reassigned {
		return Conflictf("task %d has already been reassigned once", task.ID)
	}
	if req.NewOwnerID == nil {
		return Validationf("new owner id is required for reassignment")
	}

	newOwner, err := s.getUser(*req.NewOwnerID)
	if err != nil {
		return err
	}
	if newOwner.Role == constants.RoleSupervisor {
		return Validationf("tasks cannot be reassigned to supervisors")
	}

	// Reassignment is legal from any state, so an IN_PROGRESS window may
	// still be open; close it before opening the REASSIGN entry.
	if _, err := s.Journal.Close(task, req.Comment); err != nil {
		return err
	}
	if _, err := s.Journal.Open(task, constants.StatusReassign, req.Comment); err != nil {
		return err
	}

	actorID := req.ActorID
	task.OwnerID = newOwner.ID
	task.AssignerID = &actorID
	task.Status = constants.StatusReassign
	return nil
}

func (s *TaskService) notifyTransition(task *models.Task, oldStatus, newStatus constants.Status, actorID uint) {
	if s.Notifier == nil || task.AssignerID == nil {
		return
	}

	actorName := "System"
	if actor, err := s.Users.Get(actorID); err == nil {
		actorName = actor.Username
	}
	owner, err := s.Users.Get(task.OwnerID)
	if err != nil {
		owner = nil
	}
	assigner, err := s.Users.Get(*task.AssignerID)
	if err != nil {
		s.Logger.Warn("transition notification skipped", "task", task.ID, "error", err)
		return
	}

	s.Notifier.TaskChanged(task, oldStatus, newStatus, actorName, owner, assigner)
}

func (s *TaskService) getTask(id uint) (*models.Task, error) {
	task, err := s.Tasks.Get(id)
	if errors.Is(err, ErrNotFound) {
		return nil, NotFoundf("task %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) getUser(id uint) (*models.User, error) {
	user, err := s.Users.Get(id)
	if errors.Is(err, ErrNotFound) {
		return nil, NotFoundf("user %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

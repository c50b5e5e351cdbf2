package services

import (
	"errors"
	"time"

	"github.com/diva1520/task-tracker/constants"
	"github.com/diva1520/task-tracker/models"
)

// ErrNotFound is returned by store lookups when no record matches.
// Implementations translate their driver's sentinel to this one.
var ErrNotFound = errors.New("record not found")

// The store interfaces below are the ledger contract the services depend
// on. Only single-record atomicity is assumed; ordering of open/close and
// overlap checks is enforced by the services, not the store.

type TaskStore interface {
	Get(id uint) (*models.Task, error)
	Create(t *models.Task) error
	Save(t *models.Task) error
	ByOwner(ownerID uint) ([]models.Task, error)
	All() ([]models.Task, error)
	CreatedBetween(from, to time.Time, ownerIDs []uint) ([]models.Task, error)
	CountByOwner(ownerID uint) (int64, error)
	CountByOwnerAndStatus(ownerID uint, status constants.Status) (int64, error)
	CountByStatus(status constants.Status) (int64, error)
	OwnerIDsByStatus(status constants.Status) ([]uint, error)
}

type DetailStore interface {
	Create(d *models.TaskDetail) error
	Save(d *models.TaskDetail) error
	// LatestOpen returns the most recently started entry with no end
	// timestamp, or nil when the task has no open entry.
	LatestOpen(taskID uint) (*models.TaskDetail, error)
	ByTask(taskID uint) ([]models.TaskDetail, error)
	HasStatus(taskID uint, status constants.Status) (bool, error)
}

type WorkLogStore interface {
	Create(l *models.WorkLog) error
	ByTask(taskID uint) ([]models.WorkLog, error)
	ByUser(userID uint) ([]models.WorkLog, error)
	// ByUserBetween returns the user's logs whose start time falls in
	// [from, to).
	ByUserBetween(userID uint, from, to time.Time) ([]models.WorkLog, error)
	All() ([]models.WorkLog, error)
}

type UserStore interface {
	Get(id uint) (*models.User, error)
	ByUsername(username string) (*models.User, error)
	ByRole(role constants.Role) ([]models.User, error)
	All() ([]models.User, error)
	Create(u *models.User) error
	Save(u *models.User) error
}

type LeaveStore interface {
	Get(id uint) (*models.LeaveRequest, error)
	Create(l *models.LeaveRequest) error
	Save(l *models.LeaveRequest) error
	ByUser(userID uint) ([]models.LeaveRequest, error)
	ByStatus(status string) ([]models.LeaveRequest, error)
	Decided() ([]models.LeaveRequest, error)
	Overlapping(userID uint, from, to time.Time) (bool, error)
	ApprovedInYear(userID uint, year int) ([]models.LeaveRequest, error)
	CountByStatus(status string) (int64, error)
}

type LoginAuditStore interface {
	Create(a *models.LoginAudit) error
	Save(a *models.LoginAudit) error
	ActiveSessions(userID uint) ([]models.LoginAudit, error)
	ByUser(userID uint) ([]models.LoginAudit, error)
	All() ([]models.LoginAudit, error)
}

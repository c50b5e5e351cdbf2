// Package store implements the service-layer store interfaces on GORM.
package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/diva1520/task-tracker/services"
)

// Store bundles the GORM-backed implementations of every ledger
// interface.
type Store struct {
	Tasks    *TaskStore
	Details  *DetailStore
	WorkLogs *WorkLogStore
	Users    *UserStore
	Leaves   *LeaveStore
	Audits   *LoginAuditStore
}

func New(db *gorm.DB) *Store {
	return &Store{
		Tasks:    &TaskStore{db: db},
		Details:  &DetailStore{db: db},
		WorkLogs: &WorkLogStore{db: db},
		Users:    &UserStore{db: db},
		Leaves:   &LeaveStore{db: db},
		Audits:   &LoginAuditStore{db: db},
	}
}

// translate maps gorm's missing-record sentinel to the services' one.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return services.ErrNotFound
	}
	return err
}

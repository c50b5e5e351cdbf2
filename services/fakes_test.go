package services

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/diva1520/task-tracker/constants"
	"github.com/diva1520/task-tracker/models"
)

type fakeTaskStore struct {
	byID   map[uint]models.Task
	nextID uint
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{byID: map[uint]models.Task{}}
}

func (f *fakeTaskStore) Get(id uint) (*models.Task, error) {
	t, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (f *fakeTaskStore) Create(t *models.Task) error {
	f.nextID++
	t.ID = f.nextID
	f.byID[t.ID] = *t
	return nil
}

func (f *fakeTaskStore) Save(t *models.Task) error {
	f.byID[t.ID] = *t
	return nil
}

func (f *fakeTaskStore) ByOwner(ownerID uint) ([]models.Task, error) {
	var out []models.Task
	for _, t := range f.byID {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskStore) All() ([]models.Task, error) {
	var out []models.Task
	for _, t := range f.byID {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTaskStore) CreatedBetween(from, to time.Time, ownerIDs []uint) ([]models.Task, error) {
	var out []models.Task
	for _, t := range f.byID {
		if t.CreatedAt.Before(from) || t.CreatedAt.After(to) {
			continue
		}
		if len(ownerIDs) > 0 {
			match := false
			for _, id := range ownerIDs {
				if t.OwnerID == id {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTaskStore) CountByOwner(ownerID uint) (int64, error) {
	tasks, _ := f.ByOwner(ownerID)
	return int64(len(tasks)), nil
}

func (f *fakeTaskStore) CountByOwnerAndStatus(ownerID uint, status constants.Status) (int64, error) {
	var n int64
	for _, t := range f.byID {
		if t.OwnerID == ownerID && t.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeTaskStore) CountByStatus(status constants.Status) (int64, error) {
	var n int64
	for _, t := range f.byID {
		if t.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeTaskStore) OwnerIDsByStatus(status constants.Status) ([]uint, error) {
	seen := map[uint]bool{}
	var out []uint
	for _, t := range f.byID {
		if t.Status == status && !seen[t.OwnerID] {
			seen[t.OwnerID] = true
			out = append(out, t.OwnerID)
		}
	}
	return out, nil
}

type fakeDetailStore struct {
	entries []models.TaskDetail
	nextID  uint
}

func (f *fakeDetailStore) Create(d *models.TaskDetail) error {
	f.nextID++
	d.ID = f.nextID
	f.entries = append(f.entries, *d)
	return nil
}

func (f *fakeDetailStore) Save(d *models.TaskDetail) error {
	for i := range f.entries {
		if f.entries[i].ID == d.ID {
			f.entries[i] = *d
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeDetailStore) LatestOpen(taskID uint) (*models.TaskDetail, error) {
	var latest *models.TaskDetail
	for i := range f.entries {
		e := f.entries[i]
		if e.TaskID != taskID || e.EndedAt != nil {
			continue
		}
		if latest == nil || e.StartedAt.After(latest.StartedAt) {
			copied := e
			latest = &copied
		}
	}
	return latest, nil
}

func (f *fakeDetailStore) ByTask(taskID uint) ([]models.TaskDetail, error) {
	var out []models.TaskDetail
	for i := range f.entries {
		if f.entries[i].TaskID == taskID {
			out = append(out, f.entries[i])
		}
	}
	return out, nil
}

func (f *fakeDetailStore) HasStatus(taskID uint, status constants.Status) (bool, error) {
	for i := range f.entries {
		if f.entries[i].TaskID == taskID && f.entries[i].Status == status {
			return true, nil
		}
	}
	return false, nil
}

type fakeWorkLogStore struct {
	logs   []models.WorkLog
	nextID uint
}

func (f *fakeWorkLogStore) Create(l *models.WorkLog) error {
	f.nextID++
	l.ID = f.nextID
	f.logs = append(f.logs, *l)
	return nil
}

func (f *fakeWorkLogStore) ByTask(taskID uint) ([]models.WorkLog, error) {
	var out []models.WorkLog
	for i := range f.logs {
		if f.logs[i].TaskID == taskID {
			out = append(out, f.logs[i])
		}
	}
	return out, nil
}

func (f *fakeWorkLogStore) ByUser(userID uint) ([]models.WorkLog, error) {
	var out []models.WorkLog
	for i := range f.logs {
		if f.logs[i].UserID == userID {
			out = append(out, f.logs[i])
		}
	}
	return out, nil
}

func (f *fakeWorkLogStore) ByUserBetween(userID uint, from, to time.Time) ([]models.WorkLog, error) {
	var out []models.WorkLog
	for i := range f.logs {
		l := f.logs[i]
		if l.UserID != userID {
			continue
		}
		if l.StartTime.Before(from) || !l.StartTime.Before(to) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeWorkLogStore) All() ([]models.WorkLog, error) {
	return append([]models.WorkLog(nil), f.logs...), nil
}

type fakeUserStore struct {
	byID   map[uint]models.User
	nextID uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byID: map[uint]models.User{}}
}

func (f *fakeUserStore) Get(id uint) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (f *fakeUserStore) ByUsername(username string) (*models.User, error) {
	for _, u := range f.byID {
		if u.Username == username {
			copied := u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeUserStore) ByRole(role constants.Role) ([]models.User, error) {
	var out []models.User
	for _, u := range f.byID {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserStore) All() ([]models.User, error) {
	var out []models.User
	for _, u := range f.byID {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserStore) Create(u *models.User) error {
	f.nextID++
	u.ID = f.nextID
	f.byID[u.ID] = *u
	return nil
}

func (f *fakeUserStore) Save(u *models.User) error {
	f.byID[u.ID] = *u
	return nil
}

type fakeLeaveStore struct {
	byID   map[uint]models.LeaveRequest
	nextID uint
}

func newFakeLeaveStore() *fakeLeaveStore {
	return &fakeLeaveStore{byID: map[uint]models.LeaveRequest{}}
}

func (f *fakeLeaveStore) Get(id uint) (*models.LeaveRequest, error) {
	l, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &l, nil
}

func (f *fakeLeaveStore) Create(l *models.LeaveRequest) error {
	f.nextID++
	l.ID = f.nextID
	f.byID[l.ID] = *l
	return nil
}

func (f *fakeLeaveStore) Save(l *models.LeaveRequest) error {
	f.byID[l.ID] = *l
	return nil
}

func (f *fakeLeaveStore) ByUser(userID uint) ([]models.LeaveRequest, error) {
	var out []models.LeaveRequest
	for _, l := range f.byID {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLeaveStore) ByStatus(status string) ([]models.LeaveRequest, error) {
	var out []models.LeaveRequest
	for _, l := range f.byID {
		if l.Status == status {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLeaveStore) Decided() ([]models.LeaveRequest, error) {
	var out []models.LeaveRequest
	for _, l := range f.byID {
		if l.Status != constants.LeavePending {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLeaveStore) Overlapping(userID uint, from, to time.Time) (bool, error) {
	for _, l := range f.byID {
		if l.UserID != userID {
			continue
		}
		if !l.FromDate.After(to) && !l.ToDate.Before(from) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLeaveStore) ApprovedInYear(userID uint, year int) ([]models.LeaveRequest, error) {
	var out []models.LeaveRequest
	for _, l := range f.byID {
		if l.UserID == userID && l.Status == constants.LeaveApproved && l.FromDate.Year() == year {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLeaveStore) CountByStatus(status string) (int64, error) {
	leaves, _ := f.ByStatus(status)
	return int64(len(leaves)), nil
}

// testEnv bundles a task service over in-memory stores with a controllable
// clock.
type testEnv struct {
	tasks   *fakeTaskStore
	details *fakeDetailStore
	logs    *fakeWorkLogStore
	users   *fakeUserStore
	svc     *TaskService
	now     time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	e := &testEnv{
		tasks:   newFakeTaskStore(),
		details: &fakeDetailStore{},
		logs:    &fakeWorkLogStore{},
		users:   newFakeUserStore(),
		now:     time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return e.now }
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e.svc = NewTaskService(e.tasks, e.details, e.logs, e.users, nil, clock, logger)
	return e
}

func (e *testEnv) advance(d time.Duration) {
	e.now = e.now.Add(d)
}

func (e *testEnv) addUser(t *testing.T, username string, role constants.Role) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", Role: role, Active: true}
	if err := e.users.Create(u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func (e *testEnv) addTask(t *testing.T, owner *models.User, status constants.Status) *models.Task {
	t.Helper()
	task := &models.Task{Title: "task", Status: status, OwnerID: owner.ID, CreatedAt: e.now}
	if err := e.tasks.Create(task); err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

func wantKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	got, ok := KindOf(err)
	if !ok {
		t.Fatalf("expected a typed rejection, got %v", err)
	}
	if got != kind {
		t.Fatalf("expected kind %d, got %d (%v)", kind, got, err)
	}
}

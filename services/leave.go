package services

import (
	"errors"

	"github.com/diva1520/task-tracker/constants"
	"github.com/diva1520/task-tracker/models"
)

// annualLeaveAllowance is the per-year leave budget in days; anything
// beyond it counts as loss of pay.
const annualLeaveAllowance = 12.0

type LeaveService struct {
	Leaves   LeaveStore
	Users    UserStore
	Notifier *Notifier
	Clock    Clock
}

// LeaveBalance is a user's allowance arithmetic for the current year.
type LeaveBalance struct {
	Allowed float64 `json:"allowed"`
	Taken   float64 `json:"taken"`
	Balance float64 `json:"balance"`
	LOP     float64 `json:"lop"`
}

// Request books leave for a user. Requests for the same user may not
// overlap, pending or not.
func (l *LeaveService) Request(userID uint, req *models.LeaveRequest) (*models.LeaveRequest, error) {
	user, err := l.user(userID)
	if err != nil {
		return nil, err
	}
	if req.FromDate.IsZero() || req.ToDate.IsZero() {
		return nil, Validationf("from date and to date are required")
	}
	if req.ToDate.Before(req.FromDate) {
		return nil, Validationf("to date must not be before from date")
	}

	overlap, err := l.Leaves.Overlapping(userID, req.FromDate, req.ToDate)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, Conflictf("leave request overlaps with an existing request")
	}

	req.UserID = userID
	req.Status = constants.LeavePending
	req.CreatedAt = l.Clock()
	if err := l.Leaves.Create(req); err != nil {
		return nil, err
	}

	if supervisors, err := l.Users.ByRole(constants.RoleSupervisor); err == nil {
		l.Notifier.LeaveRequested(user, req, supervisors)
	}
	return req, nil
}

func (l *LeaveService) MyLeaves(userID uint) ([]models.LeaveRequest, error) {
	if _, err := l.user(userID); err != nil {
		return nil, err
	}
	return l.Leaves.ByUser(userID)
}

// Balance computes the current-year allowance arithmetic from approved
// requests.
func (l *LeaveService) Balance(userID uint) (LeaveBalance, error) {
	approved, err := l.Leaves.ApprovedInYear(userID, l.Clock().Year())
	if err != nil {
		return LeaveBalance{}, err
	}

	taken := 0.0
	for i := range approved {
		taken += approved[i].Days()
	}
	return LeaveBalance{
		Allowed: annualLeaveAllowance,
		Taken:   taken,
		Balance: max(0, annualLeaveAllowance-taken),
		LOP:     max(0, taken-annualLeaveAllowance),
	}, nil
}

// LeaveView is a request annotated with the requester and their balance,
// for supervisor listings.
type LeaveView struct {
	models.LeaveRequest
	Username string       `json:"username"`
	Days     float64      `json:"days"`
	Balance  LeaveBalance `json:"balance"`
}

func (l *LeaveService) Pending() ([]LeaveView, error) {
	pending, err := l.Leaves.ByStatus(constants.LeavePending)
	if err != nil {
		return nil, err
	}
	return l.views(pending)
}

func (l *LeaveService) History() ([]LeaveView, error) {
	decided, err := l.Leaves.Decided()
	if err != nil {
		return nil, err
	}
	return l.views(decided)
}

// Decide approves or rejects a pending request and mails the requester
// their updated balance.
func (l *LeaveService) Decide(leaveID uint, status string) (*models.LeaveRequest, error) {
	if status != constants.LeaveApproved && status != constants.LeaveRejected {
		return nil, Validationf("status must be %s or %s", constants.LeaveApproved, constants.LeaveRejected)
	}

	leave, err := l.Leaves.Get(leaveID)
	if errors.Is(err, ErrNotFound) {
		return nil, NotFoundf("leave request %d not found", leaveID)
	}
	if err != nil {
		return nil, err
	}

	leave.Status = status
	if err := l.Leaves.Save(leave); err != nil {
		return nil, err
	}

	if user, err := l.user(leave.UserID); err == nil {
		balance, _ := l.Balance(user.ID)
		l.Notifier.LeaveDecided(user, leave, balance)
	}
	return leave, nil
}

// UserLeaveSummary is one row of the per-user allowance report.
type UserLeaveSummary struct {
	UserID   uint    `json:"user_id"`
	Username string  `json:"username"`
	Taken    float64 `json:"taken"`
	LOP      float64 `json:"lop"`
	Balance  float64 `json:"balance"`
	Allowed  float64 `json:"allowed"`
}

func (l *LeaveService) UserSummaries() ([]UserLeaveSummary, error) {
	users, err := l.Users.All()
	if err != nil {
		return nil, err
	}

	summaries := make([]UserLeaveSummary, 0, len(users))
	for i := range users {
		balance, err := l.Balance(users[i].ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, UserLeaveSummary{
			UserID:   users[i].ID,
			Username: users[i].Username,
			Taken:    balance.Taken,
			LOP:      balance.LOP,
			Balance:  balance.Balance,
			Allowed:  balance.Allowed,
		})
	}
	return summaries, nil
}

func (l *LeaveService) views(leaves []models.LeaveRequest) ([]LeaveView, error) {
	views := make([]LeaveView, 0, len(leaves))
	for i := range leaves {
		view := LeaveView{LeaveRequest: leaves[i], Days: leaves[i].Days()}
		if user, err := l.user(leaves[i].UserID); err == nil {
			view.Username = user.Username
		}
		if balance, err := l.Balance(leaves[i].UserID); err == nil {
			view.Balance = balance
		}
		views = append(views, view)
	}
	return views, nil
}

func (l *LeaveService) user(id uint) (*models.User, error) {
	user, err := l.Users.Get(id)
	if errors.Is(err, ErrNotFound) {
		return nil, NotFoundf("user %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

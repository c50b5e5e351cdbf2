package constants

// Status is the lifecycle state of a task. REASSIGN behaves like a second
// "not started" state: a reassigned task can move to IN_PROGRESS again.
type Status string

const (
	StatusToDo       Status = "TO_DO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusReview     Status = "REVIEW"
	StatusReassign   Status = "REASSIGN"
	StatusCompleted  Status = "COMPLETED"
)

var AllStatuses = []Status{
	StatusToDo,
	StatusInProgress,
	StatusReview,
	StatusReassign,
	StatusCompleted,
}

func (s Status) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusReview, StatusReassign, StatusCompleted:
		return true
	}
	return false
}

// Human-readable labels used by the task history view.
const (
	LabelToDo        = "To Do"
	LabelInProgress  = "In Progress"
	LabelUnderReview = "Under Review"
	LabelReassigned  = "Reassigned"
)

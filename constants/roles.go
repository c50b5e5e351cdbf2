package constants

// Role decides which transitions and endpoints a user may use.
type Role string

const (
	RoleWorker     Role = "WORKER"
	RoleSupervisor Role = "SUPERVISOR"
)

func (r Role) Valid() bool {
	return r == RoleWorker || r == RoleSupervisor
}

// Leave request lifecycle.
const (
	LeavePending  = "PENDING"
	LeaveApproved = "APPROVED"
	LeaveRejected = "REJECTED"
)

// Login audit session states.
const (
	SessionActive = "ACTIVE"
	SessionLogout = "LOGOUT"
)

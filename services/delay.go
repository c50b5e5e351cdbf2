package services

import "time"

// EvaluateDelay compares a task's completion time against its due time.
// On-time iff completion is not strictly after due; the delay is the
// non-negative minute difference when late, else zero.
//
// Due and completion timestamps carry full date-time granularity. Clients
// that submit date-only values land at midnight, so a two-day late
// completion evaluates to 2880 minutes either way.
func EvaluateDelay(due, completed time.Time) (onTime bool, delayMinutes int64) {
	if !completed.After(due) {
		return true, 0
	}
	return false, int64(completed.Sub(due) / time.Minute)
}

package attendance

import "time"

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusOnLeave Status = "on_leave"
)

// Record - one employee-day attendance entry. Reference data written by the
// surrounding attendance system; this engine only reads it.
type Record struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Status     Status
}

package model

// Worker is a warehouse worker tracked by the manpower module.
type Worker struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	EmpID   string `json:"emp_id"`
	Role    string `json:"role,omitempty"`
	Region  string `json:"region,omitempty"`
	ShiftID *int64 `json:"shift_id,omitempty"`
	Status  string `json:"status"`

	// Joined field (not always populated).
	ShiftName string `json:"shift_name,omitempty"`
}

// Worker statuses.
const (
	WorkerActive   = "Active"
	WorkerInactive = "Inactive"
)

// Shift is a named working period.
type Shift struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Attendance records one worker's presence for a date and shift.
type Attendance struct {
	ID         int64  `json:"id"`
	WorkerID   int64  `json:"worker_id"`
	Date       string `json:"date"`
	ShiftID    int64  `json:"shift_id"`
	Status     string `json:"status"`
	Notes      string `json:"notes,omitempty"`
	Supervisor string `json:"supervisor"`

	// Joined field (not always populated).
	WorkerName string `json:"worker_name,omitempty"`
}

// AttendanceEntry is one row of a bulk attendance submission.
type AttendanceEntry struct {
	WorkerID int64  `json:"worker_id" validate:"gt=0"`
	Status   string `json:"status" validate:"required"`
	Notes    string `json:"notes,omitempty"`
}

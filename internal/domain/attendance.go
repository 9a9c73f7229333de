package domain

import "time"

// AttendanceStatus enumerates daily attendance outcomes.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendanceLate    AttendanceStatus = "Late"
	AttendanceHalfDay AttendanceStatus = "HalfDay"
	AttendanceOnLeave AttendanceStatus = "OnLeave"
)

// AttendanceStatuses lists statuses in display order.
var AttendanceStatuses = []AttendanceStatus{
	AttendancePresent,
	AttendanceAbsent,
	AttendanceLate,
	AttendanceHalfDay,
	AttendanceOnLeave,
}

// Valid reports whether the status is known.
func (s AttendanceStatus) Valid() bool {
	for _, known := range AttendanceStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// AttendanceRecord is one employee's attendance for one day.
type AttendanceRecord struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	Date         time.Time
	CheckIn      *time.Time
	CheckOut     *time.Time
	Status       AttendanceStatus
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

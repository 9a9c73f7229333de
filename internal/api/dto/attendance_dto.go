package dto

import (
	"strings"
	"time"

	"github.com/empsync/empsync-service/internal/domain"
)

// AttendanceRequest marks attendance for one employee on one day.
type AttendanceRequest struct {
	EmployeeID string  `json:"employeeId" validate:"required,uuid"`
	Date       string  `json:"date" validate:"required,datetime=2006-01-02"`
	CheckIn    *string `json:"checkIn,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	CheckOut   *string `json:"checkOut,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Status     string  `json:"status" validate:"required,oneof=Present Absent Late HalfDay OnLeave"`
	Notes      string  `json:"notes" validate:"max=500"`
}

// Validate normalizes the request and checks it.
func (r *AttendanceRequest) Validate() error {
	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	r.Date = strings.TrimSpace(r.Date)
	r.Status = strings.TrimSpace(r.Status)
	r.Notes = strings.TrimSpace(r.Notes)
	return validateStruct(r)
}

// ParsedDate returns the attendance day. Call Validate first.
func (r *AttendanceRequest) ParsedDate() time.Time {
	t, _ := time.Parse(dateLayout, r.Date)
	return t
}

// AttendanceUpdateRequest amends an existing record.
type AttendanceUpdateRequest struct {
	CheckIn  *string `json:"checkIn,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	CheckOut *string `json:"checkOut,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Status   string  `json:"status" validate:"required,oneof=Present Absent Late HalfDay OnLeave"`
	Notes    string  `json:"notes" validate:"max=500"`
}

// Validate normalizes the request and checks it.
func (r *AttendanceUpdateRequest) Validate() error {
	r.Status = strings.TrimSpace(r.Status)
	r.Notes = strings.TrimSpace(r.Notes)
	return validateStruct(r)
}

// ParseTimestamp converts an optional RFC3339 field. Call Validate first.
func ParseTimestamp(value *string) *time.Time {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(*value))
	if err != nil {
		return nil
	}
	return &t
}

// AttendanceResponse is the wire form of an attendance record.
type AttendanceResponse struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employeeId"`
	EmployeeName string     `json:"employeeName"`
	Date         string     `json:"date"`
	CheckIn      *time.Time `json:"checkIn,omitempty"`
	CheckOut     *time.Time `json:"checkOut,omitempty"`
	Status       string     `json:"status"`
	Notes        string     `json:"notes"`
}

// NewAttendanceResponse maps a domain record.
func NewAttendanceResponse(rec domain.AttendanceRecord) AttendanceResponse {
	return AttendanceResponse{
		ID:           rec.ID,
		EmployeeID:   rec.EmployeeID,
		EmployeeName: rec.EmployeeName,
		Date:         rec.Date.Format(dateLayout),
		CheckIn:      rec.CheckIn,
		CheckOut:     rec.CheckOut,
		Status:       string(rec.Status),
		Notes:        rec.Notes,
	}
}

package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/empsync/empsync-service/internal/api/dto"
	"github.com/empsync/empsync-service/internal/domain"
	"github.com/empsync/empsync-service/internal/repository"
	apperrors "github.com/empsync/empsync-service/pkg/util/errorutil"
)

// AttendanceService records daily attendance.
type AttendanceService struct {
	records   repository.AttendanceRepository
	employees repository.EmployeeRepository
	now       func() time.Time
}

// AttendanceListFilters define listing parameters.
type AttendanceListFilters struct {
	Date       *time.Time
	EmployeeID *string
	Status     *domain.AttendanceStatus
	Limit      int
	Offset     int
}

// AttendanceSummary counts one day's records by status.
type AttendanceSummary struct {
	Date        string                          `json:"date"`
	Total       int                             `json:"total"`
	Counts      map[domain.AttendanceStatus]int `json:"counts"`
	PresentRate int                             `json:"presentRate"`
}

// NewAttendanceService constructs the service.
func NewAttendanceService(records repository.AttendanceRepository, employees repository.EmployeeRepository) *AttendanceService {
	return &AttendanceService{records: records, employees: employees, now: time.Now}
}

// List returns attendance records.
func (s *AttendanceService) List(ctx context.Context, filters AttendanceListFilters) ([]domain.AttendanceRecord, error) {
	records, err := s.records.List(ctx, repository.AttendanceFilter{
		Date:       filters.Date,
		EmployeeID: filters.EmployeeID,
		Status:     filters.Status,
		Limit:      filters.Limit,
		Offset:     filters.Offset,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return records, nil
}

// Mark records attendance for an employee on a day. A second mark for the same
// day is a conflict; use Update to amend it.
func (s *AttendanceService) Mark(ctx context.Context, req dto.AttendanceRequest) (*domain.AttendanceRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	employee, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, notFoundAs("employee", req.EmployeeID, err)
	}

	record := &domain.AttendanceRecord{
		EmployeeID:   employee.ID,
		EmployeeName: employee.Name,
		Date:         req.ParsedDate(),
		CheckIn:      dto.ParseTimestamp(req.CheckIn),
		CheckOut:     dto.ParseTimestamp(req.CheckOut),
		Status:       domain.AttendanceStatus(req.Status),
		Notes:        req.Notes,
	}
	if err := checkOrder(record); err != nil {
		return nil, err
	}
	if err := s.records.Create(ctx, record); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("attendance already marked for this day", map[string]any{
				"employeeId": req.EmployeeID,
				"date":       req.Date,
			})
		}
		return nil, apperrors.MapError(err)
	}
	return record, nil
}

// Update amends an attendance record.
func (s *AttendanceService) Update(ctx context.Context, id string, req dto.AttendanceUpdateRequest) (*domain.AttendanceRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewNotFound("attendance record", map[string]any{"id": id})
	}
	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs("attendance record", id, err)
	}
	record.CheckIn = dto.ParseTimestamp(req.CheckIn)
	record.CheckOut = dto.ParseTimestamp(req.CheckOut)
	record.Status = domain.AttendanceStatus(req.Status)
	record.Notes = req.Notes
	if err := checkOrder(record); err != nil {
		return nil, err
	}
	if err := s.records.Update(ctx, record); err != nil {
		return nil, notFoundAs("attendance record", id, err)
	}
	return record, nil
}

// Delete removes an attendance record.
func (s *AttendanceService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewNotFound("attendance record", map[string]any{"id": id})
	}
	if err := s.records.Delete(ctx, id); err != nil {
		return notFoundAs("attendance record", id, err)
	}
	return nil
}

// Summary counts the records of one day by status. A nil date means today.
func (s *AttendanceService) Summary(ctx context.Context, date *time.Time) (AttendanceSummary, error) {
	day := s.now().UTC().Truncate(24 * time.Hour)
	if date != nil {
		day = *date
	}
	counts, err := s.records.CountByStatus(ctx, day)
	if err != nil {
		return AttendanceSummary{}, apperrors.MapError(err)
	}

	summary := AttendanceSummary{
		Date:   day.Format("2006-01-02"),
		Counts: make(map[domain.AttendanceStatus]int, len(domain.AttendanceStatuses)),
	}
	for _, status := range domain.AttendanceStatuses {
		summary.Counts[status] = counts[status]
		summary.Total += counts[status]
	}
	if summary.Total > 0 {
		present := counts[domain.AttendancePresent] + counts[domain.AttendanceLate] + counts[domain.AttendanceHalfDay]
		summary.PresentRate = int(math.Round(float64(present) / float64(summary.Total) * 100))
	}
	return summary, nil
}

func checkOrder(record *domain.AttendanceRecord) error {
	if record.CheckIn != nil && record.CheckOut != nil && record.CheckOut.Before(*record.CheckIn) {
		return apperrors.NewFieldErrors(map[string]string{"checkOut": "must not be before checkIn"})
	}
	return nil
}

package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/empsync/empsync-service/internal/domain"
)

// AttendanceRepository persists daily attendance records.
type AttendanceRepository interface {
	Create(ctx context.Context, record *domain.AttendanceRecord) error
	Update(ctx context.Context, record *domain.AttendanceRecord) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.AttendanceRecord, error)
	List(ctx context.Context, filter AttendanceFilter) ([]domain.AttendanceRecord, error)
	CountByStatus(ctx context.Context, date time.Time) (map[domain.AttendanceStatus]int, error)
}

// AttendanceFilter narrows attendance listings.
type AttendanceFilter struct {
	Date       *time.Time
	EmployeeID *string
	Status     *domain.AttendanceStatus
	Limit      int
	Offset     int
}

type attendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository builds the repository.
func NewAttendanceRepository(pool *pgxpool.Pool) AttendanceRepository {
	return &attendanceRepository{pool: pool}
}

const attendanceColumns = `id, employee_id, employee_name, date, check_in, check_out, status, notes, created_at, updated_at`

func scanAttendance(row scanner) (domain.AttendanceRecord, error) {
	var rec domain.AttendanceRecord
	err := row.Scan(
		&rec.ID,
		&rec.EmployeeID,
		&rec.EmployeeName,
		&rec.Date,
		&rec.CheckIn,
		&rec.CheckOut,
		&rec.Status,
		&rec.Notes,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	return rec, err
}

func (r *attendanceRepository) Create(ctx context.Context, record *domain.AttendanceRecord) error {
	if err := requirePool(r.pool); err != nil {
		return err
	}
	const query = `
        INSERT INTO attendance_records (id, employee_id, employee_name, date, check_in, check_out, status, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING created_at, updated_at`
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx, query,
		record.ID,
		record.EmployeeID,
		record.EmployeeName,
		record.Date,
		record.CheckIn,
		record.CheckOut,
		record.Status,
		record.Notes,
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	return mapWriteError(err)
}

func (r *attendanceRepository) Update(ctx context.Context, record *domain.AttendanceRecord) error {
	if err := requirePool(r.pool); err != nil {
		return err
	}
	const query = `
        UPDATE attendance_records
        SET check_in=$1, check_out=$2, status=$3, notes=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		record.CheckIn,
		record.CheckOut,
		record.Status,
		record.Notes,
		record.ID,
	).Scan(&record.UpdatedAt)
}

func (r *attendanceRepository) Delete(ctx context.Context, id string) error {
	if err := requirePool(r.pool); err != nil {
		return err
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM attendance_records WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, id string) (*domain.AttendanceRecord, error) {
	if err := requirePool(r.pool); err != nil {
		return nil, err
	}
	rec, err := scanAttendance(r.pool.QueryRow(ctx, `SELECT `+attendanceColumns+` FROM attendance_records WHERE id=$1`, id))
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *attendanceRepository) List(ctx context.Context, filter AttendanceFilter) ([]domain.AttendanceRecord, error) {
	if err := requirePool(r.pool); err != nil {
		return nil, err
	}
	query := `SELECT ` + attendanceColumns + ` FROM attendance_records`
	args := []any{}
	clauses := []string{}

	if filter.Date != nil {
		args = append(args, *filter.Date)
		clauses = append(clauses, fmt.Sprintf("date=$%d", len(args)))
	}
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		clauses = append(clauses, fmt.Sprintf("employee_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	limit, offset := pageBounds(filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY date DESC, employee_name LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.AttendanceRecord{}
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

func (r *attendanceRepository) CountByStatus(ctx context.Context, date time.Time) (map[domain.AttendanceStatus]int, error) {
	if err := requirePool(r.pool); err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM attendance_records WHERE date=$1 GROUP BY status`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.AttendanceStatus]int)
	for rows.Next() {
		var (
			status domain.AttendanceStatus
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

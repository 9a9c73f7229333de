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

// EmployeeRepository handles persistence for employees.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) error
	Update(ctx context.Context, employee *domain.Employee) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error)
	All(ctx context.Context) ([]domain.Employee, error)
}

// EmployeeFilter defines query params for employee listing.
type EmployeeFilter struct {
	Department *string
	Status     *domain.EmployeeStatus
	Gender     *string
	Search     string
	Limit      int
	Offset     int
}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository instantiates the repository.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

const employeeColumns = `id, name, email, department, position, gender, salary, bonus, pf, tax, status, join_date, phone, address, created_at, updated_at`

func scanEmployee(row scanner) (domain.Employee, error) {
	var (
		e        domain.Employee
		joinDate *time.Time
	)
	if err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Email,
		&e.Department,
		&e.Position,
		&e.Gender,
		&e.Salary,
		&e.Bonus,
		&e.PF,
		&e.Tax,
		&e.Status,
		&joinDate,
		&e.Phone,
		&e.Address,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return domain.Employee{}, err
	}
	if joinDate != nil {
		e.JoinDate = *joinDate
	}
	return e, nil
}

func nullableDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func (r *employeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	if err := requirePool(r.pool); err != nil {
		return err
	}
	const query = `
        INSERT INTO employees (id, name, email, department, position, gender, salary, bonus, pf, tax, status, join_date, phone, address)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
        RETURNING created_at, updated_at`

	if employee.ID == "" {
		employee.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx, query,
		employee.ID,
		employee.Name,
		employee.Email,
		employee.Department,
		employee.Position,
		employee.Gender,
		employee.Salary,
		employee.Bonus,
		employee.PF,
		employee.Tax,
		employee.Status,
		nullableDate(employee.JoinDate),
		employee.Phone,
		employee.Address,
	).Scan(&employee.CreatedAt, &employee.UpdatedAt)
	return mapWriteError(err)
}

func (r *employeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	if err := requirePool(r.pool); err != nil {
		return err
	}
	const query = `
        UPDATE employees
        SET name=$1, email=$2, department=$3, position=$4, gender=$5, salary=$6, bonus=$7, pf=$8, tax=$9,
            status=$10, join_date=$11, phone=$12, address=$13, updated_at=NOW()
        WHERE id=$14
        RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		employee.Name,
		employee.Email,
		employee.Department,
		employee.Position,
		employee.Gender,
		employee.Salary,
		employee.Bonus,
		employee.PF,
		employee.Tax,
		employee.Status,
		nullableDate(employee.JoinDate),
		employee.Phone,
		employee.Address,
		employee.ID,
	).Scan(&employee.UpdatedAt)
	return mapWriteError(err)
}

func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	if err := requirePool(r.pool); err != nil {
		return err
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	return r.getOne(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id=$1`, id)
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return r.getOne(ctx, `SELECT `+employeeColumns+` FROM employees WHERE LOWER(email)=LOWER($1)`, email)
}

func (r *employeeRepository) getOne(ctx context.Context, query string, arg any) (*domain.Employee, error) {
	if err := requirePool(r.pool); err != nil {
		return nil, err
	}
	employee, err := scanEmployee(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error) {
	if err := requirePool(r.pool); err != nil {
		return nil, err
	}
	query := `SELECT ` + employeeColumns + ` FROM employees`
	args := []any{}
	clauses := []string{}

	if filter.Department != nil {
		args = append(args, *filter.Department)
		clauses = append(clauses, fmt.Sprintf("LOWER(department)=LOWER($%d)", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Gender != nil {
		args = append(args, *filter.Gender)
		clauses = append(clauses, fmt.Sprintf("LOWER(gender)=LOWER($%d)", len(args)))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d OR position ILIKE $%d OR department ILIKE $%d)", n, n, n, n))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	limit, offset := pageBounds(filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT %d OFFSET %d", limit, offset)

	return r.query(ctx, query, args...)
}

func (r *employeeRepository) All(ctx context.Context) ([]domain.Employee, error) {
	if err := requirePool(r.pool); err != nil {
		return nil, err
	}
	return r.query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY name`)
}

func (r *employeeRepository) query(ctx context.Context, query string, args ...any) ([]domain.Employee, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Employee{}
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, employee)
	}
	return result, rows.Err()
}

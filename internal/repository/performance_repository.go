package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/empsync/empsync-service/internal/domain"
)

// PerformanceRepository persists performance reviews.
type PerformanceRepository interface {
	Create(ctx context.Context, review *domain.PerformanceReview) error
	Update(ctx context.Context, review *domain.PerformanceReview) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.PerformanceReview, error)
	List(ctx context.Context, filter PerformanceFilter) ([]domain.PerformanceReview, error)
}

// PerformanceFilter narrows review listings.
type PerformanceFilter struct {
	EmployeeID *string
	Status     *domain.ReviewStatus
	Limit      int
	Offset     int
}

type performanceRepository struct {
	pool *pgxpool.Pool
}

// NewPerformanceRepository builds the repository.
func NewPerformanceRepository(pool *pgxpool.Pool) PerformanceRepository {
	return &performanceRepository{pool: pool}
}

const reviewColumns = `id, employee_id, employee_name, reviewer, period, rating, comments, status, created_at, updated_at`

func scanReview(row scanner) (domain.PerformanceReview, error) {
	var review domain.PerformanceReview
	err := row.Scan(
		&review.ID,
		&review.EmployeeID,
		&review.EmployeeName,
		&review.Reviewer,
		&review.Period,
		&review.Rating,
		&review.Comments,
		&review.Status,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	return review, err
}

func (r *performanceRepository) Create(ctx context.Context, review *domain.PerformanceReview) error {
	if err := requirePool(r.pool); err != nil {
		return err
	}
	const query = `
        INSERT INTO performance_reviews (id, employee_id, employee_name, reviewer, period, rating, comments, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING created_at, updated_at`
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	return r.pool.QueryRow(ctx, query,
		review.ID,
		review.EmployeeID,
		review.EmployeeName,
		review.Reviewer,
		review.Period,
		review.Rating,
		review.Comments,
		review.Status,
	).Scan(&review.CreatedAt, &review.UpdatedAt)
}

func (r *performanceRepository) Update(ctx context.Context, review *domain.PerformanceReview) error {
	if err := requirePool(r.pool); err != nil {
		return err
	}
	const query = `
        UPDATE performance_reviews
        SET reviewer=$1, period=$2, rating=$3, comments=$4, status=$5, updated_at=NOW()
        WHERE id=$6
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		review.Reviewer,
		review.Period,
		review.Rating,
		review.Comments,
		review.Status,
		review.ID,
	).Scan(&review.UpdatedAt)
}

func (r *performanceRepository) Delete(ctx context.Context, id string) error {
	if err := requirePool(r.pool); err != nil {
		return err
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM performance_reviews WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *performanceRepository) GetByID(ctx context.Context, id string) (*domain.PerformanceReview, error) {
	if err := requirePool(r.pool); err != nil {
		return nil, err
	}
	review, err := scanReview(r.pool.QueryRow(ctx, `SELECT `+reviewColumns+` FROM performance_reviews WHERE id=$1`, id))
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *performanceRepository) List(ctx context.Context, filter PerformanceFilter) ([]domain.PerformanceReview, error) {
	if err := requirePool(r.pool); err != nil {
		return nil, err
	}
	query := `SELECT ` + reviewColumns + ` FROM performance_reviews`
	args := []any{}
	clauses := []string{}

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
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.PerformanceReview{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, review)
	}
	return result, rows.Err()
}

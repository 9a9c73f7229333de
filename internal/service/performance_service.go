package service

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/empsync/empsync-service/internal/api/dto"
	"github.com/empsync/empsync-service/internal/domain"
	"github.com/empsync/empsync-service/internal/repository"
	apperrors "github.com/empsync/empsync-service/pkg/util/errorutil"
)

// summaryWindow caps how many reviews a summary reads.
const summaryWindow = 10000

// PerformanceService manages performance reviews.
type PerformanceService struct {
	reviews   repository.PerformanceRepository
	employees repository.EmployeeRepository
}

// PerformanceListFilters define listing parameters.
type PerformanceListFilters struct {
	EmployeeID *string
	Status     *domain.ReviewStatus
	Limit      int
	Offset     int
}

// PerformanceSummary aggregates reviews.
type PerformanceSummary struct {
	Count         int                         `json:"count"`
	AverageRating float64                     `json:"averageRating"`
	ByStatus      map[domain.ReviewStatus]int `json:"byStatus"`
	ByRating      map[int]int                 `json:"byRating"`
}

// NewPerformanceService constructs the service.
func NewPerformanceService(reviews repository.PerformanceRepository, employees repository.EmployeeRepository) *PerformanceService {
	return &PerformanceService{reviews: reviews, employees: employees}
}

// List returns reviews.
func (s *PerformanceService) List(ctx context.Context, filters PerformanceListFilters) ([]domain.PerformanceReview, error) {
	reviews, err := s.reviews.List(ctx, repository.PerformanceFilter{
		EmployeeID: filters.EmployeeID,
		Status:     filters.Status,
		Limit:      filters.Limit,
		Offset:     filters.Offset,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return reviews, nil
}

// Create stores a review for an existing employee.
func (s *PerformanceService) Create(ctx context.Context, req dto.PerformanceReviewRequest) (*domain.PerformanceReview, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	employee, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, notFoundAs("employee", req.EmployeeID, err)
	}
	status := domain.ReviewStatus(req.Status)
	if status == "" {
		status = domain.ReviewStatusDraft
	}
	review := &domain.PerformanceReview{
		EmployeeID:   employee.ID,
		EmployeeName: employee.Name,
		Reviewer:     req.Reviewer,
		Period:       req.Period,
		Rating:       req.Rating,
		Comments:     req.Comments,
		Status:       status,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, apperrors.MapError(err)
	}
	return review, nil
}

// Update amends a review.
func (s *PerformanceService) Update(ctx context.Context, id string, req dto.PerformanceReviewUpdateRequest) (*domain.PerformanceReview, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewNotFound("performance review", map[string]any{"id": id})
	}
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs("performance review", id, err)
	}
	review.Reviewer = req.Reviewer
	review.Period = req.Period
	review.Rating = req.Rating
	review.Comments = req.Comments
	review.Status = domain.ReviewStatus(req.Status)
	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, notFoundAs("performance review", id, err)
	}
	return review, nil
}

// Delete removes a review.
func (s *PerformanceService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewNotFound("performance review", map[string]any{"id": id})
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		return notFoundAs("performance review", id, err)
	}
	return nil
}

// Summary aggregates reviews matching filters.
func (s *PerformanceService) Summary(ctx context.Context, filters PerformanceListFilters) (PerformanceSummary, error) {
	filters.Limit = summaryWindow
	filters.Offset = 0
	reviews, err := s.List(ctx, filters)
	if err != nil {
		return PerformanceSummary{}, err
	}
	return SummarizeReviews(reviews), nil
}

// SummarizeReviews computes count, mean rating (two decimals) and the
// per-status and per-rating distributions.
func SummarizeReviews(reviews []domain.PerformanceReview) PerformanceSummary {
	summary := PerformanceSummary{
		ByStatus: make(map[domain.ReviewStatus]int, len(domain.ReviewStatuses)),
		ByRating: make(map[int]int, domain.MaxRating),
	}
	for _, status := range domain.ReviewStatuses {
		summary.ByStatus[status] = 0
	}
	for r := domain.MinRating; r <= domain.MaxRating; r++ {
		summary.ByRating[r] = 0
	}

	total := 0
	for _, review := range reviews {
		summary.Count++
		summary.ByStatus[review.Status]++
		summary.ByRating[review.Rating]++
		total += review.Rating
	}
	if summary.Count > 0 {
		summary.AverageRating = math.Round(float64(total)/float64(summary.Count)*100) / 100
	}
	return summary
}

package dto

import (
	"strings"
	"time"

	"github.com/empsync/empsync-service/internal/domain"
)

// PerformanceReviewRequest creates a review.
type PerformanceReviewRequest struct {
	EmployeeID string `json:"employeeId" validate:"required,uuid"`
	Reviewer   string `json:"reviewer" validate:"max=200"`
	Period     string `json:"period" validate:"required,max=50"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Comments   string `json:"comments" validate:"max=2000"`
	Status     string `json:"status" validate:"omitempty,oneof=Draft Submitted Completed"`
}

// Validate normalizes the request and checks it.
func (r *PerformanceReviewRequest) Validate() error {
	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	r.Reviewer = strings.TrimSpace(r.Reviewer)
	r.Period = strings.TrimSpace(r.Period)
	r.Comments = strings.TrimSpace(r.Comments)
	r.Status = strings.TrimSpace(r.Status)
	return validateStruct(r)
}

// PerformanceReviewUpdateRequest amends a review.
type PerformanceReviewUpdateRequest struct {
	Reviewer string `json:"reviewer" validate:"max=200"`
	Period   string `json:"period" validate:"required,max=50"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Comments string `json:"comments" validate:"max=2000"`
	Status   string `json:"status" validate:"required,oneof=Draft Submitted Completed"`
}

// Validate normalizes the request and checks it.
func (r *PerformanceReviewUpdateRequest) Validate() error {
	r.Reviewer = strings.TrimSpace(r.Reviewer)
	r.Period = strings.TrimSpace(r.Period)
	r.Comments = strings.TrimSpace(r.Comments)
	r.Status = strings.TrimSpace(r.Status)
	return validateStruct(r)
}

// PerformanceReviewResponse is the wire form of a review.
type PerformanceReviewResponse struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employeeId"`
	EmployeeName string    `json:"employeeName"`
	Reviewer     string    `json:"reviewer"`
	Period       string    `json:"period"`
	Rating       int       `json:"rating"`
	Comments     string    `json:"comments"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewPerformanceReviewResponse maps a domain review.
func NewPerformanceReviewResponse(r domain.PerformanceReview) PerformanceReviewResponse {
	return PerformanceReviewResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Reviewer:     r.Reviewer,
		Period:       r.Period,
		Rating:       r.Rating,
		Comments:     r.Comments,
		Status:       string(r.Status),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

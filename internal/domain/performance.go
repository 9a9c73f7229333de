package domain

import "time"

// ReviewStatus tracks a performance review through its workflow.
type ReviewStatus string

const (
	ReviewStatusDraft     ReviewStatus = "Draft"
	ReviewStatusSubmitted ReviewStatus = "Submitted"
	ReviewStatusCompleted ReviewStatus = "Completed"
)

// ReviewStatuses lists statuses in workflow order.
var ReviewStatuses = []ReviewStatus{ReviewStatusDraft, ReviewStatusSubmitted, ReviewStatusCompleted}

// Valid reports whether the status is known.
func (s ReviewStatus) Valid() bool {
	for _, known := range ReviewStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Rating bounds for a performance review.
const (
	MinRating = 1
	MaxRating = 5
)

// PerformanceReview records a rating for an employee over a review period.
type PerformanceReview struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	Reviewer     string
	Period       string
	Rating       int
	Comments     string
	Status       ReviewStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

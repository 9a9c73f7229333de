package dto

import (
	"strings"
	"time"

	"github.com/empsync/empsync-service/internal/domain"
)

// DepartmentRequest payload.
type DepartmentRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	IsActive    *bool  `json:"isActive,omitempty"`
}

// Validate normalizes the request and checks it.
func (r *DepartmentRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	return validateStruct(r)
}

// DepartmentResponse is the wire form of a department.
type DepartmentResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewDepartmentResponse maps a domain department.
func NewDepartmentResponse(d domain.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

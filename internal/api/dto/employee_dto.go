package dto

import (
	"strings"
	"time"

	"github.com/empsync/empsync-service/internal/codec"
	"github.com/empsync/empsync-service/internal/domain"
)

const dateLayout = "2006-01-02"

// EmployeeRequest is the create/update payload. Numeric fields accept numbers
// or numeric strings, as the legacy form posts them either way.
type EmployeeRequest struct {
	Name       string       `json:"name" validate:"required,max=200"`
	Email      string       `json:"email" validate:"required,email"`
	Department string       `json:"department" validate:"max=100"`
	Position   string       `json:"position" validate:"max=100"`
	Gender     string       `json:"gender" validate:"max=50"`
	Salary     codec.Number `json:"salary" validate:"gte=0"`
	Bonus      codec.Number `json:"bonus" validate:"gte=0"`
	PF         codec.Number `json:"pf" validate:"gte=0"`
	Tax        codec.Number `json:"tax" validate:"gte=0"`
	Status     string       `json:"status" validate:"omitempty,oneof=Active Inactive"`
	JoinDate   string       `json:"joinDate" validate:"omitempty,datetime=2006-01-02"`
	Phone      *string      `json:"phone,omitempty" validate:"omitempty,max=30"`
	Address    *string      `json:"address,omitempty" validate:"omitempty,max=500"`
}

// Normalize trims free-text fields.
func (r *EmployeeRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Department = strings.TrimSpace(r.Department)
	r.Position = strings.TrimSpace(r.Position)
	r.Gender = strings.TrimSpace(r.Gender)
	r.Status = strings.TrimSpace(r.Status)
	r.JoinDate = strings.TrimSpace(r.JoinDate)
}

// Validate normalizes the request and checks it.
func (r *EmployeeRequest) Validate() error {
	r.Normalize()
	return validateStruct(r)
}

// Apply copies the request onto employee. Call Validate first.
func (r *EmployeeRequest) Apply(employee *domain.Employee) {
	employee.Name = r.Name
	employee.Email = r.Email
	employee.Department = r.Department
	employee.Position = r.Position
	employee.Gender = r.Gender
	employee.Salary = float64(r.Salary)
	employee.Bonus = float64(r.Bonus)
	employee.PF = float64(r.PF)
	employee.Tax = float64(r.Tax)
	employee.Status = domain.EmployeeStatus(r.Status)
	if employee.Status == "" {
		employee.Status = domain.EmployeeStatusActive
	}
	employee.JoinDate = time.Time{}
	if r.JoinDate != "" {
		if t, err := time.Parse(dateLayout, r.JoinDate); err == nil {
			employee.JoinDate = t
		}
	}
	employee.Phone = r.Phone
	employee.Address = r.Address
}

// EmployeeListResponse mirrors the legacy list shape.
type EmployeeListResponse struct {
	Success   bool                   `json:"success"`
	Employees []codec.EmployeeRecord `json:"employees"`
	Page      int                    `json:"page"`
	PageSize  int                    `json:"pageSize"`
}

// EmployeeRecords converts domain employees for the wire.
func EmployeeRecords(employees []domain.Employee) []codec.EmployeeRecord {
	out := make([]codec.EmployeeRecord, 0, len(employees))
	for i := range employees {
		out = append(out, codec.FromDomain(employees[i]))
	}
	return out
}

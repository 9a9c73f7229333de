package domain

import "time"

// EmployeeStatus represents the employment state of an employee.
type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "Active"
	EmployeeStatusInactive EmployeeStatus = "Inactive"
)

// Valid reports whether the status is one of the known values.
func (s EmployeeStatus) Valid() bool {
	return s == EmployeeStatusActive || s == EmployeeStatusInactive
}

// Employee is the primary record managed by the dashboard.
type Employee struct {
	ID         string
	Name       string
	Email      string
	Department string
	Position   string
	Gender     string
	Salary     float64
	Bonus      float64
	PF         float64
	Tax        float64
	Status     EmployeeStatus
	JoinDate   time.Time
	Phone      *string
	Address    *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NetSalary is the take-home amount after provident fund and tax.
func (e Employee) NetSalary() float64 {
	return e.Salary + e.Bonus - e.PF - e.Tax
}

// IsActive reports whether the employee counts towards active headcount.
func (e Employee) IsActive() bool {
	return e.Status == EmployeeStatusActive
}

package domain

// DepartmentStat is derived per department value from the employee collection.
type DepartmentStat struct {
	Name            string  `json:"name"`
	EmployeeCount   int     `json:"employeeCount"`
	ActiveEmployees int     `json:"activeEmployees"`
	AvgSalary       float64 `json:"avgSalary"`
	TotalBudget     float64 `json:"totalBudget"`
	Utilization     int     `json:"utilization"`
}

// GenderStat is one bucket of the gender distribution.
type GenderStat struct {
	Gender     string `json:"gender"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// SalaryStats summarises salaries across a collection.
type SalaryStats struct {
	Average float64 `json:"average"`
	Highest float64 `json:"highest"`
	Lowest  float64 `json:"lowest"`
	Total   float64 `json:"total"`
	Monthly float64 `json:"monthly"`
}

// PayrollStats totals the payroll components.
type PayrollStats struct {
	TotalBonus float64 `json:"totalBonus"`
	TotalPF    float64 `json:"totalPF"`
	TotalTax   float64 `json:"totalTax"`
	TotalNet   float64 `json:"totalNet"`
}

// StatusBreakdown counts employees by status.
type StatusBreakdown struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

// Analytics is the full aggregate rendered by the dashboard.
type Analytics struct {
	DepartmentStats    []DepartmentStat `json:"departmentStats"`
	GenderDistribution []GenderStat     `json:"genderDistribution"`
	SalaryStats        SalaryStats      `json:"salaryStats"`
	Payroll            PayrollStats     `json:"payroll"`
	Status             StatusBreakdown  `json:"status"`
}

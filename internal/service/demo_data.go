package service

import (
	"time"

	"github.com/empsync/empsync-service/internal/domain"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// DemoEmployees is the built-in dataset shown when neither the primary source
// nor a snapshot can supply employees. It always returns a fresh slice.
func DemoEmployees() []domain.Employee {
	return []domain.Employee{
		{ID: "demo-01", Name: "Aarav Sharma", Email: "aarav.sharma@example.com", Department: "Engineering", Position: "Senior Engineer", Gender: "Male", Salary: 95000, Bonus: 8000, PF: 4560, Tax: 14250, Status: domain.EmployeeStatusActive, JoinDate: day(2019, time.March, 11)},
		{ID: "demo-02", Name: "Priya Nair", Email: "priya.nair@example.com", Department: "Engineering", Position: "Engineering Manager", Gender: "Female", Salary: 120000, Bonus: 15000, PF: 5760, Tax: 21600, Status: domain.EmployeeStatusActive, JoinDate: day(2017, time.July, 3)},
		{ID: "demo-03", Name: "Daniel Okafor", Email: "daniel.okafor@example.com", Department: "Engineering", Position: "Engineer", Gender: "Male", Salary: 72000, Bonus: 3000, PF: 3456, Tax: 8640, Status: domain.EmployeeStatusActive, JoinDate: day(2023, time.January, 16)},
		{ID: "demo-04", Name: "Mei Chen", Email: "mei.chen@example.com", Department: "Design", Position: "Product Designer", Gender: "Female", Salary: 78000, Bonus: 4000, PF: 3744, Tax: 9360, Status: domain.EmployeeStatusActive, JoinDate: day(2021, time.September, 6)},
		{ID: "demo-05", Name: "Lucas Moreau", Email: "lucas.moreau@example.com", Department: "Sales", Position: "Account Executive", Gender: "Male", Salary: 64000, Bonus: 12000, PF: 3072, Tax: 7680, Status: domain.EmployeeStatusActive, JoinDate: day(2022, time.April, 19)},
		{ID: "demo-06", Name: "Fatima Al-Sayed", Email: "fatima.alsayed@example.com", Department: "Sales", Position: "Sales Lead", Gender: "Female", Salary: 82000, Bonus: 10000, PF: 3936, Tax: 10660, Status: domain.EmployeeStatusActive, JoinDate: day(2020, time.February, 24)},
		{ID: "demo-07", Name: "Jordan Reyes", Email: "jordan.reyes@example.com", Department: "Human Resources", Position: "HR Generalist", Gender: "Non-binary", Salary: 58000, Bonus: 2000, PF: 2784, Tax: 5800, Status: domain.EmployeeStatusActive, JoinDate: day(2022, time.October, 10)},
		{ID: "demo-08", Name: "Sofia Rossi", Email: "sofia.rossi@example.com", Department: "Finance", Position: "Financial Analyst", Gender: "Female", Salary: 69000, Bonus: 3500, PF: 3312, Tax: 8280, Status: domain.EmployeeStatusActive, JoinDate: day(2021, time.May, 31)},
		{ID: "demo-09", Name: "Kenji Watanabe", Email: "kenji.watanabe@example.com", Department: "Finance", Position: "Controller", Gender: "Male", Salary: 88000, Bonus: 6000, PF: 4224, Tax: 12320, Status: domain.EmployeeStatusInactive, JoinDate: day(2018, time.November, 12)},
		{ID: "demo-10", Name: "Amara Mensah", Email: "amara.mensah@example.com", Department: "Marketing", Position: "Marketing Specialist", Gender: "Female", Salary: 61000, Bonus: 2500, PF: 2928, Tax: 6100, Status: domain.EmployeeStatusActive, JoinDate: day(2024, time.January, 8)},
		{ID: "demo-11", Name: "Oliver Bennett", Email: "oliver.bennett@example.com", Department: "Marketing", Position: "Content Strategist", Gender: "Male", Salary: 57000, Bonus: 1500, PF: 2736, Tax: 5700, Status: domain.EmployeeStatusInactive, JoinDate: day(2020, time.August, 17)},
		{ID: "demo-12", Name: "Isabella Costa", Email: "isabella.costa@example.com", Department: "Operations", Position: "Operations Coordinator", Gender: "Female", Salary: 54000, Bonus: 2000, PF: 2592, Tax: 5400, Status: domain.EmployeeStatusActive, JoinDate: day(2023, time.June, 26)},
	}
}

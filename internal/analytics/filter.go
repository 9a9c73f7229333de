package analytics

import (
	"sort"
	"strings"

	"github.com/empsync/empsync-service/internal/domain"
)

// EmployeeFilter narrows a collection the way the dashboard's search bar does.
// Empty fields match everything.
type EmployeeFilter struct {
	Department string
	Status     domain.EmployeeStatus
	Gender     string
	Search     string
}

// IsZero reports whether the filter matches every employee.
func (f EmployeeFilter) IsZero() bool {
	return f.Department == "" && f.Status == "" && f.Gender == "" && strings.TrimSpace(f.Search) == ""
}

// Filter returns the employees that satisfy every criterion in f.
func Filter(employees []domain.Employee, f EmployeeFilter) []domain.Employee {
	if f.IsZero() {
		out := make([]domain.Employee, len(employees))
		copy(out, employees)
		return out
	}

	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]domain.Employee, 0, len(employees))
	for _, e := range employees {
		if f.Department != "" && !strings.EqualFold(bucket(e.Department, UnassignedDepartment), f.Department) {
			continue
		}
		if f.Status != "" && !strings.EqualFold(string(e.Status), string(f.Status)) {
			continue
		}
		if f.Gender != "" && !strings.EqualFold(bucket(e.Gender, UnspecifiedGender), f.Gender) {
			continue
		}
		if search != "" && !matchesSearch(e, search) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func matchesSearch(e domain.Employee, needle string) bool {
	for _, field := range []string{e.Name, e.Email, e.Position, e.Department} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// RecentHires returns up to n employees ordered by join date, newest first.
func RecentHires(employees []domain.Employee, n int) []domain.Employee {
	if n <= 0 {
		return []domain.Employee{}
	}
	sorted := make([]domain.Employee, len(employees))
	copy(sorted, employees)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].JoinDate.After(sorted[j].JoinDate)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Package analytics derives dashboard statistics from employee collections.
// Everything here is pure: no I/O, no shared state.
package analytics

import (
	"math"
	"sort"
	"strings"

	"github.com/empsync/empsync-service/internal/domain"
)

const (
	// UnassignedDepartment buckets employees without a department.
	UnassignedDepartment = "Unassigned"
	// UnspecifiedGender buckets employees without a gender.
	UnspecifiedGender = "Not Specified"
)

type deptAccumulator struct {
	count  int
	active int
	budget float64
}

// Aggregate computes department, gender, salary, payroll and status statistics.
// An empty input yields zero values and empty, non-nil slices.
func Aggregate(employees []domain.Employee) domain.Analytics {
	result := domain.Analytics{
		DepartmentStats:    make([]domain.DepartmentStat, 0),
		GenderDistribution: make([]domain.GenderStat, 0),
	}
	if len(employees) == 0 {
		return result
	}

	depts := make(map[string]*deptAccumulator)
	genders := make(map[string]int)

	var (
		total      float64
		highest    float64
		lowest     float64
		seenSalary bool
	)

	for i := range employees {
		e := &employees[i]

		name := bucket(e.Department, UnassignedDepartment)
		acc, ok := depts[name]
		if !ok {
			acc = &deptAccumulator{}
			depts[name] = acc
		}
		acc.count++
		acc.budget += e.Salary
		if e.IsActive() {
			acc.active++
			result.Status.Active++
		} else {
			result.Status.Inactive++
		}

		genders[bucket(e.Gender, UnspecifiedGender)]++

		total += e.Salary
		if e.Salary > 0 {
			if !seenSalary {
				highest, lowest = e.Salary, e.Salary
				seenSalary = true
			} else {
				highest = math.Max(highest, e.Salary)
				lowest = math.Min(lowest, e.Salary)
			}
		}

		result.Payroll.TotalBonus += e.Bonus
		result.Payroll.TotalPF += e.PF
		result.Payroll.TotalTax += e.Tax
		result.Payroll.TotalNet += e.NetSalary()
	}

	count := len(employees)
	result.Status.Total = count
	result.SalaryStats = domain.SalaryStats{
		Average: total / float64(count),
		Highest: highest,
		Lowest:  lowest,
		Total:   total,
		Monthly: total / 12,
	}

	for name, acc := range depts {
		result.DepartmentStats = append(result.DepartmentStats, domain.DepartmentStat{
			Name:            name,
			EmployeeCount:   acc.count,
			ActiveEmployees: acc.active,
			AvgSalary:       acc.budget / float64(acc.count),
			TotalBudget:     acc.budget,
			Utilization:     percent(acc.active, acc.count),
		})
	}
	sort.Slice(result.DepartmentStats, func(i, j int) bool {
		a, b := result.DepartmentStats[i], result.DepartmentStats[j]
		if a.EmployeeCount != b.EmployeeCount {
			return a.EmployeeCount > b.EmployeeCount
		}
		return a.Name < b.Name
	})

	for gender, n := range genders {
		result.GenderDistribution = append(result.GenderDistribution, domain.GenderStat{
			Gender:     gender,
			Count:      n,
			Percentage: percent(n, count),
		})
	}
	sort.Slice(result.GenderDistribution, func(i, j int) bool {
		a, b := result.GenderDistribution[i], result.GenderDistribution[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Gender < b.Gender
	})

	return result
}

// DepartmentStats is Aggregate narrowed to the per-department view.
func DepartmentStats(employees []domain.Employee) []domain.DepartmentStat {
	return Aggregate(employees).DepartmentStats
}

// SalaryStats is Aggregate narrowed to the salary summary.
func SalaryStats(employees []domain.Employee) domain.SalaryStats {
	return Aggregate(employees).SalaryStats
}

func bucket(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}

// percent returns round(part / whole * 100), or 0 for an empty whole.
func percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

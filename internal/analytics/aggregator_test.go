package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/empsync/empsync-service/internal/codec"
	"github.com/empsync/empsync-service/internal/domain"
)

func sampleEmployees() []domain.Employee {
	return []domain.Employee{
		{ID: "1", Name: "Asha", Department: "Engineering", Gender: "Female", Salary: 90000, Bonus: 5000, PF: 1800, Tax: 9000, Status: domain.EmployeeStatusActive},
		{ID: "2", Name: "Ravi", Department: "Engineering", Gender: "Male", Salary: 70000, Status: domain.EmployeeStatusActive},
		{ID: "3", Name: "Meera", Department: "Engineering", Gender: "Female", Salary: 80000, Status: domain.EmployeeStatusInactive},
		{ID: "4", Name: "Tom", Department: "Sales", Gender: "Male", Salary: 40000, Status: domain.EmployeeStatusActive},
		{ID: "5", Name: "Lin", Department: "", Gender: "", Salary: 30000, Status: domain.EmployeeStatusActive},
		{ID: "6", Name: "Sam", Department: "Sales", Gender: "Non-binary", Salary: 50000, Status: domain.EmployeeStatusActive},
		{ID: "7", Name: "Kai", Department: "HR", Gender: "Male", Salary: 45000, Status: domain.EmployeeStatusInactive},
	}
}

func TestAggregate_DepartmentCountsSumToTotal(t *testing.T) {
	employees := sampleEmployees()
	result := Aggregate(employees)

	sum := 0
	for _, d := range result.DepartmentStats {
		sum += d.EmployeeCount
	}
	require.Equal(t, len(employees), sum)
}

func TestAggregate_DepartmentStats(t *testing.T) {
	result := Aggregate(sampleEmployees())

	require.Len(t, result.DepartmentStats, 4)
	eng := result.DepartmentStats[0]
	require.Equal(t, "Engineering", eng.Name)
	require.Equal(t, 3, eng.EmployeeCount)
	require.Equal(t, 2, eng.ActiveEmployees)
	require.Equal(t, 240000.0, eng.TotalBudget)
	require.Equal(t, 80000.0, eng.AvgSalary)
	require.Equal(t, 67, eng.Utilization)

	require.Equal(t, "Sales", result.DepartmentStats[1].Name)
	require.Equal(t, 2, result.DepartmentStats[1].EmployeeCount)

	// ties on count are ordered by name
	require.Equal(t, "HR", result.DepartmentStats[2].Name)
	require.Equal(t, UnassignedDepartment, result.DepartmentStats[3].Name)

	for _, d := range result.DepartmentStats {
		require.InDelta(t, d.TotalBudget/float64(d.EmployeeCount), d.AvgSalary, 1e-9)
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	result := Aggregate(nil)

	require.Equal(t, domain.SalaryStats{}, result.SalaryStats)
	require.NotNil(t, result.DepartmentStats)
	require.Empty(t, result.DepartmentStats)
	require.NotNil(t, result.GenderDistribution)
	require.Empty(t, result.GenderDistribution)
	require.Equal(t, domain.StatusBreakdown{}, result.Status)
}

func TestAggregate_GenderPercentagesSumToHundred(t *testing.T) {
	result := Aggregate(sampleEmployees())

	total := 0
	buckets := map[string]int{}
	for _, g := range result.GenderDistribution {
		total += g.Percentage
		buckets[g.Gender] = g.Count
	}
	require.InDelta(t, 100, total, float64(len(result.GenderDistribution)))
	require.Equal(t, 3, buckets["Male"])
	require.Equal(t, 2, buckets["Female"])
	require.Equal(t, 1, buckets[UnspecifiedGender])
	require.Equal(t, "Male", result.GenderDistribution[0].Gender)
	require.Equal(t, 43, result.GenderDistribution[0].Percentage)
}

func TestAggregate_SalaryStatsIgnoresMalformedSalary(t *testing.T) {
	employees, err := codec.DecodeEmployees([]byte(`[{"salary":50000},{"salary":70000},{"salary":"bad"}]`))
	require.NoError(t, err)

	stats := Aggregate(employees).SalaryStats
	require.Equal(t, 120000.0, stats.Total)
	require.Equal(t, 70000.0, stats.Highest)
	require.Equal(t, 50000.0, stats.Lowest)
	require.Equal(t, 40000.0, stats.Average)
	require.Equal(t, 10000.0, stats.Monthly)
}

func TestAggregate_AllZeroSalaries(t *testing.T) {
	stats := SalaryStats([]domain.Employee{{ID: "a"}, {ID: "b"}})
	require.Equal(t, domain.SalaryStats{}, stats)
}

func TestAggregate_PayrollAndStatus(t *testing.T) {
	result := Aggregate(sampleEmployees())

	require.Equal(t, 7, result.Status.Total)
	require.Equal(t, 5, result.Status.Active)
	require.Equal(t, 2, result.Status.Inactive)
	require.Equal(t, 5000.0, result.Payroll.TotalBonus)
	require.Equal(t, 1800.0, result.Payroll.TotalPF)
	require.Equal(t, 9000.0, result.Payroll.TotalTax)
	require.Equal(t, result.SalaryStats.Total+5000-1800-9000, result.Payroll.TotalNet)
}

func TestFilter(t *testing.T) {
	employees := sampleEmployees()

	require.Len(t, Filter(employees, EmployeeFilter{}), len(employees))
	require.Len(t, Filter(employees, EmployeeFilter{Department: "engineering"}), 3)
	require.Len(t, Filter(employees, EmployeeFilter{Department: UnassignedDepartment}), 1)
	require.Len(t, Filter(employees, EmployeeFilter{Status: domain.EmployeeStatusInactive}), 2)
	require.Len(t, Filter(employees, EmployeeFilter{Gender: "male", Status: domain.EmployeeStatusActive}), 2)

	found := Filter(employees, EmployeeFilter{Search: "  MEE "})
	require.Len(t, found, 1)
	require.Equal(t, "3", found[0].ID)
}

func TestFilter_DoesNotAliasInput(t *testing.T) {
	employees := sampleEmployees()
	out := Filter(employees, EmployeeFilter{})
	out[0].Name = "changed"
	require.Equal(t, "Asha", employees[0].Name)
}

func TestRecentHires(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	employees := []domain.Employee{
		{ID: "old", JoinDate: day(1)},
		{ID: "new", JoinDate: day(20)},
		{ID: "mid", JoinDate: day(10)},
	}

	recent := RecentHires(employees, 2)
	require.Len(t, recent, 2)
	require.Equal(t, "new", recent[0].ID)
	require.Equal(t, "mid", recent[1].ID)
	require.Empty(t, RecentHires(employees, 0))
}

package pipeline

import (
	"testing"

	"empreport/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateWorkedExample(t *testing.T) {
	records := []model.Record{
		{Name: "John", Age: 30, Department: "IT", Salary: 50000},
		{Name: "Alice", Age: 29, Department: "IT", Salary: 55000},
		{Name: "Doe", Age: 45, Department: "HR", Salary: 60000},
		{Name: "Eve", Age: 40, Department: "HR", Salary: 70000},
	}

	summary := Aggregate(records)

	require.Equal(t, []string{"HR", "IT"}, summary.Departments)
	assert.Equal(t, model.Aggregate{
		AverageSalary: 52500.0,
		TotalSalary:   105000,
		HighestSalary: 55000,
		LowestSalary:  50000,
	}, summary.Groups["IT"])
	assert.Equal(t, model.Aggregate{
		AverageSalary: 65000.0,
		TotalSalary:   130000,
		HighestSalary: 70000,
		LowestSalary:  60000,
	}, summary.Groups["HR"])
}

func TestAggregateSingleRecordGroup(t *testing.T) {
	summary := Aggregate([]model.Record{
		{Name: "Bob", Age: 35, Department: "Finance", Salary: 45000},
	})

	require.Equal(t, []string{"Finance"}, summary.Departments)
	agg := summary.Groups["Finance"]
	assert.Equal(t, 45000.0, agg.AverageSalary)
	assert.Equal(t, 45000, agg.TotalSalary)
	assert.Equal(t, 45000, agg.HighestSalary)
	assert.Equal(t, 45000, agg.LowestSalary)
}

func TestAggregateEmptyInput(t *testing.T) {
	summary := Aggregate(nil)
	assert.Empty(t, summary.Departments)
	assert.Empty(t, summary.Groups)
}

func TestAggregateDepartmentsSorted(t *testing.T) {
	summary := Aggregate([]model.Record{
		{Name: "a", Age: 1, Department: "IT", Salary: 1},
		{Name: "b", Age: 1, Department: "Finance", Salary: 1},
		{Name: "c", Age: 1, Department: "HR", Salary: 1},
	})
	assert.Equal(t, []string{"Finance", "HR", "IT"}, summary.Departments)
}

package pipeline

import (
	"sort"

	"empreport/internal/model"
)

// Aggregate partitions records by department and computes the salary
// statistics per group. A department with a single record has
// average = total = highest = lowest = that salary. The result lists
// departments in lexicographic order so output is deterministic.
func Aggregate(records []model.Record) model.Summary {
	type acc struct {
		total int
		high  int
		low   int
		count int
	}

	accs := make(map[string]*acc)
	for _, rec := range records {
		a, ok := accs[rec.Department]
		if !ok {
			accs[rec.Department] = &acc{
				total: rec.Salary,
				high:  rec.Salary,
				low:   rec.Salary,
				count: 1,
			}
			continue
		}
		a.total += rec.Salary
		a.count++
		if rec.Salary > a.high {
			a.high = rec.Salary
		}
		if rec.Salary < a.low {
			a.low = rec.Salary
		}
	}

	departments := make([]string, 0, len(accs))
	for dept := range accs {
		departments = append(departments, dept)
	}
	sort.Strings(departments)

	groups := make(map[string]model.Aggregate, len(accs))
	for dept, a := range accs {
		groups[dept] = model.Aggregate{
			AverageSalary: float64(a.total) / float64(a.count),
			TotalSalary:   a.total,
			HighestSalary: a.high,
			LowestSalary:  a.low,
		}
	}

	return model.Summary{Departments: departments, Groups: groups}
}

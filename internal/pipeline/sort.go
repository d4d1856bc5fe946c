package pipeline

import (
	"errors"
	"fmt"
	"sort"

	"empreport/internal/model"
)

// ErrUnknownSortKey marks an unrecognized sort key. The caller gets the
// input order back and decides whether to log or fail.
var ErrUnknownSortKey = errors.New("unknown sort key")

// SortRecords returns a new slice ordered ascending by the given key.
// Name compares lexicographically, age and salary numerically; ties
// keep their original relative order. An unknown key returns the input
// order unchanged together with ErrUnknownSortKey.
func SortRecords(records []model.Record, key model.SortKey) ([]model.Record, error) {
	out := make([]model.Record, len(records))
	copy(out, records)

	switch key {
	case model.SortNone:
		// sorting not requested
	case model.SortByName:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	case model.SortByAge:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Age < out[j].Age })
	case model.SortBySalary:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Salary < out[j].Salary })
	default:
		return out, fmt.Errorf("%w: %q", ErrUnknownSortKey, key)
	}

	return out, nil
}

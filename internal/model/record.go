package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record represents one validated employee line-item. Records are
// constructed by the loader and never mutated afterwards.
type Record struct {
	Name       string `json:"name" validate:"required"`
	Age        int    `json:"age" validate:"gt=0"`
	Department string `json:"department" validate:"required"`
	Salary     int    `json:"salary" validate:"gt=0"`
}

// Aggregate holds the computed salary statistics for one department.
type Aggregate struct {
	AverageSalary float64 `json:"average_salary"`
	TotalSalary   int     `json:"total_salary"`
	HighestSalary int     `json:"highest_salary"`
	LowestSalary  int     `json:"lowest_salary"`
}

// Summary maps department names to their Aggregate. Departments holds
// the keys in lexicographic order so that report output is identical
// for identical input.
type Summary struct {
	Departments []string
	Groups      map[string]Aggregate
}

// MarshalJSON writes the groups as a JSON object whose keys appear in
// Departments order.
func (s Summary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, dept := range s.Departments {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(dept)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(s.Groups[dept])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SortKey selects the record field the sorter orders by.
type SortKey string

const (
	SortNone     SortKey = ""
	SortByName   SortKey = "name"
	SortByAge    SortKey = "age"
	SortBySalary SortKey = "salary"
)

// Format selects the report output format.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
)

// ParseFormat validates a format name supplied by flag or config file.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatCSV, FormatExcel:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown report format: %q (want text, json, csv or excel)", s)
	}
}

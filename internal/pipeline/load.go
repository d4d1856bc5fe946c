package pipeline

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"empreport/internal/model"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ErrInputNotFound marks a missing input file. The whole load fails
// with no partial result; every other line-level problem is recoverable.
var ErrInputNotFound = errors.New("input file not found")

// LoadStats counts the outcome of one load pass.
type LoadStats struct {
	Loaded  int
	Skipped int
}

var validate = validator.New()

// Load reads a delimited employee file and returns the valid records in
// file order. Malformed or invalid lines are logged and skipped; a
// missing file aborts the load with ErrInputNotFound.
func Load(path string, log *zap.Logger) ([]model.Record, LoadStats, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var stats LoadStats

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, stats, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, stats, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	var records []model.Record
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		rec, err := parseLine(line)
		if err == nil {
			err = validateRecord(rec)
		}
		if err != nil {
			stats.Skipped++
			log.Warn("skipping record",
				zap.Int("line", lineNo),
				zap.String("reason", err.Error()))
			continue
		}

		records = append(records, rec)
		stats.Loaded++
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("failed to read input file: %w", err)
	}

	return records, stats, nil
}

// parseLine splits one input line into a Record. The separator is a
// comma; surrounding whitespace per field is ignored, so both
// "John,30,IT,50000" and "John, 30, IT, 50000" parse identically.
func parseLine(line string) (model.Record, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 4 {
		return model.Record{}, fmt.Errorf("expected 4 fields, got %d", len(fields))
	}
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}

	age, err := strconv.Atoi(fields[1])
	if err != nil {
		return model.Record{}, fmt.Errorf("age %q is not an integer", fields[1])
	}
	salary, err := strconv.Atoi(fields[3])
	if err != nil {
		return model.Record{}, fmt.Errorf("salary %q is not an integer", fields[3])
	}

	return model.Record{
		Name:       fields[0],
		Age:        age,
		Department: fields[2],
		Salary:     salary,
	}, nil
}

// validateRecord applies the struct rules (non-empty name/department,
// strictly positive age and salary; zero is invalid) and translates the
// first violation into a line diagnostic.
func validateRecord(rec model.Record) error {
	err := validate.Struct(rec)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "gt":
			return fmt.Errorf("%s must be positive, got %v", field, fe.Value())
		case "required":
			return fmt.Errorf("%s must not be empty", field)
		}
		return fmt.Errorf("%s failed %s validation", field, fe.Tag())
	}
	return err
}

package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"empreport/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleLines = []string{
	"John, 30, IT, 50000",
	"Doe, 45, HR, 60000",
	"Alice, 29, IT, 55000",
	"Bob, 35, Finance, 45000",
	"Eve, 40, HR, 70000",
	"Chris, 31, Finance, 50000",
	"InvalidEmployee, -25, IT, -1000",
}

func writeInput(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "employees.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644))
	return path
}

func TestLoadSampleFile(t *testing.T) {
	records, stats, err := Load(writeInput(t, sampleLines...), nil)
	require.NoError(t, err)

	assert.Equal(t, 6, stats.Loaded)
	assert.Equal(t, 1, stats.Skipped)
	require.Len(t, records, 6)

	// file order is preserved
	assert.Equal(t, model.Record{Name: "John", Age: 30, Department: "IT", Salary: 50000}, records[0])
	assert.Equal(t, "Chris", records[5].Name)
}

func TestLoadAcceptsCommaWithoutSpace(t *testing.T) {
	records, stats, err := Load(writeInput(t, "John,30,IT,50000"), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Loaded)
	require.Len(t, records, 1)
	assert.Equal(t, model.Record{Name: "John", Age: 30, Department: "IT", Salary: 50000}, records[0])
}

func TestLoadRejectsBadLines(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"too few fields", "John, 30, IT"},
		{"too many fields", "John, 30, IT, 50000, extra"},
		{"non-numeric age", "John, abc, IT, 50000"},
		{"non-numeric salary", "John, 30, IT, lots"},
		{"negative age", "John, -1, IT, 50000"},
		{"negative salary", "John, 30, IT, -50000"},
		{"zero age", "John, 0, IT, 50000"},
		{"zero salary", "John, 30, IT, 0"},
		{"empty name", ", 30, IT, 50000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, stats, err := Load(writeInput(t, tt.line, "Doe, 45, HR, 60000"), nil)
			require.NoError(t, err)
			assert.Equal(t, 1, stats.Skipped)
			assert.Equal(t, 1, stats.Loaded)
			require.Len(t, records, 1)
			assert.Equal(t, "Doe", records[0].Name)
		})
	}
}

func TestLoadIgnoresBlankLines(t *testing.T) {
	records, stats, err := Load(writeInput(t, "John, 30, IT, 50000", "", "   ", "Doe, 45, HR, 60000"), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Loaded)
	assert.Equal(t, 0, stats.Skipped)
	assert.Len(t, records, 2)
}

func TestLoadMissingFile(t *testing.T) {
	records, stats, err := Load(filepath.Join(t.TempDir(), "nope.txt"), nil)
	assert.True(t, errors.Is(err, ErrInputNotFound))
	assert.Empty(t, records)
	assert.Equal(t, LoadStats{}, stats)
}

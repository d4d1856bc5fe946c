package store

import (
	"database/sql"
	"fmt"
	"time"

	"empreport/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

// Run statuses recorded in the history database.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// History persists report runs, their outcomes, and the aggregates they
// produced in a local SQLite database.
type History struct {
	db *sql.DB
}

// Run is one recorded pipeline run.
type Run struct {
	ID        string
	InputPath string
	SortKey   string
	Format    string
	Status    string
	Loaded    int
	Skipped   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Open opens (or creates) the history database and ensures its schema.
func Open(dbPath string) (*History, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			input_path TEXT,
			sort_key TEXT,
			format TEXT,
			status TEXT,
			loaded INTEGER,
			skipped INTEGER,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS run_errors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT,
			error_message TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS run_aggregates (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT,
			department TEXT,
			average_salary REAL,
			total_salary INTEGER,
			highest_salary INTEGER,
			lowest_salary INTEGER
		);`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create history schema: %w", err)
		}
	}

	return &History{db: db}, nil
}

// Close releases the underlying database handle.
func (h *History) Close() error {
	return h.db.Close()
}

// SaveRun records a new run in the running state.
func (h *History) SaveRun(runID, inputPath, sortKey, format string) error {
	now := time.Now().UTC()
	_, err := h.db.Exec(
		`INSERT INTO runs (id, input_path, sort_key, format, status, loaded, skipped, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, 0, 0, ?, ?)`,
		runID, inputPath, sortKey, format, StatusRunning, now, now)
	return err
}

// FinishRun updates the run's final status and record counts.
func (h *History) FinishRun(runID, status string, loaded, skipped int) error {
	now := time.Now().UTC()
	_, err := h.db.Exec(
		`UPDATE runs SET status = ?, loaded = ?, skipped = ?, updated_at = ? WHERE id = ?`,
		status, loaded, skipped, now, runID)
	return err
}

// SaveRunError records a recoverable or fatal error for a run.
func (h *History) SaveRunError(runID string, runErr error) error {
	if runErr == nil {
		return nil
	}
	now := time.Now().UTC()
	_, err := h.db.Exec(
		`INSERT INTO run_errors (run_id, error_message, created_at) VALUES (?, ?, ?)`,
		runID, runErr.Error(), now)
	return err
}

// SaveAggregates stores the per-department figures computed by a run.
func (h *History) SaveAggregates(runID string, summary model.Summary) error {
	for _, dept := range summary.Departments {
		agg := summary.Groups[dept]
		_, err := h.db.Exec(
			`INSERT INTO run_aggregates (run_id, department, average_salary, total_salary, highest_salary, lowest_salary)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			runID, dept, agg.AverageSalary, agg.TotalSalary, agg.HighestSalary, agg.LowestSalary)
		if err != nil {
			return err
		}
	}
	return nil
}

// ListRuns returns recorded runs, most recent first.
func (h *History) ListRuns() ([]Run, error) {
	rows, err := h.db.Query(
		`SELECT id, input_path, sort_key, format, status, loaded, skipped, created_at, updated_at
		 FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.InputPath, &r.SortKey, &r.Format, &r.Status,
			&r.Loaded, &r.Skipped, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetAggregates returns the per-department figures recorded for a run,
// in department order.
func (h *History) GetAggregates(runID string) (model.Summary, error) {
	rows, err := h.db.Query(
		`SELECT department, average_salary, total_salary, highest_salary, lowest_salary
		 FROM run_aggregates WHERE run_id = ? ORDER BY department`, runID)
	if err != nil {
		return model.Summary{}, err
	}
	defer rows.Close()

	summary := model.Summary{Groups: make(map[string]model.Aggregate)}
	for rows.Next() {
		var dept string
		var agg model.Aggregate
		if err := rows.Scan(&dept, &agg.AverageSalary, &agg.TotalSalary,
			&agg.HighestSalary, &agg.LowestSalary); err != nil {
			return model.Summary{}, err
		}
		summary.Departments = append(summary.Departments, dept)
		summary.Groups[dept] = agg
	}
	return summary, rows.Err()
}

package pipeline

import (
	"errors"
	"fmt"
	"io"
	"os"

	"empreport/internal/config"
	"empreport/internal/model"
	"empreport/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Runner wires the four stages (load, sort, aggregate, report) into a
// single-pass batch run and records the run in the history store when
// one is attached.
type Runner struct {
	Log     *zap.Logger
	History *store.History
	Out     io.Writer // console destination for the text report
}

// Result summarizes one completed run.
type Result struct {
	RunID      string
	Loaded     int
	Skipped    int
	Summary    model.Summary
	ReportPath string // empty when no report file was produced
}

// Run executes the pipeline start to finish. Recoverable conditions
// (missing input, unknown sort key, report write failure, history store
// failure) are logged and never crash the run; only an unexpected read
// error is returned.
func (r *Runner) Run(opts config.Options) (*Result, error) {
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}
	out := r.Out
	if out == nil {
		out = os.Stdout
	}

	runID := uuid.NewString()
	res := &Result{RunID: runID}

	log.Info("starting report run",
		zap.String("run_id", runID),
		zap.String("input", opts.InputPath),
		zap.String("output", opts.OutputPath),
		zap.String("sort_by", string(opts.SortBy)),
		zap.String("format", string(opts.Format)))

	if r.History != nil {
		if err := r.History.SaveRun(runID, opts.InputPath, string(opts.SortBy), string(opts.Format)); err != nil {
			log.Warn("history: failed to record run", zap.Error(err))
		}
	}

	records, stats, err := Load(opts.InputPath, log)
	res.Loaded, res.Skipped = stats.Loaded, stats.Skipped
	if err != nil {
		log.Error("load failed, skipping downstream stages", zap.Error(err))
		r.finish(runID, store.StatusFailed, stats, err)
		if errors.Is(err, ErrInputNotFound) {
			return res, nil
		}
		return res, err
	}
	log.Info("load complete",
		zap.Int("loaded", stats.Loaded),
		zap.Int("skipped", stats.Skipped))

	sorted, err := SortRecords(records, opts.SortBy)
	if err != nil {
		// stable no-op fallback: report on the original order
		log.Warn("sort skipped", zap.Error(err))
		if r.History != nil {
			if herr := r.History.SaveRunError(runID, err); herr != nil {
				log.Warn("history: failed to record error", zap.Error(herr))
			}
		}
	}

	summary := Aggregate(sorted)
	res.Summary = summary
	log.Info("aggregation complete", zap.Int("departments", len(summary.Departments)))

	fmt.Fprint(out, RenderText(summary))

	if opts.OutputPath != "" {
		if err := WriteReport(opts.OutputPath, opts.Format, summary); err != nil {
			log.Error("report write failed", zap.Error(err))
			if r.History != nil {
				if herr := r.History.SaveRunError(runID, err); herr != nil {
					log.Warn("history: failed to record error", zap.Error(herr))
				}
			}
		} else {
			res.ReportPath = opts.OutputPath
			log.Info("report written",
				zap.String("path", opts.OutputPath),
				zap.String("format", string(opts.Format)))
		}
	}

	if r.History != nil {
		if err := r.History.SaveAggregates(runID, summary); err != nil {
			log.Warn("history: failed to record aggregates", zap.Error(err))
		}
	}
	r.finish(runID, store.StatusCompleted, stats, nil)

	return res, nil
}

func (r *Runner) finish(runID, status string, stats LoadStats, cause error) {
	if r.History == nil {
		return
	}
	if cause != nil {
		if err := r.History.SaveRunError(runID, cause); err != nil && r.Log != nil {
			r.Log.Warn("history: failed to record error", zap.Error(err))
		}
	}
	if err := r.History.FinishRun(runID, status, stats.Loaded, stats.Skipped); err != nil && r.Log != nil {
		r.Log.Warn("history: failed to update run status", zap.Error(err))
	}
}

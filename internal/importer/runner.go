package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/youngbuffalo/scoreline/internal/extract"
	"github.com/youngbuffalo/scoreline/internal/ingest/csvfile"
	"github.com/youngbuffalo/scoreline/internal/service"
	"github.com/youngbuffalo/scoreline/internal/store"
)

// Runner executes import jobs: parse every CSV in the job, concatenate the
// rows in file order, then replace the match side's stats in one save.
type Runner struct {
	stats *service.StatsService
}

// NewRunner constructs a runner over the stats service.
func NewRunner(stats *service.StatsService) *Runner {
	return &Runner{stats: stats}
}

// Run executes one job, reporting progress via the Reporter if provided.
func (r *Runner) Run(ctx context.Context, job *Job, reporter Reporter) error {
	total := len(job.FilePaths)
	if total == 0 {
		return fmt.Errorf("job %d has no files", job.JobID)
	}

	var records []extract.PlayerRecord
	for idx, path := range job.FilePaths {
		if err := ctx.Err(); err != nil {
			return err
		}

		if reporter != nil {
			reporter.OnFileStart(path, idx, total)
		}

		rows, err := readFile(path)
		if err != nil {
			if reporter != nil {
				reporter.OnJobError(err)
			}
			return fmt.Errorf("file %s: %w", filepath.Base(path), err)
		}
		records = append(records, rows...)

		if reporter != nil {
			reporter.OnFileDone(path, len(rows), idx, total)
		}
	}

	if _, err := r.stats.SaveTeamStats(ctx, job.MatchID, job.Team, store.SourceCSV, records); err != nil {
		if reporter != nil {
			reporter.OnJobError(err)
		}
		return err
	}

	// Rebuild the totals view so the import shows up in leaderboards
	// without waiting for the next scheduled refresh. The rows are already
	// saved, so a refresh failure is reported but does not fail the job.
	if err := r.stats.RefreshTotals(ctx); err != nil {
		if reporter != nil {
			reporter.OnJobError(err)
		}
	}

	return nil
}

func readFile(path string) ([]extract.PlayerRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return csvfile.Read(f)
}

package importer

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/youngbuffalo/scoreline/internal/store"
)

// Request represents an import invocation request.
type Request struct {
	MatchID   string
	Team      store.TeamSide
	FilePaths []string
}

// Service coordinates job persistence, execution, and status reporting.
type Service struct {
	repo   *Repository
	runner *Runner

	historyLimit int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *log.Logger
}

// NewService constructs a Service. Call Start to launch the worker.
func NewService(db *store.Database, runner *Runner, logger *log.Logger) *Service {
	ctx, cancel := context.WithCancel(context.Background())

	if logger == nil {
		logger = log.New(log.Writer(), "[importer] ", log.LstdFlags)
	}

	return &Service{
		repo:         NewRepository(db),
		runner:       runner,
		historyLimit: 10,
		ctx:          ctx,
		cancel:       cancel,
		logger:       logger,
	}
}

// Start launches the background worker loop.
func (s *Service) Start() {
	if err := s.repo.ResetStuckJobs(s.ctx); err != nil {
		s.logger.Printf("failed to reset jobs: %v", err)
	}

	s.wg.Add(1)
	go s.worker()
}

// Shutdown stops the worker and waits for completion.
func (s *Service) Shutdown(ctx context.Context) error {
	s.cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.wg.Wait()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Enqueue creates a new job from the provided request.
func (s *Service) Enqueue(ctx context.Context, req Request) (*Job, error) {
	if req.MatchID == "" {
		return nil, fmt.Errorf("import requires match_id")
	}
	if req.Team == "" {
		return nil, fmt.Errorf("import requires team")
	}
	if len(req.FilePaths) == 0 {
		return nil, fmt.Errorf("import requires at least one file")
	}

	job := &Job{
		MatchID:       req.MatchID,
		Team:          req.Team,
		FilePaths:     req.FilePaths,
		Status:        JobStatusQueued,
		StatusMessage: sql.NullString{String: "Queued", Valid: true},
		ProgressTotal: len(req.FilePaths),
	}

	return s.repo.CreateJob(ctx, job)
}

// GetJob returns one job by ID.
func (s *Service) GetJob(ctx context.Context, jobID int) (*Job, error) {
	return s.repo.GetJob(ctx, jobID)
}

// GetStatus returns the currently running job plus recent history.
func (s *Service) GetStatus(ctx context.Context) (*StatusSummary, error) {
	active, err := s.repo.GetActiveJob(ctx)
	if err != nil {
		return nil, err
	}

	history, err := s.repo.ListRecentJobs(ctx, s.historyLimit)
	if err != nil {
		return nil, err
	}

	return &StatusSummary{
		ActiveJob: active,
		History:   history,
	}, nil
}

func (s *Service) worker() {
	defer s.wg.Done()

	ticker := time.NewTicker(3 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		default:
			job, err := s.repo.MarkNextJobRunning(s.ctx)
			if err != nil {
				s.logger.Printf("claim job error: %v", err)
				time.Sleep(time.Second)
				continue
			}
			if job == nil {
				select {
				case <-s.ctx.Done():
					return
				case <-ticker.C:
					continue
				}
			}

			s.executeJob(job)
		}
	}
}

func (s *Service) executeJob(job *Job) {
	reporter := &jobReporter{
		ctx:   s.ctx,
		repo:  s.repo,
		jobID: job.JobID,
		total: len(job.FilePaths),
	}

	if err := s.runner.Run(s.ctx, job, reporter); err != nil {
		s.logger.Printf("job %d failed: %v", job.JobID, err)
		_ = s.repo.UpdateStatus(s.ctx, job.JobID, JobStatusFailed, "Job failed", err)
		return
	}

	_ = s.repo.UpdateStatus(s.ctx, job.JobID, JobStatusCompleted, "Job completed", nil)
}

type jobReporter struct {
	ctx   context.Context
	repo  *Repository
	jobID int
	total int
}

func (r *jobReporter) OnFileStart(path string, index, total int) {
	msg := fmt.Sprintf("Processing %s (%d/%d)", path, index+1, total)
	_ = r.repo.UpdateProgress(r.ctx, r.jobID, index, total, msg)
}

func (r *jobReporter) OnFileDone(path string, rows int, index, total int) {
	msg := fmt.Sprintf("✓ %s: %d rows", path, rows)
	_ = r.repo.UpdateProgress(r.ctx, r.jobID, index+1, total, msg)
}

func (r *jobReporter) OnJobError(err error) {
	_ = r.repo.UpdateStatus(r.ctx, r.jobID, JobStatusRunning, err.Error(), err)
}

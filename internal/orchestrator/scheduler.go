package orchestrator

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Scheduling defaults: the daily pipeline fires at 07:00 local and the
// queue sweep runs every five minutes.
const (
	DefaultDailyHour         = 7
	DefaultDailyMinute       = 0
	DefaultQueuePollInterval = 5 * time.Minute
)

// JobFunc is one schedulable unit of work.
type JobFunc func(ctx context.Context) error

type schedulerJob struct {
	name string
	run  JobFunc

	// exactly one of these drives the job
	interval    time.Duration
	dailyHour   int
	dailyMinute int
	daily       bool
}

// Scheduler runs registered jobs on their cadence, one goroutine per job,
// until Stop. Job errors are logged and the cadence continues; a failing
// run never cancels the schedule.
type Scheduler struct {
	jobs       []schedulerJob
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	logger     *slog.Logger
	now        func() time.Time
}

// NewScheduler creates a new Scheduler
func NewScheduler(logger *slog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		ctx:        ctx,
		cancelFunc: cancel,
		logger:     logger.With("component", "scheduler"),
		now:        time.Now,
	}
}

// AddDaily registers a job that fires once a day at the given local
// wall-clock time. Must be called before Start.
func (s *Scheduler) AddDaily(name string, hour, minute int, run JobFunc) {
	s.jobs = append(s.jobs, schedulerJob{
		name:        name,
		run:         run,
		daily:       true,
		dailyHour:   hour,
		dailyMinute: minute,
	})
}

// AddInterval registers a job that fires on a fixed interval. Must be
// called before Start.
func (s *Scheduler) AddInterval(name string, interval time.Duration, run JobFunc) {
	s.jobs = append(s.jobs, schedulerJob{
		name:     name,
		run:      run,
		interval: interval,
	})
}

// Start launches one goroutine per registered job.
func (s *Scheduler) Start() {
	for _, job := range s.jobs {
		s.wg.Add(1)
		if job.daily {
			go s.runDaily(job)
		} else {
			go s.runInterval(job)
		}
	}

	s.logger.Info("scheduler started", "job_count", len(s.jobs))
}

// Stop cancels all jobs and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.cancelFunc()
	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) runDaily(job schedulerJob) {
	defer s.wg.Done()

	for {
		next := nextDailyRun(s.now(), job.dailyHour, job.dailyMinute)
		timer := time.NewTimer(next.Sub(s.now()))

		s.logger.Debug("daily job scheduled",
			"job", job.name,
			"next_run", next)

		select {
		case <-s.ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.execute(job)
		}
	}
}

func (s *Scheduler) runInterval(job schedulerJob) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.execute(job)
		}
	}
}

func (s *Scheduler) execute(job schedulerJob) {
	if err := job.run(s.ctx); err != nil {
		s.logger.Error("scheduled job failed",
			"job", job.name,
			"error", err)
	}
}

// nextDailyRun returns the next occurrence of hour:minute after now, in
// now's location.
func nextDailyRun(now time.Time, hour, minute int) time.Time {
	year, month, day := now.Date()
	next := time.Date(year, month, day, hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

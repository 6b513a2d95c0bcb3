package feedback

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Scheduler runs one-time jobs at a fixed instant. The dispatcher books
// feedback request emails on it an hour after delivery; jobs are fire and
// forget and do not survive a restart.
type Scheduler struct {
	scheduler gocron.Scheduler
}

// MustNewScheduler creates and starts a new Scheduler.
func MustNewScheduler() *Scheduler {
	s, err := gocron.NewScheduler()
	if err != nil {
		panic(fmt.Sprintf("Failed to create scheduler: %v", err))
	}

	s.Start()

	return &Scheduler{scheduler: s}
}

// ScheduleAt books job to run once at the instant.
func (s *Scheduler) ScheduleAt(at time.Time, name string, job func()) error {
	_, err := s.scheduler.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(at)),
		gocron.NewTask(job),
		gocron.WithName(name),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", name, err)
	}

	return nil
}

// Shutdown stops the scheduler; pending jobs are dropped.
func (s *Scheduler) Shutdown() error {
	return s.scheduler.Shutdown()
}

package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Sweeper is anything that can drop expired state and report how much
// it dropped. The bot's pending-question registry implements it.
type Sweeper interface {
	SweepExpired() int
}

// Scheduler runs periodic maintenance tasks for the application.
type Scheduler struct {
	scheduler *gocron.Scheduler
	sweeper   Sweeper
}

// New creates a new scheduler instance.
func New(sweeper Sweeper) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		sweeper:   sweeper,
	}
}

// Start begins running all scheduled tasks in the background.
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Minute().Do(s.sweepPending)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) sweepPending() {
	if n := s.sweeper.SweepExpired(); n > 0 {
		log.Printf("Swept %d expired pending questions", n)
	}
}

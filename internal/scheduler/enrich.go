package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"

	"github.com/mrlokans/lexscheduler/internal/tasks"
)

// Enqueuer adds tasks to the background queue.
type Enqueuer interface {
	Enqueue(ctx context.Context, tasks ...backlite.Task) ([]string, error)
}

// Config controls the periodic enrichment of pending words.
type Config struct {
	Enabled  bool
	Schedule string
}

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateSchedule checks a standard five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := parser.Parse(schedule)
	return err
}

// EnrichScheduler periodically enqueues enrichment of all pending words.
type EnrichScheduler struct {
	queue  Enqueuer
	config Config

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewEnrichScheduler creates a new scheduler instance
func NewEnrichScheduler(queue Enqueuer, cfg Config) *EnrichScheduler {
	return &EnrichScheduler{
		queue:  queue,
		config: cfg,
		cron:   cron.New(cron.WithParser(parser)),
	}
}

// Start begins the scheduler if sync is enabled
func (s *EnrichScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.config.Enabled {
		log.Printf("[SCHEDULER] Enrich sync disabled")
		return nil
	}

	if err := ValidateSchedule(s.config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.config.Schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.config.Schedule, func() {
		s.enqueue(context.Background())
	})
	if err != nil {
		return fmt.Errorf("failed to schedule enrich job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("[SCHEDULER] Enrich sync started with schedule '%s'. Next run: %v",
		s.config.Schedule, s.cron.Entry(entryID).Schedule.Next(time.Now()))

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running job and removes the schedule. Safe to call more than once.
func (s *EnrichScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.cron.Remove(s.entryID)

	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}
	s.isRunning = false

	log.Printf("[SCHEDULER] Enrich sync stopped")
}

// RunNow enqueues an enrichment of all pending words immediately.
func (s *EnrichScheduler) RunNow(ctx context.Context) error {
	_, err := s.queue.Enqueue(ctx, tasks.EnrichAllPendingWordsTask{})
	if err != nil {
		return fmt.Errorf("enqueue enrich_all_words: %w", err)
	}
	return nil
}

// IsRunning returns whether the scheduler is active
func (s *EnrichScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next run will occur, or nil when stopped.
func (s *EnrichScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	entry := s.cron.Entry(s.entryID)
	if !entry.Valid() {
		return nil
	}
	// Next is only filled in once the cron loop has picked the entry up.
	t := entry.Next
	if t.IsZero() {
		t = entry.Schedule.Next(time.Now())
	}
	return &t
}

func (s *EnrichScheduler) enqueue(ctx context.Context) {
	if err := s.RunNow(ctx); err != nil {
		log.Printf("[SCHEDULER] %v", err)
		return
	}
	log.Printf("[SCHEDULER] Enqueued enrichment of pending words")
}

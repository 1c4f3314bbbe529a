package reminder

import (
	"context"
	"log"
	"time"

	"golang.org/x/time/rate"
)

const sweepInterval = 5 * time.Second

// DeliverFunc sends a due reminder to its destination.
type DeliverFunc func(r Reminder) error

// Scheduler polls the store and delivers due reminders. Delivery is rate
// limited so a backlog after downtime does not hammer the Discord API.
type Scheduler struct {
	store   *Store
	deliver DeliverFunc
	limiter *rate.Limiter
}

func NewScheduler(store *Store, deliver DeliverFunc) *Scheduler {
	return &Scheduler{
		store:   store,
		deliver: deliver,
		limiter: rate.NewLimiter(rate.Limit(5), 5),
	}
}

// Run sweeps until ctx is cancelled. The first sweep happens immediately so
// reminders that came due during downtime fire right away.
func (s *Scheduler) Run(ctx context.Context) {
	log.Printf("[INFO] Reminder scheduler started, sweeping every %s", sweepInterval)

	s.sweep(ctx)

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[INFO] Reminder scheduler stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	due, err := s.store.Due(time.Now())
	if err != nil {
		log.Printf("[ERR] Error querying due reminders: %v", err)
		return
	}

	for _, r := range due {
		if err := s.limiter.Wait(ctx); err != nil {
			return
		}

		if err := s.deliver(r); err != nil {
			log.Printf("[WARN] Error delivering reminder %d, will retry next sweep: %v", r.ID, err)
			continue
		}

		deleted, err := s.store.Delete(r.ID)
		if err != nil {
			log.Printf("[ERR] Error deleting delivered reminder %d: %v", r.ID, err)
			continue
		}
		if !deleted {
			log.Printf("[WARN] Reminder %d was already removed by another sweep", r.ID)
		}
	}
}

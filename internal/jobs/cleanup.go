package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/interviewly/interview-server-go/internal/repository"
)

// CleanupJob periodically purges pending sessions whose owner never uploaded a
// video within the retention window. Analyzed sessions are kept forever.
type CleanupJob struct {
	sessionRepo repository.SessionRepository
	retention   time.Duration
	interval    time.Duration
	done        chan struct{}
}

func NewCleanupJob(sessionRepo repository.SessionRepository, retention, interval time.Duration) *CleanupJob {
	return &CleanupJob{
		sessionRepo: sessionRepo,
		retention:   retention,
		interval:    interval,
		done:        make(chan struct{}),
	}
}

func (j *CleanupJob) Start() {
	go j.run()
	log.Info().Dur("interval", j.interval).Dur("retention", j.retention).Msg("cleanup job started")
}

func (j *CleanupJob) Stop() {
	close(j.done)
	log.Info().Msg("cleanup job stopped")
}

func (j *CleanupJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.cleanup()

	for {
		select {
		case <-j.done:
			return
		case <-ticker.C:
			j.cleanup()
		}
	}
}

func (j *CleanupJob) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := j.sessionRepo.DeleteAbandonedPending(ctx, time.Now().Add(-j.retention))
	if err != nil {
		log.Error().Err(err).Msg("failed to cleanup abandoned pending sessions")
	} else if count > 0 {
		log.Info().Int64("count", count).Msg("cleaned up abandoned pending sessions")
	}
}

package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"tutortribe/internal/repository"
)

// JobService holds the periodic maintenance run over the slots table.
type JobService struct {
	slots repository.SlotRepository
	log   *zap.SugaredLogger
}

func NewJobService(slots repository.SlotRepository, log *zap.SugaredLogger) *JobService {
	return &JobService{slots: slots, log: log}
}

// CancelExpiredSlots cancels slots still open for booking whose end time has
// passed, so stale offers stop showing up in availability listings.
func (s *JobService) CancelExpiredSlots() error {
	count, err := s.slots.CancelExpired(time.Now().UTC())
	if err != nil {
		return fmt.Errorf("cron job: failed to cancel expired slots: %w", err)
	}
	if count > 0 {
		s.log.Infow("cancelled expired slots", "count", count)
	}
	return nil
}

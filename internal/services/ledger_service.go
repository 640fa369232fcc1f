package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/smart-class/classroom-service/internal/events"
	"github.com/smart-class/classroom-service/internal/models"
	"github.com/smart-class/classroom-service/internal/repositories"
)

// LedgerService manages the per-student point counters: manual teacher
// adjustments and the bulk monthly penalty reset. All deltas settle through
// the store's clamped atomic update, so a counter can never go negative and
// concurrent adjustments never lose writes.
type LedgerService interface {
	ApplyDelta(ctx context.Context, studentID string, kind models.PointKind, delta int) (int, error)
	ResetAllPenalties(ctx context.Context) (int64, error)
}

type ledgerService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewLedgerService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger) LedgerService {
	return &ledgerService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// ApplyDelta adds delta to one counter, clamped at zero, and returns the new
// value. The student's visible state only changes when the store applies the
// update; a failed update leaves the ledger untouched and publishes nothing.
func (s *ledgerService) ApplyDelta(ctx context.Context, studentID string, kind models.PointKind, delta int) (int, error) {
	if !kind.Valid() {
		return 0, ErrInvalidPointKind
	}

	newValue, err := s.repo.Profile().AdjustPoints(ctx, studentID, kind, delta)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return 0, ErrStudentNotFound
		}
		return 0, fmt.Errorf("failed to adjust points: %w", err)
	}

	s.logger.Info("Adjusted points",
		"student_id", studentID,
		"kind", kind,
		"delta", delta,
		"new_value", newValue)

	s.publishEvent(ctx, events.NewEvent(events.EventPointsAdjusted, events.PointsAdjustedEvent{
		StudentID: studentID,
		Kind:      string(kind),
		Delta:     delta,
		NewValue:  newValue,
	}))
	return newValue, nil
}

// ResetAllPenalties zeroes the penalty counter of every active student. The
// reset is absolute, not a decrement, so running it twice in a row is
// harmless.
func (s *ledgerService) ResetAllPenalties(ctx context.Context) (int64, error) {
	affected, err := s.repo.Profile().ResetAllPenalties(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to reset penalties: %w", err)
	}

	s.logger.Info("Reset penalty points", "students_affected", affected)

	s.publishEvent(ctx, events.NewEvent(events.EventPenaltiesReset, events.PenaltiesResetEvent{
		StudentsAffected: affected,
		ResetAt:          time.Now(),
	}))
	return affected, nil
}

func (s *ledgerService) publishEvent(ctx context.Context, event *events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", "event_type", event.Type, "error", err)
	}
}

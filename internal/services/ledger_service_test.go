package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/smart-class/classroom-service/internal/events"
	"github.com/smart-class/classroom-service/internal/models"
	"github.com/smart-class/classroom-service/internal/repositories"
)

// fakeProfileRepository keeps counters in memory and applies the same clamp
// the store does, so the tests exercise the real delta arithmetic.
type fakeProfileRepository struct {
	MockProfileRepository
	reward  map[string]int
	penalty map[string]int
	failing bool
}

func newFakeProfileRepository() *fakeProfileRepository {
	return &fakeProfileRepository{
		reward:  make(map[string]int),
		penalty: make(map[string]int),
	}
}

func (f *fakeProfileRepository) AdjustPoints(ctx context.Context, id string, kind models.PointKind, delta int) (int, error) {
	if f.failing {
		return 0, errors.New("connection reset")
	}
	counters := f.reward
	if kind == models.PointPenalty {
		counters = f.penalty
	}
	if _, ok := counters[id]; !ok {
		return 0, gorm.ErrRecordNotFound
	}
	next := counters[id] + delta
	if next < 0 {
		next = 0
	}
	counters[id] = next
	return next, nil
}

func (f *fakeProfileRepository) ResetAllPenalties(ctx context.Context) (int64, error) {
	if f.failing {
		return 0, errors.New("connection reset")
	}
	var affected int64
	for id := range f.penalty {
		f.penalty[id] = 0
		affected++
	}
	return affected, nil
}

type fakeLedgerRepository struct {
	*mockRepository
	profile *fakeProfileRepository
}

func (r *fakeLedgerRepository) Profile() repositories.ProfileRepository { return r.profile }

func newTestLedgerService(profile *fakeProfileRepository, publisher *events.MockEventPublisher) LedgerService {
	repo := &fakeLedgerRepository{mockRepository: newMockRepository(), profile: profile}
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewLedgerService(repo, publisher, logger)
}

func TestLedgerService_ApplyDelta(t *testing.T) {
	ctx := context.Background()

	t.Run("positive delta accumulates", func(t *testing.T) {
		profile := newFakeProfileRepository()
		profile.reward["student-1"] = 3
		publisher := events.NewMockEventPublisher(nil)
		svc := newTestLedgerService(profile, publisher)

		newValue, err := svc.ApplyDelta(ctx, "student-1", models.PointReward, 2)

		assert.NoError(t, err)
		assert.Equal(t, 5, newValue)

		published := publisher.PublishedEvents()
		assert.Len(t, published, 1)
		assert.Equal(t, events.EventPointsAdjusted, published[0].Type)
	})

	t.Run("negative delta clamps at zero", func(t *testing.T) {
		profile := newFakeProfileRepository()
		profile.penalty["student-1"] = 2
		svc := newTestLedgerService(profile, events.NewMockEventPublisher(nil))

		newValue, err := svc.ApplyDelta(ctx, "student-1", models.PointPenalty, -5)

		assert.NoError(t, err)
		assert.Equal(t, 0, newValue)
	})

	t.Run("invalid kind is rejected before touching the store", func(t *testing.T) {
		profile := newFakeProfileRepository()
		profile.reward["student-1"] = 3
		svc := newTestLedgerService(profile, events.NewMockEventPublisher(nil))

		_, err := svc.ApplyDelta(ctx, "student-1", models.PointKind("bonus"), 1)

		assert.ErrorIs(t, err, ErrInvalidPointKind)
		assert.Equal(t, 3, profile.reward["student-1"])
	})

	t.Run("unknown student maps to not found", func(t *testing.T) {
		svc := newTestLedgerService(newFakeProfileRepository(), events.NewMockEventPublisher(nil))

		_, err := svc.ApplyDelta(ctx, "ghost", models.PointReward, 1)

		assert.ErrorIs(t, err, ErrStudentNotFound)
	})

	t.Run("failed update publishes nothing", func(t *testing.T) {
		profile := newFakeProfileRepository()
		profile.reward["student-1"] = 3
		profile.failing = true
		publisher := events.NewMockEventPublisher(nil)
		svc := newTestLedgerService(profile, publisher)

		_, err := svc.ApplyDelta(ctx, "student-1", models.PointReward, 1)

		assert.Error(t, err)
		assert.Equal(t, 3, profile.reward["student-1"])
		assert.Empty(t, publisher.PublishedEvents())
	})
}

func TestLedgerService_ResetAllPenalties(t *testing.T) {
	ctx := context.Background()

	profile := newFakeProfileRepository()
	profile.penalty["student-1"] = 4
	profile.penalty["student-2"] = 0
	publisher := events.NewMockEventPublisher(nil)
	svc := newTestLedgerService(profile, publisher)

	affected, err := svc.ResetAllPenalties(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), affected)
	assert.Equal(t, 0, profile.penalty["student-1"])

	// Idempotent: a second reset leaves everything at zero.
	_, err = svc.ResetAllPenalties(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 0, profile.penalty["student-1"])
	assert.Equal(t, 0, profile.penalty["student-2"])

	published := publisher.PublishedEvents()
	assert.Len(t, published, 2)
	assert.Equal(t, events.EventPenaltiesReset, published[0].Type)
}

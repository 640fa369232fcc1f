package services

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/smart-class/classroom-service/internal/events"
	"github.com/smart-class/classroom-service/internal/models"
	"github.com/smart-class/classroom-service/internal/utils"
)

func newTestSubmissionService(repo *mockRepository, publisher *events.MockEventPublisher, policy IncentivePolicy, now time.Time) *submissionService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	svc := NewSubmissionService(repo, publisher, policy, logger, utils.NewValidator()).(*submissionService)
	svc.now = func() time.Time { return now }
	return svc
}

func activeStudent() *models.StudentProfile {
	return &models.StudentProfile{
		ID:        "student-1",
		Username:  "mina",
		Name:      "김미나",
		Role:      models.RoleStudent,
		ClassName: "월수반",
		Status:    models.StatusActive,
	}
}

func TestSubmissionService_Submit(t *testing.T) {
	ctx := context.Background()
	assignment := twoQuestionAssignment()
	onTime := assignment.DueDate.Add(-time.Hour)
	late := assignment.DueDate.Add(time.Hour)

	t.Run("on-time excellent submission grants reward", func(t *testing.T) {
		repo := newMockRepository()
		publisher := events.NewMockEventPublisher(nil)
		svc := newTestSubmissionService(repo, publisher, IncentivePolicy{}, onTime)

		repo.assignment.On("GetByID", ctx, uint(1)).Return(assignment, nil)
		repo.profile.On("GetByID", ctx, "student-1").Return(activeStudent(), nil)
		repo.submission.On("ExistsForStudent", ctx, uint(1), "student-1").Return(false, nil)
		repo.submission.On("Create", ctx, mock.AnythingOfType("*models.Submission")).Return(nil)
		repo.profile.On("AdjustPoints", ctx, "student-1", models.PointReward, 1).Return(1, nil)

		result, err := svc.Submit(ctx, &SubmitRequest{
			AssignmentID: 1,
			StudentID:    "student-1",
			Answers:      models.AnswerSet{"q1": "3", "q2": "1"},
		})

		assert.NoError(t, err)
		assert.Equal(t, 30, result.Score)
		assert.False(t, result.IsLate)
		assert.Equal(t, 1, result.RewardEarned)
		assert.Equal(t, 0, result.PenaltyApplied)
		repo.profile.AssertExpectations(t)
		repo.submission.AssertExpectations(t)

		published := publisher.PublishedEvents()
		assert.Len(t, published, 1)
		assert.Equal(t, events.EventSubmissionGraded, published[0].Type)
	})

	t.Run("late submission is accepted without reward", func(t *testing.T) {
		repo := newMockRepository()
		publisher := events.NewMockEventPublisher(nil)
		svc := newTestSubmissionService(repo, publisher, IncentivePolicy{}, late)

		repo.assignment.On("GetByID", ctx, uint(1)).Return(assignment, nil)
		repo.profile.On("GetByID", ctx, "student-1").Return(activeStudent(), nil)
		repo.submission.On("ExistsForStudent", ctx, uint(1), "student-1").Return(false, nil)
		repo.submission.On("Create", ctx, mock.AnythingOfType("*models.Submission")).Return(nil)

		result, err := svc.Submit(ctx, &SubmitRequest{
			AssignmentID: 1,
			StudentID:    "student-1",
			Answers:      models.AnswerSet{"q1": "3", "q2": "1"},
		})

		assert.NoError(t, err)
		assert.Equal(t, 30, result.Score)
		assert.True(t, result.IsLate)
		assert.Equal(t, 0, result.RewardEarned)
		assert.Equal(t, 0, result.PenaltyApplied)
		// No point delta, so AdjustPoints must never run.
		repo.profile.AssertNotCalled(t, "AdjustPoints", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("late submission charges the configured penalty", func(t *testing.T) {
		repo := newMockRepository()
		publisher := events.NewMockEventPublisher(nil)
		svc := newTestSubmissionService(repo, publisher, IncentivePolicy{LatePenalty: 2}, late)

		repo.assignment.On("GetByID", ctx, uint(1)).Return(assignment, nil)
		repo.profile.On("GetByID", ctx, "student-1").Return(activeStudent(), nil)
		repo.submission.On("ExistsForStudent", ctx, uint(1), "student-1").Return(false, nil)
		repo.submission.On("Create", ctx, mock.AnythingOfType("*models.Submission")).Return(nil)
		repo.profile.On("AdjustPoints", ctx, "student-1", models.PointPenalty, 2).Return(2, nil)

		result, err := svc.Submit(ctx, &SubmitRequest{
			AssignmentID: 1,
			StudentID:    "student-1",
			Answers:      models.AnswerSet{"q1": "3", "q2": "1"},
		})

		assert.NoError(t, err)
		assert.Equal(t, 2, result.PenaltyApplied)
		repo.profile.AssertExpectations(t)
	})

	t.Run("duplicate submission is rejected", func(t *testing.T) {
		repo := newMockRepository()
		publisher := events.NewMockEventPublisher(nil)
		svc := newTestSubmissionService(repo, publisher, IncentivePolicy{}, onTime)

		repo.assignment.On("GetByID", ctx, uint(1)).Return(assignment, nil)
		repo.profile.On("GetByID", ctx, "student-1").Return(activeStudent(), nil)
		repo.submission.On("ExistsForStudent", ctx, uint(1), "student-1").Return(true, nil)

		_, err := svc.Submit(ctx, &SubmitRequest{
			AssignmentID: 1,
			StudentID:    "student-1",
			Answers:      models.AnswerSet{},
		})

		assert.ErrorIs(t, err, ErrAlreadySubmitted)
		assert.Empty(t, publisher.PublishedEvents())
	})

	t.Run("pending student cannot submit", func(t *testing.T) {
		repo := newMockRepository()
		publisher := events.NewMockEventPublisher(nil)
		svc := newTestSubmissionService(repo, publisher, IncentivePolicy{}, onTime)

		pending := activeStudent()
		pending.Status = models.StatusPending
		repo.assignment.On("GetByID", ctx, uint(1)).Return(assignment, nil)
		repo.profile.On("GetByID", ctx, "student-1").Return(pending, nil)

		_, err := svc.Submit(ctx, &SubmitRequest{
			AssignmentID: 1,
			StudentID:    "student-1",
			Answers:      models.AnswerSet{},
		})

		assert.ErrorIs(t, err, ErrStudentNotActive)
	})

	t.Run("student outside the targeted class cannot submit", func(t *testing.T) {
		repo := newMockRepository()
		publisher := events.NewMockEventPublisher(nil)
		svc := newTestSubmissionService(repo, publisher, IncentivePolicy{}, onTime)

		targeted := twoQuestionAssignment()
		targeted.TargetClass = "화목반"
		repo.assignment.On("GetByID", ctx, uint(1)).Return(targeted, nil)
		repo.profile.On("GetByID", ctx, "student-1").Return(activeStudent(), nil)

		_, err := svc.Submit(ctx, &SubmitRequest{
			AssignmentID: 1,
			StudentID:    "student-1",
			Answers:      models.AnswerSet{},
		})

		assert.ErrorIs(t, err, ErrNotTargetedClass)
	})
}

func TestSubmissionService_StatusBoard(t *testing.T) {
	ctx := context.Background()
	assignment := twoQuestionAssignment()
	assignment.TargetClass = "월수반"

	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(nil)
	svc := newTestSubmissionService(repo, publisher, IncentivePolicy{}, assignment.DueDate)

	submitted := activeStudent()
	missing := activeStudent()
	missing.ID = "student-2"
	missing.Name = "박준호"

	repo.assignment.On("GetByID", ctx, uint(1)).Return(assignment, nil)
	repo.profile.On("List", ctx, mock.Anything).Return([]*models.StudentProfile{submitted, missing}, int64(2), nil)
	repo.submission.On("List", ctx, mock.Anything).Return([]*models.Submission{
		{ID: 7, AssignmentID: 1, StudentID: "student-1", Score: 30, MaxScore: 30},
	}, int64(1), nil)

	board, err := svc.StatusBoard(ctx, 1)

	assert.NoError(t, err)
	assert.Equal(t, 1, board.Submitted)
	assert.Equal(t, 1, board.Missing)
	assert.Len(t, board.Entries, 2)
	assert.True(t, board.Entries[0].Submitted)
	assert.Equal(t, 30, board.Entries[0].Score)
	assert.False(t, board.Entries[1].Submitted)
}

package services

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/datatypes"

	"github.com/smart-class/classroom-service/internal/models"
)

func submissionAt(t time.Time, score, maxScore int, isLate bool, reward int) *models.Submission {
	return &models.Submission{
		AssignmentID: 1,
		StudentID:    "student-1",
		Answers:      datatypes.NewJSONType(models.AnswerSet{}),
		Score:        score,
		MaxScore:     maxScore,
		IsLate:       isLate,
		RewardEarned: reward,
		SubmittedAt:  t,
	}
}

func TestReportService_StudentReport(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	march10 := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	march24 := time.Date(2026, 3, 24, 14, 0, 0, 0, time.UTC)
	april2 := time.Date(2026, 4, 2, 14, 0, 0, 0, time.UTC)

	setup := func() (*mockRepository, ReportService) {
		repo := newMockRepository()
		svc := NewReportService(repo, logger)

		student := activeStudent()
		student.RewardPoints = 7
		student.PenaltyPoints = 1
		repo.profile.On("GetByID", ctx, "student-1").Return(student, nil)
		repo.submission.On("List", ctx, mock.Anything).Return([]*models.Submission{
			submissionAt(march10, 30, 30, false, 1),
			submissionAt(march24, 15, 30, true, 0),
			submissionAt(april2, 20, 40, false, 0),
		}, int64(3), nil)
		return repo, svc
	}

	t.Run("monthly grouping", func(t *testing.T) {
		_, svc := setup()

		report, err := svc.StudentReport(ctx, "student-1", GroupByMonthly)

		assert.NoError(t, err)
		assert.Equal(t, 3, report.TotalSubmitted)
		assert.Equal(t, 1, report.LateCount)
		assert.InDelta(t, (100.0+50.0+50.0)/3, report.AveragePercent, 0.001)
		assert.Equal(t, 7, report.RewardPoints)

		// Newest period first.
		assert.Len(t, report.Groups, 2)
		assert.Equal(t, "2026.4", report.Groups[0].Label)
		assert.Equal(t, "2026.3", report.Groups[1].Label)
		assert.Equal(t, 2, report.Groups[1].Submitted)
		assert.Equal(t, 1, report.Groups[1].LateCount)
		assert.Equal(t, 1, report.Groups[1].RewardEarned)
		assert.InDelta(t, 75.0, report.Groups[1].AveragePercent, 0.001)
	})

	t.Run("weekly grouping keys by the week's Monday", func(t *testing.T) {
		_, svc := setup()

		report, err := svc.StudentReport(ctx, "student-1", GroupByWeekly)

		assert.NoError(t, err)
		assert.Len(t, report.Groups, 3)
		// April 2 falls in the week of Monday March 30, so all three
		// submissions bucket into March weeks, newest first.
		assert.Equal(t, "3월 5주차", report.Groups[0].Label)
		assert.Equal(t, "3월 4주차", report.Groups[1].Label)
		assert.Equal(t, "3월 2주차", report.Groups[2].Label)
	})

	t.Run("unknown grouping is rejected", func(t *testing.T) {
		_, svc := setup()

		_, err := svc.StudentReport(ctx, "student-1", ReportGroupBy("daily"))
		assert.ErrorIs(t, err, ErrValidationFailed)
	})
}

func TestWeekLabel(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{
			// March 1, 2026 is a Sunday; its week starts Monday February 23.
			name: "weekend spills into previous month's last week",
			at:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			want: "2월 4주차",
		},
		{
			name: "first full week of the month",
			at:   time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC),
			want: "3월 1주차",
		},
		{
			name: "mid-month weekday",
			at:   time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC),
			want: "3월 2주차",
		},
		{
			name: "monday keys its own week",
			at:   time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
			want: "3월 2주차",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, weekLabel(tt.at))
		})
	}
}

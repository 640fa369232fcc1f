package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/smart-class/classroom-service/internal/repositories"
)

// ReportService aggregates a student's submission history into the report
// views: overall totals plus monthly or weekly buckets.
type ReportService interface {
	StudentReport(ctx context.Context, studentID string, groupBy ReportGroupBy) (*StudentReport, error)
}

type ReportGroupBy string

const (
	GroupByMonthly ReportGroupBy = "monthly"
	GroupByWeekly  ReportGroupBy = "weekly"
)

type StudentReport struct {
	StudentID      string        `json:"student_id"`
	StudentName    string        `json:"student_name"`
	ClassName      string        `json:"class_name"`
	RewardPoints   int           `json:"reward_points"`
	PenaltyPoints  int           `json:"penalty_points"`
	Character      string        `json:"character"`
	TotalSubmitted int           `json:"total_submitted"`
	LateCount      int           `json:"late_count"`
	AveragePercent float64       `json:"average_percent"`
	GroupBy        ReportGroupBy `json:"group_by"`
	Groups         []ReportGroup `json:"groups"`
}

type ReportGroup struct {
	Label          string  `json:"label"`
	Submitted      int     `json:"submitted"`
	LateCount      int     `json:"late_count"`
	RewardEarned   int     `json:"reward_earned"`
	AveragePercent float64 `json:"average_percent"`
}

type reportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewReportService(repo repositories.Repository, logger *slog.Logger) ReportService {
	return &reportService{repo: repo, logger: logger}
}

func (s *reportService) StudentReport(ctx context.Context, studentID string, groupBy ReportGroupBy) (*StudentReport, error) {
	if groupBy != GroupByMonthly && groupBy != GroupByWeekly {
		return nil, fmt.Errorf("%w: unknown group_by %q", ErrValidationFailed, groupBy)
	}

	profile, err := s.repo.Profile().GetByID(ctx, studentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	submissions, _, err := s.repo.Submission().List(ctx, repositories.SubmissionFilters{StudentID: &studentID})
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	report := &StudentReport{
		StudentID:     profile.ID,
		StudentName:   profile.Name,
		ClassName:     profile.ClassName,
		RewardPoints:  profile.RewardPoints,
		PenaltyPoints: profile.PenaltyPoints,
		Character:     profile.Character,
		GroupBy:       groupBy,
	}

	type bucket struct {
		submitted   int
		late        int
		reward      int
		percentSum  float64
		firstMoment time.Time
	}
	buckets := make(map[string]*bucket)

	var percentSum float64
	for _, sub := range submissions {
		report.TotalSubmitted++
		if sub.IsLate {
			report.LateCount++
		}
		percentSum += sub.Percentage()

		label := monthLabel(sub.SubmittedAt)
		if groupBy == GroupByWeekly {
			label = weekLabel(sub.SubmittedAt)
		}
		b, ok := buckets[label]
		if !ok {
			b = &bucket{firstMoment: sub.SubmittedAt}
			buckets[label] = b
		}
		b.submitted++
		if sub.IsLate {
			b.late++
		}
		b.reward += sub.RewardEarned
		b.percentSum += sub.Percentage()
		if sub.SubmittedAt.Before(b.firstMoment) {
			b.firstMoment = sub.SubmittedAt
		}
	}
	if report.TotalSubmitted > 0 {
		report.AveragePercent = percentSum / float64(report.TotalSubmitted)
	}

	labels := make([]string, 0, len(buckets))
	for label := range buckets {
		labels = append(labels, label)
	}
	// Newest group first, matching how the report screen lists periods.
	sort.Slice(labels, func(i, j int) bool {
		return buckets[labels[i]].firstMoment.After(buckets[labels[j]].firstMoment)
	})

	report.Groups = make([]ReportGroup, 0, len(labels))
	for _, label := range labels {
		b := buckets[label]
		report.Groups = append(report.Groups, ReportGroup{
			Label:          label,
			Submitted:      b.submitted,
			LateCount:      b.late,
			RewardEarned:   b.reward,
			AveragePercent: b.percentSum / float64(b.submitted),
		})
	}
	return report, nil
}

// monthLabel renders "2026.3" style month keys.
func monthLabel(t time.Time) string {
	return fmt.Sprintf("%d.%d", t.Year(), int(t.Month()))
}

// weekLabel renders "3월 2주차" style keys. A submission is keyed by the
// Monday of its week: the label month is the Monday's month and the week
// number is ceil(mondayDay/7), so a weekend submission early in a month can
// land in the previous month's last week.
func weekLabel(t time.Time) string {
	monday := t.AddDate(0, 0, -mondayIndex(t.Weekday()))
	week := (monday.Day() + 6) / 7
	return fmt.Sprintf("%d월 %d주차", int(monday.Month()), week)
}

func mondayIndex(d time.Weekday) int {
	if d == time.Sunday {
		return 6
	}
	return int(d) - 1
}

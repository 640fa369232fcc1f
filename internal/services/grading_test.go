package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/smart-class/classroom-service/internal/models"
)

func twoQuestionAssignment() *models.Assignment {
	return &models.Assignment{
		ID:             1,
		Title:          "수학 숙제",
		TargetClass:    models.TargetAllClasses,
		DueDate:        time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC),
		ExcellentScore: 20,
		Questions: []models.Question{
			{
				ID:            "q1",
				Text:          "1번 문제",
				Type:          models.MultipleChoice,
				Options:       []string{"1", "2", "3", "4", "5"},
				CorrectAnswer: "3",
				Score:         10,
			},
			{
				ID:            "q2",
				Text:          "2번 문제",
				Type:          models.MultipleChoice,
				Options:       []string{"1", "2", "3", "4", "5"},
				CorrectAnswer: "1",
				Score:         20,
			},
		},
	}
}

func TestGrade(t *testing.T) {
	t.Run("all correct", func(t *testing.T) {
		assignment := twoQuestionAssignment()
		result := Grade(assignment, models.AnswerSet{"q1": "3", "q2": "1"})

		assert.Equal(t, 30, result.Score)
		assert.Equal(t, 30, result.MaxScore)
		assert.Len(t, result.Results, 2)
		assert.True(t, result.Results[0].IsCorrect)
		assert.True(t, result.Results[1].IsCorrect)
	})

	t.Run("partially correct", func(t *testing.T) {
		assignment := twoQuestionAssignment()
		result := Grade(assignment, models.AnswerSet{"q1": "3", "q2": "4"})

		assert.Equal(t, 10, result.Score)
		assert.Equal(t, 30, result.MaxScore)
		assert.True(t, result.Results[0].IsCorrect)
		assert.False(t, result.Results[1].IsCorrect)
		assert.True(t, result.Results[1].Answered)
	})

	t.Run("unanswered question is wrong but marked unanswered", func(t *testing.T) {
		assignment := twoQuestionAssignment()
		result := Grade(assignment, models.AnswerSet{"q2": "1"})

		assert.Equal(t, 20, result.Score)
		assert.False(t, result.Results[0].Answered)
		assert.False(t, result.Results[0].IsCorrect)
		assert.Empty(t, result.Results[0].StudentAnswer)
	})

	t.Run("comparison is exact string equality", func(t *testing.T) {
		assignment := twoQuestionAssignment()
		assignment.Questions = append(assignment.Questions, models.Question{
			ID:            "q3",
			Type:          models.ShortAnswer,
			CorrectAnswer: "Seoul",
			Score:         5,
		})

		result := Grade(assignment, models.AnswerSet{"q3": "seoul"})
		assert.False(t, result.Results[2].IsCorrect)

		result = Grade(assignment, models.AnswerSet{"q3": " Seoul"})
		assert.False(t, result.Results[2].IsCorrect)

		result = Grade(assignment, models.AnswerSet{"q3": "Seoul"})
		assert.True(t, result.Results[2].IsCorrect)
	})

	t.Run("results follow question order", func(t *testing.T) {
		assignment := twoQuestionAssignment()
		result := Grade(assignment, models.AnswerSet{})

		assert.Equal(t, 0, result.Results[0].Index)
		assert.Equal(t, "q1", result.Results[0].QuestionID)
		assert.Equal(t, 1, result.Results[1].Index)
		assert.Equal(t, "q2", result.Results[1].QuestionID)
	})

	t.Run("grading is deterministic", func(t *testing.T) {
		assignment := twoQuestionAssignment()
		answers := models.AnswerSet{"q1": "3", "q2": "4"}

		first := Grade(assignment, answers)
		second := Grade(assignment, answers)
		assert.Equal(t, first, second)
	})

	t.Run("empty question set yields zero over zero", func(t *testing.T) {
		assignment := &models.Assignment{Questions: []models.Question{}}
		result := Grade(assignment, models.AnswerSet{"q1": "3"})

		assert.Equal(t, 0, result.Score)
		assert.Equal(t, 0, result.MaxScore)
		assert.Empty(t, result.Results)
	})
}

func TestIsLate(t *testing.T) {
	due := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)

	assert.False(t, IsLate(due.Add(-time.Minute), due))
	assert.False(t, IsLate(due, due), "submission exactly at the deadline is on time")
	assert.True(t, IsLate(due.Add(time.Nanosecond), due))
}

func TestIncentivePolicy_Derive(t *testing.T) {
	policy := IncentivePolicy{}

	t.Run("on-time excellent score earns one reward", func(t *testing.T) {
		inc := policy.Derive(25, false, 20)
		assert.Equal(t, 1, inc.RewardEarned)
		assert.Equal(t, 0, inc.PenaltyApplied)
	})

	t.Run("score at threshold earns the reward", func(t *testing.T) {
		inc := policy.Derive(20, false, 20)
		assert.Equal(t, 1, inc.RewardEarned)
	})

	t.Run("score below threshold earns nothing", func(t *testing.T) {
		inc := policy.Derive(19, false, 20)
		assert.Equal(t, 0, inc.RewardEarned)
		assert.Equal(t, 0, inc.PenaltyApplied)
	})

	t.Run("late submission earns no reward even with a perfect score", func(t *testing.T) {
		inc := policy.Derive(30, true, 20)
		assert.Equal(t, 0, inc.RewardEarned)
		assert.Equal(t, 0, inc.PenaltyApplied)
	})

	t.Run("late penalty follows the configured value", func(t *testing.T) {
		charged := IncentivePolicy{LatePenalty: 2}
		inc := charged.Derive(30, true, 20)
		assert.Equal(t, 2, inc.PenaltyApplied)
		assert.Equal(t, 0, inc.RewardEarned)
	})

	t.Run("threshold compares raw points without rescaling", func(t *testing.T) {
		// A 30-point assignment with a threshold of 100 can never reward.
		inc := policy.Derive(30, false, 100)
		assert.Equal(t, 0, inc.RewardEarned)
	})
}

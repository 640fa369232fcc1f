package services

import (
	"time"

	"github.com/smart-class/classroom-service/internal/models"
)

// QuestionResult is the per-question outcome of grading one submission.
// Answered is false when the student left the question blank; the sentinel
// matters to the result view, which renders blanks differently from wrong
// answers.
type QuestionResult struct {
	Index         int    `json:"index"`
	QuestionID    string `json:"question_id"`
	StudentAnswer string `json:"student_answer"`
	Answered      bool   `json:"answered"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
}

// GradeResult is what a student sees right after submitting: the score, the
// timing classification, the point deltas it produced, and one entry per
// question in question order.
type GradeResult struct {
	Score          int              `json:"score"`
	MaxScore       int              `json:"max_score"`
	IsLate         bool             `json:"is_late"`
	PenaltyApplied int              `json:"penalty_applied"`
	RewardEarned   int              `json:"reward_earned"`
	Results        []QuestionResult `json:"results"`
}

// Grade scores a submitted answer set against an assignment. Correctness is
// exact string equality against the answer key: no trimming, no case folding.
// MaxScore is summed fresh from the question set on every call. The function
// is pure and total; an empty question set yields 0/0 (creation validation
// rejects such assignments before they reach here).
func Grade(assignment *models.Assignment, answers models.AnswerSet) GradeResult {
	result := GradeResult{
		MaxScore: assignment.TotalScore(),
		Results:  make([]QuestionResult, 0, len(assignment.Questions)),
	}

	for i, q := range assignment.Questions {
		answer, answered := answers[q.ID]
		correct := answered && answer == q.CorrectAnswer
		if correct {
			result.Score += q.Score
		}
		result.Results = append(result.Results, QuestionResult{
			Index:         i,
			QuestionID:    q.ID,
			StudentAnswer: answer,
			Answered:      answered,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     correct,
		})
	}

	return result
}

// IsLate classifies a submission against the deadline. The caller's clock is
// the source of truth; there is no grace period. Late submissions are still
// accepted and graded, the flag is advisory metadata.
func IsLate(now, dueDate time.Time) bool {
	return now.After(dueDate)
}

// IncentivePolicy derives point deltas from a graded submission.
//
// LatePenalty is a reserved policy slot: the baseline keeps it at 0 so late
// submissions cost nothing, and a deployment that wants a late penalty sets
// it explicitly. The excellence threshold is compared against the raw summed
// score on the assignment's own point scale, never rescaled to 100.
type IncentivePolicy struct {
	LatePenalty int
}

// Incentive is the pair of non-negative deltas a submission earns.
type Incentive struct {
	PenaltyApplied int `json:"penalty_applied"`
	RewardEarned   int `json:"reward_earned"`
}

// Derive computes the incentive for a graded score. The reward is flat +1
// for an on-time score at or above the excellence threshold, never scaled by
// margin; a late submission earns no reward regardless of score.
func (p IncentivePolicy) Derive(score int, isLate bool, excellentScore int) Incentive {
	var inc Incentive
	if isLate {
		inc.PenaltyApplied = p.LatePenalty
		return inc
	}
	if score >= excellentScore {
		inc.RewardEarned = 1
	}
	return inc
}

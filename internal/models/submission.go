package models

import (
	"time"

	"gorm.io/datatypes"
)

// AnswerSet maps a question ID to the student's submitted answer text.
// A missing key means the question was left unanswered.
type AnswerSet map[string]string

type Submission struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	AssignmentID uint   `json:"assignment_id" gorm:"not null;uniqueIndex:idx_submissions_assignment_student"`
	StudentID    string `json:"student_id" gorm:"not null;size:255;uniqueIndex:idx_submissions_assignment_student"`

	Answers datatypes.JSONType[AnswerSet] `json:"answers" gorm:"type:jsonb;not null"`

	Score          int  `json:"score" gorm:"not null"`
	MaxScore       int  `json:"max_score" gorm:"not null"`
	IsLate         bool `json:"is_late" gorm:"not null;index"`
	PenaltyApplied int  `json:"penalty_applied" gorm:"not null;default:0"`
	RewardEarned   int  `json:"reward_earned" gorm:"not null;default:0"`

	SubmittedAt time.Time `json:"submitted_at" gorm:"autoCreateTime;index"`

	// Relations
	Assignment Assignment     `json:"-" gorm:"foreignKey:AssignmentID;constraint:OnDelete:CASCADE"`
	Student    StudentProfile `json:"-" gorm:"foreignKey:StudentID"`
}

func (Submission) TableName() string {
	return "submissions"
}

// Percentage normalizes the score to 0-100 for reporting. Zero-question
// assignments are rejected at creation, but stay safe here anyway.
func (s *Submission) Percentage() float64 {
	if s.MaxScore == 0 {
		return 0
	}
	return float64(s.Score) / float64(s.MaxScore) * 100
}

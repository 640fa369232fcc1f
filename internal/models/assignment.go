package models

import (
	"time"

	"gorm.io/datatypes"
)

type QuestionType string

const (
	ShortAnswer    QuestionType = "short"
	MultipleChoice QuestionType = "choice"
)

// ChoiceOptionSlots is the fixed number of option slots on a multiple-choice
// question. Unused slots stay empty.
const ChoiceOptionSlots = 5

// TargetAllClasses marks an assignment as visible to every class.
const TargetAllClasses = "전체"

type Question struct {
	ID            string       `json:"id" validate:"required"`
	Text          string       `json:"text"`
	Type          QuestionType `json:"type" validate:"required,question_type"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correct_answer" validate:"required"`
	Score         int          `json:"score" validate:"required,gt=0"`
}

type Assignment struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	TargetClass string    `json:"target_class" gorm:"not null;size:100;index" validate:"required"`
	DueDate     time.Time `json:"due_date" gorm:"not null;index" validate:"required"`

	// Raw point threshold for the excellence reward. Compared directly
	// against the summed question scores, NOT rescaled to 100 even when the
	// assignment's total differs. Defaults to 100 when unset at creation.
	ExcellentScore int `json:"excellent_score" gorm:"not null;default:100"`

	Questions datatypes.JSONSlice[Question] `json:"questions" gorm:"type:jsonb;not null" validate:"required,min=1,dive"`

	CreatedAt time.Time `json:"created_at"`

	// Computed fields (not stored)
	QuestionCount int `json:"question_count" gorm:"-"`
	MaxScore      int `json:"max_score" gorm:"-"`
}

func (Assignment) TableName() string {
	return "assignments"
}

// TotalScore sums the question scores. Computed fresh on every call rather
// than cached on the row so edits to the question set cannot leave a stale
// total behind.
func (a *Assignment) TotalScore() int {
	total := 0
	for _, q := range a.Questions {
		total += q.Score
	}
	return total
}

// TargetsClass reports whether the assignment is visible to students of the
// given class.
func (a *Assignment) TargetsClass(className string) bool {
	return a.TargetClass == TargetAllClasses || a.TargetClass == className
}

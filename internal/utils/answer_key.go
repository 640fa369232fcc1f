package utils

import (
	"fmt"
	"regexp"

	"github.com/smart-class/classroom-service/internal/models"
)

// answerKeyPattern matches teacher-pasted answer keys in the loose formats
// "1번 5, 2번 3", "1-5 2-3", "1: 4" or "1번 문제 2". The first capture is the
// question number, the second the answer digits.
var answerKeyPattern = regexp.MustCompile(`(\d+)\s*(?:번|:|-|=|문제)?\s*\D*?(\d+)`)

// DefaultBulkQuestionScore is assigned to every question produced by bulk
// registration.
const DefaultBulkQuestionScore = 10

// ParseAnswerKey turns a pasted answer-key text into ready-made five-choice
// questions. Unrecognized text yields an empty slice, never an error; the
// caller decides whether zero parsed questions is worth reporting.
func ParseAnswerKey(text string) []models.Question {
	matches := answerKeyPattern.FindAllStringSubmatch(text, -1)
	questions := make([]models.Question, 0, len(matches))

	for _, m := range matches {
		number, answer := m[1], m[2]
		questions = append(questions, models.Question{
			ID:            fmt.Sprintf("q%s", number),
			Text:          fmt.Sprintf("%s번 문제", number),
			Type:          models.MultipleChoice,
			Options:       []string{"1", "2", "3", "4", "5"},
			CorrectAnswer: answer,
			Score:         DefaultBulkQuestionScore,
		})
	}

	return questions
}

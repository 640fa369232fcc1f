package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the classroom events published to the bus.
type EventType string

const (
	// Assignment events
	EventAssignmentCreated EventType = "assignment.created"
	EventAssignmentDeleted EventType = "assignment.deleted"

	// Submission events
	EventSubmissionGraded EventType = "submission.graded"

	// Point ledger events
	EventPointsAdjusted EventType = "points.adjusted"
	EventPenaltiesReset EventType = "points.penalties_reset"

	// Student lifecycle events
	EventStudentRegistered EventType = "student.registered"
	EventStudentApproved   EventType = "student.approved"
)

const (
	eventSource  = "classroom-service"
	eventVersion = "1.0"
)

// Event is the envelope shared by all published events.
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// NewEvent wraps a payload in a fully stamped envelope.
func NewEvent(eventType EventType, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

// Assignment event payloads

type AssignmentCreatedEvent struct {
	AssignmentID  uint      `json:"assignment_id"`
	Title         string    `json:"title"`
	TargetClass   string    `json:"target_class"`
	DueDate       time.Time `json:"due_date"`
	QuestionCount int       `json:"question_count"`
}

type AssignmentDeletedEvent struct {
	AssignmentID       uint  `json:"assignment_id"`
	SubmissionsRemoved int64 `json:"submissions_removed"`
}

// Submission event payloads

type SubmissionGradedEvent struct {
	SubmissionID   uint      `json:"submission_id"`
	AssignmentID   uint      `json:"assignment_id"`
	StudentID      string    `json:"student_id"`
	Score          int       `json:"score"`
	MaxScore       int       `json:"max_score"`
	IsLate         bool      `json:"is_late"`
	RewardEarned   int       `json:"reward_earned"`
	PenaltyApplied int       `json:"penalty_applied"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// Point ledger event payloads

type PointsAdjustedEvent struct {
	StudentID string `json:"student_id"`
	Kind      string `json:"kind"` // "reward" or "penalty"
	Delta     int    `json:"delta"`
	NewValue  int    `json:"new_value"`
}

type PenaltiesResetEvent struct {
	StudentsAffected int64     `json:"students_affected"`
	ResetAt          time.Time `json:"reset_at"`
}

// Student lifecycle payloads

type StudentRegisteredEvent struct {
	StudentID string `json:"student_id"`
	Username  string `json:"username"`
	ClassName string `json:"class_name"`
}

type StudentApprovedEvent struct {
	StudentID string `json:"student_id"`
	ClassName string `json:"class_name"`
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/datatypes"

	"github.com/smart-class/classroom-service/internal/events"
	"github.com/smart-class/classroom-service/internal/models"
	"github.com/smart-class/classroom-service/internal/repositories"
	"github.com/smart-class/classroom-service/internal/utils"
)

// SubmissionService accepts student submissions, grades them synchronously
// and settles the resulting point deltas in the same transaction.
type SubmissionService interface {
	Submit(ctx context.Context, req *SubmitRequest) (*GradeResult, error)
	GetResult(ctx context.Context, assignmentID uint, studentID string) (*GradeResult, error)
	List(ctx context.Context, filters repositories.SubmissionFilters) ([]*models.Submission, int64, error)
	StatusBoard(ctx context.Context, assignmentID uint) (*StatusBoard, error)
}

type SubmitRequest struct {
	AssignmentID uint             `json:"assignment_id" validate:"required"`
	StudentID    string           `json:"student_id" validate:"required"`
	Answers      models.AnswerSet `json:"answers"`
}

// StatusBoard is the teacher's view of one assignment: who has submitted,
// who is still missing, and how the submitted scores landed.
type StatusBoard struct {
	AssignmentID uint               `json:"assignment_id"`
	Title        string             `json:"title"`
	DueDate      time.Time          `json:"due_date"`
	Entries      []StatusBoardEntry `json:"entries"`
	Submitted    int                `json:"submitted"`
	Missing      int                `json:"missing"`
}

type StatusBoardEntry struct {
	StudentID   string     `json:"student_id"`
	StudentName string     `json:"student_name"`
	ClassName   string     `json:"class_name"`
	Submitted   bool       `json:"submitted"`
	Score       int        `json:"score"`
	MaxScore    int        `json:"max_score"`
	IsLate      bool       `json:"is_late"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

type submissionService struct {
	repo      repositories.TransactionRepository
	publisher events.EventPublisher
	policy    IncentivePolicy
	logger    *slog.Logger
	validator *utils.Validator

	// now is swapped in tests to pin the lateness clock.
	now func() time.Time
}

func NewSubmissionService(repo repositories.TransactionRepository, publisher events.EventPublisher, policy IncentivePolicy, logger *slog.Logger, validator *utils.Validator) SubmissionService {
	return &submissionService{
		repo:      repo,
		publisher: publisher,
		policy:    policy,
		logger:    logger,
		validator: validator,
		now:       time.Now,
	}
}

// Submit grades one submission and settles its incentive. The whole flow is
// synchronous: the student gets the graded result in the response, and the
// submission row plus any point delta commit together or not at all.
func (s *submissionService) Submit(ctx context.Context, req *SubmitRequest) (*GradeResult, error) {
	s.logger.Info("Processing submission", "assignment_id", req.AssignmentID, "student_id", req.StudentID)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	assignment, err := s.repo.Assignment().GetByID(ctx, req.AssignmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to load assignment: %w", err)
	}

	student, err := s.repo.Profile().GetByID(ctx, req.StudentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to load student: %w", err)
	}
	if student.Status != models.StatusActive {
		return nil, ErrStudentNotActive
	}
	if !assignment.TargetsClass(student.ClassName) {
		return nil, ErrNotTargetedClass
	}

	exists, err := s.repo.Submission().ExistsForStudent(ctx, req.AssignmentID, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing submission: %w", err)
	}
	if exists {
		return nil, ErrAlreadySubmitted
	}

	// Grade against the answer key. Lateness is decided by the server clock
	// at processing time; late submissions are accepted and graded normally.
	result := Grade(assignment, req.Answers)
	result.IsLate = IsLate(s.now(), assignment.DueDate)

	incentive := s.policy.Derive(result.Score, result.IsLate, assignment.ExcellentScore)
	result.PenaltyApplied = incentive.PenaltyApplied
	result.RewardEarned = incentive.RewardEarned

	submission := &models.Submission{
		AssignmentID:   req.AssignmentID,
		StudentID:      req.StudentID,
		Answers:        datatypes.NewJSONType(req.Answers),
		Score:          result.Score,
		MaxScore:       result.MaxScore,
		IsLate:         result.IsLate,
		PenaltyApplied: result.PenaltyApplied,
		RewardEarned:   result.RewardEarned,
	}

	txRepo, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	tx := txRepo.(repositories.TransactionRepository)

	if err := tx.Submission().Create(ctx, submission); err != nil {
		tx.Rollback(ctx)
		return nil, fmt.Errorf("failed to save submission: %w", err)
	}
	if incentive.RewardEarned > 0 {
		if _, err := tx.Profile().AdjustPoints(ctx, req.StudentID, models.PointReward, incentive.RewardEarned); err != nil {
			tx.Rollback(ctx)
			return nil, fmt.Errorf("failed to grant reward: %w", err)
		}
	}
	if incentive.PenaltyApplied > 0 {
		if _, err := tx.Profile().AdjustPoints(ctx, req.StudentID, models.PointPenalty, incentive.PenaltyApplied); err != nil {
			tx.Rollback(ctx)
			return nil, fmt.Errorf("failed to charge penalty: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.publishEvent(ctx, events.NewEvent(events.EventSubmissionGraded, events.SubmissionGradedEvent{
		SubmissionID:   submission.ID,
		AssignmentID:   submission.AssignmentID,
		StudentID:      submission.StudentID,
		Score:          submission.Score,
		MaxScore:       submission.MaxScore,
		IsLate:         submission.IsLate,
		RewardEarned:   submission.RewardEarned,
		PenaltyApplied: submission.PenaltyApplied,
		SubmittedAt:    submission.SubmittedAt,
	}))

	return &result, nil
}

// GetResult re-derives the per-question breakdown for an existing submission.
// Stored rows keep only the answer set; the breakdown is recomputed against
// the current answer key, which is stable because assignments are immutable
// after creation.
func (s *submissionService) GetResult(ctx context.Context, assignmentID uint, studentID string) (*GradeResult, error) {
	submission, err := s.repo.Submission().GetByAssignmentAndStudent(ctx, assignmentID, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load submission: %w", err)
	}
	if submission == nil {
		return nil, ErrSubmissionNotFound
	}

	assignment, err := s.repo.Assignment().GetByID(ctx, assignmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to load assignment: %w", err)
	}

	result := Grade(assignment, submission.Answers.Data())
	result.IsLate = submission.IsLate
	result.PenaltyApplied = submission.PenaltyApplied
	result.RewardEarned = submission.RewardEarned
	return &result, nil
}

func (s *submissionService) List(ctx context.Context, filters repositories.SubmissionFilters) ([]*models.Submission, int64, error) {
	submissions, total, err := s.repo.Submission().List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, total, nil
}

// StatusBoard joins the assignment's targeted active students against their
// submissions. Students appear whether they submitted or not.
func (s *submissionService) StatusBoard(ctx context.Context, assignmentID uint) (*StatusBoard, error) {
	assignment, err := s.repo.Assignment().GetByID(ctx, assignmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to load assignment: %w", err)
	}

	role := models.RoleStudent
	status := models.StatusActive
	profileFilters := repositories.ProfileFilters{Role: &role, Status: &status}
	if assignment.TargetClass != models.TargetAllClasses {
		profileFilters.ClassName = &assignment.TargetClass
	}
	students, _, err := s.repo.Profile().List(ctx, profileFilters)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	submissions, _, err := s.repo.Submission().List(ctx, repositories.SubmissionFilters{AssignmentID: &assignmentID})
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	byStudent := make(map[string]*models.Submission, len(submissions))
	for _, sub := range submissions {
		byStudent[sub.StudentID] = sub
	}

	board := &StatusBoard{
		AssignmentID: assignment.ID,
		Title:        assignment.Title,
		DueDate:      assignment.DueDate,
		Entries:      make([]StatusBoardEntry, 0, len(students)),
	}
	for _, student := range students {
		entry := StatusBoardEntry{
			StudentID:   student.ID,
			StudentName: student.Name,
			ClassName:   student.ClassName,
		}
		if sub, ok := byStudent[student.ID]; ok {
			entry.Submitted = true
			entry.Score = sub.Score
			entry.MaxScore = sub.MaxScore
			entry.IsLate = sub.IsLate
			submittedAt := sub.SubmittedAt
			entry.SubmittedAt = &submittedAt
			board.Submitted++
		} else {
			board.Missing++
		}
		board.Entries = append(board.Entries, entry)
	}
	return board, nil
}

func (s *submissionService) publishEvent(ctx context.Context, event *events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", "event_type", event.Type, "error", err)
	}
}

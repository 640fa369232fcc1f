package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/smart-class/classroom-service/internal/cache"
	"github.com/smart-class/classroom-service/internal/events"
	"github.com/smart-class/classroom-service/internal/models"
	"github.com/smart-class/classroom-service/internal/repositories"
	"github.com/smart-class/classroom-service/internal/utils"
)

// AssignmentService manages the assignment lifecycle: creation with answer-key
// validation, listing for the teacher board, and cascading deletion.
type AssignmentService interface {
	Create(ctx context.Context, req *CreateAssignmentRequest) (*models.Assignment, error)
	GetByID(ctx context.Context, id uint) (*models.Assignment, error)
	List(ctx context.Context, filters repositories.AssignmentFilters) ([]*models.Assignment, int64, error)
	Delete(ctx context.Context, id uint) error
	ParseAnswerKey(text string) []models.Question
}

type CreateAssignmentRequest struct {
	Title       string            `json:"title" validate:"required,min=1,max=200"`
	TargetClass string            `json:"target_class" validate:"required"`
	DueDate     time.Time         `json:"due_date" validate:"required"`
	// Zero or negative falls back to the default threshold of 100.
	ExcellentScore int               `json:"excellent_score"`
	Questions      []models.Question `json:"questions" validate:"required,min=1,dive"`
}

const defaultExcellentScore = 100

const assignmentListCacheKey = "assignments:list:*"

type assignmentService struct {
	repo      repositories.TransactionRepository
	publisher events.EventPublisher
	cache     cache.CacheService
	logger    *slog.Logger
	validator *utils.Validator
}

func NewAssignmentService(repo repositories.TransactionRepository, publisher events.EventPublisher, cacheService cache.CacheService, logger *slog.Logger, validator *utils.Validator) AssignmentService {
	return &assignmentService{
		repo:      repo,
		publisher: publisher,
		cache:     cacheService,
		logger:    logger,
		validator: validator,
	}
}

func (s *assignmentService) Create(ctx context.Context, req *CreateAssignmentRequest) (*models.Assignment, error) {
	s.logger.Info("Creating assignment", "title", req.Title, "target_class", req.TargetClass)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if len(req.Questions) == 0 {
		return nil, ErrAssignmentNoQuestions
	}
	for i := range req.Questions {
		if err := validateQuestion(&req.Questions[i]); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
	}

	excellent := req.ExcellentScore
	if excellent <= 0 {
		excellent = defaultExcellentScore
	}

	assignment := &models.Assignment{
		Title:          req.Title,
		TargetClass:    req.TargetClass,
		DueDate:        req.DueDate,
		ExcellentScore: excellent,
		Questions:      req.Questions,
	}

	if err := s.repo.Assignment().Create(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	s.invalidateListCache(ctx)
	s.publishEvent(ctx, events.NewEvent(events.EventAssignmentCreated, events.AssignmentCreatedEvent{
		AssignmentID:  assignment.ID,
		Title:         assignment.Title,
		TargetClass:   assignment.TargetClass,
		DueDate:       assignment.DueDate,
		QuestionCount: len(assignment.Questions),
	}))

	attachComputedFields(assignment)
	return assignment, nil
}

// validateQuestion enforces the answer-key rules that the struct tags cannot
// express. Every question must carry a key; choice questions carry exactly
// five option slots and the key must be one of them.
func validateQuestion(q *models.Question) error {
	if q.CorrectAnswer == "" {
		return ErrAnswerKeyMissing
	}
	if q.Type != models.MultipleChoice {
		return nil
	}
	if len(q.Options) != models.ChoiceOptionSlots {
		return ErrOptionSlotCount
	}
	for _, opt := range q.Options {
		if opt == q.CorrectAnswer {
			return nil
		}
	}
	return ErrAnswerKeyNotInOptions
}

func (s *assignmentService) GetByID(ctx context.Context, id uint) (*models.Assignment, error) {
	assignment, err := s.repo.Assignment().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	attachComputedFields(assignment)
	return assignment, nil
}

func (s *assignmentService) List(ctx context.Context, filters repositories.AssignmentFilters) ([]*models.Assignment, int64, error) {
	type cachedList struct {
		Assignments []*models.Assignment `json:"assignments"`
		Total       int64                `json:"total"`
	}

	cacheKey := fmt.Sprintf("assignments:list:%s", utils.HashFilters(filters))
	var cached cachedList
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return cached.Assignments, cached.Total, nil
	}

	assignments, total, err := s.repo.Assignment().List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list assignments: %w", err)
	}
	for _, a := range assignments {
		attachComputedFields(a)
	}

	if err := s.cache.Set(ctx, cacheKey, cachedList{Assignments: assignments, Total: total}, 5*time.Minute); err != nil {
		s.logger.Warn("Failed to cache assignment list", "error", err)
	}
	return assignments, total, nil
}

// Delete removes an assignment together with all of its submissions in one
// transaction. Point deltas already granted by those submissions stay on the
// ledger.
func (s *assignmentService) Delete(ctx context.Context, id uint) error {
	s.logger.Info("Deleting assignment", "assignment_id", id)

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	_, submissionCount, err := s.repo.Submission().List(ctx, repositories.SubmissionFilters{
		AssignmentID: &id,
		Limit:        1,
	})
	if err != nil {
		return fmt.Errorf("failed to count submissions: %w", err)
	}

	txRepo, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	tx := txRepo.(repositories.TransactionRepository)

	if err := tx.Submission().DeleteByAssignment(ctx, id); err != nil {
		tx.Rollback(ctx)
		return fmt.Errorf("failed to delete submissions: %w", err)
	}
	if err := tx.Assignment().Delete(ctx, id); err != nil {
		tx.Rollback(ctx)
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.invalidateListCache(ctx)
	s.publishEvent(ctx, events.NewEvent(events.EventAssignmentDeleted, events.AssignmentDeletedEvent{
		AssignmentID:       id,
		SubmissionsRemoved: submissionCount,
	}))
	return nil
}

// ParseAnswerKey turns a pasted answer-key text block into choice questions.
func (s *assignmentService) ParseAnswerKey(text string) []models.Question {
	return utils.ParseAnswerKey(text)
}

func (s *assignmentService) invalidateListCache(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, assignmentListCacheKey); err != nil {
		s.logger.Warn("Failed to invalidate assignment cache", "error", err)
	}
}

// publishEvent is best effort: a broker outage never fails the request.
func (s *assignmentService) publishEvent(ctx context.Context, event *events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", "event_type", event.Type, "error", err)
	}
}

func attachComputedFields(a *models.Assignment) {
	a.QuestionCount = len(a.Questions)
	a.MaxScore = a.TotalScore()
}

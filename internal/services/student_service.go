package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/smart-class/classroom-service/internal/events"
	"github.com/smart-class/classroom-service/internal/models"
	"github.com/smart-class/classroom-service/internal/repositories"
	"github.com/smart-class/classroom-service/internal/utils"
)

// StudentService manages the student lifecycle: registration into the pending
// pool, teacher approval, class moves and character selection.
type StudentService interface {
	Register(ctx context.Context, req *RegisterStudentRequest) (*models.StudentProfile, error)
	GetByID(ctx context.Context, id string) (*models.StudentProfile, error)
	List(ctx context.Context, filters repositories.ProfileFilters) ([]*models.StudentProfile, int64, error)
	Approve(ctx context.Context, id string, className string) error
	Delete(ctx context.Context, id string) error
	MoveClass(ctx context.Context, id string, className string) error
	SelectCharacter(ctx context.Context, id string, icon string) error
	UnlockedCharacters(ctx context.Context, id string) ([]models.Character, error)
}

type RegisterStudentRequest struct {
	Username string `json:"username" validate:"required,min=1,max=100"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
	School   string `json:"school" validate:"max=100"`
	Grade    int    `json:"grade" validate:"gte=0,lte=12"`
	Phone    string `json:"phone" validate:"max=20"`
}

type studentService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *utils.Validator
}

func NewStudentService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *utils.Validator) StudentService {
	return &studentService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// Register creates a pending profile. Pending students cannot submit or earn
// points until a teacher approves them into a class.
func (s *studentService) Register(ctx context.Context, req *RegisterStudentRequest) (*models.StudentProfile, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	existing, err := s.repo.Profile().GetByUsername(ctx, req.Username)
	if err != nil && !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	profile := &models.StudentProfile{
		ID:        uuid.NewString(),
		Username:  req.Username,
		Name:      req.Name,
		School:    req.School,
		Grade:     req.Grade,
		Phone:     req.Phone,
		Role:      models.RoleStudent,
		Status:    models.StatusPending,
		Character: models.DefaultCharacter,
	}
	if err := s.repo.Profile().Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	s.logger.Info("Registered student", "student_id", profile.ID, "username", profile.Username)

	s.publishEvent(ctx, events.NewEvent(events.EventStudentRegistered, events.StudentRegisteredEvent{
		StudentID: profile.ID,
		Username:  profile.Username,
		ClassName: profile.ClassName,
	}))
	return profile, nil
}

func (s *studentService) GetByID(ctx context.Context, id string) (*models.StudentProfile, error) {
	profile, err := s.repo.Profile().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return profile, nil
}

func (s *studentService) List(ctx context.Context, filters repositories.ProfileFilters) ([]*models.StudentProfile, int64, error) {
	profiles, total, err := s.repo.Profile().List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list students: %w", err)
	}
	return profiles, total, nil
}

// Approve activates a pending student and places them into a class. Approving
// an already active student just moves them.
func (s *studentService) Approve(ctx context.Context, id string, className string) error {
	profile, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Profile().UpdateClass(ctx, id, className); err != nil {
		return fmt.Errorf("failed to assign class: %w", err)
	}
	if err := s.repo.Profile().UpdateStatus(ctx, id, models.StatusActive); err != nil {
		return fmt.Errorf("failed to activate student: %w", err)
	}

	s.logger.Info("Approved student", "student_id", id, "class_name", className, "previous_status", profile.Status)

	s.publishEvent(ctx, events.NewEvent(events.EventStudentApproved, events.StudentApprovedEvent{
		StudentID: id,
		ClassName: className,
	}))
	return nil
}

func (s *studentService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Profile().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	s.logger.Info("Deleted student", "student_id", id)
	return nil
}

// MoveClass reassigns an active student. Submissions and points stay with the
// student; visibility of class-targeted assignments follows the new class.
func (s *studentService) MoveClass(ctx context.Context, id string, className string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Profile().UpdateClass(ctx, id, className); err != nil {
		return fmt.Errorf("failed to move class: %w", err)
	}
	s.logger.Info("Moved student", "student_id", id, "class_name", className)
	return nil
}

// SelectCharacter switches the student's avatar. The pick must already be
// unlocked by the student's reward points; spending never happens, unlocks are
// thresholds.
func (s *studentService) SelectCharacter(ctx context.Context, id string, icon string) error {
	profile, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !models.CharacterUnlocked(icon, profile.RewardPoints) {
		return ErrCharacterLocked
	}
	if err := s.repo.Profile().UpdateCharacter(ctx, id, icon); err != nil {
		return fmt.Errorf("failed to update character: %w", err)
	}
	s.logger.Info("Selected character", "student_id", id, "character", icon)
	return nil
}

func (s *studentService) UnlockedCharacters(ctx context.Context, id string) ([]models.Character, error) {
	profile, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.UnlockedCharacters(profile.RewardPoints), nil
}

func (s *studentService) publishEvent(ctx context.Context, event *events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", "event_type", event.Type, "error", err)
	}
}

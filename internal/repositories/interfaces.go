package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/smart-class/classroom-service/internal/models"
	"gorm.io/gorm"
)

// ===== SHARED FILTER STRUCTS =====

type AssignmentFilters struct {
	TargetClass *string    `json:"target_class"`
	DueFrom     *time.Time `json:"due_from"`
	DueTo       *time.Time `json:"due_to"`
	Month       *int       `json:"month"` // calendar month of the due date, 1-12
	Limit       int        `json:"limit"`
	Offset      int        `json:"offset"`
	SortBy      string     `json:"sort_by"`    // "created_at", "due_date", "title"
	SortOrder   string     `json:"sort_order"` // "asc", "desc"
}

type SubmissionFilters struct {
	AssignmentID *uint      `json:"assignment_id"`
	StudentID    *string    `json:"student_id"`
	IsLate       *bool      `json:"is_late"`
	DateFrom     *time.Time `json:"date_from"`
	DateTo       *time.Time `json:"date_to"`
	Limit        int        `json:"limit"`
	Offset       int        `json:"offset"`
}

type ProfileFilters struct {
	Role      *models.UserRole      `json:"role"`
	Status    *models.ProfileStatus `json:"status"`
	ClassName *string               `json:"class_name"`
	Limit     int                   `json:"limit"`
	Offset    int                   `json:"offset"`
}

// ===== REPOSITORY INTERFACES =====

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	GetByID(ctx context.Context, id uint) (*models.Assignment, error)
	List(ctx context.Context, filters AssignmentFilters) ([]*models.Assignment, int64, error)
	Delete(ctx context.Context, id uint) error
}

type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	GetByID(ctx context.Context, id uint) (*models.Submission, error)
	// GetByAssignmentAndStudent returns (nil, nil) when the student has not
	// submitted yet.
	GetByAssignmentAndStudent(ctx context.Context, assignmentID uint, studentID string) (*models.Submission, error)
	ExistsForStudent(ctx context.Context, assignmentID uint, studentID string) (bool, error)
	List(ctx context.Context, filters SubmissionFilters) ([]*models.Submission, int64, error)
	DeleteByAssignment(ctx context.Context, assignmentID uint) error
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *models.StudentProfile) error
	GetByID(ctx context.Context, id string) (*models.StudentProfile, error)
	GetByUsername(ctx context.Context, username string) (*models.StudentProfile, error)
	List(ctx context.Context, filters ProfileFilters) ([]*models.StudentProfile, int64, error)
	Delete(ctx context.Context, id string) error

	// AdjustPoints applies a clamped delta to one counter as a single
	// server-side statement (counter = GREATEST(counter + delta, 0)) and
	// returns the new value. Concurrent deltas to the same profile serialize
	// at the store instead of racing a read-then-write.
	AdjustPoints(ctx context.Context, id string, kind models.PointKind, delta int) (int, error)

	// ResetAllPenalties zeroes the penalty counter of every active student
	// regardless of its current value. Returns the number of rows touched.
	ResetAllPenalties(ctx context.Context) (int64, error)

	UpdateStatus(ctx context.Context, id string, status models.ProfileStatus) error
	UpdateClass(ctx context.Context, id string, className string) error
	UpdateCharacter(ctx context.Context, id string, icon string) error
}

type ClassRepository interface {
	Create(ctx context.Context, class *models.Class) error
	List(ctx context.Context) ([]*models.Class, error)
	Delete(ctx context.Context, name string) error
}

// Repository aggregates the per-entity repositories behind one dependency.
type Repository interface {
	Assignment() AssignmentRepository
	Submission() SubmissionRepository
	Profile() ProfileRepository
	Class() ClassRepository
}

// TransactionRepository is implemented by stores that can scope a Repository
// to a transaction.
type TransactionRepository interface {
	Repository
	Begin(ctx context.Context) (Repository, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// IsNotFoundError checks whether err represents a missing row.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

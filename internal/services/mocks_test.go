package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/smart-class/classroom-service/internal/models"
	"github.com/smart-class/classroom-service/internal/repositories"
)

// MockAssignmentRepository is a mock implementation of AssignmentRepository
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) GetByID(ctx context.Context, id uint) (*models.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) List(ctx context.Context, filters repositories.AssignmentFilters) ([]*models.Assignment, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Assignment), args.Get(1).(int64), args.Error(2)
}

func (m *MockAssignmentRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSubmissionRepository is a mock implementation of SubmissionRepository
type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockSubmissionRepository) GetByID(ctx context.Context, id uint) (*models.Submission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) GetByAssignmentAndStudent(ctx context.Context, assignmentID uint, studentID string) (*models.Submission, error) {
	args := m.Called(ctx, assignmentID, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) ExistsForStudent(ctx context.Context, assignmentID uint, studentID string) (bool, error) {
	args := m.Called(ctx, assignmentID, studentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSubmissionRepository) List(ctx context.Context, filters repositories.SubmissionFilters) ([]*models.Submission, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Submission), args.Get(1).(int64), args.Error(2)
}

func (m *MockSubmissionRepository) DeleteByAssignment(ctx context.Context, assignmentID uint) error {
	args := m.Called(ctx, assignmentID)
	return args.Error(0)
}

// MockProfileRepository is a mock implementation of ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *models.StudentProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id string) (*models.StudentProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StudentProfile), args.Error(1)
}

func (m *MockProfileRepository) GetByUsername(ctx context.Context, username string) (*models.StudentProfile, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StudentProfile), args.Error(1)
}

func (m *MockProfileRepository) List(ctx context.Context, filters repositories.ProfileFilters) ([]*models.StudentProfile, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.StudentProfile), args.Get(1).(int64), args.Error(2)
}

func (m *MockProfileRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProfileRepository) AdjustPoints(ctx context.Context, id string, kind models.PointKind, delta int) (int, error) {
	args := m.Called(ctx, id, kind, delta)
	return args.Int(0), args.Error(1)
}

func (m *MockProfileRepository) ResetAllPenalties(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProfileRepository) UpdateStatus(ctx context.Context, id string, status models.ProfileStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockProfileRepository) UpdateClass(ctx context.Context, id string, className string) error {
	args := m.Called(ctx, id, className)
	return args.Error(0)
}

func (m *MockProfileRepository) UpdateCharacter(ctx context.Context, id string, icon string) error {
	args := m.Called(ctx, id, icon)
	return args.Error(0)
}

// MockClassRepository is a mock implementation of ClassRepository
type MockClassRepository struct {
	mock.Mock
}

func (m *MockClassRepository) Create(ctx context.Context, class *models.Class) error {
	args := m.Called(ctx, class)
	return args.Error(0)
}

func (m *MockClassRepository) List(ctx context.Context) ([]*models.Class, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Class), args.Error(1)
}

func (m *MockClassRepository) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// mockRepository bundles the per-entity mocks behind the Repository interface.
// Begin hands back the same instance, so expectations set on the mocks cover
// both transactional and non-transactional calls.
type mockRepository struct {
	assignment *MockAssignmentRepository
	submission *MockSubmissionRepository
	profile    *MockProfileRepository
	class      *MockClassRepository
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		assignment: new(MockAssignmentRepository),
		submission: new(MockSubmissionRepository),
		profile:    new(MockProfileRepository),
		class:      new(MockClassRepository),
	}
}

func (r *mockRepository) Assignment() repositories.AssignmentRepository { return r.assignment }
func (r *mockRepository) Submission() repositories.SubmissionRepository { return r.submission }
func (r *mockRepository) Profile() repositories.ProfileRepository       { return r.profile }
func (r *mockRepository) Class() repositories.ClassRepository           { return r.class }

func (r *mockRepository) Begin(ctx context.Context) (repositories.Repository, error) {
	return r, nil
}
func (r *mockRepository) Commit(ctx context.Context) error   { return nil }
func (r *mockRepository) Rollback(ctx context.Context) error { return nil }

package postgres

import (
	"context"

	"github.com/smart-class/classroom-service/internal/repositories"
	"gorm.io/gorm"
)

// Repository is the gorm-backed implementation of repositories.Repository.
type Repository struct {
	db *gorm.DB

	assignment repositories.AssignmentRepository
	submission repositories.SubmissionRepository
	profile    repositories.ProfileRepository
	class      repositories.ClassRepository
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:         db,
		assignment: NewAssignmentPostgreSQL(db),
		submission: NewSubmissionPostgreSQL(db),
		profile:    NewProfilePostgreSQL(db),
		class:      NewClassPostgreSQL(db),
	}
}

func (r *Repository) Assignment() repositories.AssignmentRepository { return r.assignment }
func (r *Repository) Submission() repositories.SubmissionRepository { return r.submission }
func (r *Repository) Profile() repositories.ProfileRepository       { return r.profile }
func (r *Repository) Class() repositories.ClassRepository           { return r.class }

// Begin opens a transaction and returns a Repository scoped to it.
func (r *Repository) Begin(ctx context.Context) (repositories.Repository, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return NewRepository(tx), nil
}

func (r *Repository) Commit(ctx context.Context) error {
	return r.db.Commit().Error
}

func (r *Repository) Rollback(ctx context.Context) error {
	return r.db.Rollback().Error
}

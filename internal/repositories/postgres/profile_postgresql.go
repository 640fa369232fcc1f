package postgres

import (
	"context"

	"github.com/smart-class/classroom-service/internal/models"
	"github.com/smart-class/classroom-service/internal/repositories"
	"gorm.io/gorm"
)

type ProfilePostgreSQL struct {
	db *gorm.DB
}

func NewProfilePostgreSQL(db *gorm.DB) repositories.ProfileRepository {
	return &ProfilePostgreSQL{db: db}
}

func (p ProfilePostgreSQL) Create(ctx context.Context, profile *models.StudentProfile) error {
	return p.db.WithContext(ctx).Create(profile).Error
}

func (p ProfilePostgreSQL) GetByID(ctx context.Context, id string) (*models.StudentProfile, error) {
	var profile models.StudentProfile
	if err := p.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (p ProfilePostgreSQL) GetByUsername(ctx context.Context, username string) (*models.StudentProfile, error) {
	var profile models.StudentProfile
	if err := p.db.WithContext(ctx).First(&profile, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (p ProfilePostgreSQL) List(ctx context.Context, filters repositories.ProfileFilters) ([]*models.StudentProfile, int64, error) {
	var profiles []*models.StudentProfile
	var total int64

	query := p.db.WithContext(ctx).Model(&models.StudentProfile{})
	if filters.Role != nil {
		query = query.Where("role = ?", *filters.Role)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.ClassName != nil {
		query = query.Where("class_name = ?", *filters.ClassName)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("class_name ASC, name ASC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Find(&profiles).Error; err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}

func (p ProfilePostgreSQL) Delete(ctx context.Context, id string) error {
	return p.db.WithContext(ctx).Delete(&models.StudentProfile{}, "id = ?", id).Error
}

// AdjustPoints runs the clamped increment as one UPDATE ... RETURNING so two
// concurrent deltas serialize at the database instead of losing one to a
// stale read.
func (p ProfilePostgreSQL) AdjustPoints(ctx context.Context, id string, kind models.PointKind, delta int) (int, error) {
	column := "reward_points"
	if kind == models.PointPenalty {
		column = "penalty_points"
	}

	var newValue int
	result := p.db.WithContext(ctx).Raw(
		"UPDATE profiles SET "+column+" = GREATEST("+column+" + ?, 0), updated_at = NOW() WHERE id = ? RETURNING "+column,
		delta, id,
	).Scan(&newValue)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return newValue, nil
}

func (p ProfilePostgreSQL) ResetAllPenalties(ctx context.Context) (int64, error) {
	result := p.db.WithContext(ctx).
		Model(&models.StudentProfile{}).
		Where("role = ? AND status = ?", models.RoleStudent, models.StatusActive).
		Update("penalty_points", 0)
	return result.RowsAffected, result.Error
}

func (p ProfilePostgreSQL) UpdateStatus(ctx context.Context, id string, status models.ProfileStatus) error {
	return p.updateColumn(ctx, id, "status", status)
}

func (p ProfilePostgreSQL) UpdateClass(ctx context.Context, id string, className string) error {
	return p.updateColumn(ctx, id, "class_name", className)
}

func (p ProfilePostgreSQL) UpdateCharacter(ctx context.Context, id string, icon string) error {
	return p.updateColumn(ctx, id, "character", icon)
}

func (p ProfilePostgreSQL) updateColumn(ctx context.Context, id, column string, value interface{}) error {
	result := p.db.WithContext(ctx).
		Model(&models.StudentProfile{}).
		Where("id = ?", id).
		Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

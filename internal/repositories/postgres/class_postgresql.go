package postgres

import (
	"context"

	"github.com/smart-class/classroom-service/internal/models"
	"github.com/smart-class/classroom-service/internal/repositories"
	"gorm.io/gorm"
)

type ClassPostgreSQL struct {
	db *gorm.DB
}

func NewClassPostgreSQL(db *gorm.DB) repositories.ClassRepository {
	return &ClassPostgreSQL{db: db}
}

func (c ClassPostgreSQL) Create(ctx context.Context, class *models.Class) error {
	return c.db.WithContext(ctx).Create(class).Error
}

func (c ClassPostgreSQL) List(ctx context.Context) ([]*models.Class, error) {
	var classes []*models.Class
	if err := c.db.WithContext(ctx).Order("name ASC").Find(&classes).Error; err != nil {
		return nil, err
	}
	return classes, nil
}

func (c ClassPostgreSQL) Delete(ctx context.Context, name string) error {
	result := c.db.WithContext(ctx).Delete(&models.Class{}, "name = ?", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

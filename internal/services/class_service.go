package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/smart-class/classroom-service/internal/cache"
	"github.com/smart-class/classroom-service/internal/models"
	"github.com/smart-class/classroom-service/internal/repositories"
)

// ClassService manages the flat list of class names. Classes carry no state
// of their own; membership lives on the student profile.
type ClassService interface {
	Add(ctx context.Context, name string) (*models.Class, error)
	Remove(ctx context.Context, name string) error
	List(ctx context.Context) ([]*models.Class, error)
}

const classListCacheKey = "classes:list"

type classService struct {
	repo   repositories.Repository
	cache  cache.CacheService
	logger *slog.Logger
}

func NewClassService(repo repositories.Repository, cacheService cache.CacheService, logger *slog.Logger) ClassService {
	return &classService{
		repo:   repo,
		cache:  cacheService,
		logger: logger,
	}
}

func (s *classService) Add(ctx context.Context, name string) (*models.Class, error) {
	if name == "" || name == models.TargetAllClasses {
		return nil, fmt.Errorf("%w: invalid class name %q", ErrValidationFailed, name)
	}

	existing, err := s.repo.Class().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	for _, c := range existing {
		if c.Name == name {
			return nil, ErrClassExists
		}
	}

	class := &models.Class{Name: name}
	if err := s.repo.Class().Create(ctx, class); err != nil {
		return nil, fmt.Errorf("failed to create class: %w", err)
	}

	s.invalidateCache(ctx)
	s.logger.Info("Added class", "class_name", name)
	return class, nil
}

// Remove deletes the class name only. Students of the removed class keep
// their membership string and get reassigned explicitly.
func (s *classService) Remove(ctx context.Context, name string) error {
	existing, err := s.repo.Class().List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list classes: %w", err)
	}
	found := false
	for _, c := range existing {
		if c.Name == name {
			found = true
			break
		}
	}
	if !found {
		return ErrClassNotFound
	}

	if err := s.repo.Class().Delete(ctx, name); err != nil {
		return fmt.Errorf("failed to delete class: %w", err)
	}

	s.invalidateCache(ctx)
	s.logger.Info("Removed class", "class_name", name)
	return nil
}

func (s *classService) List(ctx context.Context) ([]*models.Class, error) {
	var cached []*models.Class
	if err := s.cache.Get(ctx, classListCacheKey, &cached); err == nil {
		return cached, nil
	}

	classes, err := s.repo.Class().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	if err := s.cache.Set(ctx, classListCacheKey, classes, 10*time.Minute); err != nil {
		s.logger.Warn("Failed to cache class list", "error", err)
	}
	return classes, nil
}

func (s *classService) invalidateCache(ctx context.Context) {
	if err := s.cache.Delete(ctx, classListCacheKey); err != nil {
		s.logger.Warn("Failed to invalidate class cache", "error", err)
	}
}

package services

import (
	"context"
	"slices"

	"taskdesk/app/models"
)

// CategoryService serves the fixed list of task categories.
type CategoryService struct {
	categories []models.Category
	latency    Latency
}

// NewCategoryService creates a new instance of CategoryService.
func NewCategoryService(categories []models.Category, opts Options) *CategoryService {
	return &CategoryService{
		categories: slices.Clone(categories),
		latency:    opts.Latency,
	}
}

// GetAll returns the categories in fixture order.
func (s *CategoryService) GetAll(ctx context.Context) ([]models.Category, error) {
	if err := s.latency.Wait(ctx, OpGetAll); err != nil {
		return nil, err
	}
	return slices.Clone(s.categories), nil
}

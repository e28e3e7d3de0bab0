package service

import (
	"context"

	"github.com/microcosm-cc/bluemonday"
	"github.com/pahanaedu/pos-platform/internal/errors"
	"github.com/pahanaedu/pos-platform/internal/models"
	repository "github.com/pahanaedu/pos-platform/internal/repositories"
)

type CategoryService interface {
	CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*models.Category, error)
	UpdateCategory(ctx context.Context, req *models.UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	ListCategories(ctx context.Context, page, pageSize int) ([]*models.Category, int, error)
}

type categoryService struct {
	repo      repository.CategoryRepository
	sanitizer *bluemonday.Policy
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{
		repo:      repo,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *categoryService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {

	category := &models.Category{
		Name: s.sanitizer.Sanitize(req.Name),
	}

	err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		return nil, errors.DatabaseError("Failed to create category").WithError(err)
	}

	return category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {

	category, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Category not found").WithError(err)
	}

	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, req *models.UpdateCategoryRequest) (*models.Category, error) {

	category, err := s.repo.GetCategoryByID(ctx, req.CategoryID)
	if err != nil {
		return nil, errors.NotFoundError("Category not found").WithError(err)
	}

	category.Name = s.sanitizer.Sanitize(req.Name)

	err = s.repo.UpdateCategory(ctx, category)
	if err != nil {
		return nil, errors.DatabaseError("Failed to update category").WithError(err)
	}

	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id int64) error {

	err := s.repo.DeleteCategory(ctx, id)
	if err != nil {
		return errors.NotFoundError("Category not found").WithError(err)
	}

	return nil
}

func (s *categoryService) ListCategories(ctx context.Context, page, pageSize int) ([]*models.Category, int, error) {

	categories, total, err := s.repo.ListCategories(ctx, page, pageSize)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch categories").WithError(err)
	}

	return categories, total, nil
}

package service

import (
	"context"
	"errors"

	"github.com/aargibay-evolmind/excusator-3000/internal/config"
	"github.com/aargibay-evolmind/excusator-3000/internal/dto"
	"github.com/aargibay-evolmind/excusator-3000/internal/model"
	"github.com/aargibay-evolmind/excusator-3000/internal/repository"

	"gorm.io/gorm"
)

// ErrNotEnoughCategories is a system-level precondition failure: clients are
// guaranteed a minimum viable category set, so fewer qualifying categories
// than the configured floor is a 400 regardless of how many exist in total.
var ErrNotEnoughCategories = errors.New("Not enough categories")

// ErrNotFound maps to 404 for entity lookups by id.
var ErrNotFound = errors.New("not found")

type CategoryService interface {
	// ActiveListing returns the public category list, enforcing both the
	// per-category excuse minimum and the global category-count floor.
	ActiveListing(ctx context.Context) ([]dto.CategoryResponse, error)
	ListAll(ctx context.Context) ([]model.Category, error)
	ListActive(ctx context.Context) ([]model.Category, error)
	Create(ctx context.Context, form dto.CategoryForm) (*model.Category, error)
	SoftDelete(ctx context.Context, id uint) error
}

type categoryService struct {
	repo repository.CategoryRepository
	cfg  *config.Config
}

func NewCategoryService(repo repository.CategoryRepository, cfg *config.Config) CategoryService {
	return &categoryService{repo: repo, cfg: cfg}
}

func (s *categoryService) ActiveListing(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := s.repo.ActiveWithMinExcuses(ctx, s.cfg.MinExcusesPerCategory)
	if err != nil {
		return nil, err
	}
	if len(categories) < s.cfg.MinCategoryCount {
		return nil, ErrNotEnoughCategories
	}
	resp := make([]dto.CategoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = dto.CategoryResponse{ID: c.ID, Name: c.Name}
	}
	return resp, nil
}

func (s *categoryService) ListAll(ctx context.Context) ([]model.Category, error) {
	return s.repo.ListAll(ctx)
}

func (s *categoryService) ListActive(ctx context.Context) ([]model.Category, error) {
	return s.repo.ListActive(ctx)
}

func (s *categoryService) Create(ctx context.Context, form dto.CategoryForm) (*model.Category, error) {
	c := &model.Category{Name: form.Name}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *categoryService) SoftDelete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

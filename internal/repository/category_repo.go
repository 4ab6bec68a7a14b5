package repository

import (
	"context"

	"github.com/aargibay-evolmind/excusator-3000/internal/model"

	"gorm.io/gorm"
)

// CategoryRepository defines storage operations for Category.
type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) error
	FindByID(ctx context.Context, id uint) (*model.Category, error)
	// ListAll returns every category, soft-deleted ones included (admin view).
	ListAll(ctx context.Context) ([]model.Category, error)
	// ListActive returns non-deleted categories ordered by name (form selects).
	ListActive(ctx context.Context) ([]model.Category, error)
	// ActiveWithMinExcuses returns non-deleted categories having at least min
	// non-deleted excuses, ordered by id.
	ActiveWithMinExcuses(ctx context.Context, min int) ([]model.Category, error)
	SoftDelete(ctx context.Context, id uint) error
}

type categoryRepo struct{ db *gorm.DB }

func NewCategoryRepository(db *gorm.DB) CategoryRepository { return &categoryRepo{db: db} }

func (r *categoryRepo) Create(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoryRepo) FindByID(ctx context.Context, id uint) (*model.Category, error) {
	var c model.Category
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) ListAll(ctx context.Context) ([]model.Category, error) {
	var list []model.Category
	err := r.db.WithContext(ctx).Unscoped().Order("id asc").Find(&list).Error
	return list, err
}

func (r *categoryRepo) ListActive(ctx context.Context) ([]model.Category, error) {
	var list []model.Category
	err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error
	return list, err
}

func (r *categoryRepo) ActiveWithMinExcuses(ctx context.Context, min int) ([]model.Category, error) {
	var list []model.Category
	// The soft-delete scope on Category adds "categories.deleted_at IS NULL";
	// the join condition filters deleted excuses before grouping. No ORDER BY
	// existed upstream — id order is kept for deterministic output.
	err := r.db.WithContext(ctx).
		Model(&model.Category{}).
		Joins("JOIN excuses ON excuses.category_id = categories.id AND excuses.deleted_at IS NULL").
		Group("categories.id").
		Having("COUNT(excuses.id) >= ?", min).
		Order("categories.id asc").
		Find(&list).Error
	return list, err
}

func (r *categoryRepo) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Category{}, id).Error
}

package repository

import (
	"context"
	"math/rand/v2"

	"github.com/aargibay-evolmind/excusator-3000/internal/model"

	"gorm.io/gorm"
)

// ExcuseRepository defines storage operations for Excuse.
type ExcuseRepository interface {
	Create(ctx context.Context, e *model.Excuse) error
	Save(ctx context.Context, e *model.Excuse) error
	FindByID(ctx context.Context, id uint) (*model.Excuse, error)
	// ListActive returns non-deleted excuses with their category preloaded.
	ListActive(ctx context.Context) ([]model.Excuse, error)
	// RandomByCategory picks one non-deleted excuse of the category uniformly
	// at random. Returns nil when the category has no active excuses.
	RandomByCategory(ctx context.Context, categoryID uint) (*model.Excuse, error)
	SoftDelete(ctx context.Context, id uint) error
}

type excuseRepo struct{ db *gorm.DB }

func NewExcuseRepository(db *gorm.DB) ExcuseRepository { return &excuseRepo{db: db} }

func (r *excuseRepo) Create(ctx context.Context, e *model.Excuse) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *excuseRepo) Save(ctx context.Context, e *model.Excuse) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *excuseRepo) FindByID(ctx context.Context, id uint) (*model.Excuse, error) {
	var e model.Excuse
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *excuseRepo) ListActive(ctx context.Context) ([]model.Excuse, error) {
	var list []model.Excuse
	err := r.db.WithContext(ctx).Preload("Category").Order("id asc").Find(&list).Error
	return list, err
}

func (r *excuseRepo) RandomByCategory(ctx context.Context, categoryID uint) (*model.Excuse, error) {
	var excuses []model.Excuse
	err := r.db.WithContext(ctx).Where("category_id = ?", categoryID).Find(&excuses).Error
	if err != nil {
		return nil, err
	}
	if len(excuses) == 0 {
		return nil, nil
	}
	// In-memory pick over the full result set. O(n) per call, fine at this
	// data volume.
	return &excuses[rand.IntN(len(excuses))], nil
}

func (r *excuseRepo) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Excuse{}, id).Error
}

package service

import (
	"context"
	"testing"

	"github.com/aargibay-evolmind/excusator-3000/internal/config"
	"github.com/aargibay-evolmind/excusator-3000/internal/dto"
	"github.com/aargibay-evolmind/excusator-3000/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory repository stub ────────────────────────────────────────────────

type stubCategoryRepo struct {
	categories map[uint]*model.Category
	qualifying []model.Category // what ActiveWithMinExcuses returns
	minSeen    int
	deleted    []uint
	nextID     uint
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[uint]*model.Category), nextID: 1}
}

func (r *stubCategoryRepo) add(name string) *model.Category {
	c := &model.Category{ID: r.nextID, Name: name}
	r.categories[c.ID] = c
	r.nextID++
	return c
}

func (r *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	c.ID = r.nextID
	r.categories[c.ID] = c
	r.nextID++
	return nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uint) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok || c.DeletedAt.Valid {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCategoryRepo) ListAll(_ context.Context) ([]model.Category, error) {
	list := make([]model.Category, 0, len(r.categories))
	for id := uint(1); id < r.nextID; id++ {
		if c, ok := r.categories[id]; ok {
			list = append(list, *c)
		}
	}
	return list, nil
}

func (r *stubCategoryRepo) ListActive(_ context.Context) ([]model.Category, error) {
	list := make([]model.Category, 0, len(r.categories))
	for id := uint(1); id < r.nextID; id++ {
		if c, ok := r.categories[id]; ok && !c.DeletedAt.Valid {
			list = append(list, *c)
		}
	}
	return list, nil
}

func (r *stubCategoryRepo) ActiveWithMinExcuses(_ context.Context, min int) ([]model.Category, error) {
	r.minSeen = min
	return r.qualifying, nil
}

func (r *stubCategoryRepo) SoftDelete(_ context.Context, id uint) error {
	r.deleted = append(r.deleted, id)
	return nil
}

func newPolicyCfg() *config.Config {
	return &config.Config{
		MinExcusesPerCategory: 5,
		MinCategoryCount:      5,
	}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestActiveListing_EnforcesCategoryFloor(t *testing.T) {
	repo := newStubCategoryRepo()
	for _, name := range []string{"A", "B", "C", "D"} {
		repo.qualifying = append(repo.qualifying, *repo.add(name))
	}
	svc := NewCategoryService(repo, newPolicyCfg())

	_, err := svc.ActiveListing(context.Background())
	assert.ErrorIs(t, err, ErrNotEnoughCategories, "4 qualifying categories is below the floor of 5")
}

func TestActiveListing_OK(t *testing.T) {
	repo := newStubCategoryRepo()
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		repo.qualifying = append(repo.qualifying, *repo.add(name))
	}
	svc := NewCategoryService(repo, newPolicyCfg())

	list, err := svc.ActiveListing(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 5)
	assert.Equal(t, 5, repo.minSeen, "per-category excuse minimum must come from config")
	assert.Equal(t, dto.CategoryResponse{ID: 1, Name: "A"}, list[0])
}

func TestCategoryCreate(t *testing.T) {
	repo := newStubCategoryRepo()
	svc := NewCategoryService(repo, newPolicyCfg())

	c, err := svc.Create(context.Background(), dto.CategoryForm{Name: "Becarios"})
	require.NoError(t, err)
	assert.NotZero(t, c.ID)
	assert.Equal(t, "Becarios", c.Name)
}

func TestCategorySoftDelete_NotFound(t *testing.T) {
	repo := newStubCategoryRepo()
	svc := NewCategoryService(repo, newPolicyCfg())

	err := svc.SoftDelete(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, repo.deleted, "missing category must not reach the repository delete")
}

func TestCategorySoftDelete_OK(t *testing.T) {
	repo := newStubCategoryRepo()
	c := repo.add("Temporal")
	svc := NewCategoryService(repo, newPolicyCfg())

	require.NoError(t, svc.SoftDelete(context.Background(), c.ID))
	assert.Equal(t, []uint{c.ID}, repo.deleted)
}

package service

import (
	"context"
	"errors"

	"github.com/aargibay-evolmind/excusator-3000/internal/dto"
	"github.com/aargibay-evolmind/excusator-3000/internal/model"
	"github.com/aargibay-evolmind/excusator-3000/internal/repository"

	"gorm.io/gorm"
)

// legacyExcuses is the pre-database prototype's static lookup table, kept in
// place for clients still calling /api/excuse/:id.
var legacyExcuses = map[int]string{
	1:  "Lo siento, mi perro se comió mi router.",
	2:  "Estaba compilando esto en mi mente y colapsé.",
	3:  "Un rayo cósmico invirtió un bit en mi memoria.",
	4:  "El gato caminó sobre el teclado y borró todo.",
	5:  "Pensé que hoy era domingo.",
	6:  "Mi conexión a internet decidió tomarse el día libre.",
	7:  "Estaba ocupado actualizando Vim.",
	8:  "Se me olvidó cómo salir de Vim.",
	9:  "La cafetera explotó y tuve que limpiar.",
	10: "Estaba esperando a que Docker terminara de compilar.",
}

const legacyFallback = "No tengo excusa para eso..."

type ExcuseService interface {
	// RandomByCategory returns one active excuse of the category, or
	// ErrNotFound when the category has none (or does not exist).
	RandomByCategory(ctx context.Context, categoryID uint) (*dto.ExcuseResponse, error)
	// LegacyByID resolves the static table; unknown ids get the fallback text.
	LegacyByID(id int) dto.LegacyExcuseResponse
	ListActive(ctx context.Context) ([]model.Excuse, error)
	FindByID(ctx context.Context, id uint) (*model.Excuse, error)
	Create(ctx context.Context, form dto.ExcuseForm) (*model.Excuse, error)
	Update(ctx context.Context, id uint, form dto.ExcuseForm) (*model.Excuse, error)
	SoftDelete(ctx context.Context, id uint) error
}

type excuseService struct {
	excuses    repository.ExcuseRepository
	categories repository.CategoryRepository
}

func NewExcuseService(excuses repository.ExcuseRepository, categories repository.CategoryRepository) ExcuseService {
	return &excuseService{excuses: excuses, categories: categories}
}

func (s *excuseService) RandomByCategory(ctx context.Context, categoryID uint) (*dto.ExcuseResponse, error) {
	e, err := s.excuses.RandomByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrNotFound
	}
	return &dto.ExcuseResponse{ID: e.ID, Content: e.Content, CategoryID: e.CategoryID}, nil
}

func (s *excuseService) LegacyByID(id int) dto.LegacyExcuseResponse {
	text, ok := legacyExcuses[id]
	if !ok {
		text = legacyFallback
	}
	return dto.LegacyExcuseResponse{Text: text, Type: id}
}

func (s *excuseService) ListActive(ctx context.Context) ([]model.Excuse, error) {
	return s.excuses.ListActive(ctx)
}

func (s *excuseService) FindByID(ctx context.Context, id uint) (*model.Excuse, error) {
	e, err := s.excuses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// Create persists a new excuse after checking the target category is active.
// Soft-deleted categories never accept new excuses.
func (s *excuseService) Create(ctx context.Context, form dto.ExcuseForm) (*model.Excuse, error) {
	if _, err := s.categories.FindByID(ctx, form.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	e := &model.Excuse{Content: form.Content, CategoryID: form.CategoryID}
	if err := s.excuses.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *excuseService) Update(ctx context.Context, id uint, form dto.ExcuseForm) (*model.Excuse, error) {
	e, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.categories.FindByID(ctx, form.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	e.Content = form.Content
	e.CategoryID = form.CategoryID
	e.Category = nil
	if err := s.excuses.Save(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *excuseService) SoftDelete(ctx context.Context, id uint) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	return s.excuses.SoftDelete(ctx, id)
}

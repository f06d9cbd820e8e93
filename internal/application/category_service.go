package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"blogapi/internal/domain/entity"
	repo "blogapi/internal/domain/repository"
)

// CategoryService provides CRUD over categories.
type CategoryService struct {
	Categories repo.CategoryRepository
	Logger     *logrus.Logger
}

func NewCategoryService(categories repo.CategoryRepository, logger *logrus.Logger) *CategoryService {
	return &CategoryService{Categories: categories, Logger: logger}
}

func (s *CategoryService) Create(ctx context.Context, name string) (*entity.Category, error) {
	if err := requiredFields(map[string]string{"name": name}); err != nil {
		return nil, err
	}
	c := &entity.Category{Name: strings.TrimSpace(name)}
	if err := s.Categories.Create(ctx, c); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) List(ctx context.Context) ([]*entity.Category, error) {
	return s.Categories.List(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id string) (*entity.Category, error) {
	c, err := s.Categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, id, name string) (*entity.Category, error) {
	if err := requiredFields(map[string]string{"name": name}); err != nil {
		return nil, err
	}
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = strings.TrimSpace(name)
	if err := s.Categories.Update(ctx, c); err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicate):
			return nil, ErrNameTaken
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// Delete removes a category; posts referencing it keep existing with the
// reference cleared by the store.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.Categories.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

package repository

import (
	"context"

	"blogapi/internal/domain/entity"
)

// PostUpdate carries partial post fields; nil means "leave unchanged".
type PostUpdate struct {
	Title      *string
	Content    *string
	ImageURL   *string
	CategoryID *string
}

// PostRepository defines post persistence operations. List and GetByID
// resolve the category name and author username into the returned entities.
type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	List(ctx context.Context) ([]*entity.Post, error)
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	Update(ctx context.Context, id string, upd PostUpdate) (*entity.Post, error)
	Delete(ctx context.Context, id string) error
}

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blogapi/internal/domain/entity"
	repo "blogapi/internal/domain/repository"
)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

// nullable turns "" into NULL for optional uuid references.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO posts (title, content, image_url, category_id, author_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, p.Title, p.Content, p.ImageURL, nullable(p.CategoryID), nullable(p.AuthorID))

	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return translateError(err)
	}
	return nil
}

const postSelect = `
	SELECT p.id, p.title, p.content, p.image_url,
	       COALESCE(p.category_id::text, ''), COALESCE(p.author_id::text, ''),
	       p.created_at, p.updated_at,
	       COALESCE(c.name, ''), COALESCE(u.username, '')
	FROM posts p
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN users u ON u.id = p.author_id
`

func scanPost(row pgx.Row) (*entity.Post, error) {
	p := &entity.Post{}
	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.ImageURL,
		&p.CategoryID, &p.AuthorID,
		&p.CreatedAt, &p.UpdatedAt,
		&p.CategoryName, &p.AuthorUsername)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostRepository) List(ctx context.Context) ([]*entity.Post, error) {
	rows, err := r.pool.Query(ctx, postSelect+` ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]*entity.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	p, err := scanPost(r.pool.QueryRow(ctx, postSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PostRepository) Update(ctx context.Context, id string, upd repo.PostUpdate) (*entity.Post, error) {
	// COALESCE keeps columns untouched for nil fields; a nil *string scans
	// as SQL NULL through pgx.
	res, err := r.pool.Exec(ctx, `
		UPDATE posts
		SET title       = COALESCE($1, title),
		    content     = COALESCE($2, content),
		    image_url   = COALESCE($3, image_url),
		    category_id = COALESCE($4::uuid, category_id),
		    updated_at  = now()
		WHERE id = $5
	`, upd.Title, upd.Content, upd.ImageURL, upd.CategoryID, id)
	if err != nil {
		return nil, translateError(err)
	}
	if res.RowsAffected() == 0 {
		return nil, repo.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

var _ repo.PostRepository = (*PostRepository)(nil)

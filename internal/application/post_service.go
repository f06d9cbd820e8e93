package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"blogapi/internal/domain/entity"
	repo "blogapi/internal/domain/repository"
	"blogapi/pkg/uploads"
)

// PostService provides CRUD over posts, image upload handling and
// best-effort search indexing.
type PostService struct {
	Posts   repo.PostRepository
	Uploads uploads.Store
	Logger  *logrus.Logger
	ES      *elasticsearch.Client
	ESIndex string
}

func NewPostService(posts repo.PostRepository, store uploads.Store, logger *logrus.Logger, es *elasticsearch.Client, esIndex string) *PostService {
	return &PostService{Posts: posts, Uploads: store, Logger: logger, ES: es, ESIndex: esIndex}
}

// ImageUpload is an optional file attached to a post create/update.
type ImageUpload struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}

type CreatePostInput struct {
	Title      string
	Content    string
	CategoryID string
	Image      *ImageUpload
}

// Create validates input before any side effect: a rejected post makes no
// store write and no upload.
func (s *PostService) Create(ctx context.Context, authorID string, in CreatePostInput) (*entity.Post, error) {
	if err := requiredFields(map[string]string{
		"title":   in.Title,
		"content": in.Content,
	}); err != nil {
		return nil, err
	}

	imageURL := ""
	if in.Image != nil && s.Uploads != nil {
		url, err := s.Uploads.Save(ctx, in.Image.Filename, in.Image.ContentType, in.Image.Reader)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	p := &entity.Post{
		Title:      strings.TrimSpace(in.Title),
		Content:    in.Content,
		ImageURL:   imageURL,
		CategoryID: in.CategoryID,
		AuthorID:   authorID,
	}
	if err := s.Posts.Create(ctx, p); err != nil {
		return nil, err
	}

	// Re-read to resolve category name / author username for the response.
	created, err := s.Posts.GetByID(ctx, p.ID)
	if err != nil {
		return p, nil
	}
	s.indexPost(ctx, created)
	return created, nil
}

func (s *PostService) List(ctx context.Context) ([]*entity.Post, error) {
	return s.Posts.List(ctx)
}

func (s *PostService) Get(ctx context.Context, id string) (*entity.Post, error) {
	p, err := s.Posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

type UpdatePostInput struct {
	Title      *string
	Content    *string
	CategoryID *string
	Image      *ImageUpload
}

// Update applies partial fields. Only the post's author may update it;
// posts whose author was deleted are frozen.
func (s *PostService) Update(ctx context.Context, userID, id string, in UpdatePostInput) (*entity.Post, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.AuthorID != userID {
		return nil, ErrForbidden
	}
	fields := map[string]string{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Content != nil {
		fields["content"] = *in.Content
	}
	if err := requiredFields(fields); err != nil {
		return nil, err
	}

	upd := repo.PostUpdate{Title: in.Title, Content: in.Content, CategoryID: in.CategoryID}
	if in.Image != nil && s.Uploads != nil {
		url, err := s.Uploads.Save(ctx, in.Image.Filename, in.Image.ContentType, in.Image.Reader)
		if err != nil {
			return nil, err
		}
		upd.ImageURL = &url
	}

	p, err := s.Posts.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.indexPost(ctx, p)
	return p, nil
}

// Delete removes a post; author-only like Update.
func (s *PostService) Delete(ctx context.Context, userID, id string) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing.AuthorID != userID {
		return ErrForbidden
	}
	if err := s.Posts.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.deleteIndex(ctx, id)
	return nil
}

func (s *PostService) indexPost(ctx context.Context, p *entity.Post) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":         p.ID,
		"title":      p.Title,
		"content":    p.Content,
		"category":   p.CategoryName,
		"author":     p.AuthorUsername,
		"created_at": p.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": p.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("post_id", p.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("post_id", p.ID).Warn("es index response error")
	}
}

func (s *PostService) deleteIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("post_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search performs a multi_match query on title and content.
func (s *PostService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "content"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

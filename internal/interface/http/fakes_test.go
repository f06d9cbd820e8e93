package handlers_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"blogapi/internal/domain/entity"
	repo "blogapi/internal/domain/repository"
)

// Minimal in-memory repos for exercising handlers end to end over httptest.

type memUsers struct {
	mu   sync.Mutex
	byID map[string]*entity.User
	seq  int
}

func newMemUsers() *memUsers { return &memUsers{byID: map[string]*entity.User{}} }

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.byID {
		if e.Email == u.Email {
			return repo.ErrDuplicate
		}
	}
	m.seq++
	u.ID = fmt.Sprintf("u%d", m.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memUsers) UpdatePassword(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

type memPosts struct {
	mu   sync.Mutex
	byID map[string]*entity.Post
	seq  int
}

func newMemPosts() *memPosts { return &memPosts{byID: map[string]*entity.Post{}} }

func (m *memPosts) Create(_ context.Context, p *entity.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	p.ID = fmt.Sprintf("p%d", m.seq)
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *memPosts) List(_ context.Context) ([]*entity.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Post, 0, len(m.byID))
	for _, p := range m.byID {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memPosts) GetByID(_ context.Context, id string) (*entity.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.byID[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (m *memPosts) Update(_ context.Context, id string, upd repo.PostUpdate) (*entity.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if upd.Title != nil {
		p.Title = *upd.Title
	}
	if upd.Content != nil {
		p.Content = *upd.Content
	}
	if upd.ImageURL != nil {
		p.ImageURL = *upd.ImageURL
	}
	if upd.CategoryID != nil {
		p.CategoryID = *upd.CategoryID
	}
	p.UpdatedAt = time.Now()
	cp := *p
	return &cp, nil
}

func (m *memPosts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type memCategories struct {
	mu   sync.Mutex
	byID map[string]*entity.Category
	seq  int
}

func newMemCategories() *memCategories { return &memCategories{byID: map[string]*entity.Category{}} }

func (m *memCategories) Create(_ context.Context, c *entity.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.byID {
		if e.Name == c.Name {
			return repo.ErrDuplicate
		}
	}
	m.seq++
	c.ID = fmt.Sprintf("c%d", m.seq)
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

func (m *memCategories) List(_ context.Context) ([]*entity.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Category, 0, len(m.byID))
	for _, c := range m.byID {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memCategories) GetByID(_ context.Context, id string) (*entity.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.byID[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (m *memCategories) Update(_ context.Context, c *entity.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.byID[c.ID]
	if !ok {
		return repo.ErrNotFound
	}
	cur.Name = c.Name
	cur.UpdatedAt = time.Now()
	return nil
}

func (m *memCategories) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type memAudit struct {
	mu      sync.Mutex
	entries []repo.AuditEntry
}

func (m *memAudit) Insert(_ context.Context, e repo.AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}

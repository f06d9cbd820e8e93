package application_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"blogapi/internal/domain/entity"
	repo "blogapi/internal/domain/repository"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*entity.User
	creates int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.byID {
		if e.Email == u.Email {
			return repo.ErrDuplicate
		}
	}
	f.creates++
	u.ID = fmt.Sprintf("user-%d", f.creates)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []repo.AuditEntry
}

func (f *fakeAuditRepo) Insert(_ context.Context, e repo.AuditEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, e)
	return nil
}

type fakePostRepo struct {
	mu      sync.Mutex
	byID    map[string]*entity.Post
	creates int
	writes  int
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{byID: map[string]*entity.Post{}}
}

func (f *fakePostRepo) Create(_ context.Context, p *entity.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	f.writes++
	p.ID = fmt.Sprintf("post-%d", f.creates)
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakePostRepo) List(_ context.Context) ([]*entity.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Post, 0, len(f.byID))
	for _, p := range f.byID {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakePostRepo) GetByID(_ context.Context, id string) (*entity.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.byID[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (f *fakePostRepo) Update(_ context.Context, id string, upd repo.PostUpdate) (*entity.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	f.writes++
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

func (f *fakePostRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return repo.ErrNotFound
	}
	f.writes++
	delete(f.byID, id)
	return nil
}

type fakeCategoryRepo struct {
	mu      sync.Mutex
	byID    map[string]*entity.Category
	creates int
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{byID: map[string]*entity.Category{}}
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.byID {
		if e.Name == c.Name {
			return repo.ErrDuplicate
		}
	}
	f.creates++
	c.ID = fmt.Sprintf("cat-%d", f.creates)
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeCategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Category, 0, len(f.byID))
	for _, c := range f.byID {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.byID[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (f *fakeCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.byID[c.ID]
	if !ok {
		return repo.ErrNotFound
	}
	for id, e := range f.byID {
		if id != c.ID && e.Name == c.Name {
			return repo.ErrDuplicate
		}
	}
	cur.Name = c.Name
	cur.UpdatedAt = time.Now()
	return nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

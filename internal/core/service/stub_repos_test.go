package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/bloghub/blog-api/internal/core/domain"
)

// In-memory repositories backing the service tests.

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.PostIDs = append([]string(nil), u.PostIDs...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("u%d", r.nextID)
	r.users[copy.ID] = copy
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateStatus(_ context.Context, id, status string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Status = status
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

func (r *stubUserRepo) PushPost(_ context.Context, userID, postID string) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PostIDs = append(u.PostIDs, postID)
	return nil
}

func (r *stubUserRepo) PullPost(_ context.Context, userID, postID string) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	kept := u.PostIDs[:0]
	for _, id := range u.PostIDs {
		if id != postID {
			kept = append(kept, id)
		}
	}
	u.PostIDs = kept
	return nil
}

type stubPostRepo struct {
	posts  map[string]*domain.Post
	nextID int
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[string]*domain.Post)}
}

func (r *stubPostRepo) Create(_ context.Context, post *domain.Post) (*domain.Post, error) {
	r.nextID++
	copy := *post
	copy.ID = fmt.Sprintf("p%d", r.nextID)
	r.posts[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	out := *p
	return &out, nil
}

func (r *stubPostRepo) sorted() []domain.Post {
	all := make([]domain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all
}

func (r *stubPostRepo) FindPage(_ context.Context, skip, limit int64) ([]domain.Post, error) {
	all := r.sorted()
	if skip >= int64(len(all)) {
		return nil, nil
	}
	end := skip + limit
	if end > int64(len(all)) {
		end = int64(len(all))
	}
	return all[skip:end], nil
}

func (r *stubPostRepo) FindByCreator(_ context.Context, creatorID string) ([]domain.Post, error) {
	var out []domain.Post
	for _, p := range r.sorted() {
		if p.CreatorID == creatorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubPostRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.posts)), nil
}

func (r *stubPostRepo) Update(_ context.Context, id, title, content string) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	p.Title = title
	p.Content = content
	p.UpdatedAt = time.Now().UTC()
	out := *p
	return &out, nil
}

func (r *stubPostRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

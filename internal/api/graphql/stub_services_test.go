package graphql

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/bloghub/blog-api/internal/core/domain"
	"github.com/bloghub/blog-api/internal/core/ports"
)

// stubBackend implements ports.AuthService and ports.PostService in memory so
// the resolver set can be exercised without a database.
type stubBackend struct {
	users    map[string]*domain.User
	posts    map[string]*domain.Post
	nextUser int
	nextPost int
	calls    []string
}

func newStubBackend() *stubBackend {
	return &stubBackend{
		users: make(map[string]*domain.User),
		posts: make(map[string]*domain.Post),
	}
}

func (s *stubBackend) record(op string) { s.calls = append(s.calls, op) }

func (s *stubBackend) addUser(email, name string) *domain.User {
	s.nextUser++
	u := &domain.User{
		ID:        fmt.Sprintf("u%d", s.nextUser),
		Email:     email,
		Name:      name,
		Status:    "I am new!",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	s.users[u.ID] = u
	return u
}

func (s *stubBackend) addPost(creatorID, title string, createdAt time.Time) *domain.Post {
	s.nextPost++
	p := &domain.Post{
		ID:        fmt.Sprintf("p%d", s.nextPost),
		Title:     title,
		Content:   "content of " + title,
		ImageURL:  "images/" + title + ".png",
		CreatorID: creatorID,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	s.posts[p.ID] = p
	return p
}

// ports.AuthService

func (s *stubBackend) Register(_ context.Context, input ports.RegisterInput) (*domain.User, error) {
	s.record("register")
	if input.Password == "" || len(input.Password) < 5 {
		return nil, &domain.ValidationError{Fields: []domain.FieldError{
			{Field: "password", Message: "password must be at least 5 characters"},
		}}
	}
	for _, u := range s.users {
		if u.Email == input.Email {
			return nil, domain.ErrUserExists
		}
	}
	return s.addUser(input.Email, input.Name), nil
}

func (s *stubBackend) Login(_ context.Context, email, password string) (*ports.AuthResult, error) {
	s.record("login")
	for _, u := range s.users {
		if u.Email == email && password == "pass123" {
			return &ports.AuthResult{UserID: u.ID, Token: "signed-token"}, nil
		}
	}
	return nil, domain.ErrInvalidCredentials
}

// ports.PostService

func (s *stubBackend) Create(_ context.Context, userID string, input ports.PostInput) (*ports.PostWithCreator, error) {
	s.record("create")
	creator, ok := s.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if len(input.Title) < 5 || len(input.Content) < 5 {
		return nil, &domain.ValidationError{Fields: []domain.FieldError{
			{Field: "title", Message: "title must be at least 5 characters"},
		}}
	}
	s.nextPost++
	now := time.Now().UTC()
	p := &domain.Post{
		ID:        fmt.Sprintf("p%d", s.nextPost),
		Title:     input.Title,
		Content:   input.Content,
		ImageURL:  input.ImageURL,
		CreatorID: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.posts[p.ID] = p
	creator.PostIDs = append(creator.PostIDs, p.ID)
	return &ports.PostWithCreator{Post: *p, Creator: *creator}, nil
}

func (s *stubBackend) sortedPosts() []domain.Post {
	all := make([]domain.Post, 0, len(s.posts))
	for _, p := range s.posts {
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return all
}

func (s *stubBackend) ListPage(_ context.Context, page int32) (*ports.PostPage, error) {
	s.record("list")
	if page < 1 {
		page = 1
	}
	const pageSize = 2
	all := s.sortedPosts()
	total := int64(len(all))

	start := int(page-1) * pageSize
	if start > len(all) {
		start = len(all)
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}

	items := make([]ports.PostWithCreator, 0, end-start)
	for _, p := range all[start:end] {
		items = append(items, ports.PostWithCreator{Post: p, Creator: *s.users[p.CreatorID]})
	}
	return &ports.PostPage{Posts: items, Total: total}, nil
}

func (s *stubBackend) Get(_ context.Context, id string) (*ports.PostWithCreator, error) {
	s.record("get")
	p, ok := s.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return &ports.PostWithCreator{Post: *p, Creator: *s.users[p.CreatorID]}, nil
}

func (s *stubBackend) Update(_ context.Context, userID, id string, input ports.PostInput) (*ports.PostWithCreator, error) {
	s.record("update")
	p, ok := s.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	if p.CreatorID != userID {
		return nil, domain.ErrForbidden
	}
	p.Title = input.Title
	p.Content = input.Content
	p.UpdatedAt = time.Now().UTC()
	return &ports.PostWithCreator{Post: *p, Creator: *s.users[p.CreatorID]}, nil
}

func (s *stubBackend) Delete(_ context.Context, userID, id string) error {
	s.record("delete")
	p, ok := s.posts[id]
	if !ok {
		return domain.ErrPostNotFound
	}
	if p.CreatorID != userID {
		return domain.ErrForbidden
	}
	delete(s.posts, id)
	return nil
}

func (s *stubBackend) CurrentUser(_ context.Context, userID string) (*domain.User, error) {
	s.record("currentUser")
	u, ok := s.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *stubBackend) UpdateStatus(_ context.Context, userID, status string) (*domain.User, error) {
	s.record("updateStatus")
	u, ok := s.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Status = status
	return u, nil
}

func (s *stubBackend) PostsByCreator(_ context.Context, creatorID string) ([]domain.Post, error) {
	var out []domain.Post
	for _, p := range s.sortedPosts() {
		if p.CreatorID == creatorID {
			out = append(out, p)
		}
	}
	return out, nil
}

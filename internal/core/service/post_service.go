package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/bloghub/blog-api/internal/core/domain"
	"github.com/bloghub/blog-api/internal/core/ports"
)

// pageSize is the fixed number of posts per listing page.
const pageSize = 2

// ImageCleaner schedules best-effort removal of an image file that is no
// longer referenced by any post.
type ImageCleaner interface {
	Enqueue(path string)
}

// PostService implements post CRUD, pagination and the current-user profile.
type PostService struct {
	posts   ports.PostRepository
	users   ports.UserRepository
	cache   ports.PostCache
	cleaner ImageCleaner
	logger  zerolog.Logger
}

// NewPostService creates a PostService. cache and cleaner may be nil, in which
// case page caching and image cleanup are skipped.
func NewPostService(posts ports.PostRepository, users ports.UserRepository, cache ports.PostCache, cleaner ImageCleaner, logger zerolog.Logger) *PostService {
	return &PostService{posts: posts, users: users, cache: cache, cleaner: cleaner, logger: logger}
}

// Create validates the input, persists the post and appends its reference to
// the creator's collection. The two writes are sequential and non-atomic; the
// store's single-document atomicity is the only guarantee relied on.
func (s *PostService) Create(ctx context.Context, userID string, input ports.PostInput) (*ports.PostWithCreator, error) {
	if err := checkInput(input); err != nil {
		return nil, err
	}

	creator, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post := &domain.Post{
		Title:     input.Title,
		Content:   input.Content,
		ImageURL:  input.ImageURL,
		CreatorID: creator.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	if err := s.users.PushPost(ctx, creator.ID, created.ID); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	s.logger.Info().Str("post_id", created.ID).Str("user_id", creator.ID).Msg("post created")

	return &ports.PostWithCreator{Post: *created, Creator: *creator}, nil
}

// ListPage returns one page of posts, newest first, with the total count.
// Pages are 1-based; anything below 1 falls back to the first page.
func (s *PostService) ListPage(ctx context.Context, page int32) (*ports.PostPage, error) {
	if page < 1 {
		page = 1
	}

	if s.cache != nil {
		cached, ok, err := s.cache.GetPage(ctx, page)
		if err != nil {
			s.logger.Warn().Err(err).Int32("page", page).Msg("post cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	total, err := s.posts.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	skip := int64(page-1) * pageSize
	posts, err := s.posts.FindPage(ctx, skip, pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]ports.PostWithCreator, 0, len(posts))
	for _, p := range posts {
		creator, err := s.users.FindByID(ctx, p.CreatorID)
		if err != nil {
			return nil, err
		}
		items = append(items, ports.PostWithCreator{Post: p, Creator: *creator})
	}

	result := &ports.PostPage{Posts: items, Total: total}

	if s.cache != nil {
		if err := s.cache.SetPage(ctx, page, result); err != nil {
			s.logger.Warn().Err(err).Int32("page", page).Msg("post cache write failed")
		}
	}
	return result, nil
}

// Get returns a single post with its creator populated.
func (s *PostService) Get(ctx context.Context, id string) (*ports.PostWithCreator, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	creator, err := s.users.FindByID(ctx, post.CreatorID)
	if err != nil {
		return nil, err
	}
	return &ports.PostWithCreator{Post: *post, Creator: *creator}, nil
}

// Update overwrites title and content. Image and creator are immutable after
// creation; a non-creator caller gets domain.ErrForbidden.
func (s *PostService) Update(ctx context.Context, userID, id string, input ports.PostInput) (*ports.PostWithCreator, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.CreatorID != userID {
		return nil, domain.ErrForbidden
	}

	if err := checkInput(input); err != nil {
		return nil, err
	}

	updated, err := s.posts.Update(ctx, id, input.Title, input.Content)
	if err != nil {
		return nil, err
	}

	creator, err := s.users.FindByID(ctx, updated.CreatorID)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	s.logger.Info().Str("post_id", id).Msg("post updated")

	return &ports.PostWithCreator{Post: *updated, Creator: *creator}, nil
}

// Delete removes the post, detaches it from the owner's collection and
// schedules removal of its image file.
func (s *PostService) Delete(ctx context.Context, userID, id string) error {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if post.CreatorID != userID {
		return domain.ErrForbidden
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.users.PullPost(ctx, userID, id); err != nil {
		return err
	}

	if s.cleaner != nil && post.ImageURL != "" {
		s.cleaner.Enqueue(post.ImageURL)
	}

	s.invalidateCache(ctx)
	s.logger.Info().Str("post_id", id).Str("user_id", userID).Msg("post deleted")
	return nil
}

// CurrentUser resolves the authenticated id to its user record.
func (s *PostService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// UpdateStatus overwrites the user's status unconditionally.
func (s *PostService) UpdateStatus(ctx context.Context, userID, status string) (*domain.User, error) {
	return s.users.UpdateStatus(ctx, userID, status)
}

// PostsByCreator lists every post owned by one user, newest first.
func (s *PostService) PostsByCreator(ctx context.Context, creatorID string) ([]domain.Post, error) {
	return s.posts.FindByCreator(ctx, creatorID)
}

func (s *PostService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("post cache invalidation failed")
	}
}

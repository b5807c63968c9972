package ports

import (
	"context"

	"github.com/bloghub/blog-api/internal/core/domain"
)

// PostInput carries the user-supplied fields of a post.
type PostInput struct {
	Title    string `validate:"required,min=5"`
	Content  string `validate:"required,min=5"`
	ImageURL string
}

// PostWithCreator pairs a post with its populated creator.
type PostWithCreator struct {
	Post    domain.Post
	Creator domain.User
}

// PostPage is one page of the post listing.
type PostPage struct {
	Posts []PostWithCreator
	Total int64
}

// PostService defines the post CRUD and profile use cases. Every method takes
// the acting user's id as established by the auth gate; ownership rules are
// enforced here, not in the transport layer.
type PostService interface {
	Create(ctx context.Context, userID string, input PostInput) (*PostWithCreator, error)
	ListPage(ctx context.Context, page int32) (*PostPage, error)
	Get(ctx context.Context, id string) (*PostWithCreator, error)
	Update(ctx context.Context, userID, id string, input PostInput) (*PostWithCreator, error)
	Delete(ctx context.Context, userID, id string) error
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
	UpdateStatus(ctx context.Context, userID, status string) (*domain.User, error)
	PostsByCreator(ctx context.Context, creatorID string) ([]domain.Post, error)
}

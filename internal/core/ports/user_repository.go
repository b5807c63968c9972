package ports

import (
	"context"

	"github.com/bloghub/blog-api/internal/core/domain"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.User, error)
	// PushPost appends a post reference to the user's posts collection.
	PushPost(ctx context.Context, userID, postID string) error
	// PullPost removes a post reference from the user's posts collection.
	PullPost(ctx context.Context, userID, postID string) error
}

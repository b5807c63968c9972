package ports

import (
	"context"

	"github.com/bloghub/blog-api/internal/core/domain"
)

// PostRepository defines the interface for post persistence.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// FindPage returns posts ordered by creation time descending.
	FindPage(ctx context.Context, skip, limit int64) ([]domain.Post, error)
	FindByCreator(ctx context.Context, creatorID string) ([]domain.Post, error)
	CountAll(ctx context.Context) (int64, error)
	// Update overwrites title and content only; the store refreshes updated_at.
	Update(ctx context.Context, id, title, content string) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
}

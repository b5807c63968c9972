package storage

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/bloghub/blog-api/internal/api/metrics"
)

const janitorBuffer = 64

// Remover deletes a stored image by its public path.
type Remover interface {
	Remove(publicPath string) error
}

// Janitor removes stale image files off the request path. Deletion is
// best-effort: failures are counted and logged, never surfaced to a client.
type Janitor struct {
	remover Remover
	ch      chan string
	log     zerolog.Logger
}

func NewJanitor(remover Remover, log zerolog.Logger) *Janitor {
	return &Janitor{
		remover: remover,
		ch:      make(chan string, janitorBuffer),
		log:     log,
	}
}

// Start launches the worker goroutine. It stops when ctx is cancelled.
func (j *Janitor) Start(ctx context.Context) {
	go j.run(ctx)
}

// Enqueue schedules removal of an image. When the buffer is full the path is
// dropped rather than blocking a request.
func (j *Janitor) Enqueue(path string) {
	if path == "" {
		return
	}
	select {
	case j.ch <- path:
	default:
		j.log.Warn().Str("path", path).Msg("image cleanup queue full, dropping")
		metrics.ImageCleanupErrorsTotal.Inc()
	}
}

func (j *Janitor) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case path := <-j.ch:
			if err := j.remover.Remove(path); err != nil && !os.IsNotExist(err) {
				j.log.Warn().Err(err).Str("path", path).Msg("failed to remove stale image")
				metrics.ImageCleanupErrorsTotal.Inc()
			}
		}
	}
}

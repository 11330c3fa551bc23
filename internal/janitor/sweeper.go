package janitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JosephKS10/blog-backend/internal/lock"
	"github.com/JosephKS10/blog-backend/internal/logger"
)

const LockKey = "janitor:orphan-comments"

var ErrSkipped = errors.New("sweep skipped: another worker holds the lock")

type OrphanStore interface {
	DeleteOrphanedComments(ctx context.Context) (int64, error)
}

// Locker is satisfied by *lock.DistributedLock.
type Locker interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

var _ Locker = (*lock.DistributedLock)(nil)

// Sweeper removes comments whose post no longer exists. With a nil Locker
// it runs unlocked, which is only safe with a single worker.
type Sweeper struct {
	store OrphanStore
	lock  Locker
	log   *logger.Logger
}

func NewSweeper(store OrphanStore, l Locker, log *logger.Logger) *Sweeper {
	return &Sweeper{store: store, lock: l, log: log}
}

// Run performs one sweep and returns the number of comments removed.
func (s *Sweeper) Run(ctx context.Context) (int64, error) {
	if s.lock != nil {
		acquired, err := s.lock.Acquire(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to acquire cleanup lock: %w", err)
		}
		if !acquired {
			return 0, ErrSkipped
		}
		defer func() {
			// release on a fresh context so a cancelled sweep still unlocks
			releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.lock.Release(releaseCtx); err != nil && !errors.Is(err, lock.ErrLockNotHeld) {
				s.log.Warn("Failed to release cleanup lock: %v", err)
			}
		}()
	}

	deleted, err := s.store.DeleteOrphanedComments(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete orphaned comments: %w", err)
	}

	return deleted, nil
}

// Loop sweeps once immediately and then every interval until ctx is done.
func (s *Sweeper) Loop(ctx context.Context, interval time.Duration) {
	s.runOnce(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Sweeper) runOnce(ctx context.Context) {
	s.log.Info("Starting cleanup of orphaned comments...")

	deleted, err := s.Run(ctx)
	switch {
	case errors.Is(err, ErrSkipped):
		s.log.Info("Cleanup skipped, lock held elsewhere")
	case err != nil:
		s.log.Error("Cleanup failed: %v", err)
	case deleted > 0:
		s.log.Info("Deleted %d orphaned comments", deleted)
	default:
		s.log.Info("No orphaned comments found")
	}
}

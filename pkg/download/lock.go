package download

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/juju/fslock"

	"github.com/matzehuels/mvnfetch/pkg/errors"
)

// LockFile is the name of the lock file created in an output directory.
const LockFile = ".mvnfetch.lock"

const lockPoll = 100 * time.Millisecond

// WithLock runs action while holding the lock on dir, creating dir if
// needed. If another process holds the lock, WithLock waits up to wait
// before failing with a LOCKED error. The lock is released when action
// returns and by the OS if the process dies.
func WithLock(ctx context.Context, dir string, wait time.Duration, logger *log.Logger, action func() error) error {
	if logger == nil {
		logger = log.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create output directory %s", dir)
	}

	path := filepath.Join(dir, LockFile)
	lock := fslock.New(path)
	if err := lock.TryLock(); stderrors.Is(err, fslock.ErrLocked) {
		logger.Info("waiting for output directory lock", "path", path)
		if err := waitForLock(ctx, lock, wait); err != nil {
			return err
		}
	} else if err != nil {
		return errors.Wrap(errors.ErrCodeLocked, err, "lock %s", path)
	}

	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release output directory lock", "path", path, "err", err)
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return action()
}

// waitForLock polls because fslock has no context-aware lock call.
func waitForLock(ctx context.Context, lock *fslock.Lock, wait time.Duration) error {
	deadline := time.Now().Add(wait)
	for {
		err := lock.TryLock()
		if err == nil {
			return nil
		}
		if !stderrors.Is(err, fslock.ErrLocked) {
			return errors.Wrap(errors.ErrCodeLocked, err, "acquire lock")
		}
		if !time.Now().Before(deadline) {
			return errors.New(errors.ErrCodeLocked, "output directory is locked by another run")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockPoll):
		}
	}
}

package worksheet

import (
	"context"
	"errors"
	"time"
)

// RetryStore wraps a Store and retries failed saves with bounded
// exponential backoff. Loads stay single-attempt: a failed load is
// surfaced immediately so the UI can show a retryable error, while a
// save is worth a few quiet attempts before bothering the user.
type RetryStore struct {
	Store
	// MaxAttempts is the total number of save attempts (not extra
	// retries). Values below 1 behave as 1.
	MaxAttempts int
	// BaseDelay is the wait before the second attempt; it doubles
	// each attempt after that.
	BaseDelay time.Duration
}

// NewRetryStore wraps inner with the default policy: 3 attempts,
// 200ms base delay.
func NewRetryStore(inner Store) *RetryStore {
	return &RetryStore{Store: inner, MaxAttempts: 3, BaseDelay: 200 * time.Millisecond}
}

// SaveWorksheet attempts the save up to MaxAttempts times. Only backend
// failures (StoreError) are retried; anything else is a caller bug and
// returns immediately.
func (s *RetryStore) SaveWorksheet(ctx context.Context, doc *Document) error {
	attempts := s.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := s.BaseDelay << uint(attempt-1)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		lastErr = s.Store.SaveWorksheet(ctx, doc)
		if lastErr == nil {
			return nil
		}
		var storeErr *StoreError
		if !errors.As(lastErr, &storeErr) {
			return lastErr
		}
	}
	return lastErr
}

package utils

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// RetryWithBackoff retries a function up to maxRetries times with
// exponential backoff. Context deadline and cancellation errors abort
// immediately: further attempts would just burn the same timeout again.
func RetryWithBackoff(maxRetries int, fn func() error, logger *Logger) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt*attempt) * time.Second
			logger.Warn("Retrying (attempt %d/%d) after %v...", attempt+1, maxRetries, backoff)
			time.Sleep(backoff)
		}
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		logger.Error("Attempt %d failed: %v", attempt+1, err)
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return fmt.Errorf("attempt %d aborted: %w", attempt+1, err)
		}
	}
	return fmt.Errorf("all %d attempts failed, last error: %w", maxRetries, lastErr)
}

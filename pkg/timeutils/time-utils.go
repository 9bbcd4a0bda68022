package timeutils

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrAllAttemptsFailed = errors.New("all attempts failed")
)

// Retry calls function once, then once more after each of attemptDelays while
// onFinished reports that another attempt is needed. The last error is wrapped
// together with ErrAllAttemptsFailed when every attempt is used up.
func Retry[T any](
	ctx context.Context,
	attemptDelays []time.Duration,
	function func(context.Context) (T, error),
	onFinished func(T, error) (needRetry bool),
) (T, error) {
	var zero T
	var lastErr error
	for attempt := 0; attempt <= len(attemptDelays); attempt++ {
		if ctx.Err() != nil {
			return zero, fmt.Errorf("retry canceled: %w", ctx.Err())
		}
		res, err := function(ctx)
		if !onFinished(res, err) {
			return res, err
		}
		lastErr = err
		if attempt == len(attemptDelays) {
			break
		}
		if err := SleepCtx(ctx, attemptDelays[attempt]); err != nil {
			return zero, err
		}
	}
	if lastErr != nil {
		return zero, fmt.Errorf("%w: %w", ErrAllAttemptsFailed, lastErr)
	}
	return zero, ErrAllAttemptsFailed
}

// RetryOnError is the usual onFinished callback: retry while err is not nil.
func RetryOnError[T any](_ T, err error) bool {
	return err != nil
}

func SleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("sleep canceled: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}

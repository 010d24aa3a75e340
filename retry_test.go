package docindex_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/docindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetry(t *testing.T) {
	t.Parallel()

	delays := []time.Duration{time.Millisecond, time.Millisecond, time.Millisecond}

	t.Run("succeeds after transient failures", func(t *testing.T) {
		t.Parallel()

		calls := 0
		var attempts []int
		err := docindex.Retry(context.Background(), delays, func(attempt int, err error) {
			attempts = append(attempts, attempt)
		}, func(ctx context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("connection reset")
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
		assert.Equal(t, []int{2, 3}, attempts)
	})

	t.Run("gives up after all delays", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := docindex.Retry(context.Background(), delays, nil, func(ctx context.Context) error {
			calls++
			return errors.New("HTTP 503")
		})

		require.Error(t, err)
		assert.Equal(t, "HTTP 503", err.Error())
		assert.Equal(t, 4, calls)
	})

	t.Run("does not retry not found errors", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := docindex.Retry(context.Background(), delays, nil, func(ctx context.Context) error {
			calls++
			return docindex.Errorf(docindex.ENOTFOUND, "gone")
		})

		assert.Equal(t, docindex.ENOTFOUND, docindex.ErrorCode(err))
		assert.Equal(t, 1, calls)
	})

	t.Run("stops when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		err := docindex.Retry(ctx, []time.Duration{time.Hour}, nil, func(ctx context.Context) error {
			calls++
			cancel()
			return errors.New("timeout")
		})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})

	t.Run("default delays back off exponentially", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, docindex.DefaultRetryDelays())
	})
}

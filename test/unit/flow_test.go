package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jt828/flowtrace/pkg/flow"
	"github.com/jt828/flowtrace/pkg/retry"
	retryImpl "github.com/jt828/flowtrace/pkg/retry/implementation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlow_Sources(t *testing.T) {
	ctx := context.Background()

	t.Run("Of emits in order", func(t *testing.T) {
		got, err := flow.ToSlice(ctx, flow.Of(1, 2, 3))

		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, got)
	})

	t.Run("Empty completes without elements", func(t *testing.T) {
		got, err := flow.ToSlice(ctx, flow.Empty[string]())

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Fail returns its error", func(t *testing.T) {
		expected := errors.New("broken")

		_, err := flow.ToSlice(ctx, flow.Fail[int](expected))

		assert.ErrorIs(t, err, expected)
	})

	t.Run("nil flow completes", func(t *testing.T) {
		var f flow.Flow[int]

		got, err := flow.ToSlice(ctx, f)

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("FromChannel drains until closed", func(t *testing.T) {
		ch := make(chan int, 3)
		ch <- 1
		ch <- 2
		ch <- 3
		close(ch)

		got, err := flow.ToSlice(ctx, flow.FromChannel(ch))

		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, got)
	})

	t.Run("FromChannel stops on cancellation", func(t *testing.T) {
		ch := make(chan int)
		cctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()

		_, err := flow.ToSlice(cctx, flow.FromChannel(ch))

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("Generate stops when next reports false", func(t *testing.T) {
		n := 0
		f := flow.Generate(func(context.Context) (int, bool, error) {
			n++
			return n, n <= 3, nil
		})

		got, err := flow.ToSlice(ctx, f)

		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, got)
	})

	t.Run("cancelled context stops FromSlice", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		got, err := flow.ToSlice(cctx, flow.Of(1, 2))

		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, got)
	})
}

func TestFlow_Operators(t *testing.T) {
	ctx := context.Background()

	t.Run("OnEach runs before delivery", func(t *testing.T) {
		var events []string
		f := flow.OnEach(flow.Of("a", "b"), func(_ context.Context, v string) error {
			events = append(events, "tap:"+v)
			return nil
		})

		err := f.Collect(ctx, func(v string) error {
			events = append(events, "got:"+v)
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"tap:a", "got:a", "tap:b", "got:b"}, events)
	})

	t.Run("OnEach error withholds the element", func(t *testing.T) {
		expected := errors.New("tap failed")
		f := flow.OnEach(flow.Of(1, 2, 3), func(_ context.Context, v int) error {
			if v == 2 {
				return expected
			}
			return nil
		})

		got, err := flow.ToSlice(ctx, f)

		assert.ErrorIs(t, err, expected)
		assert.Equal(t, []int{1}, got)
	})

	t.Run("OnStart runs once per subscription", func(t *testing.T) {
		starts := 0
		f := flow.OnStart(flow.Of(1), func(context.Context) error {
			starts++
			return nil
		})

		_, _ = flow.ToSlice(ctx, f)
		_, _ = flow.ToSlice(ctx, f)

		assert.Equal(t, 2, starts)
	})

	t.Run("Map transforms elements", func(t *testing.T) {
		f := flow.Map(flow.Of(1, 2), func(v int) (string, error) {
			return string(rune('a' + v - 1)), nil
		})

		got, err := flow.ToSlice(ctx, f)

		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, got)
	})

	t.Run("Take completes early", func(t *testing.T) {
		pulled := 0
		src := flow.OnEach(flow.Of(1, 2, 3, 4), func(context.Context, int) error {
			pulled++
			return nil
		})

		got, err := flow.ToSlice(ctx, flow.Take(src, 2))

		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, got)
		assert.Equal(t, 2, pulled)
	})

	t.Run("Take zero emits nothing", func(t *testing.T) {
		got, err := flow.ToSlice(ctx, flow.Take(flow.Of(1), 0))

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("downstream error surfaces unchanged", func(t *testing.T) {
		expected := errors.New("consumer")

		err := flow.Of(1, 2).Collect(ctx, func(int) error { return expected })

		assert.Equal(t, expected, err)
	})
}

func TestFlow_Retry(t *testing.T) {
	ctx := context.Background()

	t.Run("resubscribes after failure", func(t *testing.T) {
		attempts := 0
		src := func(ctx context.Context, collect func(int) error) error {
			attempts++
			if err := collect(attempts); err != nil {
				return err
			}
			if attempts < 3 {
				return errors.New("transient")
			}
			return nil
		}
		r := retryImpl.NewRetry(5, retry.WithInterval(time.Millisecond))

		got, err := flow.ToSlice(ctx, flow.Retry(flow.Flow[int](src), r))

		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, got)
		assert.Equal(t, 3, attempts)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		attempts := 0
		persistent := errors.New("persistent")
		src := flow.OnStart(flow.Fail[int](persistent), func(context.Context) error {
			attempts++
			return nil
		})
		r := retryImpl.NewRetry(2, retry.WithInterval(time.Millisecond))

		_, err := flow.ToSlice(ctx, flow.Retry(src, r))

		assert.ErrorContains(t, err, "persistent")
		assert.Equal(t, 3, attempts)
	})

	t.Run("downstream errors are not retried", func(t *testing.T) {
		attempts := 0
		consumer := errors.New("consumer")
		src := flow.OnStart(flow.Of(1, 2), func(context.Context) error {
			attempts++
			return nil
		})
		r := retryImpl.NewRetry(5, retry.WithInterval(time.Millisecond))

		err := flow.Retry(src, r).Collect(ctx, func(int) error { return consumer })

		assert.ErrorIs(t, err, consumer)
		assert.Equal(t, 1, attempts)
	})

	t.Run("Take downstream of Retry completes normally", func(t *testing.T) {
		r := retryImpl.NewRetry(5, retry.WithInterval(time.Millisecond))

		got, err := flow.ToSlice(ctx, flow.Take(flow.Retry(flow.Of(1, 2, 3), r), 2))

		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, got)
	})
}

package flow

import (
	"context"
	"errors"

	"github.com/jt828/flowtrace/pkg/retry"
)

// OnEach runs fn for every element before handing it downstream. An error
// from fn fails the flow at that element; the element is not delivered.
func OnEach[T any](src Flow[T], fn func(ctx context.Context, v T) error) Flow[T] {
	return func(ctx context.Context, collect func(T) error) error {
		return src.Collect(ctx, func(v T) error {
			if err := fn(ctx, v); err != nil {
				return err
			}
			return collect(v)
		})
	}
}

// OnStart runs fn once per subscription, before src is subscribed.
func OnStart[T any](src Flow[T], fn func(ctx context.Context) error) Flow[T] {
	return func(ctx context.Context, collect func(T) error) error {
		if err := fn(ctx); err != nil {
			return err
		}
		return src.Collect(ctx, collect)
	}
}

func Map[In, Out any](src Flow[In], fn func(In) (Out, error)) Flow[Out] {
	return func(ctx context.Context, collect func(Out) error) error {
		return src.Collect(ctx, func(v In) error {
			out, err := fn(v)
			if err != nil {
				return err
			}
			return collect(out)
		})
	}
}

type takeDone struct{}

func (*takeDone) Error() string { return "flow: take limit reached" }

// Take completes after n elements, cancelling the upstream subscription.
func Take[T any](src Flow[T], n int) Flow[T] {
	return func(ctx context.Context, collect func(T) error) error {
		if n <= 0 {
			return nil
		}
		done := &takeDone{}
		seen := 0
		err := src.Collect(ctx, func(v T) error {
			if err := collect(v); err != nil {
				return err
			}
			seen++
			if seen == n {
				return done
			}
			return nil
		})
		if errors.Is(err, done) {
			return nil
		}
		return err
	}
}

// Retry resubscribes to src whenever it fails, as allowed by r. Errors raised
// by collect and context cancellation are never retried. Every attempt is a
// new subscription that emits from the start of src, so collect may see the
// elements of a failed attempt again.
func Retry[T any](src Flow[T], r retry.Retry) Flow[T] {
	return func(ctx context.Context, collect func(T) error) error {
		return r.Execute(ctx, func() error {
			err := src.Collect(ctx, func(v T) error {
				if err := collect(v); err != nil {
					return retry.Permanent(err)
				}
				return nil
			})
			if err != nil && ctx.Err() != nil {
				return retry.Permanent(err)
			}
			return err
		})
	}
}

package flow

import "context"

// Of emits values in order.
func Of[T any](values ...T) Flow[T] {
	return FromSlice(values)
}

// FromSlice emits the elements of values in order. Each subscription
// starts again from the first element.
func FromSlice[T any](values []T) Flow[T] {
	return func(ctx context.Context, collect func(T) error) error {
		for _, v := range values {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := collect(v); err != nil {
				return err
			}
		}
		return nil
	}
}

// FromChannel emits values received from ch until it is closed. A channel
// can only be drained once, so later subscriptions see what is left.
func FromChannel[T any](ch <-chan T) Flow[T] {
	return func(ctx context.Context, collect func(T) error) error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case v, ok := <-ch:
				if !ok {
					return nil
				}
				if err := collect(v); err != nil {
					return err
				}
			}
		}
	}
}

// Empty completes without emitting.
func Empty[T any]() Flow[T] {
	return func(context.Context, func(T) error) error {
		return nil
	}
}

// Fail fails with err without emitting.
func Fail[T any](err error) Flow[T] {
	return func(context.Context, func(T) error) error {
		return err
	}
}

// Generate emits the values produced by next until it reports false or
// returns an error.
func Generate[T any](next func(ctx context.Context) (T, bool, error)) Flow[T] {
	return func(ctx context.Context, collect func(T) error) error {
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, ok, err := next(ctx)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			if err := collect(v); err != nil {
				return err
			}
		}
	}
}

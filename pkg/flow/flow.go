package flow

import (
	"context"
)

// Flow is a cold stream of T. See the package documentation for its contract.
type Flow[T any] func(ctx context.Context, collect func(T) error) error

// Collect subscribes to f and delivers every element to fn.
func (f Flow[T]) Collect(ctx context.Context, fn func(T) error) error {
	if f == nil {
		return nil
	}
	return f(ctx, fn)
}

// ToSlice collects f into a slice. On failure it returns the elements that
// were delivered before the error together with the error.
func ToSlice[T any](ctx context.Context, f Flow[T]) ([]T, error) {
	var out []T
	err := f.Collect(ctx, func(v T) error {
		out = append(out, v)
		return nil
	})
	return out, err
}

// Package flowtracing instruments flows with trace markers.
//
// TraceEach records every element's string form on a state track named after
// the flow, and TraceEmissionCount publishes a running element count on the
// counter track "<flowName>#emissionCount". Both are transparent: the traced
// flow delivers the same elements in the same order, and completes or fails
// exactly like its source.
package flowtracing

import (
	"context"
	"errors"
	"fmt"

	"github.com/jt828/flowtrace/pkg/flow"
	"github.com/jt828/flowtrace/pkg/tracing"
)

const emissionCountSuffix = "#emissionCount"

// ErrConversion wraps errors returned by Config.ToStringE.
var ErrConversion = errors.New("flowtracing: value conversion failed")

// Config controls TraceEach. The zero value of every field except FlowName is
// a usable default: no log mirroring, no emission count, and fmt.Sprint as
// the string conversion.
type Config[T any] struct {
	FlowName string

	// Logcat also writes every value to the backend's text log.
	Logcat bool

	// TraceEmissionCount adds a TraceEmissionCount tap under the same name.
	TraceEmissionCount bool

	// ToString converts an element for display. Defaults to DefaultToString.
	ToString func(T) string

	// ToStringE is used instead of ToString when the conversion can fail.
	// Its error fails the flow at the element being converted.
	ToStringE func(T) (string, error)
}

// DefaultToString formats v with fmt.Sprint; it is the conversion used when
// Config.ToString and Config.ToStringE are both nil.
func DefaultToString[T any](v T) string {
	return fmt.Sprint(v)
}

func (c Config[T]) stringer() func(T) (string, error) {
	switch {
	case c.ToStringE != nil:
		return c.ToStringE
	case c.ToString != nil:
		toString := c.ToString
		return func(v T) (string, error) { return toString(v), nil }
	default:
		return func(v T) (string, error) { return DefaultToString(v), nil }
	}
}

// TraceEach logs the string form of every element of src to a state track
// named cfg.FlowName before the element is delivered downstream.
func TraceEach[T any](src flow.Flow[T], backend tracing.Backend, cfg Config[T]) flow.Flow[T] {
	stateLogger := NewTraceStateLogger(backend, cfg.FlowName, cfg.Logcat)
	base := src
	if cfg.TraceEmissionCount {
		base = TraceEmissionCount(src, backend, cfg.FlowName)
	}
	toString := cfg.stringer()

	return flow.OnEach(base, func(ctx context.Context, v T) error {
		s, err := toString(v)
		if err != nil {
			return fmt.Errorf("%w: flow %q: %w", ErrConversion, cfg.FlowName, err)
		}
		stateLogger.Log(ctx, s)
		return nil
	})
}

// TraceEmissionCount publishes the number of elements emitted so far on the
// counter track "<flowName>#emissionCount". Every subscription counts from
// zero.
func TraceEmissionCount[T any](src flow.Flow[T], backend tracing.Backend, flowName string) flow.Flow[T] {
	trackName := EmissionCountTrack(flowName)

	return func(ctx context.Context, collect func(T) error) error {
		var count int64
		counted := flow.OnEach(src, func(ctx context.Context, _ T) error {
			count++
			backend.Counter(ctx, trackName, count)
			return nil
		})
		return counted.Collect(ctx, collect)
	}
}

// EmissionCountTrack returns the counter track TraceEmissionCount uses for
// flowName.
func EmissionCountTrack(flowName string) string {
	return flowName + emissionCountSuffix
}

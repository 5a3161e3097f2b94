// Package flow provides a minimal cold, push-based stream.
//
// A Flow is a function that, when invoked, subscribes to its source and pushes
// every element into the collect callback in order. Each invocation is an
// independent subscription: operators that keep state create it inside the
// invocation, never at composition time.
//
// # Termination
//
// A Flow completes normally by returning nil and fails by returning an error.
// When collect returns an error the producer stops and returns that same
// error, so failures raised downstream surface unchanged to the caller of
// Collect. Cancellation is carried by the context.
//
// # Ordering
//
// Producers never invoke collect concurrently for a single subscription, and
// each call to collect returns before the next one starts. Operators built on
// OnEach therefore observe elements one at a time, in emission order.
package flow

// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// User metrics
	IncUserCreated()
	IncUserUpdated()
	IncUserDeleted()

	// Post metrics
	IncPostCreated()
	IncPostUpdated()
	IncPostDeleted()

	// Store metrics
	IncStoreFailure(op string)
	ObserveStoreDuration(duration time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}

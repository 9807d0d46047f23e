// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Catalog metrics
	IncProductCreated()
	IncProductUpdated()
	IncProductDeleted()

	// Cart metrics
	IncCartItemAdded()
	IncCartItemRemoved()

	// Auth metrics
	IncLoginSuccess()
	IncLoginFailure()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}

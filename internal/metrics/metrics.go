// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Account metrics
	IncUserRegistered()
	IncLoginFailed()
	IncSessionIssued()
	IncSessionRevoked()

	// Auth guard metrics
	IncAuthCacheHit()
	IncAuthCacheMiss()

	// Todo metrics
	IncTodoCreated()
	IncTodoCompleted()
	IncTodoDeleted()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}

// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Registration metrics
	IncCredentialRegistered()
	IncRegistrationRejected(kind string) // kind: taxonomy kind, e.g. "conflict"
	ObserveHashDuration(duration time.Duration)

	// Lookup metrics
	IncLookup(result string) // result: "found", "not_found" or "error"
	IncViewCacheHit()
	IncViewCacheMiss()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}

package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncCredentialRegistered is a no-op.
func (n *NoopRecorder) IncCredentialRegistered() {}

// IncRegistrationRejected is a no-op.
func (n *NoopRecorder) IncRegistrationRejected(kind string) {}

// ObserveHashDuration is a no-op.
func (n *NoopRecorder) ObserveHashDuration(duration time.Duration) {}

// IncLookup is a no-op.
func (n *NoopRecorder) IncLookup(result string) {}

// IncViewCacheHit is a no-op.
func (n *NoopRecorder) IncViewCacheHit() {}

// IncViewCacheMiss is a no-op.
func (n *NoopRecorder) IncViewCacheMiss() {}

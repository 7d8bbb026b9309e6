package metrics

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	CredentialsRegistered uint64
	RegistrationsRejected map[string]uint64
	Lookups               map[string]uint64
	ViewCacheHits         uint64
	ViewCacheMisses       uint64
	HashDurationCount     uint64
	HashDurationTotalNs   int64
}

// RejectionKinds returns the rejection labels in stable order.
func (s Snapshot) RejectionKinds() []string {
	return sortedKeys(s.RegistrationsRejected)
}

// LookupResults returns the lookup labels in stable order.
func (s Snapshot) LookupResults() []string {
	return sortedKeys(s.Lookups)
}

// InMemoryRecorder stores metrics in memory.
type InMemoryRecorder struct {
	credentialsRegistered uint64
	viewCacheHits         uint64
	viewCacheMisses       uint64
	hashDurationCount     uint64
	hashDurationTotalNs   int64

	mu       sync.Mutex
	rejected map[string]uint64
	lookups  map[string]uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		rejected: make(map[string]uint64),
		lookups:  make(map[string]uint64),
	}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	rejected := make(map[string]uint64, len(m.rejected))
	for k, v := range m.rejected {
		rejected[k] = v
	}
	lookups := make(map[string]uint64, len(m.lookups))
	for k, v := range m.lookups {
		lookups[k] = v
	}
	m.mu.Unlock()

	return Snapshot{
		CredentialsRegistered: atomic.LoadUint64(&m.credentialsRegistered),
		RegistrationsRejected: rejected,
		Lookups:               lookups,
		ViewCacheHits:         atomic.LoadUint64(&m.viewCacheHits),
		ViewCacheMisses:       atomic.LoadUint64(&m.viewCacheMisses),
		HashDurationCount:     atomic.LoadUint64(&m.hashDurationCount),
		HashDurationTotalNs:   atomic.LoadInt64(&m.hashDurationTotalNs),
	}
}

// IncCredentialRegistered increments the registered counter.
func (m *InMemoryRecorder) IncCredentialRegistered() {
	atomic.AddUint64(&m.credentialsRegistered, 1)
}

// IncRegistrationRejected increments the rejection counter for kind.
func (m *InMemoryRecorder) IncRegistrationRejected(kind string) {
	m.mu.Lock()
	m.rejected[kind]++
	m.mu.Unlock()
}

// ObserveHashDuration records hashing duration.
func (m *InMemoryRecorder) ObserveHashDuration(duration time.Duration) {
	atomic.AddUint64(&m.hashDurationCount, 1)
	atomic.AddInt64(&m.hashDurationTotalNs, duration.Nanoseconds())
}

// IncLookup increments the lookup counter for result.
func (m *InMemoryRecorder) IncLookup(result string) {
	m.mu.Lock()
	m.lookups[result]++
	m.mu.Unlock()
}

// IncViewCacheHit increments cache hit counter.
func (m *InMemoryRecorder) IncViewCacheHit() {
	atomic.AddUint64(&m.viewCacheHits, 1)
}

// IncViewCacheMiss increments cache miss counter.
func (m *InMemoryRecorder) IncViewCacheMiss() {
	atomic.AddUint64(&m.viewCacheMisses, 1)
}

func sortedKeys(m map[string]uint64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

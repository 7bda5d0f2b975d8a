package metrics

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersCreated         uint64
	UsersUpdated         uint64
	UsersDeleted         uint64
	PostsCreated         uint64
	PostsUpdated         uint64
	PostsDeleted         uint64
	StoreFailures        map[string]uint64
	StoreDurationCount   uint64
	StoreDurationTotalNs int64
}

// FailureOps returns the operations with recorded failures in sorted order.
func (s Snapshot) FailureOps() []string {
	ops := make([]string, 0, len(s.StoreFailures))
	for op := range s.StoreFailures {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}

// InMemoryRecorder stores metrics in memory.
type InMemoryRecorder struct {
	usersCreated         uint64
	usersUpdated         uint64
	usersDeleted         uint64
	postsCreated         uint64
	postsUpdated         uint64
	postsDeleted         uint64
	storeDurationCount   uint64
	storeDurationTotalNs int64

	mu            sync.Mutex
	storeFailures map[string]uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{storeFailures: make(map[string]uint64)}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	failures := make(map[string]uint64, len(m.storeFailures))
	for op, n := range m.storeFailures {
		failures[op] = n
	}
	m.mu.Unlock()

	return Snapshot{
		UsersCreated:         atomic.LoadUint64(&m.usersCreated),
		UsersUpdated:         atomic.LoadUint64(&m.usersUpdated),
		UsersDeleted:         atomic.LoadUint64(&m.usersDeleted),
		PostsCreated:         atomic.LoadUint64(&m.postsCreated),
		PostsUpdated:         atomic.LoadUint64(&m.postsUpdated),
		PostsDeleted:         atomic.LoadUint64(&m.postsDeleted),
		StoreFailures:        failures,
		StoreDurationCount:   atomic.LoadUint64(&m.storeDurationCount),
		StoreDurationTotalNs: atomic.LoadInt64(&m.storeDurationTotalNs),
	}
}

// IncUserCreated increments user created counter.
func (m *InMemoryRecorder) IncUserCreated() {
	atomic.AddUint64(&m.usersCreated, 1)
}

// IncUserUpdated increments user updated counter.
func (m *InMemoryRecorder) IncUserUpdated() {
	atomic.AddUint64(&m.usersUpdated, 1)
}

// IncUserDeleted increments user deleted counter.
func (m *InMemoryRecorder) IncUserDeleted() {
	atomic.AddUint64(&m.usersDeleted, 1)
}

// IncPostCreated increments post created counter.
func (m *InMemoryRecorder) IncPostCreated() {
	atomic.AddUint64(&m.postsCreated, 1)
}

// IncPostUpdated increments post updated counter.
func (m *InMemoryRecorder) IncPostUpdated() {
	atomic.AddUint64(&m.postsUpdated, 1)
}

// IncPostDeleted increments post deleted counter.
func (m *InMemoryRecorder) IncPostDeleted() {
	atomic.AddUint64(&m.postsDeleted, 1)
}

// IncStoreFailure counts a failed store call for the named operation.
func (m *InMemoryRecorder) IncStoreFailure(op string) {
	m.mu.Lock()
	m.storeFailures[op]++
	m.mu.Unlock()
}

// ObserveStoreDuration records store call duration.
func (m *InMemoryRecorder) ObserveStoreDuration(duration time.Duration) {
	atomic.AddUint64(&m.storeDurationCount, 1)
	atomic.AddInt64(&m.storeDurationTotalNs, duration.Nanoseconds())
}

package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered uint64
	LoginsFailed    uint64
	SessionsIssued  uint64
	SessionsRevoked uint64
	AuthCacheHits   uint64
	AuthCacheMisses uint64
	TodosCreated    uint64
	TodosCompleted  uint64
	TodosDeleted    uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	usersRegistered uint64
	loginsFailed    uint64
	sessionsIssued  uint64
	sessionsRevoked uint64
	authCacheHits   uint64
	authCacheMisses uint64
	todosCreated    uint64
	todosCompleted  uint64
	todosDeleted    uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered: atomic.LoadUint64(&m.usersRegistered),
		LoginsFailed:    atomic.LoadUint64(&m.loginsFailed),
		SessionsIssued:  atomic.LoadUint64(&m.sessionsIssued),
		SessionsRevoked: atomic.LoadUint64(&m.sessionsRevoked),
		AuthCacheHits:   atomic.LoadUint64(&m.authCacheHits),
		AuthCacheMisses: atomic.LoadUint64(&m.authCacheMisses),
		TodosCreated:    atomic.LoadUint64(&m.todosCreated),
		TodosCompleted:  atomic.LoadUint64(&m.todosCompleted),
		TodosDeleted:    atomic.LoadUint64(&m.todosDeleted),
	}
}

// IncUserRegistered increments the registration counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	atomic.AddUint64(&m.usersRegistered, 1)
}

// IncLoginFailed increments the failed login counter.
func (m *InMemoryRecorder) IncLoginFailed() {
	atomic.AddUint64(&m.loginsFailed, 1)
}

// IncSessionIssued increments the issued session counter.
func (m *InMemoryRecorder) IncSessionIssued() {
	atomic.AddUint64(&m.sessionsIssued, 1)
}

// IncSessionRevoked increments the revoked session counter.
func (m *InMemoryRecorder) IncSessionRevoked() {
	atomic.AddUint64(&m.sessionsRevoked, 1)
}

// IncAuthCacheHit increments the auth cache hit counter.
func (m *InMemoryRecorder) IncAuthCacheHit() {
	atomic.AddUint64(&m.authCacheHits, 1)
}

// IncAuthCacheMiss increments the auth cache miss counter.
func (m *InMemoryRecorder) IncAuthCacheMiss() {
	atomic.AddUint64(&m.authCacheMisses, 1)
}

// IncTodoCreated increments the created todo counter.
func (m *InMemoryRecorder) IncTodoCreated() {
	atomic.AddUint64(&m.todosCreated, 1)
}

// IncTodoCompleted increments the completed todo counter.
func (m *InMemoryRecorder) IncTodoCompleted() {
	atomic.AddUint64(&m.todosCompleted, 1)
}

// IncTodoDeleted increments the deleted todo counter.
func (m *InMemoryRecorder) IncTodoDeleted() {
	atomic.AddUint64(&m.todosDeleted, 1)
}

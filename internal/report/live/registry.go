package live

import "sync"

// Registry is the process-wide set of live connections. All mutation and
// iteration goes through its guard; the raw set is never exposed.
type Registry struct {
	mu    sync.RWMutex
	conns map[*Conn]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{conns: make(map[*Conn]struct{})}
}

// Register adds a live connection.
func (r *Registry) Register(c *Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[c] = struct{}{}
}

// Unregister removes a connection. Idempotent: a concurrent error path and
// normal close may both call it.
func (r *Registry) Unregister(c *Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, c)
}

// Len returns the number of registered connections.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// ForEach applies visit to a snapshot of the connections registered at call
// time. The guard is not held while visiting, so visits may block on I/O
// without stalling registration, and a failing visit never aborts delivery to
// the remaining connections.
func (r *Registry) ForEach(visit func(*Conn)) {
	r.mu.RLock()
	snapshot := make([]*Conn, 0, len(r.conns))
	for c := range r.conns {
		snapshot = append(snapshot, c)
	}
	r.mu.RUnlock()

	for _, c := range snapshot {
		visitIsolated(visit, c)
	}
}

func visitIsolated(visit func(*Conn), c *Conn) {
	defer func() {
		// A panic while visiting one connection must not take down the rest.
		_ = recover()
	}()
	visit(c)
}

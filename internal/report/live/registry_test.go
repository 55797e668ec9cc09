package live

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterUnregister(t *testing.T) {
	r := NewRegistry()
	a := NewConn(RoleUser, newFakePeer())
	b := NewConn(RolePolice, newFakePeer())

	r.Register(a)
	r.Register(b)
	require.Equal(t, 2, r.Len())

	// Registering the same connection twice must not duplicate it.
	r.Register(a)
	require.Equal(t, 2, r.Len())

	r.Unregister(a)
	require.Equal(t, 1, r.Len())
	r.Unregister(a)
	require.Equal(t, 1, r.Len())
}

func TestForEachVisitsSnapshot(t *testing.T) {
	r := NewRegistry()
	conns := make([]*Conn, 5)
	for i := range conns {
		conns[i] = NewConn(RolePolice, newFakePeer())
		r.Register(conns[i])
	}

	seen := make(map[*Conn]int)
	r.ForEach(func(c *Conn) {
		seen[c]++
		// Mutating during iteration must not affect the snapshot walk.
		r.Unregister(c)
	})

	require.Len(t, seen, 5)
	for _, count := range seen {
		require.Equal(t, 1, count)
	}
	require.Zero(t, r.Len())
}

func TestForEachIsolatesPanickingVisit(t *testing.T) {
	r := NewRegistry()
	for range 3 {
		r.Register(NewConn(RolePolice, newFakePeer()))
	}

	visited := 0
	require.NotPanics(t, func() {
		r.ForEach(func(c *Conn) {
			visited++
			panic("boom")
		})
	})
	require.Equal(t, 3, visited)
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup

	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				c := NewConn(RoleUser, newFakePeer())
				r.Register(c)
				r.ForEach(func(*Conn) {})
				r.Unregister(c)
			}
		}()
	}
	wg.Wait()

	require.Zero(t, r.Len())
}

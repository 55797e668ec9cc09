package live

import (
	"sync/atomic"

	"github.com/google/uuid"

	"safesound/internal/report"
)

// Role tags a live connection with the audience it belongs to.
type Role string

const (
	RoleUser   Role = "user"
	RolePolice Role = "police"
)

// Valid reports whether the role is one the live endpoint serves.
func (r Role) Valid() bool {
	return r == RoleUser || r == RolePolice
}

// Peer is the transport half of a live connection. Receive blocks until the
// next submission arrives or the channel faults; Send must be safe for
// concurrent use and bounded in time. The engine owns the Peer exclusively.
type Peer interface {
	Receive() (report.Submission, error)
	Send(v any) error
	Close() error
}

// Conn represents one live, long-lived channel to a peer.
type Conn struct {
	id   string
	role Role
	peer Peer

	// userID is bound at most once, the first time this connection
	// successfully persists a report. Zero means unbound.
	userID atomic.Int64
}

// NewConn wraps a peer in a registered-ready connection.
func NewConn(role Role, peer Peer) *Conn {
	return &Conn{
		id:   uuid.NewString(),
		role: role,
		peer: peer,
	}
}

// ID returns the opaque connection identifier.
func (c *Conn) ID() string { return c.id }

// Role returns the audience tag the connection was opened with.
func (c *Conn) Role() Role { return c.role }

// UserID returns the bound user id, or zero when unbound.
func (c *Conn) UserID() int { return int(c.userID.Load()) }

// bindUser claims the connection for a user. Only the first successful claim
// sticks; later submissions on the same connection never re-bind.
func (c *Conn) bindUser(id int) {
	if id == 0 {
		return
	}
	c.userID.CompareAndSwap(0, int64(id))
}

func (c *Conn) send(v any) error {
	return c.peer.Send(v)
}

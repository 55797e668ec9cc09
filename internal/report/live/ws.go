package live

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"safesound/internal/report"
)

// WebsocketPeer adapts a gorilla websocket connection to the Peer interface.
// Writes are serialized and bounded so slow peers cannot stall fan-out; the
// engine reads from its own goroutine only.
type WebsocketPeer struct {
	conn         *websocket.Conn
	writeMu      sync.Mutex
	writeTimeout time.Duration
}

// NewWebsocketPeer wraps an upgraded connection. writeTimeout bounds every
// individual send.
func NewWebsocketPeer(conn *websocket.Conn, writeTimeout time.Duration) *WebsocketPeer {
	return &WebsocketPeer{conn: conn, writeTimeout: writeTimeout}
}

// Receive blocks until the next submission frame. A malformed frame or
// transport fault surfaces as an error and ends the session.
func (p *WebsocketPeer) Receive() (report.Submission, error) {
	var sub report.Submission
	err := p.conn.ReadJSON(&sub)
	return sub, err
}

// Send writes one JSON frame under the write deadline.
func (p *WebsocketPeer) Send(v any) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	if err := p.conn.SetWriteDeadline(time.Now().Add(p.writeTimeout)); err != nil {
		return err
	}
	return p.conn.WriteJSON(v)
}

// Close closes the underlying websocket. Safe to call more than once.
func (p *WebsocketPeer) Close() error {
	return p.conn.Close()
}

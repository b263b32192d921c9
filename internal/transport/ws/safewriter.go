package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

// SafeWriter serializes writes to a websocket connection. gorilla/websocket
// allows only one concurrent writer per connection.
type SafeWriter struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func NewSafeWriter(conn *websocket.Conn) *SafeWriter {
	return &SafeWriter{conn: conn}
}

func (w *SafeWriter) WriteJSON(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteJSON(v)
}

func (w *SafeWriter) WriteMessage(messageType int, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteMessage(messageType, data)
}

func (w *SafeWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.Close()
}

// ReadJSON reads from the connection. Reads are single-goroutine by
// construction (one read loop per connection), so no locking.
func (w *SafeWriter) ReadJSON(v any) error {
	return w.conn.ReadJSON(v)
}

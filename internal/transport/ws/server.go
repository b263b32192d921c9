package ws

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Input is the latest movement intent received from any client. The jump
// request latches until the driver consumes it, so a press between ticks is
// never lost.
type Input struct {
	DirX, DirZ float64
	Jump       bool
}

// Server accepts presentation clients: it receives per-tick input messages
// and broadcasts state snapshots. The simulation itself never blocks on a
// client; slow connections just drop.
type Server struct {
	upgrader websocket.Upgrader
	tickHz   int

	mu      sync.Mutex
	clients map[*SafeWriter]bool
	input   Input
	fresh   bool
}

func NewServer(tickHz int) *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		tickHz:  tickHz,
		clients: make(map[*SafeWriter]bool),
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws: upgrade failed: %v", err)
		return
	}
	client := NewSafeWriter(conn)

	if err := client.WriteJSON(WelcomeMessage{Type: "welcome", TickHz: s.tickHz}); err != nil {
		client.Close()
		return
	}

	s.mu.Lock()
	s.clients[client] = true
	s.mu.Unlock()
	log.Printf("ws: client connected (%d total)", s.ClientCount())

	go s.readLoop(client)
}

func (s *Server) readLoop(client *SafeWriter) {
	defer func() {
		s.mu.Lock()
		delete(s.clients, client)
		s.mu.Unlock()
		client.Close()
		log.Printf("ws: client disconnected (%d total)", s.ClientCount())
	}()

	for {
		var msg InputMessage
		if err := client.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Type != "input" {
			continue
		}
		s.mu.Lock()
		s.input.DirX = msg.DirX
		s.input.DirZ = msg.DirZ
		s.input.Jump = s.input.Jump || msg.Jump
		s.fresh = true
		s.mu.Unlock()
	}
}

// ConsumeInput hands the driver the latest input before a tick. The second
// return value reports whether anything arrived since the last call; the
// jump latch clears on read.
func (s *Server) ConsumeInput() (Input, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	in, fresh := s.input, s.fresh
	s.input.Jump = false
	s.fresh = false
	return in, fresh
}

// Broadcast sends a snapshot to every connected client.
func (s *Server) Broadcast(msg StateMessage) {
	s.mu.Lock()
	clients := make([]*SafeWriter, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	for _, c := range clients {
		if err := c.WriteJSON(msg); err != nil {
			s.mu.Lock()
			delete(s.clients, c)
			s.mu.Unlock()
			c.Close()
		}
	}
}

func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

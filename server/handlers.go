// File: server/handlers.go
package server

import (
	"errors"
	"io"
	"log"
	"net"
	"net/http"

	"github.com/lguibr/pongduel/game"
	"golang.org/x/net/websocket"
)

// HandleSubscribe registers the connection with the broadcaster and holds
// it open until the spectator goes away.
func (s *Server) HandleSubscribe() func(ws *websocket.Conn) {
	return func(ws *websocket.Conn) {
		connectionAddr := ws.Request().RemoteAddr
		defer func() {
			_ = ws.Close()
		}()

		if s.engine == nil || s.broadcasterPID == nil {
			log.Printf("HandleSubscribe: no broadcaster. Closing connection %s.", connectionAddr)
			return
		}

		s.engine.Send(s.broadcasterPID, game.AddClient{Conn: ws}, nil)
		s.readLoop(ws, connectionAddr)
		s.engine.Send(s.broadcasterPID, game.RemoveClient{Conn: ws}, nil)
	}
}

// readLoop discards whatever the spectator sends and returns once the
// connection fails.
func (s *Server) readLoop(conn *websocket.Conn, connectionAddr string) {
	for {
		var discard []byte
		err := websocket.Message.Receive(conn, &discard)
		if err == nil {
			continue
		}
		var netErr net.Error
		switch {
		case errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed):
		case errors.As(err, &netErr) && netErr.Timeout():
			log.Printf("ReadLoop: Read timeout for %s. Assuming disconnect.", connectionAddr)
		default:
			log.Printf("ReadLoop: Error receiving from %s: %v", connectionAddr, err)
		}
		return
	}
}

// HandleGetState writes the latest match snapshot as JSON.
func (s *Server) HandleGetState() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		state, err := s.snapshots.JSON()
		if err != nil {
			log.Printf("HandleGetState: marshal snapshot: %v", err)
			http.Error(w, "Error generating match state", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(state); err != nil {
			log.Println("Error writing HTTP match state:", err)
		}
	}
}

// File: server/server.go
package server

import (
	"net/http"

	"github.com/lguibr/pongduel/bollywood"
	"github.com/lguibr/pongduel/game"
	"golang.org/x/net/websocket"
)

// Server exposes a running match to spectators: the latest snapshot over
// HTTP and a live feed over websocket.
type Server struct {
	engine         *bollywood.Engine
	broadcasterPID *bollywood.PID
	snapshots      *game.SnapshotStore
}

func New(engine *bollywood.Engine, broadcasterPID *bollywood.PID, snapshots *game.SnapshotStore) *Server {
	return &Server{
		engine:         engine,
		broadcasterPID: broadcasterPID,
		snapshots:      snapshots,
	}
}

// Handler routes GET / to the snapshot and /subscribe to the feed.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.HandleGetState())
	mux.Handle("/subscribe", websocket.Handler(s.HandleSubscribe()))
	return mux
}

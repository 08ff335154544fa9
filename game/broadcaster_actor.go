// File: game/broadcaster_actor.go
package game

import (
	"log"
	"time"

	"github.com/lguibr/pongduel/bollywood"
	"golang.org/x/net/websocket"
)

const spectatorWriteTimeout = time.Second

// BroadcasterActor fans match snapshots and score changes out to spectator
// websockets using the configured codec.
type BroadcasterActor struct {
	codec   Codec
	clients map[*websocket.Conn]bool // Set of active connections
	last    []byte                   // Latest encoded snapshot, sent to new clients
	selfPID *bollywood.PID
}

// NewBroadcasterProducer creates a producer for BroadcasterActor.
func NewBroadcasterProducer(codec Codec) bollywood.Producer {
	return func() bollywood.Actor {
		return &BroadcasterActor{
			codec:   codec,
			clients: make(map[*websocket.Conn]bool),
		}
	}
}

// Receive handles messages for the BroadcasterActor.
func (a *BroadcasterActor) Receive(ctx bollywood.Context) {
	switch msg := ctx.Message().(type) {
	case bollywood.Started:
		a.selfPID = ctx.Self()

	case AddClient:
		if msg.Conn == nil {
			return
		}
		a.clients[msg.Conn] = true
		log.Printf("Broadcaster %s: client %s joined (%d watching).", a.selfPID, msg.Conn.RemoteAddr(), len(a.clients))
		if a.last != nil {
			a.sendTo([]*websocket.Conn{msg.Conn}, a.last)
		}

	case RemoveClient:
		if msg.Conn != nil && a.clients[msg.Conn] {
			delete(a.clients, msg.Conn)
			log.Printf("Broadcaster %s: client %s left (%d watching).", a.selfPID, msg.Conn.RemoteAddr(), len(a.clients))
		}

	case BroadcastSnapshotCommand:
		data, err := a.codec.Marshal(msg.Snapshot)
		if err != nil {
			log.Printf("ERROR: Broadcaster %s: encode snapshot: %v", a.selfPID, err)
			return
		}
		a.last = data
		a.broadcast(data)

	case ScoreChanged:
		msg.MessageType = messageTypeScoreChanged
		data, err := a.codec.Marshal(msg)
		if err != nil {
			log.Printf("ERROR: Broadcaster %s: encode score: %v", a.selfPID, err)
			return
		}
		a.broadcast(data)

	case GetClientCountRequest:
		ctx.Reply(ClientCountResponse{Count: len(a.clients)})

	case bollywood.Stopping:
		a.closeAllConnections()

	case bollywood.Stopped:

	default:
		log.Printf("BroadcasterActor %s: Received unknown message type: %T", a.selfPID, msg)
	}
}

func (a *BroadcasterActor) broadcast(data []byte) {
	if len(a.clients) == 0 {
		return
	}
	clientsToSend := make([]*websocket.Conn, 0, len(a.clients))
	for conn := range a.clients {
		clientsToSend = append(clientsToSend, conn)
	}
	a.sendTo(clientsToSend, data)
}

// sendTo writes one frame to each client and drops those that fail.
func (a *BroadcasterActor) sendTo(conns []*websocket.Conn, data []byte) {
	var disconnected []*websocket.Conn
	for _, ws := range conns {
		_ = ws.SetWriteDeadline(time.Now().Add(spectatorWriteTimeout))
		var err error
		if a.codec.Binary() {
			err = websocket.Message.Send(ws, data)
		} else {
			err = websocket.Message.Send(ws, string(data))
		}
		if err != nil {
			log.Printf("Broadcaster %s: dropping client %s: %v", a.selfPID, ws.RemoteAddr(), err)
			disconnected = append(disconnected, ws)
		}
	}
	for _, ws := range disconnected {
		delete(a.clients, ws)
		_ = ws.Close()
	}
}

// closeAllConnections closes all managed WebSocket connections.
func (a *BroadcasterActor) closeAllConnections() {
	if len(a.clients) > 0 {
		log.Printf("Broadcaster %s: Closing %d connections.", a.selfPID, len(a.clients))
	}
	for ws := range a.clients {
		_ = ws.Close()
	}
	a.clients = make(map[*websocket.Conn]bool)
}

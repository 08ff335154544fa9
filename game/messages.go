// File: game/messages.go
package game

import (
	"errors"

	"github.com/lguibr/pongduel/utils"
	"golang.org/x/net/websocket"
)

// --- Message Header ---
// Used for identifying message types after decoding a spectator frame.
type MessageHeader struct {
	MessageType string `json:"messageType"`
}

const (
	messageTypeSnapshot     = "matchSnapshot"
	messageTypeScoreChanged = "scoreChanged"
)

// ErrNotInCriticalZone is returned when a bounce is requested for a ball that
// is still advancing on its own. It means two writers raced on the ball.
var ErrNotInCriticalZone = errors.New("ball is not suspended in a critical zone")

// ErrStaleBounce is returned for a BounceCommand computed from an older
// copy of the ball. The bounce it asked for has already been applied.
var ErrStaleBounce = errors.New("bounce command is stale")

// --- Spectator Messages (Server -> Client) ---

// ScoreChanged is emitted after every point.
type ScoreChanged struct {
	MessageType string `json:"messageType"` // "scoreChanged"
	Side        Side   `json:"side"`        // Paddle that scored
	Score       int    `json:"score"`       // Its new score
	Scores      [2]int `json:"scores"`
}

// --- Actor Messages (Internal Communication) ---

// internalTick is sent by an actor's own ticker goroutine.
type internalTick struct {
	generation uint64
}

// --- MatchActor Messages ---

// KeyChangeMessage carries a genuine key transition for one paddle.
// The MatchActor forwards it to the owning PaddleActor.
type KeyChangeMessage struct {
	Side    Side
	Action  Action
	Pressed bool
}

// BallLaunched transfers a served ball from its paddle to the MatchActor.
type BallLaunched struct {
	Side Side
	Ball Ball
}

// GetMatchStateRequest asks the MatchActor for a snapshot (used via Ask).
type GetMatchStateRequest struct{}

// --- PaddleActor Messages ---

// GetPaddleRequest asks a PaddleActor for a copy of its state (used via Ask).
type GetPaddleRequest struct{}

// PaddleStateResponse is the reply to every paddle request.
type PaddleStateResponse struct {
	Paddle Paddle
}

// ResetPaddleRequest halts the paddle's schedule and recentres it (used via Ask).
type ResetPaddleRequest struct{}

// SpawnBallRequest asks the serving paddle for a new sticky ball (used via Ask).
type SpawnBallRequest struct {
	BallID int
}

// ResumePaddleCommand restarts the paddle's schedule after a reset.
type ResumePaddleCommand struct{}

// --- BallActor Messages ---

// GetBallRequest asks the BallActor for a copy of its state (used via Ask).
type GetBallRequest struct{}

// BallStateResponse is the reply to GetBallRequest.
type BallStateResponse struct {
	Ball Ball
}

// BounceCommand replaces the ball direction and re-arms its critical zone on
// the new receiver's side (used via Ask). Bounces is the count the sender
// saw; the ball refuses the command once it has bounced past it.
type BounceCommand struct {
	Direction    utils.Vector2
	CriticalZone CriticalZone
	Bounces      int
}

// BounceResponse is the reply to BounceCommand.
type BounceResponse struct {
	Ball Ball
	Err  error
}

// --- BroadcasterActor Messages ---

// AddClient tells the Broadcaster to start sending updates to a new connection.
type AddClient struct {
	Conn *websocket.Conn
}

// RemoveClient tells the Broadcaster to stop sending updates to a connection.
type RemoveClient struct {
	Conn *websocket.Conn
}

// BroadcastSnapshotCommand hands a snapshot from the MatchActor to the Broadcaster.
type BroadcastSnapshotCommand struct {
	Snapshot MatchSnapshot
}

// GetClientCountRequest asks the Broadcaster how many spectators are attached (used via Ask).
type GetClientCountRequest struct{}

// ClientCountResponse is the reply to GetClientCountRequest.
type ClientCountResponse struct {
	Count int
}

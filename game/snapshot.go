// File: game/snapshot.go
package game

import (
	"encoding/json"
	"sync/atomic"

	"github.com/lguibr/pongduel/types"
	"github.com/lguibr/pongduel/utils"
)

// PaddleState is the wire form of a paddle.
type PaddleState struct {
	Side      Side `json:"side"`
	X         int  `json:"x"`
	Y         int  `json:"y"`
	Size      int  `json:"size"`
	Thickness int  `json:"thickness"`
	Score     int  `json:"score"`
	HasBall   bool `json:"hasBall"` // Serving
}

func (p PaddleState) Paint(s Surface, c types.RGBPixel) {
	s.DrawRect(p.X, p.Y, p.Thickness, p.Size, c)
}

// BallState is the wire form of the ball, sticky or in flight.
type BallState struct {
	ID           int           `json:"id"`
	X            float64       `json:"x"`
	Y            float64       `json:"y"`
	Direction    utils.Vector2 `json:"direction"`
	Thickness    int           `json:"thickness"`
	Sticky       bool          `json:"sticky"`
	CriticalZone CriticalZone  `json:"criticalZone"`
	Bounces      int           `json:"bounces"`
	Impact       utils.Vector2 `json:"impact"` // Predicted border hit
}

func (b BallState) Paint(s Surface, c types.RGBPixel) {
	ball := Ball{X: b.X, Y: b.Y, Thickness: b.Thickness}
	ball.Paint(s, c)
}

// MatchSnapshot is what spectators and the HTTP endpoint see of a match.
type MatchSnapshot struct {
	MessageType string         `json:"messageType"` // "matchSnapshot"
	Tick        int            `json:"tick"`
	Arena       utils.Arena    `json:"arena"`
	Phase       Phase          `json:"phase"`
	Owner       Side           `json:"owner"`
	Scores      [2]int         `json:"scores"`
	Rallies     int            `json:"rallies"`
	Paddles     [2]PaddleState `json:"paddles"`
	Ball        *BallState     `json:"ball,omitempty"`
}

// NewMatchSnapshot assembles the wire view of the match. ball is the ball in
// flight, nil while a paddle is serving.
func NewMatchSnapshot(tick int, arena utils.Arena, state MatchState, paddles [2]Paddle, ball *Ball) MatchSnapshot {
	snap := MatchSnapshot{
		MessageType: messageTypeSnapshot,
		Tick:        tick,
		Arena:       arena,
		Phase:       state.Phase,
		Owner:       state.Owner,
		Scores:      state.Scores,
		Rallies:     state.Rallies,
	}
	for i, p := range paddles {
		snap.Paddles[i] = PaddleState{
			Side:      p.Side,
			X:         p.X,
			Y:         p.Y,
			Size:      p.Size,
			Thickness: p.Thickness,
			Score:     state.Scores[p.Side],
			HasBall:   p.Sticky != nil,
		}
		if p.Sticky != nil && ball == nil {
			snap.Ball = newBallState(p.Sticky, true)
		}
	}
	if ball != nil {
		snap.Ball = newBallState(ball, false)
	}
	return snap
}

func newBallState(b *Ball, sticky bool) *BallState {
	impact, _ := b.ImpactPoint()
	return &BallState{
		ID:           b.ID,
		X:            b.X,
		Y:            b.Y,
		Direction:    b.Direction,
		Thickness:    b.Thickness,
		Sticky:       sticky,
		CriticalZone: b.CriticalZone,
		Bounces:      b.Bounces,
		Impact:       impact,
	}
}

// Paint draws the whole match on s.
func (m MatchSnapshot) Paint(s Surface, palette utils.Palette) {
	s.Clear(palette.Canvas)
	m.Paddles[SideLeft].Paint(s, palette.Player1)
	m.Paddles[SideRight].Paint(s, palette.Player2)
	if m.Ball != nil {
		m.Ball.Paint(s, palette.Neutral)
	}
}

// SnapshotStore holds the latest snapshot for readers outside the actor
// system, such as the HTTP handler.
type SnapshotStore struct {
	latest atomic.Value // MatchSnapshot
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

func (s *SnapshotStore) Store(snap MatchSnapshot) {
	s.latest.Store(snap)
}

// Load returns the latest snapshot, false before the first one.
func (s *SnapshotStore) Load() (MatchSnapshot, bool) {
	snap, ok := s.latest.Load().(MatchSnapshot)
	return snap, ok
}

// JSON marshals the latest snapshot.
func (s *SnapshotStore) JSON() ([]byte, error) {
	snap, ok := s.Load()
	if !ok {
		return []byte(`{}`), nil
	}
	return json.Marshal(snap)
}

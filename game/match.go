// File: game/match.go
package game

import (
	"math"

	"github.com/lguibr/pongduel/utils"
)

// Band is the third of a paddle that returned the ball.
type Band int

const (
	BandNone   Band = iota
	BandTop         // Upper third, returns the ball upwards
	BandMiddle      // Returns the ball straight back
	BandBottom      // Lower third, returns the ball downwards
)

func (b Band) String() string {
	switch b {
	case BandTop:
		return "top"
	case BandMiddle:
		return "middle"
	case BandBottom:
		return "bottom"
	}
	return "none"
}

// Phase is the rally state of a match.
type Phase string

const (
	PhaseServing       Phase = "serving"
	PhaseInFlight      Phase = "inFlight"
	PhaseCriticalCheck Phase = "criticalCheck"
	PhaseResetting     Phase = "resetting"
)

// Outcome is the result of resolving a ball in a critical zone.
type Outcome int

const (
	OutcomeBounce Outcome = iota
	OutcomeScore
)

type Resolution struct {
	Outcome   Outcome
	Band      Band
	Direction utils.Vector2
}

// BandBounds returns the four band offsets of a paddle spanning
// [paddleY, paddleY+size].
func BandBounds(paddleY, size float64) [4]float64 {
	return [4]float64{paddleY, paddleY + size/3, paddleY + 2*size/3, paddleY + size}
}

// SelectBand picks the band containing mid. Values outside the span are
// clamped onto it, so every real mid yields a band.
func SelectBand(paddleY, size, mid float64) Band {
	y := BandBounds(paddleY, size)
	mid = utils.Clamp(mid, y[0], y[3])
	switch {
	case y[0] <= mid && mid <= y[1]:
		return BandTop
	case y[1] < mid && mid < y[2]:
		return BandMiddle
	case y[2] <= mid && mid <= y[3]:
		return BandBottom
	}
	return BandNone
}

// BounceDirection is the unit direction a band sends the ball along.
// Horizontally the ball always turns away from incomingX.
func BounceDirection(band Band, incomingX float64) utils.Vector2 {
	s := -1.0
	if incomingX < 0 {
		s = 1
	}
	switch band {
	case BandTop:
		return utils.Vector2{X: s * math.Sqrt2 / 2, Y: -math.Sqrt2 / 2}
	case BandBottom:
		return utils.Vector2{X: s * math.Sqrt2 / 2, Y: math.Sqrt2 / 2}
	}
	return utils.Vector2{X: s}
}

// ResolveCriticalZone decides between a bounce off receiver and a point for
// the other side. The paddle returns the ball when the ball top lies on its
// span.
func ResolveCriticalZone(receiver Paddle, ball Ball) Resolution {
	top := float64(receiver.Y)
	size := float64(receiver.Size)
	if ball.Y < top || ball.Y > top+size {
		return Resolution{Outcome: OutcomeScore}
	}
	band := SelectBand(top, size, ball.MidY())
	if band == BandNone {
		band = BandMiddle
	}
	return Resolution{
		Outcome:   OutcomeBounce,
		Band:      band,
		Direction: BounceDirection(band, ball.Direction.X),
	}
}

// MatchState is the part of a match only the MatchActor writes.
type MatchState struct {
	Owner    Side   `json:"owner"`    // Last paddle to touch the ball
	Receiver Side   `json:"receiver"` // Paddle the ball is heading to
	Scores   [2]int `json:"scores"`
	Phase    Phase  `json:"phase"`
	Rallies  int    `json:"rallies"` // Bounces off paddles this match
}

func NewMatchState() MatchState {
	return MatchState{Owner: SideLeft, Receiver: SideRight, Phase: PhaseServing}
}

func (m *MatchState) SwitchOwner() {
	m.Owner, m.Receiver = m.Receiver, m.Owner
}

// AwardPoint credits the owner and hands the serve to the paddle that
// conceded. It returns the scorer and its new score.
func (m *MatchState) AwardPoint() (Side, int) {
	scorer := m.Owner
	m.Scores[scorer]++
	m.SwitchOwner()
	return scorer, m.Scores[scorer]
}

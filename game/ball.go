// File: game/ball.go
package game

import (
	"fmt"
	"math"

	"github.com/lguibr/pongduel/types"
	"github.com/lguibr/pongduel/utils"
)

// CriticalZone is the x interval in front of the receiving paddle. A ball
// that reaches it stops and waits for the MatchActor to decide its fate.
type CriticalZone struct {
	X1      float64 `json:"x1"`
	X2      float64 `json:"x2"`
	Entered bool    `json:"entered"`
}

// Reaches reports whether moving from x=from to x=to touches the zone.
func (z CriticalZone) Reaches(from, to float64) bool {
	lo, hi := math.Min(from, to), math.Max(from, to)
	return hi >= z.X1 && lo <= z.X2
}

// CriticalZoneFor returns the zone guarded by the paddle on side.
func CriticalZoneFor(cfg utils.Config, side Side) CriticalZone {
	if side == SideLeft {
		return CriticalZone{X1: 0, X2: float64(cfg.PaddleThickness)}
	}
	right := float64(cfg.CanvasWidth - cfg.BallSize)
	return CriticalZone{X1: right - float64(cfg.PaddleThickness), X2: right}
}

type Ball struct {
	ID           int           `json:"id"`
	X            float64       `json:"x"`
	Y            float64       `json:"y"`
	Direction    utils.Vector2 `json:"direction"`
	Displacement utils.Vector2 `json:"displacement"`
	Thickness    int           `json:"thickness"`
	Speed        float64       `json:"speed"` // Units per second
	CriticalZone CriticalZone  `json:"criticalZone"`
	Bounces      int           `json:"bounces"`

	arena utils.Arena
	tick  float64 // Seconds per tick
}

// NewBall builds a ball at rest. Every ball needs a critical zone; a ball
// without one could never be resolved, so an empty zone panics.
func NewBall(cfg utils.Config, id int, x, y float64, dir utils.Vector2, zone CriticalZone) *Ball {
	if zone.X2 <= zone.X1 {
		panic(fmt.Sprintf("game: ball %d built without a critical zone (%v..%v)", id, zone.X1, zone.X2))
	}
	zone.Entered = false
	return &Ball{
		ID:           id,
		X:            x,
		Y:            y,
		Direction:    dir,
		Thickness:    cfg.BallSize,
		Speed:        cfg.BallSpeed,
		CriticalZone: zone,
		arena:        cfg.Arena(),
		tick:         cfg.TickPeriod.Seconds(),
	}
}

func (b *Ball) Position() utils.Vector2 { return utils.Vector2{X: b.X, Y: b.Y} }

// MidY is the vertical centre of the ball.
func (b *Ball) MidY() float64 { return b.Y + float64(b.Thickness)/2 }

// SetDisplacement recomputes the per-tick step from direction and speed.
func (b *Ball) SetDisplacement() {
	b.Displacement = b.Direction.Scale(b.Speed * b.tick)
}

// Launch puts a resting ball in motion along dir.
func (b *Ball) Launch(dir utils.Vector2) {
	b.Direction = dir
	b.SetDisplacement()
}

// Advance moves the ball by one tick, bouncing off the top and bottom walls
// and freezing inside the critical zone.
func (b *Ball) Advance() {
	if b.CriticalZone.Entered || b.Displacement.IsZero() {
		return
	}

	maxX := b.arena.Width - float64(b.Thickness)
	maxY := b.arena.Height - float64(b.Thickness)

	next := b.Position().Add(b.Displacement)
	if b.CriticalZone.Reaches(b.X, next.X) {
		next.X = utils.Clamp(next.X, b.CriticalZone.X1, b.CriticalZone.X2)
		b.CriticalZone.Entered = true
	}

	b.X = utils.Clamp(next.X, 0, maxX)
	b.Y = utils.Clamp(next.Y, 0, maxY)

	if (b.Y <= 0 && b.Direction.Y < 0) || (b.Y >= maxY && b.Direction.Y > 0) {
		b.Direction = b.Direction.ReflectY()
		b.SetDisplacement()
	}
}

// Bounce sends the ball back along dir and re-arms it against zone.
func (b *Ball) Bounce(dir utils.Vector2, zone CriticalZone) error {
	if !b.CriticalZone.Entered {
		return ErrNotInCriticalZone
	}
	zone.Entered = false
	b.CriticalZone = zone
	b.Direction = dir
	b.SetDisplacement()
	b.Bounces++
	return nil
}

// ImpactPoint predicts where the ball meets the arena border if nothing
// stands in its way, as the ball's top-left corner at that moment. It is
// always a position the ball can occupy.
func (b *Ball) ImpactPoint() (utils.Vector2, bool) {
	p, ok := b.arena.ReflectOffArenaEdge(b.Position(), b.Direction)
	if !ok {
		return p, false
	}
	size := float64(b.Thickness)
	return utils.Vector2{
		X: utils.Clamp(p.X, 0, b.arena.Width-size),
		Y: utils.Clamp(p.Y, 0, b.arena.Height-size),
	}, true
}

func (b *Ball) Paint(s Surface, c types.RGBPixel) {
	s.DrawRect(int(math.Round(b.X)), int(math.Round(b.Y)), b.Thickness, b.Thickness, c)
}

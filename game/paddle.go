// File: game/paddle.go
package game

import (
	"github.com/lguibr/pongduel/types"
	"github.com/lguibr/pongduel/utils"
)

// Side identifies a paddle. Left is player 1, right is player 2.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) Opponent() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

func (s Side) String() string {
	if s == SideLeft {
		return "player1"
	}
	return "player2"
}

// Action is one of the three keys a player holds.
type Action int

const (
	ActionUp Action = iota
	ActionDown
	ActionSpecial
	actionCount
)

func (a Action) String() string {
	switch a {
	case ActionUp:
		return "up"
	case ActionDown:
		return "down"
	case ActionSpecial:
		return "special"
	}
	return "unknown"
}

type Paddle struct {
	Side      Side              `json:"side"`
	X         int               `json:"x"`
	Y         int               `json:"y"`
	Size      int               `json:"size"`      // Vertical length
	Thickness int               `json:"thickness"` // Horizontal width
	Speed     int               `json:"speed"`     // Pixels per tick
	Held      [actionCount]bool `json:"held"`
	Sticky    *Ball             `json:"sticky,omitempty"` // Ball waiting to be served

	cfg utils.Config
}

func NewPaddle(cfg utils.Config, side Side) *Paddle {
	x := 0
	if side == SideRight {
		x = cfg.CanvasWidth - cfg.PaddleThickness
	}
	return &Paddle{
		Side:      side,
		X:         x,
		Y:         cfg.CenterPaddleY(),
		Size:      cfg.PaddleSize,
		Thickness: cfg.PaddleThickness,
		Speed:     cfg.PaddleSpeed,
		cfg:       cfg,
	}
}

// SetKey records the held state of one action key.
func (p *Paddle) SetKey(action Action, pressed bool) {
	if action < 0 || action >= actionCount {
		return
	}
	p.Held[action] = pressed
}

// Tick applies the held keys for one period. Up wins over down, and either
// wins over special. It returns the ball when special launched it.
func (p *Paddle) Tick() *Ball {
	switch {
	case p.Held[ActionUp]:
		p.moveTo(p.Y - p.Speed)
	case p.Held[ActionDown]:
		p.moveTo(p.Y + p.Speed)
	case p.Held[ActionSpecial] && p.Sticky != nil:
		return p.LaunchBall()
	}
	return nil
}

func (p *Paddle) moveTo(y int) {
	p.Y = utils.ClampInt(y, 0, p.cfg.CanvasHeight-p.Size)
	p.followSticky()
}

func (p *Paddle) followSticky() {
	if p.Sticky == nil {
		return
	}
	p.Sticky.Y = float64(p.Y + p.cfg.CenterBallOnPaddleY())
}

// serveX is the x of a ball resting against this paddle.
func (p *Paddle) serveX() float64 {
	if p.Side == SideLeft {
		return float64(p.X + p.Thickness)
	}
	return float64(p.X - p.cfg.BallSize)
}

// AttachBall makes b sticky: it stays at rest and follows the paddle.
func (p *Paddle) AttachBall(b *Ball) {
	b.Displacement = utils.Vector2{}
	b.X = p.serveX()
	p.Sticky = b
	p.followSticky()
}

// LaunchBall releases the sticky ball towards the opposing edge.
func (p *Paddle) LaunchBall() *Ball {
	b := p.Sticky
	if b == nil {
		return nil
	}
	targetX := 0.0
	if p.Side == SideLeft {
		targetX = float64(p.cfg.CanvasWidth)
	}
	dir, ok := utils.UnitVector(b.Position(), utils.Vector2{X: targetX, Y: b.Y})
	if !ok {
		return nil
	}
	b.Launch(dir)
	p.Sticky = nil
	return b
}

// Reset recentres the paddle and drops any sticky ball. Calling it twice
// has the same effect as calling it once.
func (p *Paddle) Reset() {
	p.Y = p.cfg.CenterPaddleY()
	p.Sticky = nil
}

// SpawnBall creates a ball resting against this paddle, aimed at the
// opposing paddle's critical zone, and attaches it.
func (p *Paddle) SpawnBall(id int) *Ball {
	away := utils.Vector2{X: 1}
	if p.Side == SideRight {
		away.X = -1
	}
	b := NewBall(p.cfg, id, p.serveX(), 0, away, CriticalZoneFor(p.cfg, p.Side.Opponent()))
	p.AttachBall(b)
	return b
}

// Snapshot returns a copy that shares no memory with p.
func (p *Paddle) Snapshot() Paddle {
	cp := *p
	if p.Sticky != nil {
		b := *p.Sticky
		cp.Sticky = &b
	}
	return cp
}

func (p *Paddle) Paint(s Surface, c types.RGBPixel) {
	s.DrawRect(p.X, p.Y, p.Thickness, p.Size, c)
}

// File: game/match_actor.go
package game

import (
	"log"

	"github.com/lguibr/pongduel/bollywood"
	"github.com/lguibr/pongduel/utils"
)

// MatchActor runs one two-player match. It spawns both PaddleActors,
// adopts the BallActor once a ball is served, and is the only writer of
// scores and ball ownership.
type MatchActor struct {
	cfg    utils.Config
	engine *bollywood.Engine
	ticker *actorTicker

	state      MatchState
	paddlePIDs [2]*bollywood.PID
	paddles    [2]Paddle // Last copies received from the paddle actors
	ballPID    *bollywood.PID
	ball       *Ball // Last copy received from the ball actor, nil while serving
	nextBallID int
	tickCount  int

	frame          *Frame         // Optional presentation surface
	broadcasterPID *bollywood.PID // Optional spectator feed
	snapshots      *SnapshotStore // Optional, read by HTTP
	onViolation    func(error)    // Optional, see MatchOptions
	selfPID        *bollywood.PID
}

// MatchOptions wires a match to its optional outputs.
type MatchOptions struct {
	Frame          *Frame
	BroadcasterPID *bollywood.PID
	Snapshots      *SnapshotStore

	// OnViolation is called when the ball refuses a bounce that was computed
	// from its current state, meaning something else moved it. Tests use it
	// to fail loudly; by default the violation is only logged.
	OnViolation func(error)
}

// NewMatchActorProducer creates a producer for the MatchActor.
func NewMatchActorProducer(engine *bollywood.Engine, cfg utils.Config, opts MatchOptions) bollywood.Producer {
	return func() bollywood.Actor {
		return &MatchActor{
			cfg:            cfg,
			engine:         engine,
			ticker:         newActorTicker(cfg.TickPeriod),
			state:          NewMatchState(),
			frame:          opts.Frame,
			broadcasterPID: opts.BroadcasterPID,
			snapshots:      opts.Snapshots,
			onViolation:    opts.OnViolation,
		}
	}
}

// Receive is the main message handler for the MatchActor.
func (a *MatchActor) Receive(ctx bollywood.Context) {
	switch msg := ctx.Message().(type) {
	case bollywood.Started:
		a.selfPID = ctx.Self()
		log.Printf("MatchActor %s: starting match on %dx%d.", a.selfPID, a.cfg.CanvasWidth, a.cfg.CanvasHeight)
		a.spawnPaddles()
		a.resetRound()
		a.ticker.Start(a.engine, a.selfPID)

	case *internalTick:
		if a.ticker.Accept(msg) {
			a.handleTick()
		}

	case KeyChangeMessage:
		if msg.Side != SideLeft && msg.Side != SideRight {
			return
		}
		a.engine.Send(a.paddlePIDs[msg.Side], msg, a.selfPID)

	case BallLaunched:
		a.handleBallLaunched(msg)

	case GetMatchStateRequest:
		ctx.Reply(a.snapshot())

	case bollywood.Stopping:
		log.Printf("MatchActor %s: stopping. Final score %d - %d.", a.selfPID, a.state.Scores[SideLeft], a.state.Scores[SideRight])
		a.ticker.Stop()
		if a.ballPID != nil {
			a.engine.Stop(a.ballPID)
		}
		for _, pid := range a.paddlePIDs {
			a.engine.Stop(pid)
		}

	case bollywood.Stopped:

	default:
		log.Printf("MatchActor %s: received unknown message type: %T", a.selfPID, msg)
	}
}

func (a *MatchActor) spawnPaddles() {
	for _, side := range []Side{SideLeft, SideRight} {
		paddle := NewPaddle(a.cfg, side)
		a.paddles[side] = paddle.Snapshot()
		a.paddlePIDs[side] = a.engine.Spawn(bollywood.NewProps(NewPaddleActorProducer(*paddle, a.selfPID, a.cfg)))
	}
}

// handleBallLaunched adopts a served ball. Only the owner may serve, and
// only while no ball is in flight.
func (a *MatchActor) handleBallLaunched(msg BallLaunched) {
	if a.state.Phase != PhaseServing || msg.Side != a.state.Owner || a.ballPID != nil {
		log.Printf("MatchActor %s: ignoring launch of ball %d by %s during %s.", a.selfPID, msg.Ball.ID, msg.Side, a.state.Phase)
		return
	}
	ball := msg.Ball
	a.ball = &ball
	a.paddles[msg.Side].Sticky = nil
	a.ballPID = a.engine.Spawn(bollywood.NewProps(NewBallActorProducer(ball, a.cfg)))
	a.state.Phase = PhaseInFlight
}

func (a *MatchActor) snapshot() MatchSnapshot {
	return NewMatchSnapshot(a.tickCount, a.cfg.Arena(), a.state, a.paddles, a.ball)
}

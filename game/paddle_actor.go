// File: game/paddle_actor.go
package game

import (
	"log"

	"github.com/lguibr/pongduel/bollywood"
	"github.com/lguibr/pongduel/utils"
)

// PaddleActor implements the bollywood.Actor interface for managing a paddle.
type PaddleActor struct {
	state         *Paddle
	ticker        *actorTicker
	matchActorPID *bollywood.PID // Receives BallLaunched
}

// NewPaddleActorProducer creates a bollywood.Producer for PaddleActor.
func NewPaddleActorProducer(initialState Paddle, matchActorPID *bollywood.PID, cfg utils.Config) bollywood.Producer {
	return func() bollywood.Actor {
		actorState := initialState.Snapshot()
		return &PaddleActor{
			state:         &actorState,
			ticker:        newActorTicker(cfg.TickPeriod),
			matchActorPID: matchActorPID,
		}
	}
}

// Receive handles incoming messages for the PaddleActor.
func (a *PaddleActor) Receive(ctx bollywood.Context) {
	switch msg := ctx.Message().(type) {
	case bollywood.Started:
		a.ticker.Start(ctx.Engine(), ctx.Self())

	case *internalTick:
		if !a.ticker.Accept(msg) {
			return
		}
		if ball := a.state.Tick(); ball != nil {
			log.Printf("PaddleActor %s: launched ball %d.", a.state.Side, ball.ID)
			ctx.Engine().Send(a.matchActorPID, BallLaunched{Side: a.state.Side, Ball: *ball}, ctx.Self())
		}

	case KeyChangeMessage:
		a.state.SetKey(msg.Action, msg.Pressed)

	case GetPaddleRequest:
		ctx.Reply(PaddleStateResponse{Paddle: a.state.Snapshot()})

	case ResetPaddleRequest:
		a.ticker.Stop()
		a.state.Reset()
		ctx.Reply(PaddleStateResponse{Paddle: a.state.Snapshot()})

	case SpawnBallRequest:
		a.state.SpawnBall(msg.BallID)
		ctx.Reply(PaddleStateResponse{Paddle: a.state.Snapshot()})

	case ResumePaddleCommand:
		a.ticker.Start(ctx.Engine(), ctx.Self())

	case bollywood.Stopping:
		a.ticker.Stop()

	case bollywood.Stopped:

	default:
		log.Printf("PaddleActor %s received unknown message: %T", a.state.Side, msg)
	}
}

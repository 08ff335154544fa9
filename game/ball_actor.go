// File: game/ball_actor.go
package game

import (
	"fmt"
	"log"

	"github.com/lguibr/pongduel/bollywood"
	"github.com/lguibr/pongduel/utils"
)

// BallActor owns the ball while it is in flight. Only this actor moves it;
// the MatchActor changes its course through BounceCommand.
type BallActor struct {
	state  *Ball
	ticker *actorTicker
}

// NewBallActorProducer creates a Producer for BallActor.
func NewBallActorProducer(initialState Ball, cfg utils.Config) bollywood.Producer {
	return func() bollywood.Actor {
		stateCopy := initialState // Make a copy for the actor
		return &BallActor{
			state:  &stateCopy,
			ticker: newActorTicker(cfg.TickPeriod),
		}
	}
}

func (a *BallActor) Receive(ctx bollywood.Context) {
	switch msg := ctx.Message().(type) {
	case bollywood.Started:
		log.Printf("BallActor %d started at (%.0f, %.0f).", a.state.ID, a.state.X, a.state.Y)
		a.ticker.Start(ctx.Engine(), ctx.Self())

	case *internalTick:
		if a.ticker.Accept(msg) {
			a.state.Advance()
		}

	case GetBallRequest:
		ctx.Reply(BallStateResponse{Ball: *a.state})

	case BounceCommand:
		var err error
		if msg.Bounces != a.state.Bounces {
			err = fmt.Errorf("%w: expected bounce %d, ball is at %d", ErrStaleBounce, msg.Bounces, a.state.Bounces)
		} else {
			err = a.state.Bounce(msg.Direction, msg.CriticalZone)
		}
		if err != nil {
			log.Printf("BallActor %d: rejected bounce: %v", a.state.ID, err)
		}
		ctx.Reply(BounceResponse{Ball: *a.state, Err: err})

	case bollywood.Stopping:
		a.ticker.Stop()

	case bollywood.Stopped:
		log.Printf("BallActor %d stopped after %d bounces.", a.state.ID, a.state.Bounces)

	default:
		log.Printf("BallActor %d received unknown message: %T", a.state.ID, msg)
	}
}

// File: game/match_actor_reset.go
package game

import (
	"log"

	"github.com/lguibr/pongduel/bollywood"
)

// resetRound ends the rally and serves a new ball from the owner. Every
// step waits for the previous one: the old ball is gone before the paddles
// recentre, and the paddles are idle until the new ball is attached.
func (a *MatchActor) resetRound() {
	a.state.Phase = PhaseResetting

	if a.ballPID != nil {
		a.engine.StopAndWait(a.ballPID)
		a.ballPID = nil
	}
	a.ball = nil

	for side, pid := range a.paddlePIDs {
		if p, ok := a.askPaddle(pid, ResetPaddleRequest{}); ok {
			a.paddles[side] = p
		}
	}

	if a.frame != nil {
		a.frame.Clear(a.cfg.Colors.Canvas)
	}

	a.nextBallID++
	if p, ok := a.askPaddle(a.paddlePIDs[a.state.Owner], SpawnBallRequest{BallID: a.nextBallID}); ok {
		a.paddles[a.state.Owner] = p
	}

	for _, pid := range a.paddlePIDs {
		a.engine.Send(pid, ResumePaddleCommand{}, a.selfPID)
	}
	a.state.Phase = PhaseServing
	log.Printf("MatchActor %s: %s serves ball %d.", a.selfPID, a.state.Owner, a.nextBallID)
}

// askPaddle sends a paddle request and unwraps the PaddleStateResponse.
func (a *MatchActor) askPaddle(pid *bollywood.PID, msg interface{}) (Paddle, bool) {
	reply, err := a.engine.Ask(pid, msg, a.cfg.AskTimeout)
	if err != nil {
		log.Printf("MatchActor %s: %T to paddle %s failed: %v", a.selfPID, msg, pid, err)
		return Paddle{}, false
	}
	resp, ok := reply.(PaddleStateResponse)
	if !ok {
		log.Printf("MatchActor %s: unexpected reply %T to %T", a.selfPID, reply, msg)
		return Paddle{}, false
	}
	return resp.Paddle, true
}

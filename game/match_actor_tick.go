// File: game/match_actor_tick.go
package game

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/lguibr/pongduel/bollywood"
)

// handleTick refreshes the children, resolves a ball waiting in a critical
// zone, then redraws and publishes.
func (a *MatchActor) handleTick() {
	a.tickCount++
	a.refreshChildren()
	a.commitBounce()

	if a.ball != nil && a.ball.CriticalZone.Entered {
		a.state.Phase = PhaseCriticalCheck
		a.resolveCriticalZone()
	}

	a.redraw()
	a.publish()
}

// refreshChildren asks every child for its state concurrently. A child that
// does not answer in time keeps its previous copy for this tick.
func (a *MatchActor) refreshChildren() {
	var wg sync.WaitGroup
	var paddleReplies [2]*Paddle
	var ballReply *Ball

	for side, pid := range a.paddlePIDs {
		wg.Add(1)
		go func(side int, pid *bollywood.PID) {
			defer wg.Done()
			reply, err := a.engine.Ask(pid, GetPaddleRequest{}, a.cfg.AskTimeout)
			if err != nil {
				log.Printf("MatchActor %s: paddle %d query failed: %v", a.selfPID, side, err)
				return
			}
			if resp, ok := reply.(PaddleStateResponse); ok {
				paddleReplies[side] = &resp.Paddle
			}
		}(side, pid)
	}

	if a.ballPID != nil {
		wg.Add(1)
		go func(pid *bollywood.PID) {
			defer wg.Done()
			reply, err := a.engine.Ask(pid, GetBallRequest{}, a.cfg.AskTimeout)
			if err != nil {
				log.Printf("MatchActor %s: ball query failed: %v", a.selfPID, err)
				return
			}
			if resp, ok := reply.(BallStateResponse); ok {
				ballReply = &resp.Ball
			}
		}(a.ballPID)
	}

	wg.Wait()

	for side, p := range paddleReplies {
		if p != nil {
			a.paddles[side] = *p
		}
	}
	if ballReply != nil {
		a.ball = ballReply
	}
}

// resolveCriticalZone decides what happens to a ball that reached the
// receiver's critical zone.
func (a *MatchActor) resolveCriticalZone() {
	res := ResolveCriticalZone(a.paddles[a.state.Receiver], *a.ball)
	switch res.Outcome {
	case OutcomeBounce:
		// The bouncing paddle becomes the owner; the ball now heads for the
		// former owner's zone.
		cmd := BounceCommand{
			Direction:    res.Direction,
			CriticalZone: CriticalZoneFor(a.cfg, a.state.Owner),
			Bounces:      a.ball.Bounces,
		}
		reply, err := a.engine.Ask(a.ballPID, cmd, a.cfg.AskTimeout)
		if err != nil {
			// The ball may still apply it; commitBounce picks that up on a
			// later refresh.
			log.Printf("MatchActor %s: bounce of ball %d failed: %v", a.selfPID, a.ball.ID, err)
			return
		}
		resp, ok := reply.(BounceResponse)
		if !ok {
			log.Printf("MatchActor %s: unexpected reply %T to bounce", a.selfPID, reply)
			return
		}
		ball := resp.Ball
		a.ball = &ball
		if resp.Err != nil {
			log.Printf("MatchActor %s: bounce of ball %d rejected: %v", a.selfPID, ball.ID, resp.Err)
			if !errors.Is(resp.Err, ErrStaleBounce) && a.onViolation != nil {
				a.onViolation(fmt.Errorf("ball %d: %w", ball.ID, resp.Err))
			}
		}
		a.commitBounce()

	case OutcomeScore:
		scorer, score := a.state.AwardPoint()
		log.Printf("Player 1: %d - Player 2: %d", a.state.Scores[SideLeft], a.state.Scores[SideRight])
		if a.broadcasterPID != nil {
			a.engine.Send(a.broadcasterPID, ScoreChanged{
				MessageType: messageTypeScoreChanged,
				Side:        scorer,
				Score:       score,
				Scores:      a.state.Scores,
			}, a.selfPID)
		}
		a.resetRound()
	}
}

// commitBounce hands the rally to the receiver once the ball is armed
// against the owner's zone. That only happens after the receiver returned
// it, whether or not the bounce reply arrived in time.
func (a *MatchActor) commitBounce() {
	if a.ball == nil || a.ballPID == nil {
		return
	}
	own := CriticalZoneFor(a.cfg, a.state.Owner)
	if a.ball.CriticalZone.X1 != own.X1 || a.ball.CriticalZone.X2 != own.X2 {
		return
	}
	a.state.SwitchOwner()
	a.state.Rallies++
	if !a.ball.CriticalZone.Entered {
		a.state.Phase = PhaseInFlight
	}
}

func (a *MatchActor) redraw() {
	if a.frame == nil {
		return
	}
	snap := a.snapshot()
	a.frame.Paint(func(s Surface) { snap.Paint(s, a.cfg.Colors) })
}

// publish stores the snapshot for HTTP readers every tick and hands it to
// the broadcaster every BroadcastEvery ticks.
func (a *MatchActor) publish() {
	if a.snapshots == nil && a.broadcasterPID == nil {
		return
	}
	snap := a.snapshot()
	if a.snapshots != nil {
		a.snapshots.Store(snap)
	}
	if a.broadcasterPID != nil && a.tickCount%a.cfg.BroadcastEvery == 0 {
		a.engine.Send(a.broadcasterPID, BroadcastSnapshotCommand{Snapshot: snap}, a.selfPID)
	}
}

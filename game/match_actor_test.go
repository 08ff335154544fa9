// File: game/match_actor_test.go
package game

import (
	"sync"
	"testing"
	"time"

	"github.com/lguibr/pongduel/bollywood"
	"github.com/lguibr/pongduel/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startTestSession(t *testing.T) *Session {
	t.Helper()
	engine := bollywood.NewEngine()
	t.Cleanup(func() { engine.Shutdown(2 * time.Second) })
	s, err := StartSession(engine, testConfig())
	require.NoError(t, err)
	return s
}

func serving(side Side) func(MatchSnapshot) bool {
	return func(snap MatchSnapshot) bool {
		return snap.Phase == PhaseServing && snap.Owner == side && snap.Ball != nil && snap.Ball.Sticky
	}
}

func TestMatchActor_ServesFirstBallFromLeft(t *testing.T) {
	s := startTestSession(t)
	snap := waitForState(t, s, serving(SideLeft))

	assert.Equal(t, 1, snap.Ball.ID)
	assert.Equal(t, 20.0, snap.Ball.X)
	assert.Equal(t, 374.0, snap.Ball.Y)
	assert.True(t, snap.Paddles[SideLeft].HasBall)
	assert.False(t, snap.Paddles[SideRight].HasBall, "exactly one paddle holds the ball")
	assert.Equal(t, [2]int{0, 0}, snap.Scores)
}

func TestMatchActor_IgnoresLaunchFromReceiver(t *testing.T) {
	s := startTestSession(t)
	snap := waitForState(t, s, serving(SideLeft))

	right := NewPaddle(s.Config, SideRight)
	right.SpawnBall(99)
	s.Engine.Send(s.MatchPID, BallLaunched{Side: SideRight, Ball: *right.LaunchBall()}, nil)

	time.Sleep(10 * s.Config.TickPeriod)
	after, err := s.State()
	require.NoError(t, err)
	assert.Equal(t, PhaseServing, after.Phase)
	assert.Equal(t, snap.Ball.ID, after.Ball.ID)
}

func TestMatchActor_ScoreResetsRound(t *testing.T) {
	s := startTestSession(t)
	waitForState(t, s, serving(SideLeft))

	// Move the receiver out of the ball's path.
	require.True(t, s.Input.OnKeyChange("O", true))
	waitForState(t, s, func(snap MatchSnapshot) bool { return snap.Paddles[SideRight].Y == 0 })
	require.True(t, s.Input.OnKeyChange("O", false))

	require.True(t, s.Input.OnKeyChange("F", true))
	snap := waitForState(t, s, func(snap MatchSnapshot) bool { return snap.Scores[SideLeft] == 1 }, "left scores")
	require.True(t, s.Input.OnKeyChange("F", false))

	snap = waitForState(t, s, serving(SideRight), "conceding paddle serves")
	assert.Equal(t, [2]int{1, 0}, snap.Scores)
	assert.Equal(t, 2, snap.Ball.ID, "a new ball replaces the scored one")
	assert.Equal(t, 984.0, snap.Ball.X)
	assert.Equal(t, 334, snap.Paddles[SideLeft].Y)
	assert.Equal(t, 334, snap.Paddles[SideRight].Y)
	assert.Equal(t, 0, snap.Rallies)
}

func TestMatchActor_BounceSwitchesOwner(t *testing.T) {
	s := startTestSession(t)
	waitForState(t, s, serving(SideLeft))

	require.True(t, s.Input.OnKeyChange("F", true))
	snap := waitForState(t, s, func(snap MatchSnapshot) bool { return snap.Rallies >= 1 }, "right paddle returns the ball")
	require.True(t, s.Input.OnKeyChange("F", false))

	assert.Equal(t, [2]int{0, 0}, snap.Scores)
	require.NotNil(t, snap.Ball)
	assert.False(t, snap.Ball.Sticky)
	assert.Equal(t, 1, snap.Ball.ID)
	if snap.Rallies == 1 {
		assert.Equal(t, SideRight, snap.Owner)
		assert.Less(t, snap.Ball.Direction.X, 0.0)
		assert.InDelta(t, 1.0, snap.Ball.Direction.Length(), 1e-9)
	}
}

func TestMatchActor_PublishesSnapshots(t *testing.T) {
	s := startTestSession(t)
	waitForState(t, s, serving(SideLeft))

	require.Eventually(t, func() bool {
		snap, ok := s.Snapshots.Load()
		return ok && snap.Ball != nil
	}, 2*time.Second, time.Millisecond)

	require.Eventually(t, func() bool {
		return s.Frame.At(0, 334) == s.Config.Colors.Player1 && s.Frame.At(20, 374) == s.Config.Colors.Neutral
	}, 2*time.Second, time.Millisecond, "frame shows the serving paddle and its ball")
}

func TestMatchActor_LateBounceReplyStillHandsOverRally(t *testing.T) {
	engine := bollywood.NewEngine()
	defer engine.Shutdown(time.Second)
	cfg := testConfig()
	cfg.AskTimeout = 20 * time.Millisecond
	cfg.BallSpeed = 2500 // 5px per tick keeps the return flight long

	a := newBareMatch(engine, cfg, MatchOptions{})
	ball := NewBall(cfg, 1, 1000, 384, utils.Vector2{X: 1}, CriticalZoneFor(cfg, SideRight))
	ball.SetDisplacement()
	ball.CriticalZone.Entered = true
	own := *ball
	a.ball = &own
	a.ballPID = engine.Spawn(bollywood.NewProps(func() bollywood.Actor {
		return &slowBounceBall{
			BallActor: NewBallActorProducer(*ball, cfg)().(*BallActor),
			delay:     5 * cfg.AskTimeout,
		}
	}))
	require.NotNil(t, a.ballPID)
	a.state.Phase = PhaseCriticalCheck

	a.resolveCriticalZone()
	assert.Equal(t, SideLeft, a.state.Owner, "nothing changes hands without an answer")
	assert.Equal(t, 0, a.state.Rallies)

	require.Eventually(t, func() bool {
		a.handleTick()
		return a.state.Rallies > 0
	}, 3*time.Second, cfg.TickPeriod, "the late bounce is committed")

	assert.Equal(t, 1, a.state.Rallies, "the rally is handed over exactly once")
	assert.Equal(t, SideRight, a.state.Owner)
	assert.Equal(t, SideLeft, a.state.Receiver)
	require.NotNil(t, a.ball)
	assert.Equal(t, 1, a.ball.Bounces)
	assert.Equal(t, CriticalZoneFor(cfg, SideLeft).X1, a.ball.CriticalZone.X1, "ball armed against the new receiver")
	assert.Equal(t, CriticalZoneFor(cfg, SideLeft).X2, a.ball.CriticalZone.X2)
	assert.Less(t, a.ball.Direction.X, 0.0)
}

func TestMatchActor_RallyNeverRejectsBounce(t *testing.T) {
	engine := bollywood.NewEngine()
	defer engine.Shutdown(2 * time.Second)
	cfg := testConfig()

	var mu sync.Mutex
	var violations []error
	store := NewSnapshotStore()
	pid := engine.Spawn(bollywood.NewProps(NewMatchActorProducer(engine, cfg, MatchOptions{
		Snapshots: store,
		OnViolation: func(err error) {
			mu.Lock()
			defer mu.Unlock()
			violations = append(violations, err)
		},
	})))
	require.NotNil(t, pid)

	// A straight serve from the centre is returned by both paddles forever.
	engine.Send(pid, KeyChangeMessage{Side: SideLeft, Action: ActionSpecial, Pressed: true}, nil)
	require.Eventually(t, func() bool {
		snap, ok := store.Load()
		return ok && snap.Rallies >= 4
	}, 5*time.Second, time.Millisecond, "paddles keep returning the ball")
	engine.Send(pid, KeyChangeMessage{Side: SideLeft, Action: ActionSpecial, Pressed: false}, nil)

	snap, _ := store.Load()
	assert.Equal(t, [2]int{0, 0}, snap.Scores)
	mu.Lock()
	defer mu.Unlock()
	assert.Empty(t, violations, "the ball refused a bounce computed from its own state")
}

func TestMatchActor_ResetSurvivesSilentPaddle(t *testing.T) {
	engine := bollywood.NewEngine()
	defer engine.Shutdown(time.Second)
	cfg := testConfig()
	cfg.AskTimeout = 20 * time.Millisecond

	a := newBareMatch(engine, cfg, MatchOptions{})
	engine.StopAndWait(a.paddlePIDs[SideLeft])
	mock, mockPID := spawnMock(t, engine)
	a.paddlePIDs[SideLeft] = mockPID
	a.paddles[SideLeft].Y = 100

	a.resetRound()

	assert.Equal(t, PhaseServing, a.state.Phase)
	assert.Equal(t, 1, a.nextBallID)
	assert.Equal(t, 100, a.paddles[SideLeft].Y, "a silent paddle keeps its last known copy")
	assert.Nil(t, a.paddles[SideLeft].Sticky)
	assert.Equal(t, 334, a.paddles[SideRight].Y)
	assert.Nil(t, a.paddles[SideRight].Sticky)

	require.Eventually(t, func() bool { return len(mock.GetMessages()) == 3 }, time.Second, time.Millisecond)
	msgs := mock.GetMessages()
	assert.IsType(t, ResetPaddleRequest{}, msgs[0])
	assert.Equal(t, SpawnBallRequest{BallID: 1}, msgs[1])
	assert.IsType(t, ResumePaddleCommand{}, msgs[2])
}

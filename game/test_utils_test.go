// File: game/test_utils_test.go
package game

import (
	"sync"
	"testing"
	"time"

	"github.com/lguibr/pongduel/bollywood"
	"github.com/lguibr/pongduel/utils"
	"github.com/stretchr/testify/require"
)

// testConfig runs the match fast: 2ms ticks and a 20px ball step, the
// largest the critical zones allow.
func testConfig() utils.Config {
	cfg := utils.DefaultConfig()
	cfg.TickPeriod = 2 * time.Millisecond
	cfg.AskTimeout = 200 * time.Millisecond
	cfg.BallSpeed = 10000
	cfg.BroadcastEvery = 1
	return cfg
}

// --- Test Receiver Actor (Mock MatchActor) ---
type MockMatchActor struct {
	mu       sync.Mutex
	received []interface{}
}

func (m *MockMatchActor) Receive(ctx bollywood.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch ctx.Message().(type) {
	case bollywood.Started, bollywood.Stopping, bollywood.Stopped:
		return
	}
	m.received = append(m.received, ctx.Message())
}

func (m *MockMatchActor) GetMessages() []interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	msgs := make([]interface{}, len(m.received))
	copy(msgs, m.received)
	return msgs
}

func spawnMock(t *testing.T, engine *bollywood.Engine) (*MockMatchActor, *bollywood.PID) {
	t.Helper()
	mock := &MockMatchActor{}
	pid := engine.Spawn(bollywood.NewProps(func() bollywood.Actor { return mock }))
	require.NotNil(t, pid)
	return mock, pid
}

func askPaddle(t *testing.T, engine *bollywood.Engine, pid *bollywood.PID, msg interface{}) Paddle {
	t.Helper()
	reply, err := engine.Ask(pid, msg, 200*time.Millisecond)
	require.NoError(t, err)
	resp, ok := reply.(PaddleStateResponse)
	require.True(t, ok, "unexpected reply type: %T", reply)
	return resp.Paddle
}

func askBall(t *testing.T, engine *bollywood.Engine, pid *bollywood.PID) Ball {
	t.Helper()
	reply, err := engine.Ask(pid, GetBallRequest{}, 200*time.Millisecond)
	require.NoError(t, err)
	resp, ok := reply.(BallStateResponse)
	require.True(t, ok, "unexpected reply type: %T", reply)
	return resp.Ball
}

// waitForState polls the session until cond holds and returns that snapshot.
func waitForState(t *testing.T, s *Session, cond func(MatchSnapshot) bool, msgAndArgs ...interface{}) MatchSnapshot {
	t.Helper()
	var last MatchSnapshot
	require.Eventually(t, func() bool {
		snap, err := s.State()
		if err != nil {
			return false
		}
		last = snap
		return cond(snap)
	}, 5*time.Second, time.Millisecond, msgAndArgs...)
	return last
}

// newBareMatch builds a MatchActor outside the engine so a test can drive
// its ticks directly. Its paddles are real actors.
func newBareMatch(engine *bollywood.Engine, cfg utils.Config, opts MatchOptions) *MatchActor {
	a := NewMatchActorProducer(engine, cfg, opts)().(*MatchActor)
	a.selfPID = &bollywood.PID{ID: "match-under-test"}
	for _, side := range []Side{SideLeft, SideRight} {
		paddle := NewPaddle(cfg, side)
		a.paddles[side] = paddle.Snapshot()
		a.paddlePIDs[side] = engine.Spawn(bollywood.NewProps(NewPaddleActorProducer(*paddle, a.selfPID, cfg)))
	}
	return a
}

// slowBounceBall holds its first BounceCommand for delay before applying it,
// so the sender's Ask gives up first.
type slowBounceBall struct {
	*BallActor
	delay   time.Duration
	delayed bool
}

func (s *slowBounceBall) Receive(ctx bollywood.Context) {
	if _, ok := ctx.Message().(BounceCommand); ok && !s.delayed {
		s.delayed = true
		time.Sleep(s.delay)
	}
	s.BallActor.Receive(ctx)
}

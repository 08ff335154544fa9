// File: server/e2e_test.go
package server

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lguibr/pongduel/bollywood"
	"github.com/lguibr/pongduel/game"
	"github.com/lguibr/pongduel/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"
)

// E2ESetupResult holds a running match behind a test server.
type E2ESetupResult struct {
	Engine  *bollywood.Engine
	Session *game.Session
	Server  *httptest.Server
	WsURL   string
	Origin  string
}

func SetupE2ETest(t *testing.T, cfg utils.Config) E2ESetupResult {
	t.Helper()
	engine := bollywood.NewEngine()
	session, err := game.StartSession(engine, cfg)
	require.NoError(t, err)

	s := httptest.NewServer(New(engine, session.BroadcasterPID, session.Snapshots).Handler())
	t.Cleanup(func() {
		s.Close()
		engine.Shutdown(2 * time.Second)
	})
	return E2ESetupResult{
		Engine:  engine,
		Session: session,
		Server:  s,
		WsURL:   "ws" + strings.TrimPrefix(s.URL, "http") + "/subscribe",
		Origin:  s.URL,
	}
}

func e2eConfig(codec string) utils.Config {
	cfg := utils.DefaultConfig()
	cfg.TickPeriod = 2 * time.Millisecond
	cfg.AskTimeout = 200 * time.Millisecond
	cfg.BallSpeed = 10000
	cfg.BroadcastEvery = 1
	cfg.Codec = codec
	return cfg
}

// receiveUntil reads the feed until match accepts a decoded message.
func receiveUntil(t *testing.T, ws *websocket.Conn, codec game.Codec, match func(interface{}) bool) interface{} {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	require.NoError(t, ws.SetReadDeadline(deadline))
	for time.Now().Before(deadline) {
		var data []byte
		require.NoError(t, websocket.Message.Receive(ws, &data))
		msg, err := game.DecodeMessage(codec, data)
		require.NoError(t, err)
		if match(msg) {
			return msg
		}
	}
	t.Fatal("feed never produced the expected message")
	return nil
}

func TestE2E_SpectatorSeesPointAndNewServe(t *testing.T) {
	for _, codecName := range []string{utils.CodecJSON, utils.CodecMsgpack} {
		t.Run(codecName, func(t *testing.T) {
			setup := SetupE2ETest(t, e2eConfig(codecName))
			ws, err := websocket.Dial(setup.WsURL, "", setup.Origin)
			require.NoError(t, err)
			defer ws.Close()
			codec := setup.Session.Codec
			input := setup.Session.Input

			receiveUntil(t, ws, codec, func(msg interface{}) bool {
				snap, ok := msg.(*game.MatchSnapshot)
				return ok && snap.Phase == game.PhaseServing && snap.Ball != nil && snap.Ball.Sticky
			})

			require.True(t, input.OnKeyChange("O", true))
			receiveUntil(t, ws, codec, func(msg interface{}) bool {
				snap, ok := msg.(*game.MatchSnapshot)
				return ok && snap.Paddles[game.SideRight].Y == 0
			})
			require.True(t, input.OnKeyChange("O", false))
			require.True(t, input.OnKeyChange("F", true))

			msg := receiveUntil(t, ws, codec, func(msg interface{}) bool {
				_, ok := msg.(*game.ScoreChanged)
				return ok
			})
			score := msg.(*game.ScoreChanged)
			assert.Equal(t, game.SideLeft, score.Side)
			assert.Equal(t, [2]int{1, 0}, score.Scores)
			require.True(t, input.OnKeyChange("F", false))

			msg = receiveUntil(t, ws, codec, func(msg interface{}) bool {
				snap, ok := msg.(*game.MatchSnapshot)
				return ok && snap.Phase == game.PhaseServing && snap.Owner == game.SideRight && snap.Ball != nil
			})
			snap := msg.(*game.MatchSnapshot)
			assert.Equal(t, 2, snap.Ball.ID)
			assert.Equal(t, 334, snap.Paddles[game.SideLeft].Y)
			assert.Equal(t, 334, snap.Paddles[game.SideRight].Y)
		})
	}
}

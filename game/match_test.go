// File: game/match_test.go
package game

import (
	"math"
	"testing"

	"github.com/lguibr/pongduel/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectBand(t *testing.T) {
	// Bounds 300, 330, 360, 390.
	testCases := []struct {
		mid  float64
		want Band
	}{
		{300, BandTop},
		{315, BandTop},
		{330, BandTop},
		{330.5, BandMiddle},
		{359.9, BandMiddle},
		{360, BandBottom},
		{390, BandBottom},
		{250, BandTop},    // Above the span
		{500, BandBottom}, // Below the span
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, SelectBand(300, 90, tc.mid), "mid %v", tc.mid)
	}
}

func TestSelectBand_PartitionsSpan(t *testing.T) {
	for _, size := range []float64{90, 100, 37} {
		prev := BandTop
		for mid := 300.0; mid <= 300+size; mid += 0.25 {
			band := SelectBand(300, size, mid)
			require.NotEqual(t, BandNone, band, "size %v mid %v", size, mid)
			require.GreaterOrEqual(t, band, prev, "bands are ordered, size %v mid %v", size, mid)
			prev = band
		}
		assert.Equal(t, BandBottom, prev)
	}
}

func TestBounceDirection(t *testing.T) {
	h := math.Sqrt2 / 2
	testCases := []struct {
		band      Band
		incomingX float64
		want      utils.Vector2
	}{
		{BandTop, 1, utils.Vector2{X: -h, Y: -h}},
		{BandMiddle, 1, utils.Vector2{X: -1, Y: 0}},
		{BandBottom, 1, utils.Vector2{X: -h, Y: h}},
		{BandTop, -1, utils.Vector2{X: h, Y: -h}},
		{BandMiddle, -0.7, utils.Vector2{X: 1, Y: 0}},
		{BandBottom, -1, utils.Vector2{X: h, Y: h}},
	}
	for _, tc := range testCases {
		t.Run(tc.band.String(), func(t *testing.T) {
			got := BounceDirection(tc.band, tc.incomingX)
			assert.InDelta(t, tc.want.X, got.X, 1e-12)
			assert.InDelta(t, tc.want.Y, got.Y, 1e-12)
			assert.InDelta(t, 1.0, got.Length(), 1e-12)
		})
	}
}

func TestResolveCriticalZone_UpperBand(t *testing.T) {
	cfg := utils.DefaultConfig()
	receiver := NewPaddle(cfg, SideRight)
	receiver.Y = 300
	ball := NewBall(cfg, 1, 1000, 310, utils.Vector2{X: 1}, CriticalZoneFor(cfg, SideRight))
	require.Equal(t, 320.0, ball.MidY())

	res := ResolveCriticalZone(*receiver, *ball)
	assert.Equal(t, OutcomeBounce, res.Outcome)
	assert.Equal(t, BandTop, res.Band)
	assert.InDelta(t, -math.Sqrt2/2, res.Direction.Y, 1e-12)
	assert.Less(t, res.Direction.X, 0.0)
}

func TestResolveCriticalZone_Miss(t *testing.T) {
	cfg := utils.DefaultConfig()
	receiver := NewPaddle(cfg, SideRight)
	receiver.Y = 300
	ball := NewBall(cfg, 1, 1000, 0, utils.Vector2{X: 1}, CriticalZoneFor(cfg, SideRight))

	res := ResolveCriticalZone(*receiver, *ball)
	assert.Equal(t, OutcomeScore, res.Outcome)
	assert.Equal(t, BandNone, res.Band)
}

func TestResolveCriticalZone_AlwaysPicksDirectionOnHit(t *testing.T) {
	cfg := utils.DefaultConfig()
	receiver := NewPaddle(cfg, SideRight)

	for y := receiver.Y; y <= receiver.Y+receiver.Size; y++ {
		ball := NewBall(cfg, 1, 1004, float64(y), utils.Vector2{X: 1}, CriticalZoneFor(cfg, SideRight))
		res := ResolveCriticalZone(*receiver, *ball)
		require.Equal(t, OutcomeBounce, res.Outcome, "ball y %d", y)
		require.NotEqual(t, BandNone, res.Band)
		require.InDelta(t, 1.0, res.Direction.Length(), 1e-12)
		require.Less(t, res.Direction.X, 0.0)
	}
}

func TestMatchState_AwardPoint(t *testing.T) {
	state := NewMatchState()
	require.Equal(t, SideLeft, state.Owner)
	require.Equal(t, SideRight, state.Receiver)

	scorer, score := state.AwardPoint()
	assert.Equal(t, SideLeft, scorer)
	assert.Equal(t, 1, score)
	assert.Equal(t, [2]int{1, 0}, state.Scores)
	assert.Equal(t, SideRight, state.Owner, "the conceding paddle serves next")
	assert.Equal(t, SideLeft, state.Receiver)

	state.SwitchOwner()
	assert.Equal(t, SideLeft, state.Owner)
	assert.Equal(t, SideRight, state.Receiver)
}

// File: game/session.go
package game

import (
	"fmt"

	"github.com/lguibr/pongduel/bollywood"
	"github.com/lguibr/pongduel/utils"
)

// Session wires one match to its presentation outputs: the Frame the
// desktop host shows, the snapshot store behind HTTP and the spectator
// broadcaster.
type Session struct {
	Engine         *bollywood.Engine
	Config         utils.Config
	MatchPID       *bollywood.PID
	BroadcasterPID *bollywood.PID
	Input          *InputRouter
	Frame          *Frame
	Snapshots      *SnapshotStore
	Codec          Codec
}

// StartSession spawns the broadcaster and the match on engine.
func StartSession(engine *bollywood.Engine, cfg utils.Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	codec, err := NewCodec(cfg.Codec)
	if err != nil {
		return nil, err
	}

	s := &Session{
		Engine:    engine,
		Config:    cfg,
		Frame:     NewFrame(cfg.CanvasWidth, cfg.CanvasHeight),
		Snapshots: NewSnapshotStore(),
		Codec:     codec,
	}
	s.BroadcasterPID = engine.Spawn(bollywood.NewProps(NewBroadcasterProducer(codec)))
	if s.BroadcasterPID == nil {
		return nil, bollywood.ErrEngineStopping
	}
	s.MatchPID = engine.Spawn(bollywood.NewProps(NewMatchActorProducer(engine, cfg, MatchOptions{
		Frame:          s.Frame,
		BroadcasterPID: s.BroadcasterPID,
		Snapshots:      s.Snapshots,
	})))
	if s.MatchPID == nil {
		return nil, bollywood.ErrEngineStopping
	}
	s.Input = NewInputRouter(engine, s.MatchPID, cfg)
	return s, nil
}

// State asks the match for a fresh snapshot.
func (s *Session) State() (MatchSnapshot, error) {
	reply, err := s.Engine.Ask(s.MatchPID, GetMatchStateRequest{}, s.Config.AskTimeout)
	if err != nil {
		return MatchSnapshot{}, err
	}
	snap, ok := reply.(MatchSnapshot)
	if !ok {
		return MatchSnapshot{}, fmt.Errorf("unexpected reply %T", reply)
	}
	return snap, nil
}

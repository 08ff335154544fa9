// File: game/input.go
package game

import (
	"strings"
	"sync"

	"github.com/lguibr/pongduel/bollywood"
	"github.com/lguibr/pongduel/utils"
)

type keyBinding struct {
	side   Side
	action Action
}

// InputRouter turns raw key events into KeyChangeMessages for the match.
// It is safe for use from any goroutine.
type InputRouter struct {
	engine   *bollywood.Engine
	matchPID *bollywood.PID
	bindings map[string]keyBinding

	mu   sync.Mutex
	held map[string]bool
}

func NewInputRouter(engine *bollywood.Engine, matchPID *bollywood.PID, cfg utils.Config) *InputRouter {
	r := &InputRouter{
		engine:   engine,
		matchPID: matchPID,
		bindings: make(map[string]keyBinding, 6),
		held:     make(map[string]bool),
	}
	r.bind(SideLeft, cfg.Player1Keys)
	r.bind(SideRight, cfg.Player2Keys)
	return r
}

func (r *InputRouter) bind(side Side, keys utils.KeyBindings) {
	r.bindings[normalizeKey(keys.Up)] = keyBinding{side: side, action: ActionUp}
	r.bindings[normalizeKey(keys.Down)] = keyBinding{side: side, action: ActionDown}
	r.bindings[normalizeKey(keys.Special)] = keyBinding{side: side, action: ActionSpecial}
}

// Keys lists every bound key name.
func (r *InputRouter) Keys() []string {
	keys := make([]string, 0, len(r.bindings))
	for k := range r.bindings {
		keys = append(keys, k)
	}
	return keys
}

// OnKeyChange reports a key going down or up. Unknown keys, repeated
// presses and releases of keys that are not held are dropped. It returns
// whether a message was sent.
func (r *InputRouter) OnKeyChange(key string, pressed bool) bool {
	key = normalizeKey(key)
	binding, ok := r.bindings[key]
	if !ok {
		return false
	}

	r.mu.Lock()
	if r.held[key] == pressed {
		r.mu.Unlock()
		return false
	}
	r.held[key] = pressed
	r.mu.Unlock()

	r.engine.Send(r.matchPID, KeyChangeMessage{Side: binding.side, Action: binding.action, Pressed: pressed}, nil)
	return true
}

func normalizeKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}

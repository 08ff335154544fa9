// File: game/ticker.go
package game

import (
	"sync"
	"time"

	"github.com/lguibr/pongduel/bollywood"
)

// actorTicker drives an actor's fixed-period schedule by sending
// internalTick messages to the actor's own mailbox. Start and Stop are
// called from the actor's Receive only.
type actorTicker struct {
	period     time.Duration
	stopCh     chan struct{}
	wg         sync.WaitGroup
	running    bool
	generation uint64
}

func newActorTicker(period time.Duration) *actorTicker {
	return &actorTicker{period: period}
}

// Start launches the ticker goroutine. Ticks queued by an earlier run are
// rejected by Accept.
func (t *actorTicker) Start(engine *bollywood.Engine, self *bollywood.PID) {
	if t.running {
		return
	}
	t.running = true
	t.generation++
	t.stopCh = make(chan struct{})
	t.wg.Add(1)
	go t.run(engine, self, t.generation, t.stopCh)
}

// Stop halts the ticker goroutine and waits for it to exit.
func (t *actorTicker) Stop() {
	if !t.running {
		return
	}
	t.running = false
	close(t.stopCh)
	t.wg.Wait()
}

// Accept reports whether tick belongs to the current run.
func (t *actorTicker) Accept(tick *internalTick) bool {
	return t.running && tick.generation == t.generation
}

func (t *actorTicker) run(engine *bollywood.Engine, self *bollywood.PID, generation uint64, stopCh <-chan struct{}) {
	defer t.wg.Done()
	ticker := time.NewTicker(t.period)
	defer ticker.Stop()

	tickMsg := &internalTick{generation: generation}
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			select {
			case <-stopCh:
				return
			default:
				engine.Send(self, tickMsg, nil)
			}
		}
	}
}

package bollywood

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// ErrTimeout is returned by Ask when no reply arrives in time.
	ErrTimeout = errors.New("bollywood: ask timed out")
	// ErrActorNotFound is returned by Ask when the target is not running.
	ErrActorNotFound = errors.New("bollywood: actor not found")
	// ErrEngineStopping is returned by Ask once Shutdown has begun.
	ErrEngineStopping = errors.New("bollywood: engine is stopping")
)

// Engine manages the lifecycle and message dispatching for actors.
type Engine struct {
	pidCounter uint64
	actors     map[string]*process
	mu         sync.RWMutex // Protects the actors map
	stopping   atomic.Bool
}

// NewEngine creates a new actor engine.
func NewEngine() *Engine {
	return &Engine{
		actors: make(map[string]*process),
	}
}

func (e *Engine) nextPID() *PID {
	id := atomic.AddUint64(&e.pidCounter, 1)
	return &PID{ID: fmt.Sprintf("actor-%d", id)}
}

// Spawn creates and starts a new actor based on the provided Props.
// It returns the PID of the newly created actor, or nil while shutting down.
func (e *Engine) Spawn(props *Props) *PID {
	if e.stopping.Load() {
		log.Println("Engine is stopping, cannot spawn new actors")
		return nil
	}

	pid := e.nextPID()
	proc := newProcess(e, pid, props)

	e.mu.Lock()
	e.actors[pid.ID] = proc
	e.mu.Unlock()

	go proc.run()

	e.Send(pid, Started{}, nil)

	return pid
}

func (e *Engine) lookup(pid *PID) (*process, bool) {
	if pid == nil {
		return nil, false
	}
	e.mu.RLock()
	proc, ok := e.actors[pid.ID]
	e.mu.RUnlock()
	return proc, ok
}

// Send delivers a message to the actor identified by the PID.
// Messages to unknown actors are dropped.
func (e *Engine) Send(pid *PID, message interface{}, sender *PID) {
	if e.stopping.Load() && !isSystemMessage(message) {
		return
	}
	if proc, ok := e.lookup(pid); ok {
		proc.sendMessage(&messageEnvelope{Sender: sender, Message: message})
	}
}

// Ask sends a message and blocks until the actor replies through
// Context.Reply or the timeout expires.
// An actor must never Ask itself: its mailbox is blocked on the Ask.
func (e *Engine) Ask(pid *PID, message interface{}, timeout time.Duration) (interface{}, error) {
	if e.stopping.Load() {
		return nil, ErrEngineStopping
	}
	proc, ok := e.lookup(pid)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrActorNotFound, pid)
	}

	replyCh := make(chan interface{}, 1)
	proc.sendMessage(&messageEnvelope{Message: message, replyCh: replyCh})

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case reply := <-replyCh:
		return reply, nil
	case <-proc.done:
		// The actor may have replied right before exiting.
		select {
		case reply := <-replyCh:
			return reply, nil
		default:
		}
		return nil, fmt.Errorf("%w: %s exited", ErrActorNotFound, pid)
	case <-timer.C:
		return nil, fmt.Errorf("%w: %T to %s", ErrTimeout, message, pid)
	}
}

// Stop requests an actor to stop processing messages and shut down.
// It sends the Stopping message and also directly signals the actor's stop channel.
func (e *Engine) Stop(pid *PID) {
	proc, ok := e.lookup(pid)
	if !ok {
		return
	}

	// Stopping first so cleanup runs inside the actor's context
	proc.sendMessage(&messageEnvelope{Message: Stopping{}})
	proc.signalStop()
}

// StopAndWait stops the actor and blocks until its goroutine has handled
// Stopping and Stopped and exited. Calling it from the actor itself deadlocks.
func (e *Engine) StopAndWait(pid *PID) {
	proc, ok := e.lookup(pid)
	if !ok {
		return
	}
	e.Stop(pid)
	<-proc.done
}

// IsAlive reports whether the actor is still registered with the engine.
func (e *Engine) IsAlive(pid *PID) bool {
	_, ok := e.lookup(pid)
	return ok
}

func (e *Engine) remove(pid *PID) {
	e.mu.Lock()
	delete(e.actors, pid.ID)
	e.mu.Unlock()
}

// Shutdown stops all actors and waits for them to terminate gracefully.
func (e *Engine) Shutdown(timeout time.Duration) {
	if !e.stopping.CompareAndSwap(false, true) {
		log.Println("Engine already shutting down")
		return
	}

	e.mu.RLock()
	procs := make([]*process, 0, len(e.actors))
	for _, proc := range e.actors {
		procs = append(procs, proc)
	}
	e.mu.RUnlock()

	log.Printf("Engine shutdown: stopping %d actors...", len(procs))
	for _, proc := range procs {
		proc.sendMessage(&messageEnvelope{Message: Stopping{}})
		proc.signalStop()
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for _, proc := range procs {
		select {
		case <-proc.done:
		case <-deadline.C:
			e.mu.Lock()
			remaining := make([]string, 0, len(e.actors))
			for id := range e.actors {
				remaining = append(remaining, id)
			}
			e.actors = make(map[string]*process)
			e.mu.Unlock()
			log.Printf("Engine shutdown timeout: %d actors did not stop gracefully: %v", len(remaining), remaining)
			return
		}
	}
	log.Println("Engine shutdown complete.")
}

package bollywood

import (
	"fmt"
	"log"
	"runtime/debug"
	"sync/atomic"
)

const defaultMailboxSize = 1024

// process represents the running instance of an actor, including its state and mailbox.
type process struct {
	engine  *Engine
	pid     *PID
	actor   Actor
	mailbox chan *messageEnvelope
	props   *Props
	stopCh  chan struct{} // Signal to stop the run loop
	done    chan struct{} // Closed once the run loop has fully exited
	stopped atomic.Bool
	closing atomic.Bool
}

func newProcess(engine *Engine, pid *PID, props *Props) *process {
	return &process{
		engine:  engine,
		pid:     pid,
		props:   props,
		mailbox: make(chan *messageEnvelope, defaultMailboxSize),
		stopCh:  make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func (p *process) signalStop() {
	if p.closing.CompareAndSwap(false, true) {
		close(p.stopCh)
	}
}

// sendMessage sends an envelope to the actor's mailbox without blocking.
func (p *process) sendMessage(envelope *messageEnvelope) {
	if p.stopped.Load() && !isSystemMessage(envelope.Message) {
		return
	}

	select {
	case p.mailbox <- envelope:
	default:
		log.Printf("Actor %s mailbox full, dropping message type %T", p.pid, envelope.Message)
	}
}

// run is the main loop for the actor process.
func (p *process) run() {
	defer close(p.done)
	defer func() {
		p.stopped.Store(true)
		if p.actor != nil {
			p.invokeReceive(&messageEnvelope{Message: Stopped{}})
		}
		p.engine.remove(p.pid)
	}()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Actor %s panicked: %v\nStack trace:\n%s", p.pid, r, string(debug.Stack()))
			p.stopped.Store(true)
			p.signalStop()
		}
	}()

	p.actor = p.props.Produce()
	if p.actor == nil {
		panic(fmt.Sprintf("Actor %s producer returned nil actor", p.pid))
	}

	for {
		select {
		case <-p.stopCh:
			if p.stopped.CompareAndSwap(false, true) {
				p.invokeReceive(&messageEnvelope{Message: Stopping{}})
			}
			return

		case envelope := <-p.mailbox:
			if p.stopped.Load() && !isSystemMessage(envelope.Message) {
				continue
			}

			switch envelope.Message.(type) {
			case Stopping:
				if p.stopped.CompareAndSwap(false, true) {
					p.invokeReceive(envelope)
					p.signalStop()
				}
			case Stopped:
				// Delivered only by the deferred cleanup above.
			default:
				p.invokeReceive(envelope)
			}
		}
	}
}

// invokeReceive calls the actor's Receive method within a protected context.
func (p *process) invokeReceive(envelope *messageEnvelope) {
	ctx := &context{
		engine:  p.engine,
		self:    p.pid,
		sender:  envelope.Sender,
		message: envelope.Message,
		replyCh: envelope.replyCh,
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("Actor %s panicked during Receive(%T): %v\nStack trace:\n%s", p.pid, envelope.Message, r, string(debug.Stack()))
		}
	}()
	p.actor.Receive(ctx)
}

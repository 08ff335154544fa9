package bollywood

// Context provides information and capabilities to an Actor during message processing.
type Context interface {
	// Engine returns the Actor Engine managing this actor.
	Engine() *Engine
	// Self returns the PID of the actor processing the message.
	Self() *PID
	// Sender returns the PID of the actor that sent the message, if available.
	Sender() *PID
	// Message returns the actual message being processed.
	Message() interface{}
	// Reply answers the current message when it was delivered through Ask.
	// It is a no-op for messages delivered through Send.
	Reply(message interface{})
	// IsRequest reports whether the current message expects a reply.
	IsRequest() bool
}

type context struct {
	engine  *Engine
	self    *PID
	sender  *PID
	message interface{}
	replyCh chan interface{}
}

func (c *context) Engine() *Engine      { return c.engine }
func (c *context) Self() *PID           { return c.self }
func (c *context) Sender() *PID         { return c.sender }
func (c *context) Message() interface{} { return c.message }
func (c *context) IsRequest() bool      { return c.replyCh != nil }

func (c *context) Reply(message interface{}) {
	if c.replyCh == nil {
		return
	}
	// The reply channel is buffered for exactly one answer; extra replies are dropped.
	select {
	case c.replyCh <- message:
	default:
	}
}

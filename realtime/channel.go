// Package realtime maintains the persistent connection to the server and
// fans typed events out to their subscribers. State transitions are driven
// exclusively by the transport; reconnecting is the transport's concern.
package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/bytedance/sonic"

	"github.com/riyaz/simpleshare-go/tool"
	"github.com/riyaz/simpleshare-go/types"
)

// ConnectionState of the channel. Only transport callbacks move it.
type ConnectionState int

const (
	Disconnected ConnectionState = iota
	Connected
)

// DefaultHeartbeatPeriod keeps the server-side presence tracking alive.
const DefaultHeartbeatPeriod = 5 * time.Second

// EventHandler consumes the raw payload of one event kind.
type EventHandler func(data json.RawMessage)

// Transport is the connection the channel emits on. Implementations call
// back into the channel via the Sink interface.
type Transport interface {
	Emit(event string, data any) error
	Connected() bool
}

// Sink is the transport-facing side of the channel.
type Sink interface {
	ConnectionUp()
	ConnectionDown()
	Receive(frame []byte)
}

// Channel dispatches server-pushed events to exactly one handler per event
// kind, in arrival order. On connect it announces presence and starts the
// heartbeat; on disconnect the heartbeat stops immediately.
type Channel struct {
	mu              sync.Mutex
	state           ConnectionState
	transport       Transport
	handlers        map[string]EventHandler
	onConnChange    func(online bool)
	heartbeatPeriod time.Duration
	heartbeatStop   chan struct{}
}

func NewChannel(heartbeatPeriod time.Duration) *Channel {
	if heartbeatPeriod <= 0 {
		heartbeatPeriod = DefaultHeartbeatPeriod
	}
	return &Channel{
		state:           Disconnected,
		handlers:        make(map[string]EventHandler),
		heartbeatPeriod: heartbeatPeriod,
	}
}

// AttachTransport binds the transport the channel emits on. Must be called
// before the transport starts delivering callbacks.
func (c *Channel) AttachTransport(t Transport) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transport = t
}

// Handle registers the handler for one event kind, replacing any previous
// one. Each kind has exactly one subscriber.
func (c *Channel) Handle(event string, fn EventHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[event] = fn
}

// OnConnectionChange registers the connectivity indicator callback.
func (c *Channel) OnConnectionChange(fn func(online bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onConnChange = fn
}

func (c *Channel) State() ConnectionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Emit sends an event to the server. Fails silently when disconnected; the
// periodic pollers act as the eventual-consistency fallback.
func (c *Channel) Emit(event string, data any) {
	c.mu.Lock()
	t := c.transport
	c.mu.Unlock()
	if t == nil || !t.Connected() {
		return
	}
	if err := t.Emit(event, data); err != nil {
		tool.DefaultLogger.Debugf("Failed to emit %s: %v", event, err)
	}
}

// RequestSystemInfo announces presence and asks for a fresh snapshot.
func (c *Channel) RequestSystemInfo() {
	c.Emit(types.EventRequestSystemInfo, nil)
}

// RequestDevices asks for a full device-list snapshot.
func (c *Channel) RequestDevices() {
	c.Emit(types.EventRequestDevices, nil)
}

// ConnectionUp implements Sink. Transitions to Connected, announces
// presence, and starts the heartbeat ticker.
func (c *Channel) ConnectionUp() {
	c.mu.Lock()
	if c.state == Connected {
		c.mu.Unlock()
		return
	}
	c.state = Connected
	stop := make(chan struct{})
	c.heartbeatStop = stop
	onChange := c.onConnChange
	c.mu.Unlock()

	tool.DefaultLogger.Info("Connected to server")
	if onChange != nil {
		onChange(true)
	}
	c.RequestSystemInfo()
	c.RequestDevices()
	go c.heartbeatLoop(stop)
}

// ConnectionDown implements Sink. Transitions to Disconnected and halts
// the heartbeat so nothing is emitted on a dead transport.
func (c *Channel) ConnectionDown() {
	c.mu.Lock()
	if c.state == Disconnected {
		c.mu.Unlock()
		return
	}
	c.state = Disconnected
	if c.heartbeatStop != nil {
		close(c.heartbeatStop)
		c.heartbeatStop = nil
	}
	onChange := c.onConnChange
	c.mu.Unlock()

	tool.DefaultLogger.Info("Disconnected from server")
	if onChange != nil {
		onChange(false)
	}
}

// Receive implements Sink. Decodes the envelope and dispatches to the
// registered handler for its kind, in arrival order.
func (c *Channel) Receive(frame []byte) {
	var env types.Envelope
	if err := sonic.Unmarshal(frame, &env); err != nil {
		tool.DefaultLogger.Debugf("Dropping malformed frame: %v", err)
		return
	}
	c.mu.Lock()
	fn := c.handlers[env.Event]
	c.mu.Unlock()
	if fn == nil {
		tool.DefaultLogger.Debugf("No handler for event %q", env.Event)
		return
	}
	fn(env.Data)
}

func (c *Channel) heartbeatLoop(stop chan struct{}) {
	ticker := time.NewTicker(c.heartbeatPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			t := c.transport
			connected := c.state == Connected
			c.mu.Unlock()
			if !connected || t == nil || !t.Connected() {
				continue
			}
			if err := t.Emit(types.EventHeartbeat, nil); err != nil {
				tool.DefaultLogger.Debugf("Heartbeat failed: %v", err)
			}
		}
	}
}

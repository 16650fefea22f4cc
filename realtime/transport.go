package realtime

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/riyaz/simpleshare-go/tool"
	"github.com/riyaz/simpleshare-go/types"
)

// RedialRate paces reconnect attempts: one dial every 3 seconds with a
// burst of one, so the first attempt is immediate.
var RedialRate = rate.Every(3 * time.Second)

// WSTransport is the websocket connection to the server. It owns dialing
// and redialing; the channel only reacts to its up/down callbacks.
type WSTransport struct {
	url       string
	sink      Sink
	limiter   *rate.Limiter
	connected atomic.Bool

	mu   sync.Mutex // guards conn writes (gorilla allows one writer)
	conn *websocket.Conn
}

func NewWSTransport(url string, sink Sink) *WSTransport {
	return &WSTransport{
		url:     url,
		sink:    sink,
		limiter: rate.NewLimiter(RedialRate, 1),
	}
}

// Connected implements Transport.
func (t *WSTransport) Connected() bool {
	return t.connected.Load()
}

// Emit implements Transport. Marshals the envelope and writes one text
// frame.
func (t *WSTransport) Emit(event string, data any) error {
	env := types.Envelope{Event: event}
	if data != nil {
		raw, err := sonic.Marshal(data)
		if err != nil {
			return err
		}
		env.Data = raw
	}
	payload, err := sonic.Marshal(env)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn == nil {
		return websocket.ErrCloseSent
	}
	return t.conn.WriteMessage(websocket.TextMessage, payload)
}

// Run dials and redials until ctx is cancelled, delivering frames and
// connection transitions to the sink.
func (t *WSTransport) Run(ctx context.Context) {
	for {
		if err := t.limiter.Wait(ctx); err != nil {
			return
		}
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, t.url, nil)
		if err != nil {
			tool.DefaultLogger.Debugf("Dial %s failed: %v", t.url, err)
			continue
		}

		t.mu.Lock()
		t.conn = conn
		t.mu.Unlock()
		t.connected.Store(true)
		t.sink.ConnectionUp()

		t.readLoop(ctx, conn)

		t.connected.Store(false)
		t.mu.Lock()
		t.conn = nil
		t.mu.Unlock()
		t.sink.ConnectionDown()

		if ctx.Err() != nil {
			return
		}
	}
}

func (t *WSTransport) readLoop(ctx context.Context, conn *websocket.Conn) {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			_ = conn.Close()
			return
		}
		t.sink.Receive(frame)
	}
}

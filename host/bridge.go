package host

import (
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/npillmayer/designmode/dom"
	"github.com/npillmayer/designmode/overlay"
	"github.com/npillmayer/designmode/protocol"
)

const sendQueueLen = 32

// Bridge is an http.Handler that upgrades connections to websockets and
// relays protocol messages between hosting windows and one overlay
// session. Outbound messages are broadcast to every attached host;
// inbound commands are dispatched to the session. A failure inside the
// session's activation logic is caught and reported as an init-error,
// and the connection keeps reading.
type Bridge struct {
	upgrader websocket.Upgrader
	session  *overlay.Session

	// sessMu serializes all session access: host commands arrive on
	// per-connection read loops while render frames tick on their own
	// goroutine, and the session's document mutation is not reentrant.
	sessMu sync.Mutex

	mu    sync.Mutex
	conns map[*hostConn]struct{}
}

type hostConn struct {
	ws   *websocket.Conn
	send chan []byte
}

// NewBridge attaches an overlay session to doc and returns the bridge
// serving it. cfg.Sink is overridden: the bridge itself is the
// session's sink.
func NewBridge(doc *dom.Document, cfg overlay.Config) *Bridge {
	b := &Bridge{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// preview and host may be served from different origins
			CheckOrigin: func(*http.Request) bool { return true },
		},
		conns: map[*hostConn]struct{}{},
	}
	cfg.Sink = b.Publish
	b.session = overlay.New(doc, cfg)
	return b
}

// Session exposes the overlay session. Callers running concurrently
// with attached host windows must go through RenderFrame and the
// bridge's dispatching instead of driving the session directly.
func (b *Bridge) Session() *overlay.Session { return b.session }

// RenderFrame drives one render frame of the session, serialized with
// command dispatch from the read loops.
func (b *Bridge) RenderFrame() {
	b.sessMu.Lock()
	defer b.sessMu.Unlock()
	b.session.RenderFrame()
}

// ServeHTTP upgrades the connection and services it until it closes.
// A "ready" message is sent immediately after the upgrade.
func (b *Bridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		tracer().Errorf("websocket upgrade failed: %v", err)
		return
	}
	c := &hostConn{ws: ws, send: make(chan []byte, sendQueueLen)}
	b.mu.Lock()
	b.conns[c] = struct{}{}
	b.mu.Unlock()
	tracer().Infof("host window attached from %s", r.RemoteAddr)

	go c.writePump()
	b.sendTo(c, protocol.Ready{})
	b.readLoop(c)
}

func (b *Bridge) readLoop(c *hostConn) {
	defer b.detach(c)
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			tracer().Infof("host window detached: %v", err)
			return
		}
		msg, err := protocol.Decode(data)
		if err != nil {
			// unknown or malformed messages are ignored, not fatal
			tracer().Infof("ignoring message: %v", err)
			continue
		}
		b.dispatch(msg)
	}
}

// dispatch feeds one host command into the session, guarded so that a
// panic inside activation logic reports an init-error instead of
// tearing down the read loop.
func (b *Bridge) dispatch(msg protocol.Message) {
	defer func() {
		if r := recover(); r != nil {
			tracer().Errorf("overlay dispatch panicked: %v", r)
			b.Publish(protocol.InitError{
				Message:   "design mode initialization failed",
				Stack:     string(debug.Stack()),
				Timestamp: time.Now().UnixMilli(),
			})
		}
	}()
	b.sessMu.Lock()
	defer b.sessMu.Unlock()
	b.session.HandleMessage(msg)
}

func (b *Bridge) detach(c *hostConn) {
	b.mu.Lock()
	if _, ok := b.conns[c]; ok {
		delete(b.conns, c)
		close(c.send)
	}
	b.mu.Unlock()
	c.ws.Close()
}

// Publish broadcasts a message to every attached host window. Slow
// consumers with a full queue drop the message; the protocol is
// fire-and-forget.
func (b *Bridge) Publish(m protocol.Message) {
	data, err := protocol.Encode(m)
	if err != nil {
		tracer().Errorf("cannot encode %s message: %v", m.MessageType(), err)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for c := range b.conns {
		select {
		case c.send <- data:
		default:
			tracer().Infof("dropping %s message for slow host window", m.MessageType())
		}
	}
}

func (b *Bridge) sendTo(c *hostConn, m protocol.Message) {
	data, err := protocol.Encode(m)
	if err != nil {
		tracer().Errorf("cannot encode %s message: %v", m.MessageType(), err)
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (c *hostConn) writePump() {
	for data := range c.send {
		if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
			tracer().Infof("write to host window failed: %v", err)
			return
		}
	}
}

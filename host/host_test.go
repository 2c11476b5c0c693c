package host

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npillmayer/designmode/dom"
	"github.com/npillmayer/designmode/overlay"
	"github.com/npillmayer/designmode/protocol"
)

const previewPage = `<html><head></head><body>
<h1 data-0x-component-id="h1_Page_1_0">Hello</h1>
</body></html>`

func newBridge(t *testing.T) *Bridge {
	t.Helper()
	doc, err := dom.FromHTMLString(previewPage)
	require.NoError(t, err)
	return NewBridge(doc, overlay.Config{HoverThrottle: -1})
}

func readMessage(t *testing.T, ws *websocket.Conn) map[string]interface{} {
	t.Helper()
	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := ws.ReadMessage()
	require.NoError(t, err)
	fields := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(data, &fields))
	return fields
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	return ws
}

func TestBridgeRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "designmode.host")
	defer teardown()
	//
	b := newBridge(t)
	srv := httptest.NewServer(b)
	defer srv.Close()
	ws := dial(t, srv)
	defer ws.Close()
	//
	assert.Equal(t, "ready", readMessage(t, ws)["type"], "ready is sent once on attach")
	//
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"enable"}`)))
	assert.Equal(t, "enabled", readMessage(t, ws)["type"])
	assert.True(t, b.Session().IsActive())
	//
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"disable"}`)))
	assert.Equal(t, "disabled", readMessage(t, ws)["type"])
	assert.False(t, b.Session().IsActive())
}

func TestBridgeIgnoresUnknownMessages(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "designmode.host")
	defer teardown()
	//
	b := newBridge(t)
	srv := httptest.NewServer(b)
	defer srv.Close()
	ws := dial(t, srv)
	defer ws.Close()
	readMessage(t, ws) // ready
	//
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"self-destruct"}`)))
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"enable"}`)))
	assert.Equal(t, "enabled", readMessage(t, ws)["type"], "unknown message skipped, channel alive")
}

func TestErrorForwarding(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "designmode.host")
	defer teardown()
	//
	b := newBridge(t)
	srv := httptest.NewServer(b)
	defer srv.Close()
	ws := dial(t, srv)
	defer ws.Close()
	readMessage(t, ws) // ready
	//
	b.ReportError(protocol.ConsoleError{Message: "Script error."}) // opaque, filtered
	b.ReportError(protocol.ConsoleError{Message: "boom", Filename: "app.js", Lineno: 12})
	//
	msg := readMessage(t, ws)
	assert.Equal(t, "console-error", msg["type"])
	assert.Equal(t, "boom", msg["message"], "the opaque report was filtered out")
	assert.NotZero(t, msg["timestamp"])
}

func TestNavigationReport(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "designmode.host")
	defer teardown()
	//
	b := newBridge(t)
	srv := httptest.NewServer(b)
	defer srv.Close()
	ws := dial(t, srv)
	defer ws.Close()
	readMessage(t, ws) // ready
	//
	b.ReportNavigation("http://localhost:3000/shop?page=2&_cb=1724900000")
	msg := readMessage(t, ws)
	assert.Equal(t, "url-changed", msg["type"])
	assert.Equal(t, "http://localhost:3000/shop?page=2", msg["url"])
}

func TestStripCacheBuster(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "designmode.host")
	defer teardown()
	//
	cases := map[string]string{
		"http://localhost:3000/?_cb=42":      "http://localhost:3000/",
		"http://localhost:3000/a?x=1&_cb=42": "http://localhost:3000/a?x=1",
		"http://localhost:3000/a?x=1":        "http://localhost:3000/a?x=1",
		"http://localhost:3000/#section":     "http://localhost:3000/#section",
		"http://localhost:3000/?_cb=1&_cb=2": "http://localhost:3000/",
	}
	for in, want := range cases {
		assert.Equal(t, want, stripCacheBuster(in), in)
	}
}

// Frame ticks and command dispatch run on different goroutines in the
// serve wiring; the bridge must serialize them onto the session.
// This test is only meaningful under the race detector.
func TestConcurrentFramesAndCommands(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "designmode.host")
	defer teardown()
	//
	b := newBridge(t)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			b.RenderFrame()
		}
	}()
	text := "tick"
	for i := 0; i < 200; i++ {
		b.dispatch(protocol.Toggle{})
		b.dispatch(protocol.UpdateElement{ComponentID: "h1_Page_1_0", TextContent: &text})
	}
	<-done
	b.dispatch(protocol.Enable{})
	b.RenderFrame()
	//
	h1 := b.Session().Document().ElementsByAttr("data-0x-component-id", "h1_Page_1_0")
	require.Len(t, h1, 1)
	assert.Equal(t, "tick", h1[0].TextContent())
}

func TestSelectionReachesHostWindow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "designmode.host")
	defer teardown()
	//
	b := newBridge(t)
	srv := httptest.NewServer(b)
	defer srv.Close()
	ws := dial(t, srv)
	defer ws.Close()
	readMessage(t, ws) // ready
	//
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"enable"}`)))
	assert.Equal(t, "enabled", readMessage(t, ws)["type"])
	//
	doc := b.Session().Document()
	h1 := doc.ElementsByAttr("data-0x-component-id", "h1_Page_1_0")[0]
	doc.DispatchEvent(&dom.Event{Type: "click", Target: h1})
	//
	msg := readMessage(t, ws)
	assert.Equal(t, "element-selected", msg["type"])
	assert.Equal(t, "h1_Page_1_0", msg["componentId"])
	assert.Equal(t, "Hello", msg["textContent"])
	assert.Equal(t, false, msg["hasChildElements"])
}

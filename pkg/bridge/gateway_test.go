package bridge

import (
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func newTestGateway(t *testing.T) (*Gateway, *fakeEngine) {
	t.Helper()
	engine := &fakeEngine{}
	cfg := &Config{
		SystemPrompt: "You are the office receptionist.",
		Greeting:     "Connecting you now.",
		Hours:        utcSchedule(t),
	}
	clock := &scriptClock{times: []time.Time{insideHours}}
	g := NewGateway(GatewayParams{
		Config: cfg,
		Engine: engine,
		Now:    clock.Now,
	})
	return g, engine
}

func TestHandshakeReturnsStreamDocument(t *testing.T) {
	g, _ := newTestGateway(t)
	srv := httptest.NewServer(g.Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/voice", "application/x-www-form-urlencoded", nil)
	if err != nil {
		t.Fatalf("POST /voice error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d; want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/xml" {
		t.Errorf("Content-Type = %q; want text/xml", ct)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	doc := string(body)

	host := strings.TrimPrefix(srv.URL, "http://")
	for _, want := range []string{
		"<Say>Connecting you now.</Say>",
		"<Connect>",
		`url="wss://` + host + `/stream"`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("handshake document missing %q:\n%s", want, doc)
		}
	}
}

func TestStreamMediaRoundtrip(t *testing.T) {
	g, _ := newTestGateway(t)
	srv := httptest.NewServer(g.Handler())
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	defer conn.Close()

	payload := base64.StdEncoding.EncodeToString([]byte("hello from the caller"))
	frame := `{"event":"media","media":{"payload":"` + payload + `"}}`
	if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
		t.Fatalf("write media frame: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read outbound frame: %v", err)
	}

	out := DecodeFrame(data)
	if out.Kind != FrameMedia {
		t.Fatalf("outbound frame kind = %v; want media", out.Kind)
	}
	if !strings.HasPrefix(string(out.Payload), "audio:") {
		t.Errorf("outbound payload = %q; want synthesized audio", out.Payload)
	}

	// Stop closes the call from the server side.
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"stop"}`)); err != nil {
		t.Fatalf("write stop frame: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("connection still open after stop")
	}
}

func TestStreamTracksLiveSessions(t *testing.T) {
	g, _ := newTestGateway(t)
	srv := httptest.NewServer(g.Handler())
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}

	waitFor(t, func() bool { return g.live() == 1 })
	conn.Close()
	waitFor(t, func() bool { return g.live() == 0 })
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not reached")
}

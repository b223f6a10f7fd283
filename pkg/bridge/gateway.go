package bridge

import (
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/haivivi/callgear/pkg/notify"
)

// Gateway accepts telephony media-stream connections and runs one session
// per call. It serves two endpoints: the call-setup handshake that tells the
// telephony provider where to open the duplex stream, and the stream
// endpoint itself.
type Gateway struct {
	cfg        *Config
	engine     Engine
	dispatcher notify.Dispatcher
	logger     *slog.Logger
	now        func() time.Time
	upgrader   websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]*Session
}

// GatewayParams configures a Gateway. Config, Engine, and Send-side
// collaborators follow the SessionParams conventions: Dispatcher may be nil,
// Logger defaults to slog.Default, Now defaults to time.Now.
type GatewayParams struct {
	Config     *Config
	Engine     Engine
	Dispatcher notify.Dispatcher
	Logger     *slog.Logger
	Now        func() time.Time
}

// NewGateway creates a gateway sharing the immutable config across calls.
func NewGateway(p GatewayParams) *Gateway {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := p.Now
	if now == nil {
		now = time.Now
	}
	return &Gateway{
		cfg:        p.Config,
		engine:     p.Engine,
		dispatcher: p.Dispatcher,
		logger:     logger,
		now:        now,
		upgrader: websocket.Upgrader{
			// The telephony provider connects from its own origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		sessions: make(map[string]*Session),
	}
}

// Handler returns the HTTP handler serving the handshake at /voice and the
// duplex stream at /stream.
func (g *Gateway) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/voice", g.handleVoice)
	mux.HandleFunc("/stream", g.handleStream)
	return mux
}

// handleVoice answers the provider's call-setup request with an XML document
// that plays the greeting and opens a duplex stream back to this host.
func (g *Gateway) handleVoice(w http.ResponseWriter, r *http.Request) {
	doc, err := voiceResponse(g.cfg.greeting(), "wss://"+r.Host+"/stream")
	if err != nil {
		g.logger.Error("handshake document failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/xml")
	io.WriteString(w, doc)
}

// handleStream upgrades the connection and pumps inbound frames into a new
// session until the caller stops or the connection drops.
func (g *Gateway) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Warn("stream upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	sess := NewSession(SessionParams{
		Config:     g.cfg,
		Engine:     g.engine,
		Dispatcher: g.dispatcher,
		Send: func(frame []byte) error {
			return conn.WriteMessage(websocket.TextMessage, frame)
		},
		Logger: g.logger,
		Now:    g.now,
	})
	g.track(sess)
	defer g.untrack(sess)
	defer sess.Terminate()

	g.logger.Info("call connected", "session", sess.ID, "remote", r.RemoteAddr, "live", g.live())

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			g.logger.Info("call disconnected", "session", sess.ID)
			return
		}
		f := DecodeFrame(data)
		if f.Kind == FrameStop {
			// Stop takes effect immediately: no more events are
			// accepted, and anything still queued is discarded.
			return
		}
		sess.Enqueue(f)
	}
}

func (g *Gateway) track(s *Session) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sessions[s.ID] = s
}

func (g *Gateway) untrack(s *Session) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.sessions, s.ID)
}

// live returns the number of connected calls.
func (g *Gateway) live() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.sessions)
}

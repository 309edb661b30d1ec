package bridge

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/recera/viewpane/pkg/surface"
	"github.com/recera/viewpane/pkg/viewport"
)

// Frame is a message pushed to the connected view: the rendered transform for
// the content node, a state report for the host, or the indicator view.
type Frame struct {
	Type       string         `json:"type"` // "transform" | "state" | "indicators" | "reload"
	Transform  string         `json:"transform,omitempty"`
	State      *StateReport   `json:"state,omitempty"`
	Indicators *viewport.View `json:"indicators,omitempty"`
}

// Server is the reference websocket transport for the host channel. Each
// connection gets its own session owning one engine instance; sessions are
// independent and torn down when the connection closes.
type Server struct {
	upgrader websocket.Upgrader
	cfg      *viewport.Config
	mu       sync.RWMutex
	sessions map[uint64]*ServerSession
	nextID   atomic.Uint64
}

// ServerSession is one connected view with its own engine and bridge.
type ServerSession struct {
	id       uint64
	conn     *websocket.Conn
	engine   *viewport.Engine
	bridge   *Bridge
	surf     *surface.CSSSurface
	sendChan chan []byte
	closeCh  chan struct{}
	closed   sync.Once
}

// NewServer creates a websocket host-channel server. A nil cfg uses the
// engine defaults.
func NewServer(cfg *viewport.Config) *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		cfg:      cfg,
		sessions: make(map[uint64]*ServerSession),
	}
}

// HandleWebSocket upgrades the connection and runs the session loop until the
// view disconnects.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Bridge Server] Failed to upgrade connection: %v", err)
		return
	}

	sess := s.newSession(conn)
	go sess.run(s)
}

func (s *Server) newSession(conn *websocket.Conn) *ServerSession {
	sess := &ServerSession{
		id:       s.nextID.Add(1),
		conn:     conn,
		sendChan: make(chan []byte, 256),
		closeCh:  make(chan struct{}),
	}
	sess.surf = surface.NewCSSSurface(func(transform string) {
		sess.push(Frame{Type: "transform", Transform: transform})
	})
	sess.engine = viewport.NewEngine(sess.surf, s.cfg)
	sess.engine.Indicators().OnChange(func(v viewport.View) {
		sess.push(Frame{Type: "indicators", Indicators: &v})
	})
	sess.bridge = New(sess.engine, func(report StateReport) {
		sess.push(Frame{Type: "state", State: &report})
	})
	sess.bridge.OnResize(sess.surf.SetViewportSize)

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	return sess
}

// Broadcast pushes a frame to every connected session. The serve command uses
// it to tell views to reload after the watched document changes.
func (s *Server) Broadcast(frame Frame) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sess := range s.sessions {
		sess.push(frame)
	}
}

// SessionCount returns the number of connected views.
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Server) remove(sess *ServerSession) {
	s.mu.Lock()
	delete(s.sessions, sess.id)
	s.mu.Unlock()
}

// Engine returns the session's engine, for host-side operations that bypass
// the message channel.
func (sess *ServerSession) Engine() *viewport.Engine {
	return sess.engine
}

func (sess *ServerSession) push(frame Frame) {
	data, err := json.Marshal(frame)
	if err != nil {
		log.Printf("[Bridge Session %d] Failed to encode frame: %v", sess.id, err)
		return
	}
	select {
	case sess.sendChan <- data:
	default:
		// Send buffer full; the view is stalled. Drop the frame — the next
		// state change supersedes it anyway.
	}
}

func (sess *ServerSession) close() {
	sess.closed.Do(func() {
		close(sess.closeCh)
		sess.conn.Close()
	})
}

func (sess *ServerSession) run(s *Server) {
	defer func() {
		sess.close()
		s.remove(sess)
		log.Printf("[Bridge Session %d] Closed", sess.id)
	}()

	go sess.writer()

	sess.conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
	sess.conn.SetPongHandler(func(string) error {
		sess.conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
		return nil
	})

	log.Printf("[Bridge Session %d] Connected", sess.id)

	for {
		messageType, data, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[Bridge Session %d] Unexpected close: %v", sess.id, err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			log.Printf("[Bridge Session %d] Ignoring non-text message", sess.id)
			continue
		}
		sess.bridge.Handle(data)
	}
}

func (sess *ServerSession) writer() {
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case data := <-sess.sendChan:
			sess.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := sess.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Printf("[Bridge Session %d] Write failed: %v", sess.id, err)
				sess.close()
				return
			}

		case <-ticker.C:
			sess.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := sess.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				sess.close()
				return
			}

		case <-sess.closeCh:
			return
		}
	}
}

// Package web serves the agent loop over a websocket so that a browser (or
// any other remote renderer) can draw the UI. The wire format is the same
// UISchema and Interaction JSON the terminal renderer uses.
package web

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	lru "github.com/hashicorp/golang-lru/v2"

	"a2ui/config"
	"a2ui/model"
	"a2ui/renderer"
	"a2ui/schema"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingEvery  = (pongWait * 9) / 10
	outboxSize = 32

	// DefaultSessions is the number of idle sessions kept for resume.
	DefaultSessions = 256
)

// Message types on the wire.
const (
	TypeStart       = "start"
	TypeInteraction = schema.TypeInteraction
	TypeTurn        = "turn"
	TypeError       = "error"
)

// AgentFactory builds the agent for a new session.
type AgentFactory func() model.Agent

type inbound struct {
	Type        string          `json:"type"`
	ComponentID string          `json:"componentId,omitempty"`
	Values      schema.ValueMap `json:"values,omitempty"`
}

type outbound struct {
	Type      string           `json:"type"`
	SessionID string           `json:"sessionId,omitempty"`
	Text      string           `json:"text,omitempty"`
	UI        *schema.UISchema `json:"ui,omitempty"`
	Values    schema.ValueMap  `json:"values,omitempty"`
	Code      string           `json:"code,omitempty"`
	Message   string           `json:"message,omitempty"`
	Hint      string           `json:"hint,omitempty"`
}

// session is one conversation. The surface mirrors what the client shows so
// that a reconnecting client gets the current UI and values back.
type session struct {
	id      string
	agent   model.Agent
	mu      sync.Mutex
	surface *renderer.Surface
	text    string
	started bool
}

type Server struct {
	newAgent AgentFactory
	sessions *lru.Cache[string, *session]
	upgrader websocket.Upgrader
}

// NewServer keeps at most size sessions; the least recently used one is
// dropped when a new session needs room.
func NewServer(newAgent AgentFactory, size int) (*Server, error) {
	if size <= 0 {
		size = DefaultSessions
	}
	cache, err := lru.NewWithEvict(size, func(id string, _ *session) {
		if config.Debug && config.DebugLog != nil {
			config.DebugLog.Printf("[Web] Session %s evicted", id)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}
	return &Server{
		newAgent: newAgent,
		sessions: cache,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}, nil
}

// Handler routes /ws to the websocket endpoint and /healthz to a liveness
// check.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.HandleWS)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	return mux
}

// Sessions reports how many sessions are cached.
func (s *Server) Sessions() int { return s.sessions.Len() }

// session returns the cached session for id, or a new one. An empty id gets
// a fresh uuid.
func (s *Server) session(id string) (*session, error) {
	if id == "" {
		id = uuid.NewString()
	} else if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("session must be a uuid: %w", err)
	}
	if sess, ok := s.sessions.Get(id); ok {
		return sess, nil
	}
	sess := &session{id: id, agent: s.newAgent(), surface: renderer.New()}
	s.sessions.Add(id, sess)
	return sess, nil
}

func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(strings.TrimSpace(r.URL.Query().Get("session")))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	if config.Debug && config.DebugLog != nil {
		config.DebugLog.Printf("[Web] Client connected to session %s", sess.id)
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	out := make(chan outbound, outboxSize)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		writeLoop(ctx, conn, out)
		// A dead writer must also stop the reader.
		cancel()
		conn.Close()
	}()
	defer func() {
		cancel()
		<-writerDone
	}()

	if resumed, ok := sess.snapshot(); ok {
		if !push(ctx, out, resumed) {
			return
		}
	}

	for {
		var in inbound
		if err := conn.ReadJSON(&in); err != nil {
			if config.Debug && config.DebugLog != nil {
				config.DebugLog.Printf("[Web] Session %s closed: %v", sess.id, err)
			}
			return
		}
		if !push(ctx, out, sess.handle(ctx, in)) {
			return
		}
	}
}

func writeLoop(ctx context.Context, conn *websocket.Conn, out <-chan outbound) {
	ticker := time.NewTicker(pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-out:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// push queues msg for the writer. Nothing is dropped: a full outbox blocks
// the reader until the writer catches up or the connection ends. It reports
// false once ctx is done.
func push(ctx context.Context, out chan<- outbound, msg outbound) bool {
	select {
	case out <- msg:
		return true
	case <-ctx.Done():
		return false
	}
}

// handle runs one inbound message through the agent.
func (sess *session) handle(ctx context.Context, in inbound) outbound {
	var (
		turn schema.Turn
		err  error
	)

	switch strings.ToLower(strings.TrimSpace(in.Type)) {
	case TypeStart:
		turn, err = sess.agent.Start(ctx)
	case TypeInteraction:
		if in.ComponentID == "" {
			return sess.failure("invalid_argument", "componentId is required", "")
		}
		interaction := schema.NewInteraction(in.ComponentID, in.Values)
		sess.mu.Lock()
		el, ok := sess.surface.Element(in.ComponentID)
		if !ok || el.Kind() != schema.KindButton {
			sess.mu.Unlock()
			return sess.failure("invalid_argument", fmt.Sprintf("no button %q in the current UI", in.ComponentID), "")
		}
		sess.surface.SetValues(interaction.Values)
		sess.mu.Unlock()
		turn, err = sess.agent.HandleInteraction(ctx, interaction)
	case "":
		return sess.failure("invalid_argument", "type is required", "")
	default:
		return sess.failure("invalid_argument", "unsupported type: "+in.Type, "")
	}

	if err != nil {
		if config.Debug && config.DebugLog != nil {
			config.DebugLog.Printf("[Web] Session %s turn failed: %v", sess.id, err)
		}
		return sess.failure(model.ErrorCode(err), err.Error(), model.Hint(err))
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.surface.Render(turn.UI)
	sess.text = turn.Text
	sess.started = true
	ui := sess.surface.Schema()
	return outbound{Type: TypeTurn, SessionID: sess.id, Text: turn.Text, UI: &ui}
}

// snapshot is the current UI with the values the client last sent, for a
// client that reconnects to an existing session.
func (sess *session) snapshot() (outbound, bool) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if !sess.started {
		return outbound{}, false
	}
	ui := sess.surface.Schema()
	return outbound{
		Type:      TypeTurn,
		SessionID: sess.id,
		Text:      sess.text,
		UI:        &ui,
		Values:    sess.surface.Values(),
	}, true
}

func (sess *session) failure(code, message, hint string) outbound {
	return outbound{Type: TypeError, SessionID: sess.id, Code: code, Message: message, Hint: hint}
}

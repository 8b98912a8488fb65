package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"a2ui/agent"
	"a2ui/model"
	"a2ui/provider/testutil"
)

func newTestServer(t *testing.T, newAgent AgentFactory) (*Server, *httptest.Server) {
	t.Helper()
	srv, err := NewServer(newAgent, 4)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server, session string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	if session != "" {
		url += "?session=" + session
	}
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func exchange(t *testing.T, conn *websocket.Conn, in any) outbound {
	t.Helper()
	require.NoError(t, conn.WriteJSON(in))
	return read(t, conn)
}

func read(t *testing.T, conn *websocket.Conn) outbound {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var out outbound
	require.NoError(t, conn.ReadJSON(&out))
	return out
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func staticAgents() model.Agent { return agent.NewStaticAgent() }

func TestStartAndClick(t *testing.T) {
	_, ts := newTestServer(t, staticAgents)
	conn := dial(t, ts, "")

	out := exchange(t, conn, map[string]string{"type": "start"})
	require.Equal(t, TypeTurn, out.Type)
	_, err := uuid.Parse(out.SessionID)
	require.NoError(t, err)
	require.NotNil(t, out.UI)
	require.Len(t, out.UI.Components, 3)
	assert.Equal(t, agent.NameInputID, out.UI.Components[1].ComponentID())

	out = exchange(t, conn, map[string]any{
		"type":        "interaction",
		"componentId": agent.SubmitID,
		"action":      "click",
		"values":      map[string]string{agent.NameInputID: "Ada"},
	})
	require.Equal(t, TypeTurn, out.Type)
	require.NotNil(t, out.UI)
	assert.Contains(t, string(mustJSON(t, out.UI)), "Hello, Ada!")
}

func TestResumeSession(t *testing.T) {
	srv, ts := newTestServer(t, staticAgents)
	id := uuid.NewString()

	first := dial(t, ts, id)
	out := exchange(t, first, map[string]string{"type": "start"})
	require.Equal(t, id, out.SessionID)
	first.Close()

	second := dial(t, ts, id)
	resumed := read(t, second)
	assert.Equal(t, TypeTurn, resumed.Type)
	assert.Equal(t, id, resumed.SessionID)
	assert.Equal(t, "", resumed.Values[agent.NameInputID])
	assert.Equal(t, 1, srv.Sessions())
}

func TestBadSessionID(t *testing.T) {
	_, ts := newTestServer(t, staticAgents)

	resp, err := http.Get(ts.URL + "/ws?session=not-a-uuid")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProtocolErrors(t *testing.T) {
	_, ts := newTestServer(t, staticAgents)
	conn := dial(t, ts, "")
	require.Equal(t, TypeTurn, exchange(t, conn, map[string]string{"type": "start"}).Type)

	tests := []struct {
		name string
		in   map[string]string
		want string
	}{
		{"missing type", map[string]string{}, "type is required"},
		{"unknown type", map[string]string{"type": "dance"}, "unsupported type: dance"},
		{"interaction without id", map[string]string{"type": "interaction"}, "componentId is required"},
		{"unknown component", map[string]string{"type": "interaction", "componentId": "nope"}, `no button "nope" in the current UI`},
		{"component is not a button", map[string]string{"type": "interaction", "componentId": agent.NameInputID}, `no button "name-input" in the current UI`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := exchange(t, conn, tt.in)
			assert.Equal(t, TypeError, out.Type)
			assert.Equal(t, "invalid_argument", out.Code)
			assert.Equal(t, tt.want, out.Message)
		})
	}
}

func TestInteractionNeedsRenderedButton(t *testing.T) {
	_, ts := newTestServer(t, staticAgents)
	conn := dial(t, ts, "")

	click := map[string]any{
		"type":        "interaction",
		"componentId": agent.SubmitID,
		"values":      map[string]string{agent.NameInputID: "Ada"},
	}
	out := exchange(t, conn, click)
	assert.Equal(t, TypeError, out.Type)
	assert.Equal(t, "invalid_argument", out.Code)

	require.Equal(t, TypeTurn, exchange(t, conn, map[string]string{"type": "start"}).Type)
	out = exchange(t, conn, click)
	require.Equal(t, TypeTurn, out.Type)
	assert.Contains(t, string(mustJSON(t, out.UI)), "Hello, Ada!")
}

func TestPushWaitsForRoom(t *testing.T) {
	out := make(chan outbound, 1)
	require.True(t, push(context.Background(), out, outbound{Type: TypeTurn, Text: "first"}))

	done := make(chan bool)
	go func() { done <- push(context.Background(), out, outbound{Type: TypeTurn, Text: "second"}) }()

	select {
	case <-done:
		t.Fatal("push returned while the outbox was full")
	case <-time.After(50 * time.Millisecond):
	}

	assert.Equal(t, "first", (<-out).Text)
	assert.True(t, <-done)
	assert.Equal(t, "second", (<-out).Text)
}

func TestPushStopsWhenDone(t *testing.T) {
	out := make(chan outbound, 1)
	out <- outbound{Type: TypeTurn, Text: "queued"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, push(ctx, out, outbound{Type: TypeError}))
	require.Len(t, out, 1)
	assert.Equal(t, "queued", (<-out).Text)
}

func TestBackendErrorsCarryCodeAndHint(t *testing.T) {
	failing := testutil.NewFailingProvider(&model.BackendError{
		Kind:     model.ErrUnreachable,
		Provider: "ollama",
		Message:  "connection refused",
	})
	_, ts := newTestServer(t, func() model.Agent {
		return agent.NewLLMAgent(failing, agent.UIOnly, "")
	})
	conn := dial(t, ts, "")

	out := exchange(t, conn, map[string]string{"type": "start"})
	assert.Equal(t, TypeError, out.Type)
	assert.Equal(t, string(model.ErrUnreachable), out.Code)
	assert.Contains(t, out.Hint, "ollama serve")
	assert.Nil(t, out.UI)
}

func TestMalformedReplyIsAnError(t *testing.T) {
	p := testutil.NewReplyingProvider("not json")
	_, ts := newTestServer(t, func() model.Agent {
		return agent.NewLLMAgent(p, agent.UIOnly, "")
	})
	conn := dial(t, ts, "")

	out := exchange(t, conn, map[string]string{"type": "start"})
	assert.Equal(t, TypeError, out.Type)
	assert.Equal(t, "malformed_response", out.Code)
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t, staticAgents)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

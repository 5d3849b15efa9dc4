package http

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"firstaid-quiz/internal/app"
	"firstaid-quiz/internal/domain"
	"firstaid-quiz/internal/infra/memory"
	"github.com/gorilla/websocket"
)

func newTestServer(t *testing.T) (*httptest.Server, *websocket.Conn) {
	t.Helper()

	pools := domain.EmptyPools()
	for i := 0; i < 3; i++ {
		pools[domain.TierEasy] = append(pools[domain.TierEasy], domain.Question{
			ID: "q", Text: "pick the first option", Options: []string{"right", "wrong"}, Correct: 0, Tier: domain.TierEasy,
		})
	}
	source := memory.NewBankRepository(memory.NewStaticPoolLoader(pools), time.Minute)
	bank := app.NewBank(source, rand.New(rand.NewSource(1)))
	controller := app.NewGameController(context.Background(), bank, memoryStore{})
	wsHandler := NewWSHandler(controller)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	u := "ws" + server.URL[len("http"):] + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return server, conn
}

// memoryStore is a throwaway ProgressStore for handler tests.
type memoryStore struct{}

func (memoryStore) Load(_ context.Context) domain.Progress          { return domain.DefaultProgress() }
func (memoryStore) Save(_ context.Context, _ domain.Progress) error { return nil }

func TestWebSocketQuizFlow(t *testing.T) {
	_, conn := newTestServer(t)

	// Initial snapshot arrives before any input.
	typ, payload := readNext(conn, t, "state")
	if screen := payload["screen"]; screen != "menu" {
		t.Fatalf("expected menu screen, got %v", screen)
	}

	send(conn, t, "quickPlay", nil)
	_, payload = readNext(conn, t, "state")
	if screen := payload["screen"]; screen != "quiz" {
		t.Fatalf("expected quiz screen, got %v", screen)
	}

	// Mouse flow: select+submit in one event.
	send(conn, t, "answer", map[string]any{"option": 0})
	typ, payload = readNext(conn, t, "answerResult")
	if typ != "answerResult" || payload["correct"] != true {
		t.Fatalf("expected a correct answerResult, got %s %v", typ, payload)
	}
	_, payload = readNext(conn, t, "state")
	session, _ := payload["session"].(map[string]any)
	if session == nil || session["phase"] != "feedback" {
		t.Fatalf("expected feedback phase, got %v", session)
	}

	send(conn, t, "advance", nil)
	_, payload = readNext(conn, t, "state")
	session, _ = payload["session"].(map[string]any)
	if session == nil || session["phase"] != "active" {
		t.Fatalf("expected next question active, got %v", session)
	}
}

func TestWebSocketRejectsLockedLevel(t *testing.T) {
	_, conn := newTestServer(t)
	readNext(conn, t, "state")

	send(conn, t, "startLevel", map[string]any{"level": 3})
	typ, payload := readNext(conn, t, "error")
	if typ != "error" || payload["message"] == "" {
		t.Fatalf("expected error for locked level, got %s %v", typ, payload)
	}
}

func TestWebSocketPauseResume(t *testing.T) {
	_, conn := newTestServer(t)
	readNext(conn, t, "state")

	send(conn, t, "startLevel", map[string]any{"level": 1})
	readNext(conn, t, "state")

	send(conn, t, "pause", nil)
	_, payload := readNext(conn, t, "state")
	if payload["screen"] != "paused" {
		t.Fatalf("expected paused screen, got %v", payload["screen"])
	}

	send(conn, t, "resume", nil)
	_, payload = readNext(conn, t, "state")
	if payload["screen"] != "quiz" {
		t.Fatalf("expected quiz screen after resume, got %v", payload["screen"])
	}
}

func send(conn *websocket.Conn, t *testing.T, msgType string, payload map[string]any) {
	t.Helper()
	msg := map[string]any{"type": msgType}
	if payload != nil {
		msg["payload"] = payload
	}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write %s: %v", msgType, err)
	}
}

func readNext(conn *websocket.Conn, t *testing.T, expect string) (string, map[string]any) {
	t.Helper()
	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if expect != "" && msg.Type != expect {
		t.Fatalf("expected type %s, got %s", expect, msg.Type)
	}
	return msg.Type, msg.Payload
}

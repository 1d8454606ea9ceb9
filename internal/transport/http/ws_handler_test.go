package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"millionaire-quiz-service/internal/app"
	"millionaire-quiz-service/internal/domain"
	"millionaire-quiz-service/internal/infra/memory"
)

func newTestServer(t *testing.T) (*httptest.Server, *memory.ProfileStore) {
	t.Helper()

	topics := memory.NewTopicStore(map[string]domain.Topic{
		"topic-1": {ID: "topic-1", Name: "Solar System", Active: true},
		"topic-2": {ID: "topic-2", Name: "Deep Sea", Active: false},
	})
	profiles := memory.NewProfileStore(map[string]domain.Profile{
		"student-1": {
			UserID:    "student-1",
			FirstName: "Alice",
			Role:      domain.RoleStudent,
			Jokers: map[domain.JokerType]int{
				domain.JokerFiftyFifty: 1,
				domain.JokerTimerStop:  1,
			},
		},
	})
	quizzes := memory.NewQuizRepository(memory.NewStaticQuizLoader(map[string]domain.Quiz{
		"topic-1": {
			ID:      "quiz-1",
			TopicID: "topic-1",
			Questions: []domain.Question{
				{
					Text:          "Which planet is closest to the sun?",
					CorrectAnswer: "Mercury",
					WrongAnswers:  []string{"Venus", "Mars", "Jupiter"},
				},
			},
		},
	}), time.Minute)

	service := app.NewGameServiceWithSeed(topics, quizzes, profiles, memory.NewSessionStore(), 7)
	wsHandler := NewWSHandler(service, 10*time.Millisecond)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, profiles
}

func dialGame(t *testing.T, server *httptest.Server, userID, topicID string) *websocket.Conn {
	t.Helper()
	u := "ws" + server.URL[len("http"):] + "/ws?userId=" + userID + "&topicId=" + topicID
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil skips over timer updates until a message of the wanted type
// arrives.
func readUntil(conn *websocket.Conn, t *testing.T, want string) map[string]any {
	t.Helper()
	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		_ = conn.SetReadDeadline(deadline)
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read json: %v", err)
		}
		if msg.Type == want {
			return msg.Payload
		}
		if msg.Type == "timer" {
			continue
		}
		t.Fatalf("expected %s, got %s (%v)", want, msg.Type, msg.Payload)
	}
	t.Fatalf("timed out waiting for %s", want)
	return nil
}

func TestWebSocketGameFlow(t *testing.T) {
	server, profiles := newTestServer(t)
	conn := dialGame(t, server, "student-1", "topic-1")

	question := readUntil(conn, t, "question")
	view, ok := question["question"].(map[string]any)
	if !ok {
		t.Fatalf("expected question view, got %v", question)
	}
	answers, ok := view["answers"].([]any)
	if !ok || len(answers) != 4 {
		t.Fatalf("expected 4 answers, got %v", view["answers"])
	}
	correct := -1
	for i, a := range answers {
		if a == "Mercury" {
			correct = i
			break
		}
	}
	if correct < 0 {
		t.Fatalf("correct answer missing from %v", answers)
	}

	if err := conn.WriteJSON(map[string]any{
		"type":    "answer",
		"payload": map[string]any{"answer": correct},
	}); err != nil {
		t.Fatalf("write answer: %v", err)
	}

	verdict := readUntil(conn, t, "verdict")
	if verdict["correct"] != true {
		t.Fatalf("expected correct verdict, got %v", verdict)
	}

	gameOver := readUntil(conn, t, "gameOver")
	outcome, ok := gameOver["outcome"].(map[string]any)
	if !ok {
		t.Fatalf("expected outcome, got %v", gameOver)
	}
	if outcome["won"] != true {
		t.Fatalf("expected a won game, got %v", outcome)
	}
	if outcome["totalPoints"] != float64(50) {
		t.Fatalf("expected 50 total points, got %v", outcome["totalPoints"])
	}

	saved, err := profiles.GetProfile(context.Background(), "student-1")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if saved.Points != 50 || !saved.HasCompleted("topic-1") {
		t.Fatalf("expected reconciled profile, got %+v", saved)
	}
}

// winGame plays the fixture's one-question game through to the final summary.
func winGame(t *testing.T, conn *websocket.Conn) {
	t.Helper()

	question := readUntil(conn, t, "question")
	view, ok := question["question"].(map[string]any)
	if !ok {
		t.Fatalf("expected question view, got %v", question)
	}
	answers, _ := view["answers"].([]any)
	correct := -1
	for i, a := range answers {
		if a == "Mercury" {
			correct = i
			break
		}
	}
	if correct < 0 {
		t.Fatalf("correct answer missing from %v", answers)
	}
	if err := conn.WriteJSON(map[string]any{
		"type":    "answer",
		"payload": map[string]any{"answer": correct},
	}); err != nil {
		t.Fatalf("write answer: %v", err)
	}
	readUntil(conn, t, "verdict")
	readUntil(conn, t, "gameOver")
}

func TestWebSocketReaderStopsAfterGameOver(t *testing.T) {
	server, _ := newTestServer(t)
	before := runtime.NumGoroutine()

	conn := dialGame(t, server, "student-1", "topic-1")
	winGame(t, conn)

	// A frame arriving after the final summary has no consumer left; it must
	// not wedge the connection's reader.
	if err := conn.WriteJSON(map[string]any{"type": "abandon"}); err != nil {
		t.Fatalf("write after game over: %v", err)
	}
	conn.Close()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if runtime.NumGoroutine() <= before {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("connection goroutines still running: %d, baseline %d", runtime.NumGoroutine(), before)
}

func TestWebSocketRejectsInactiveTopic(t *testing.T) {
	server, _ := newTestServer(t)
	conn := dialGame(t, server, "student-1", "topic-2")

	payload := readUntil(conn, t, "error")
	msg, _ := payload["message"].(string)
	if !strings.Contains(msg, "inactive") {
		t.Fatalf("expected inactive-topic error, got %q", msg)
	}
}

func TestWebSocketAbandon(t *testing.T) {
	server, profiles := newTestServer(t)
	conn := dialGame(t, server, "student-1", "topic-1")

	readUntil(conn, t, "question")
	if err := conn.WriteJSON(map[string]any{"type": "abandon"}); err != nil {
		t.Fatalf("write abandon: %v", err)
	}
	readUntil(conn, t, "abandoned")

	saved, err := profiles.GetProfile(context.Background(), "student-1")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if saved.GamesPlayed != 0 || saved.Points != 0 {
		t.Fatalf("abandon must not reconcile, got %+v", saved)
	}
}

package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"millionaire-quiz-service/internal/app"
	"millionaire-quiz-service/internal/domain"
	"github.com/gorilla/websocket"
)

// WSHandler is the session driver: it starts a game over a websocket, owns
// the one-second tick cadence and the presentation delay between answer
// selection and question advancement, and forwards player actions into the
// engine. All engine calls for one connection run on a single pump
// goroutine, so a user action and a timer tick never race; when both are
// due, the user action is handled first.
type WSHandler struct {
	service      *app.GameService
	advanceDelay time.Duration
	upgrader     websocket.Upgrader
}

func NewWSHandler(service *app.GameService, advanceDelay time.Duration) *WSHandler {
	return &WSHandler{
		service:      service,
		advanceDelay: advanceDelay,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	Answer int `json:"answer"`
}

type jokerPayload struct {
	Joker string `json:"joker"`
}

type verdictPayload struct {
	Correct bool `json:"correct"`
}

type timerPayload struct {
	SecondsRemaining int `json:"secondsRemaining"`
	SecondsElapsed   int `json:"secondsElapsed"`
}

type gameOverPayload struct {
	Outcome     *app.Outcome `json:"outcome"`
	SaveWarning string       `json:"saveWarning,omitempty"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and plays one game session.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	topicID := r.URL.Query().Get("topicId")
	if userID == "" || topicID == "" {
		http.Error(w, "missing userId or topicId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	view, err := h.service.StartSession(r.Context(), userID, topicID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	// pumpDone unblocks the reader once the pump stops consuming actions;
	// a channel send cannot be interrupted by conn.Close alone.
	actions := make(chan inboundMessage)
	pumpDone := make(chan struct{})
	go func() {
		defer close(actions)
		for {
			var inbound inboundMessage
			if err := conn.ReadJSON(&inbound); err != nil {
				return
			}
			select {
			case actions <- inbound:
			case <-pumpDone:
				return
			}
		}
	}()

	h.pump(r.Context(), userID, view, send, actions)
	close(pumpDone)

	close(send)
	<-writerDone
}

// pump is the single goroutine driving one session. It serializes the tick
// cadence, player actions and the deferred question advancement.
func (h *WSHandler) pump(ctx context.Context, userID string, view app.SessionView, send chan<- outboundMessage[any], actions <-chan inboundMessage) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	var advanceCh <-chan time.Time

	send <- outboundMessage[any]{Type: "question", Payload: view}

	for {
		select {
		case inbound, ok := <-actions:
			if !ok {
				// Disconnect mid-game abandons the session: no points, no
				// penalty, nothing persisted.
				h.service.AbandonSession(userID)
				return
			}
			if done := h.handleAction(ctx, userID, inbound, send, &advanceCh); done {
				return
			}

		case <-advanceCh:
			advanceCh = nil
			if err := h.service.AdvanceQuestion(ctx, userID); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			if done := h.pushState(userID, send); done {
				return
			}

		case <-ticker.C:
			// Drain player actions registered before the tick fires; an
			// answer in the same instant as timer expiry must win.
			drained := false
			for !drained {
				select {
				case inbound, ok := <-actions:
					if !ok {
						h.service.AbandonSession(userID)
						return
					}
					if done := h.handleAction(ctx, userID, inbound, send, &advanceCh); done {
						return
					}
				default:
					drained = true
				}
			}
			if err := h.service.Tick(ctx, userID); err != nil {
				return
			}
			if done := h.pushTimer(userID, send); done {
				return
			}
		}
	}
}

// handleAction applies one inbound player action. It returns true when the
// session is finished and the pump should stop.
func (h *WSHandler) handleAction(ctx context.Context, userID string, inbound inboundMessage, send chan<- outboundMessage[any], advanceCh *<-chan time.Time) bool {
	switch inbound.Type {
	case "answer":
		var payload answerPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}}
			return false
		}
		verdict, err := h.service.SelectAnswer(userID, payload.Answer)
		if err != nil {
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
			return false
		}
		send <- outboundMessage[any]{Type: "verdict", Payload: verdictPayload{Correct: verdict.Correct}}
		// The countdown is already suspended; the delay is display-only.
		*advanceCh = time.After(h.advanceDelay)
		return false

	case "joker":
		var payload jokerPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid joker payload"}}
			return false
		}
		if err := h.service.ActivateJoker(userID, domain.JokerType(payload.Joker)); err != nil {
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
			return false
		}
		return h.pushState(userID, send)

	case "abandon":
		h.service.AbandonSession(userID)
		send <- outboundMessage[any]{Type: "abandoned", Payload: struct{}{}}
		return true

	default:
		send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		return false
	}
}

// pushState sends the current snapshot; on game over it sends the final
// summary instead and reports the pump as finished.
func (h *WSHandler) pushState(userID string, send chan<- outboundMessage[any]) bool {
	view, err := h.service.Snapshot(userID)
	if err != nil {
		return true
	}
	if view.GameOver {
		payload := gameOverPayload{Outcome: view.Outcome}
		if view.Outcome != nil && view.Outcome.SaveErr != nil {
			// The outcome is still shown; only durability is at risk.
			payload.SaveWarning = "result could not be saved: " + view.Outcome.SaveErr.Error()
		}
		send <- outboundMessage[any]{Type: "gameOver", Payload: payload}
		h.service.AbandonSession(userID) // drop the finished session from the store
		return true
	}
	send <- outboundMessage[any]{Type: "question", Payload: view}
	return false
}

// pushTimer sends a slim countdown update; a timeout still surfaces as the
// full game-over summary.
func (h *WSHandler) pushTimer(userID string, send chan<- outboundMessage[any]) bool {
	view, err := h.service.Snapshot(userID)
	if err != nil {
		return true
	}
	if view.GameOver {
		return h.pushState(userID, send)
	}
	send <- outboundMessage[any]{Type: "timer", Payload: timerPayload{
		SecondsRemaining: view.SecondsRemaining,
		SecondsElapsed:   view.SecondsElapsed,
	}}
	return false
}

package http

import (
	"encoding/json"
	"log"
	"net/http"

	"firstaid-quiz/internal/app"
	"github.com/gorilla/websocket"
)

// WSHandler exposes the presentation-layer contract over a websocket: the
// client sends discrete input events and receives full state snapshots to
// render. Game logic stays entirely inside the controller; this handler only
// translates messages.
type WSHandler struct {
	controller *app.GameController
	upgrader   websocket.Upgrader
}

func NewWSHandler(controller *app.GameController) *WSHandler {
	return &WSHandler{
		controller: controller,
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

type selectPayload struct {
	Option int `json:"option"`
}

type startLevelPayload struct {
	Level int `json:"level"`
}

type settingPayload struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

type answerResult struct {
	Correct bool `json:"correct"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and pumps input events into the game.
// After every accepted event the client gets a fresh snapshot; rejected
// events produce an error message and no state change.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	writeState := func() {
		if err := conn.WriteJSON(outboundMessage[app.Snapshot]{Type: "state", Payload: h.controller.Snapshot()}); err != nil {
			log.Printf("ws write error: %v", err)
		}
	}
	writeError := func(err error) {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
	}

	writeState()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}

		switch inbound.Type {
		case "startLevel":
			var payload startLevelPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				writeError(err)
				continue
			}
			if err := h.controller.StartLevel(ctx, payload.Level); err != nil {
				writeError(err)
				continue
			}
		case "quickPlay":
			if err := h.controller.QuickPlay(ctx); err != nil {
				writeError(err)
				continue
			}
		case "tryAgain":
			if err := h.controller.TryAgain(ctx); err != nil {
				writeError(err)
				continue
			}
		case "selectOption":
			var payload selectPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				writeError(err)
				continue
			}
			if err := h.controller.SelectAnswer(payload.Option); err != nil {
				writeError(err)
				continue
			}
		case "submit":
			correct, err := h.controller.SubmitAnswer()
			if err != nil {
				writeError(err)
				continue
			}
			_ = conn.WriteJSON(outboundMessage[answerResult]{Type: "answerResult", Payload: answerResult{Correct: correct}})
		case "answer":
			// Mouse flow: select and submit in one event.
			var payload selectPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				writeError(err)
				continue
			}
			if err := h.controller.SelectAnswer(payload.Option); err != nil {
				writeError(err)
				continue
			}
			correct, err := h.controller.SubmitAnswer()
			if err != nil {
				writeError(err)
				continue
			}
			_ = conn.WriteJSON(outboundMessage[answerResult]{Type: "answerResult", Payload: answerResult{Correct: correct}})
		case "advance":
			if err := h.controller.Advance(ctx); err != nil {
				writeError(err)
				continue
			}
		case "pause":
			if err := h.controller.Pause(); err != nil {
				writeError(err)
				continue
			}
		case "resume":
			if err := h.controller.Resume(); err != nil {
				writeError(err)
				continue
			}
		case "changeSetting":
			var payload settingPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				writeError(err)
				continue
			}
			if err := h.controller.ChangeSetting(ctx, payload.Key, payload.Value); err != nil {
				writeError(err)
				continue
			}
		case "openSettings":
			h.controller.OpenSettings()
		case "openLevelSelect":
			h.controller.OpenLevelSelect()
		case "returnToMenu":
			h.controller.ReturnToMenu()
		default:
			writeError(errUnsupported(inbound.Type))
			continue
		}
		writeState()
	}
}

type errUnsupported string

func (e errUnsupported) Error() string {
	return "unsupported message type " + string(e)
}

package web

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/abacusweb/abacus/internal/calc"
	"golang.org/x/net/websocket"
)

// wsKeyEvent is one key press sent by the live keypad client.
type wsKeyEvent struct {
	Key string `json:"key"`
}

// wsDisplayState is the display snapshot sent back after every key press and
// once on connect.
type wsDisplayState struct {
	Previous string `json:"previous"`
	Current  string `json:"current"`
	Error    bool   `json:"error,omitempty"`
}

// handleWS upgrades to a websocket and streams display state for key events.
func (h *Handler) handleWS(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess, err := h.ensureSession(w, r)
	if err != nil {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	websocket.Handler(func(conn *websocket.Conn) {
		h.serveKeypad(conn, sess)
	}).ServeHTTP(w, r)
}

// serveKeypad reads key events until the client disconnects. Invalid keys
// produce no state change; the current display is re-sent either way so the
// client never desynchronizes.
func (h *Handler) serveKeypad(conn *websocket.Conn, sess *session) {
	defer func() {
		_ = conn.Close()
	}()

	decoder := json.NewDecoder(conn)
	encoder := json.NewEncoder(conn)

	if err := encoder.Encode(wsState(sess)); err != nil {
		return
	}

	for {
		var event wsKeyEvent
		if err := decoder.Decode(&event); err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
				log.Printf("web: websocket read: %v", err)
			}
			return
		}

		sess.withEngine(func(e *calc.Engine) {
			if err := applyKey(e, event.Key); err != nil {
				log.Printf("web: websocket key %q ignored: %v", event.Key, err)
			}
		})

		if err := encoder.Encode(wsState(sess)); err != nil {
			return
		}
	}
}

// wsState snapshots the session display for the websocket client.
func wsState(sess *session) wsDisplayState {
	var state wsDisplayState
	sess.withEngine(func(e *calc.Engine) {
		state = wsDisplayState{
			Previous: e.PreviousLine(),
			Current:  e.CurrentLine(),
			Error:    e.Errored(),
		}
	})
	return state
}

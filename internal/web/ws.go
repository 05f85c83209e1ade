package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const wsWriteWait = 10 * time.Second

// The zero CheckOrigin rejects cross-origin browser handshakes; clients that
// send no Origin header are accepted.
var upgrader = websocket.Upgrader{}

type wsMessage struct {
	Type    string    `json:"type"`
	Payload *stateDTO `json:"payload,omitempty"`
}

func writeWS(conn *websocket.Conn, msg wsMessage) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return conn.WriteJSON(msg)
}

// ws streams JSON game states to a WebSocket client, sending the current
// state first and a ping message whenever the stream has been idle for a
// heartbeat interval.
func (h *handlers) ws(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.svc.Get(id); !ok {
		http.NotFound(w, r)
		return
	}
	showHints := r.URL.Query().Get("hints") == "1" || hintsEnabled(r)
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Str("game", id).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	ch, unsub, err := h.svc.Subscribe(ctx, id)
	if err != nil {
		return
	}
	defer unsub()

	// Reads only detect the peer going away.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if gs, ok := h.svc.Get(id); ok {
		dto := newStateDTO(*gs, showHints)
		if err := writeWS(conn, wsMessage{Type: "state", Payload: &dto}); err != nil {
			return
		}
	}

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()
	lastWrite := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if time.Since(lastWrite) < h.heartbeat {
				continue
			}
			if err := writeWS(conn, wsMessage{Type: "ping"}); err != nil {
				return
			}
			lastWrite = time.Now()
		case gs, ok := <-ch:
			if !ok {
				return
			}
			dto := newStateDTO(gs, showHints)
			if err := writeWS(conn, wsMessage{Type: "state", Payload: &dto}); err != nil {
				log.Debug().Err(err).Str("game", id).Msg("websocket write failed")
				return
			}
			lastWrite = time.Now()
		}
	}
}

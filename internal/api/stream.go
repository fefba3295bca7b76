package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"MrPredictor/internal/metrics"
	"MrPredictor/pkg/logger"

	"github.com/gorilla/websocket"
)

const streamWriteWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // dashboard may be served from anywhere, same as CORS
	},
}

// streamSelection is both the client's switch message and the current stream state.
type streamSelection struct {
	Ticker   string `json:"ticker"`
	Interval string `json:"interval"`
}

// handleStream pushes a snapshot every push interval. A selection message
// from the client switches ticker and/or interval and triggers an immediate push.
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	ticker, interval := h.selection(r)
	sel := streamSelection{Ticker: ticker, Interval: interval}

	log := logger.Get().With("remote", r.RemoteAddr, "request_id", r.Header.Get(requestIDHeader))

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnw("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	metrics.StreamConnections.Inc()
	defer metrics.StreamConnections.Dec()
	log.Infow("stream client connected", "ticker", sel.Ticker, "interval", sel.Interval)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := make(chan streamSelection, 1)
	go readSelections(conn, updates, cancel, log)

	timer := time.NewTicker(h.pushInterval)
	defer timer.Stop()

	push := func() bool {
		snap := h.snapshot(ctx, sel.Ticker, sel.Interval)
		if ctx.Err() != nil {
			return false
		}
		_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
		if err := conn.WriteJSON(snap); err != nil {
			log.Warnw("stream write failed", "error", err)
			return false
		}
		return true
	}

	if !push() {
		return
	}
	for {
		select {
		case <-ctx.Done():
			log.Infow("stream client disconnected")
			return
		case next := <-updates:
			log.Debugw("stream selection changed", "ticker", next.Ticker, "interval", next.Interval)
			if next.Ticker != "" {
				sel.Ticker = next.Ticker
			}
			if next.Interval != "" {
				sel.Interval = next.Interval
			}
			timer.Reset(h.pushInterval)
			if !push() {
				return
			}
		case <-timer.C:
			if !push() {
				return
			}
		}
	}
}

// readSelections reads client messages until the connection fails, keeping
// only the most recent selection pending. It cancels the stream on exit.
func readSelections(conn *websocket.Conn, updates chan streamSelection, cancel context.CancelFunc, log *logger.Logger) {
	defer cancel()
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warnw("websocket read error", "error", err)
			}
			return
		}
		var sel streamSelection
		if err := json.Unmarshal(message, &sel); err != nil {
			log.Debugw("ignoring malformed stream message", "error", err)
			continue
		}
		select {
		case updates <- sel:
		default:
			select {
			case <-updates:
			default:
			}
			updates <- sel
		}
	}
}

package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"sync"

	"golang.org/x/net/websocket"

	"github.com/fraudx/fraudx/internal/fraud"
	"github.com/fraudx/fraudx/internal/fraud/service"
)

type wsFrame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// wsPeer serializes frame writes; the feed goroutine and the read loop can
// both touch the connection.
type wsPeer struct {
	mu      sync.Mutex
	encoder *json.Encoder
}

func newWSPeer(encoder *json.Encoder) *wsPeer {
	return &wsPeer{encoder: encoder}
}

func (p *wsPeer) writeFrame(frame wsFrame) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.encoder.Encode(frame)
}

// newWSHandler upgrades connections and streams synthetic new-alert frames.
// Each connection owns one service subscription, cancelled when the peer
// disconnects or a push fails.
func newWSHandler(svc *service.Service) http.Handler {
	return websocket.Handler(func(conn *websocket.Conn) {
		handleWSConn(conn, svc)
	})
}

func handleWSConn(conn *websocket.Conn, svc *service.Service) {
	defer func() {
		_ = conn.Close()
	}()

	peer := newWSPeer(json.NewEncoder(conn))
	failed := make(chan struct{})
	var failOnce sync.Once

	cancel := svc.Subscribe(func(alert fraud.Alert) {
		if err := peer.writeFrame(wsFrame{Type: "new_alert", Payload: mustJSON(alert)}); err != nil {
			failOnce.Do(func() { close(failed) })
		}
	})
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		decoder := json.NewDecoder(conn)
		for {
			var frame wsFrame
			if err := decoder.Decode(&frame); err != nil {
				if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
					log.Printf("mockapi: websocket read ended: %v", err)
				}
				return
			}
			if frame.Type == "ping" {
				_ = peer.writeFrame(wsFrame{Type: "pong"})
			}
		}
	}()

	select {
	case <-done:
	case <-failed:
	}
}

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("failed to marshal websocket frame payload: %v", err)
		return nil
	}
	return b
}

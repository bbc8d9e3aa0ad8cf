package config

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader     websocket.Upgrader
	WriteTimeout time.Duration
	ReadLimit    int64
}

func NewWebSocket() (*WebSocket, error) {
	writeTimeout, err := durationEnv("WS_WRITE_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	ws := &WebSocket{
		Upgrader:     upgrader,
		WriteTimeout: writeTimeout,
		ReadLimit:    4096,
	}

	return ws, nil
}

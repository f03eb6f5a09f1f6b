package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"ojolmate-backend/internal/notify"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type StreamHandler struct {
	dispatcher *notify.Dispatcher
}

func NewStreamHandler(dispatcher *notify.Dispatcher) *StreamHandler {
	return &StreamHandler{dispatcher: dispatcher}
}

// StreamAlerts upgrades to a websocket and forwards every displayed
// notification to the client until it disconnects
func (h *StreamHandler) StreamAlerts(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade websocket connection: %v", err)
		return
	}
	defer conn.Close()

	sub := h.dispatcher.Subscribe()
	defer h.dispatcher.Unsubscribe(sub)

	// drain client frames so close/ping handling keeps working
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case notification := <-sub:
			if err := conn.WriteJSON(notification); err != nil {
				return
			}
		}
	}
}

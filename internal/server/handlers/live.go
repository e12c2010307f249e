package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
)

// liveClient is one dashboard connection on the live feed.
type liveClient struct {
	conn          *websocket.Conn
	send          chan []byte
	natsConn      *nats.Conn
	subscriptions []*nats.Subscription
	closeOnce     sync.Once
}

// liveFeedConfig contains timing configuration for live connections.
type liveFeedConfig struct {
	writeWait      time.Duration
	pongWait       time.Duration
	pingPeriod     time.Duration
	maxMessageSize int64
}

func defaultLiveFeedConfig() liveFeedConfig {
	return liveFeedConfig{
		writeWait:      10 * time.Second,
		pongWait:       60 * time.Second,
		pingPeriod:     (60 * time.Second * 9) / 10,
		maxMessageSize: 4096,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The dashboard may be served from a different origin.
		return true
	},
}

// LiveFeedHandler upgrades the connection and relays ingest events from
// the NATS bus to the dashboard, so charts can refresh without polling.
func LiveFeedHandler(natsConn *nats.Conn, eventsTopic string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("Failed to upgrade to WebSocket: %v", err)
			return
		}

		client := &liveClient{
			conn:     conn,
			send:     make(chan []byte, 64),
			natsConn: natsConn,
		}

		go client.writePump()
		go client.readPump()

		if err := client.subscribe(eventsTopic); err != nil {
			log.Printf("Failed to subscribe to ingest events: %v", err)
			client.close()
			return
		}

		welcome, _ := json.Marshal(map[string]interface{}{
			"type": "welcome",
			"time": time.Now().UTC(),
		})
		client.send <- welcome
	}
}

// subscribe relays every event under the ingest topic to this client.
func (c *liveClient) subscribe(eventsTopic string) error {
	sub, err := c.natsConn.Subscribe(fmt.Sprintf("%s.>", eventsTopic), func(msg *nats.Msg) {
		select {
		case c.send <- msg.Data:
		default:
			// Slow consumer; drop rather than block the bus callback.
		}
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s events: %w", eventsTopic, err)
	}
	c.subscriptions = append(c.subscriptions, sub)
	return nil
}

// readPump drains the connection so pings and close frames are
// processed; the live feed is write-only from the client's view.
func (c *liveClient) readPump() {
	config := defaultLiveFeedConfig()

	defer c.close()

	c.conn.SetReadLimit(config.maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(config.pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(config.pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump pumps bus events to the WebSocket connection.
func (c *liveClient) writePump() {
	config := defaultLiveFeedConfig()
	ticker := time.NewTicker(config.pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(config.writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(config.writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// close unsubscribes from the bus and closes the connection. Safe to
// call from both pumps.
func (c *liveClient) close() {
	c.closeOnce.Do(func() {
		for _, sub := range c.subscriptions {
			sub.Unsubscribe()
		}
		c.conn.Close()
	})
}

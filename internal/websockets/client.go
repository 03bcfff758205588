package websockets

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait = 10 * time.Second

	pongWait = 60 * time.Second

	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 1024 * 1024 // 1MB
)

type MessageType string

const (
	TypeInventoryUpdate  MessageType = "inventory.update"
	TypeStationUpdate    MessageType = "station.update"
	TypeStationSubscribe MessageType = "station.subscribe"
	TypeError            MessageType = "error"
	TypePing             MessageType = "ping"
	TypePong             MessageType = "pong"
)

type ClientType string

const (
	ClientTypeAdmin     ClientType = "admin"
	ClientTypeOperator  ClientType = "operator"
	ClientTypeDashboard ClientType = "dashboard"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	StationID string          `json:"station_id,omitempty"`
}

// InventoryUpdate is pushed to a station's subscribers after a reallocation
// touches its inventory.
type InventoryUpdate struct {
	StationID string `json:"station_id"`
	Direction string `json:"direction"`
	Model     string `json:"model"`
	Color     string `json:"color"`
	Count     int    `json:"count"`
}

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	operatorID string

	clientType ClientType

	stationID string
}

func NewClient(hub *Hub, conn *websocket.Conn, operatorID string, clientType ClientType) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, 256),
		operatorID: operatorID,
		clientType: clientType,
	}
}

func (c *Client) SetStationID(stationID string) {
	c.stationID = stationID
	if stationID != "" {
		c.hub.RegisterStationClient(c, stationID)
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Warn("websocket read failed", zap.Error(err))
			}
			break
		}

		var wsMessage Message
		if err := json.Unmarshal(message, &wsMessage); err != nil {
			c.hub.log.Warn("unreadable websocket message", zap.Error(err))
			continue
		}

		switch wsMessage.Type {
		case TypeStationSubscribe:
			var subscribeData struct {
				StationID string `json:"station_id"`
			}
			if err := json.Unmarshal(wsMessage.Data, &subscribeData); err != nil {
				c.hub.log.Warn("unreadable subscribe data", zap.Error(err))
				continue
			}
			c.SetStationID(subscribeData.StationID)

		case TypePing:
			pongMsg, _ := json.Marshal(Message{Type: TypePong})
			c.hub.Send(c, pongMsg)

		default:
			// Clients do not originate fleet events; anything else is noise.
			c.hub.log.Debug("ignoring client message", zap.String("type", string(wsMessage.Type)))
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func ServeWs(hub *Hub, conn *websocket.Conn, operatorID string, clientType ClientType) {
	client := NewClient(hub, conn, operatorID, clientType)

	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// Package ws broadcasts audit activity to connected UI clients over
// Socket.IO and persists events for incremental replay.
package ws

import (
	"net/http"

	socketio "github.com/googollee/go-socket.io"
	"github.com/googollee/go-socket.io/engineio"
	"github.com/googollee/go-socket.io/engineio/transport"
	"github.com/googollee/go-socket.io/engineio/transport/polling"
	"github.com/googollee/go-socket.io/engineio/transport/websocket"

	"ipocket/internal/logx"
)

var (
	// Server is the global Socket.IO server instance
	Server *socketio.Server
)

// InitServer initializes the Socket.IO server
func InitServer() error {
	server := socketio.NewServer(&engineio.Options{
		Transports: []transport.Transport{
			&polling.Transport{
				CheckOrigin: func(r *http.Request) bool {
					return true
				},
			},
			&websocket.Transport{
				CheckOrigin: func(r *http.Request) bool {
					return true
				},
			},
		},
	})

	server.OnConnect("/", func(s socketio.Conn) error {
		logx.L().WithField("sid", s.ID()).Debug("activity feed client connected")
		s.Emit("connected", map[string]interface{}{
			"ok": true,
		})
		return nil
	})

	server.OnEvent("/", "replay", func(s socketio.Conn, lastEventID int64) {
		events, err := GetIncrementalEvents(lastEventID, 100)
		if err != nil {
			logx.L().WithError(err).Warn("failed to load replay events")
			return
		}
		for _, event := range events {
			s.Emit(topicAudit+":update", map[string]interface{}{
				"eventId": event.ID,
				"type":    event.EventType,
				"data":    event.Payload,
			})
		}
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		logx.L().WithField("sid", s.ID()).WithField("reason", reason).
			Debug("activity feed client disconnected")
	})

	Server = server

	go func() {
		if err := server.Serve(); err != nil {
			logx.L().WithError(err).Error("socket.io server stopped")
		}
	}()

	return nil
}

// BroadcastToAll emits an event to every connected client
func BroadcastToAll(event string, data interface{}) {
	if Server == nil {
		return
	}
	Server.BroadcastToNamespace("/", event, data)
}

// Close shuts down the Socket.IO server
func Close() error {
	if Server != nil {
		return Server.Close()
	}
	return nil
}

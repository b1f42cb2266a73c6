package controllers

import (
	"net/http"

	"alertwatch/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// AuditStream upgrades GET /ws/audit to a websocket and streams review
// audit events as JSON frames. Non-admins get the same 404 as any other
// denied record.
func AuditStream(hub *services.RealtimeHub) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if !user.IsAdmin() {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		client := &services.WSClient{UserID: user.ID, Conn: conn}
		hub.Register(client)

		// Drain the connection until the client goes away.
		go func() {
			defer hub.Unregister(client)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}

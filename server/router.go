package server

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"snakeduel/config"
	"snakeduel/protocol"
)

var upgrader = websocket.Upgrader{
	// Allow all origins for development; tighten in production
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// NewRouter serves the websocket endpoint, the status endpoint and the
// client assets from s.StaticDir
func NewRouter(h *Hub, s config.Settings) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	limiter := newIPRateLimiter(s.IPCooldown)
	r.GET(config.WebSocketPath, serveWS(h, limiter))
	r.GET(config.StatusPath, func(c *gin.Context) {
		c.JSON(http.StatusOK, h.Status())
	})

	// Serve static client files for every other path
	r.NoRoute(gin.WrapH(http.FileServer(http.Dir(s.StaticDir))))
	return r
}

// serveWS upgrades the request and runs the connection until it closes.
// ?enc=msgpack switches the connection to binary msgpack frames.
func serveWS(h *Hub, limiter *ipRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("ws upgrade error: %v", err)
			return
		}

		conn := NewConn(ws, protocol.CodecByName(c.Query("enc")))
		go conn.WritePump()

		// Check limits after upgrade so client can receive error messages
		if !limiter.allow(c.ClientIP()) {
			_ = conn.Send(protocol.MsgError, protocol.Error{Message: "Too many connections. Please wait."})
			_ = conn.Close()
			return
		}
		if !h.Connect(conn.ID, conn) {
			return
		}

		// Blocking read loop, runs until client disconnects
		conn.ReadLoop(h)
	}
}

package game

import (
	"net/http"
	"slices"

	"github.com/Supp140106/scribe/auth"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type GameHandler struct {
	engine   *Engine
	idGen    UniqueIdGenerator
	upgrader websocket.Upgrader
}

func NewGameHandler(engine *Engine, allowedOrigins []string) *GameHandler {
	return &GameHandler{
		engine: engine,
		idGen:  NewIdGen(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

// SocketHandler upgrades the request. Guests connect without an identity.
func (h *GameHandler) SocketHandler(ctx *gin.Context) {
	user, _ := auth.UserFrom(ctx)

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Warn().Err(err).Str("ip", ctx.ClientIP()).Msg("websocket upgrade failed")
		return
	}

	socket := NewWebsocketConnection(conn)
	client := NewClient(h.idGen.Generate(), user)
	if err := h.engine.Connect(ctx.Request.Context(), client); err != nil {
		socket.Close(err.Error())
		return
	}

	go client.WritePump(socket)
	go client.ReadPump(socket, h.engine)
}

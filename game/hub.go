package game

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
)

type Broadcaster interface {
	ToConn(connId string, ev Outbound)
	ToRoom(roomId string, ev Outbound)
	ToRoomExcept(roomId, exceptConnId string, ev Outbound)
	JoinRoom(connId, roomId string)
	LeaveRoom(connId, roomId string)
	Drop(connId string)
}

// hub fans frames out to client buffers. It belongs to the engine goroutine.
type hub struct {
	clients    map[string]*Client
	rooms      map[string]map[string]struct{}
	onOverflow func(connId string)
}

func newHub() *hub {
	return &hub{
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[string]struct{}),
	}
}

func (h *hub) add(c *Client) {
	h.clients[c.id] = c
}

func (h *hub) JoinRoom(connId, roomId string) {
	members, ok := h.rooms[roomId]
	if !ok {
		members = make(map[string]struct{})
		h.rooms[roomId] = members
	}
	members[connId] = struct{}{}
}

func (h *hub) LeaveRoom(connId, roomId string) {
	members, ok := h.rooms[roomId]
	if !ok {
		return
	}
	delete(members, connId)
	if len(members) == 0 {
		delete(h.rooms, roomId)
	}
}

func (h *hub) Drop(connId string) {
	c, ok := h.clients[connId]
	if !ok {
		return
	}
	h.forget(connId)
	c.release("")
}

func (h *hub) ToConn(connId string, ev Outbound) {
	data, ok := encode(ev)
	if !ok {
		return
	}
	h.deliver(connId, data)
}

func (h *hub) ToRoom(roomId string, ev Outbound) {
	h.ToRoomExcept(roomId, "", ev)
}

func (h *hub) ToRoomExcept(roomId, exceptConnId string, ev Outbound) {
	members := h.rooms[roomId]
	if len(members) == 0 {
		return
	}
	data, ok := encode(ev)
	if !ok {
		return
	}
	for connId := range members {
		if connId != exceptConnId {
			h.deliver(connId, data)
		}
	}
}

func (h *hub) deliver(connId string, data []byte) {
	c, ok := h.clients[connId]
	if !ok {
		return
	}
	if c.enqueue(data) {
		return
	}
	log.Warn().Str("conn", connId).Msg("send buffer full, dropping client")
	h.forget(connId)
	c.release(ErrSendBufferFull.Error())
	if h.onOverflow != nil {
		h.onOverflow(connId)
	}
}

func (h *hub) forget(connId string) {
	delete(h.clients, connId)
	for roomId := range h.rooms {
		h.LeaveRoom(connId, roomId)
	}
}

func encode(ev Outbound) ([]byte, bool) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("event", ev.Event).Msg("failed to encode frame")
		return nil, false
	}
	return data, true
}

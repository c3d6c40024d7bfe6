package game

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/Supp140106/scribe/domain"
	"golang.org/x/time/rate"
)

const (
	sendBufferSize = 256
	inboundRate    = 60
	inboundBurst   = 120
)

type dispatcher interface {
	Dispatch(env Envelope)
	Disconnect(connId string)
}

// Client is one websocket connection. Only the engine goroutine writes to send.
type Client struct {
	id           string
	user         domain.User
	limiter      *rate.Limiter
	send         chan []byte
	pingInterval time.Duration

	releaseOnce sync.Once
	closeReason string
}

func NewClient(id string, user domain.User) *Client {
	return &Client{
		id:           id,
		user:         user,
		limiter:      rate.NewLimiter(inboundRate, inboundBurst),
		send:         make(chan []byte, sendBufferSize),
		pingInterval: pingInterval,
	}
}

func (c *Client) Id() string {
	return c.id
}

// enqueue never blocks; a full buffer reports false.
func (c *Client) enqueue(data []byte) bool {
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *Client) release(reason string) {
	c.releaseOnce.Do(func() {
		c.closeReason = reason
		close(c.send)
	})
}

func (c *Client) ReadPump(socket WebsocketConnection, d dispatcher) {
	defer d.Disconnect(c.id)

	for {
		data, err := socket.Read()
		if err != nil {
			return
		}
		if !c.limiter.Allow() {
			continue
		}

		var frame wireFrame
		if err := json.Unmarshal(data, &frame); err != nil || frame.Event == "" {
			d.Dispatch(Envelope{ConnId: c.id, Malformed: true})
			continue
		}
		d.Dispatch(Envelope{ConnId: c.id, Event: frame.Event, Data: frame.Data})
	}
}

func (c *Client) WritePump(socket WebsocketConnection) {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				socket.Close(c.closeReason)
				return
			}
			if err := socket.Write(data); err != nil {
				socket.Close("")
				return
			}
		case <-ticker.C:
			if err := socket.Ping(); err != nil {
				socket.Close("")
				return
			}
		}
	}
}

package game

import (
	"context"
	"errors"
	"time"

	"github.com/Supp140106/scribe/domain"
	"github.com/rs/zerolog/log"
)

const (
	inboxSize      = 1024
	persistTimeout = 5 * time.Second
)

type MatchRecorder interface {
	RecordMatch(ctx context.Context, outcomes []domain.MatchOutcome) error
}

type GamePublisher interface {
	PublishGameFinished(summary domain.GameSummary) error
}

// Engine serializes every state change of every room on one goroutine.
type Engine struct {
	rules    Rules
	registry *Registry
	words    RandomWordsGenerator
	clock    Clock
	out      Broadcaster
	hub      *hub

	recorder  MatchRecorder
	publisher GamePublisher

	identities map[string]domain.User

	connects    chan *Client
	inbox       chan Envelope
	disconnects chan string
	timers      chan timerFired
	done        chan struct{}

	timerSeq   uint64
	deliver    func(timerFired)
	background func(func())
}

func NewEngine(rules Rules, words RandomWordsGenerator, recorder MatchRecorder, publisher GamePublisher) *Engine {
	h := newHub()
	e := newEngine(rules, words, NewClock(), NewIdGen(), NewAccessCodeGen(), h)
	e.hub = h
	e.recorder = recorder
	e.publisher = publisher
	h.onOverflow = func(connId string) {
		go e.Disconnect(connId)
	}
	return e
}

func newEngine(rules Rules, words RandomWordsGenerator, clock Clock, idGen, codeGen UniqueIdGenerator, out Broadcaster) *Engine {
	e := &Engine{
		rules:       rules,
		registry:    NewRegistry(idGen, codeGen, rules.MaxPlayers, rules.MaxRounds),
		words:       words,
		clock:       clock,
		out:         out,
		identities:  make(map[string]domain.User),
		connects:    make(chan *Client),
		inbox:       make(chan Envelope, inboxSize),
		disconnects: make(chan string, inboxSize),
		timers:      make(chan timerFired, inboxSize),
		done:        make(chan struct{}),
		background:  func(f func()) { go f() },
	}
	e.deliver = func(f timerFired) {
		select {
		case e.timers <- f:
		case <-e.done:
		}
	}
	return e
}

func (e *Engine) Run(ctx context.Context, started chan struct{}) {
	defer close(e.done)
	close(started)
	log.Info().Msg("game engine started")

	for {
		select {
		case <-ctx.Done():
			e.shutdown()
			log.Info().Msg("game engine stopped")
			return
		case c := <-e.connects:
			e.handleConnect(c)
		case env := <-e.inbox:
			e.handleEnvelope(env)
		case connId := <-e.disconnects:
			e.handleDisconnect(connId)
		case f := <-e.timers:
			e.handleTimer(f)
		}
	}
}

// Connect returns once the engine has registered the client.
func (e *Engine) Connect(ctx context.Context, c *Client) error {
	select {
	case e.connects <- c:
		return nil
	case <-e.done:
		return ErrEngineStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Engine) Dispatch(env Envelope) {
	select {
	case e.inbox <- env:
	case <-e.done:
	}
}

func (e *Engine) Disconnect(connId string) {
	select {
	case e.disconnects <- connId:
	case <-e.done:
	}
}

func (e *Engine) handleConnect(c *Client) {
	if e.hub != nil {
		e.hub.add(c)
	}
	e.register(c.id, c.user)
	log.Debug().Str("conn", c.id).Str("user", c.user.Id).Msg("client connected")
}

func (e *Engine) register(connId string, user domain.User) {
	e.identities[connId] = user
}

func (e *Engine) handleDisconnect(connId string) {
	if _, ok := e.identities[connId]; !ok {
		return
	}
	e.reconcileDeparture(connId)
	delete(e.identities, connId)
	e.out.Drop(connId)
	log.Debug().Str("conn", connId).Msg("client disconnected")
}

func (e *Engine) shutdown() {
	for _, room := range e.registry.Rooms() {
		room.stopTimers()
	}
	for connId := range e.identities {
		e.out.Drop(connId)
	}
}

func (e *Engine) toRoom(room *Room, event string, data any) {
	e.out.ToRoom(room.id, Outbound{Event: event, Data: data})
}

func (e *Engine) toConn(connId, event string, data any) {
	e.out.ToConn(connId, Outbound{Event: event, Data: data})
}

func (e *Engine) sendError(connId string, err error) {
	for known, msg := range errorMessages {
		if errors.Is(err, known) {
			e.toConn(connId, EventError, errorData{Code: known.Error(), Message: msg})
			return
		}
	}
	log.Error().Err(err).Str("conn", connId).Msg("unexpected engine error")
	e.toConn(connId, EventError, errorData{Code: "unknown-error", Message: "Something went wrong."})
}

func (e *Engine) broadcastPlayerList(room *Room) {
	e.toRoom(room, EventPlayerList, playerListData{Players: room.roster()})
}

func (e *Engine) setPhase(room *Room, phase Phase) {
	room.phase = phase
	e.toRoom(room, EventRoomStatus, roomStatusData{Status: phase, Round: room.round})
}

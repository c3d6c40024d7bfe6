package game

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

const maxNameLength = 24

func (e *Engine) handleEnvelope(env Envelope) {
	if _, ok := e.identities[env.ConnId]; !ok {
		return
	}
	if env.Malformed {
		e.sendError(env.ConnId, ErrMalformedEvent)
		return
	}

	var err error
	switch env.Event {
	case EventJoin:
		var p joinPayload
		if err = decode(env.Data, &p); err == nil {
			err = e.handleJoin(env.ConnId, p)
		}
	case EventJoinPrivate:
		var p joinPrivatePayload
		if err = decode(env.Data, &p); err == nil {
			err = e.handleJoinPrivate(env.ConnId, p)
		}
	case EventCreatePrivate:
		var p joinPayload
		if err = decode(env.Data, &p); err == nil {
			err = e.handleCreatePrivate(env.ConnId, p)
		}
	case EventChooseWord:
		var p chooseWordPayload
		if err = decode(env.Data, &p); err == nil {
			err = e.handleChooseWord(env.ConnId, p)
		}
	case EventSubmitGuess:
		var p guessPayload
		if err = decode(env.Data, &p); err == nil {
			e.handleGuess(env.ConnId, p)
		}
	case EventStrokeSegment:
		var p strokeSegmentPayload
		if err = decode(env.Data, &p); err == nil {
			e.handleStrokeSegment(env.ConnId, p)
		}
	case EventStrokeComplete:
		var p strokeCompletePayload
		if err = decode(env.Data, &p); err == nil {
			e.handleStrokeComplete(env.ConnId, p)
		}
	case EventClearCanvas:
		var p roomPayload
		if err = decode(env.Data, &p); err == nil {
			e.handleClearCanvas(env.ConnId, p)
		}
	case EventUndoLastStroke:
		var p roomPayload
		if err = decode(env.Data, &p); err == nil {
			e.handleUndo(env.ConnId, p)
		}
	case EventLeaveRoom:
		var p roomPayload
		if err = decode(env.Data, &p); err == nil {
			e.handleLeave(env.ConnId, p)
		}
	default:
		err = ErrUnknownEvent
	}

	if err != nil {
		log.Debug().Err(err).Str("conn", env.ConnId).Str("event", env.Event).Msg("event rejected")
		e.sendError(env.ConnId, err)
	}
}

func decode(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return ErrMalformedEvent
	}
	return nil
}

// memberOf resolves the sender's room, requiring the claimed room id to match.
func (e *Engine) memberOf(connId, roomId string) (*Room, *Player) {
	room := e.registry.RoomOf(connId)
	if room == nil || room.id != roomId {
		return nil, nil
	}
	return room, room.player(connId)
}

func (e *Engine) resolveName(connId, requested string) (string, error) {
	name := strings.TrimSpace(requested)
	if name == "" {
		name = strings.TrimSpace(e.identities[connId].DisplayName)
	}
	if name == "" {
		return "", ErrInvalidName
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		name = string([]rune(name)[:maxNameLength])
	}
	return name, nil
}

func (e *Engine) handleJoin(connId string, p joinPayload) error {
	if e.registry.RoomOf(connId) != nil {
		return ErrAlreadyInRoom
	}
	name, err := e.resolveName(connId, p.Name)
	if err != nil {
		return err
	}
	return e.admit(e.registry.FindOrCreatePublic(), connId, name)
}

func (e *Engine) handleCreatePrivate(connId string, p joinPayload) error {
	if e.registry.RoomOf(connId) != nil {
		return ErrAlreadyInRoom
	}
	name, err := e.resolveName(connId, p.Name)
	if err != nil {
		return err
	}
	room, err := e.registry.CreatePrivate()
	if err != nil {
		return err
	}
	return e.admit(room, connId, name)
}

func (e *Engine) handleJoinPrivate(connId string, p joinPrivatePayload) error {
	if e.registry.RoomOf(connId) != nil {
		return ErrAlreadyInRoom
	}
	name, err := e.resolveName(connId, p.Name)
	if err != nil {
		return err
	}
	room := e.registry.FindByCode(p.RoomCode)
	if room == nil {
		return ErrRoomNotFound
	}
	if room.phase == PhaseFinished {
		return ErrGameFinished
	}
	return e.admit(room, connId, name)
}

func (e *Engine) admit(room *Room, connId, name string) error {
	identity := e.identities[connId]
	player := newPlayer(connId, name, identity.Id, identity.AvatarURL)
	if err := e.registry.Join(room, player); err != nil {
		if room.isEmpty() {
			e.registry.Remove(room.id)
		}
		return err
	}
	e.out.JoinRoom(connId, room.id)

	e.toConn(connId, EventRoomJoined, room.snapshot(connId))
	e.broadcastPlayerList(room)
	e.toConn(connId, EventRoomStatus, roomStatusData{Status: room.phase, Round: room.round})
	if room.phase == PhaseInRound && len(room.strokes) > 0 {
		e.toConn(connId, EventCanvasLoad, strokesData{Strokes: room.strokes})
	}

	log.Debug().Str("room", room.id).Str("player", connId).Int("players", len(room.players)).Msg("player joined")
	e.maybeStart(room)
	return nil
}

func (e *Engine) handleChooseWord(connId string, p chooseWordPayload) error {
	room, _ := e.memberOf(connId, p.RoomId)
	if room == nil {
		return ErrNotInRoom
	}
	return e.chooseWord(room, connId, p.Word)
}

func (e *Engine) handleGuess(connId string, p guessPayload) {
	room, player := e.memberOf(connId, p.RoomId)
	if room == nil {
		return
	}
	e.evaluateGuess(room, player, p.Guess)
}

func (e *Engine) handleStrokeSegment(connId string, p strokeSegmentPayload) {
	room, _ := e.memberOf(connId, p.RoomId)
	if room == nil || !p.complete() {
		return
	}
	e.out.ToRoomExcept(room.id, connId, Outbound{Event: EventStrokeSegment, Data: strokeSegmentData{
		X0: *p.X0, Y0: *p.Y0, X1: *p.X1, Y1: *p.Y1,
		Color: p.Color, Size: p.Size,
	}})
}

func (e *Engine) handleStrokeComplete(connId string, p strokeCompletePayload) {
	room, _ := e.memberOf(connId, p.RoomId)
	if room == nil || p.Stroke == nil {
		return
	}
	room.appendStroke(*p.Stroke)
	e.out.ToRoomExcept(room.id, connId, Outbound{Event: EventStrokeComplete, Data: strokeCompleteData{Stroke: *p.Stroke}})
}

func (e *Engine) handleClearCanvas(connId string, p roomPayload) {
	room, _ := e.memberOf(connId, p.RoomId)
	if room == nil {
		return
	}
	room.clearStrokes()
	e.out.ToRoomExcept(room.id, connId, Outbound{Event: EventClearCanvas})
}

func (e *Engine) handleUndo(connId string, p roomPayload) {
	room, _ := e.memberOf(connId, p.RoomId)
	if room == nil || !room.undoStroke() {
		return
	}
	e.toRoom(room, EventUndoLastStroke, strokesData{Strokes: room.strokes})
}

func (e *Engine) handleLeave(connId string, p roomPayload) {
	room, _ := e.memberOf(connId, p.RoomId)
	if room == nil {
		return
	}
	e.reconcileDeparture(connId)
}

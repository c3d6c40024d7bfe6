package game

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

const maxAccessCodeAttempts = 32

// Registry owns every live room and the indexes pointing into them.
// It is only touched from the engine goroutine.
type Registry struct {
	rooms    map[string]*Room
	order    []string
	byCode   map[string]string
	byPlayer map[string]string

	idGen     UniqueIdGenerator
	codeGen   UniqueIdGenerator
	capacity  int
	maxRounds int
}

func NewRegistry(idGen, codeGen UniqueIdGenerator, capacity, maxRounds int) *Registry {
	return &Registry{
		rooms:     make(map[string]*Room),
		byCode:    make(map[string]string),
		byPlayer:  make(map[string]string),
		idGen:     idGen,
		codeGen:   codeGen,
		capacity:  capacity,
		maxRounds: maxRounds,
	}
}

// FindOrCreatePublic returns the oldest public waiting room with a free seat,
// creating one if none exists.
func (rg *Registry) FindOrCreatePublic() *Room {
	for _, id := range rg.order {
		room := rg.rooms[id]
		if !room.private && room.phase == PhaseWaiting && !room.isFull() {
			return room
		}
	}
	room := newRoom(rg.idGen.Generate(), "", false, rg.capacity, rg.maxRounds)
	rg.insert(room)
	log.Debug().Str("room", room.id).Msg("public room created")
	return room
}

func (rg *Registry) CreatePrivate() (*Room, error) {
	for range maxAccessCodeAttempts {
		code := strings.ToUpper(rg.codeGen.Generate())
		if _, taken := rg.byCode[code]; taken {
			continue
		}
		room := newRoom(rg.idGen.Generate(), code, true, rg.capacity, rg.maxRounds)
		rg.insert(room)
		rg.byCode[code] = room.id
		log.Debug().Str("room", room.id).Str("code", code).Msg("private room created")
		return room, nil
	}
	return nil, ErrAccessCodeExhausted
}

func (rg *Registry) FindByCode(code string) *Room {
	id, ok := rg.byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return nil
	}
	return rg.rooms[id]
}

func (rg *Registry) Get(id string) *Room {
	return rg.rooms[id]
}

func (rg *Registry) RoomOf(playerId string) *Room {
	id, ok := rg.byPlayer[playerId]
	if !ok {
		return nil
	}
	return rg.rooms[id]
}

func (rg *Registry) Join(room *Room, p *Player) error {
	if _, ok := rg.byPlayer[p.id]; ok {
		return ErrAlreadyInRoom
	}
	if err := room.addPlayer(p); err != nil {
		return err
	}
	rg.byPlayer[p.id] = room.id
	return nil
}

// Leave removes the player from its room. Calling it twice is a no-op.
func (rg *Registry) Leave(playerId string) (*Room, *Player) {
	room := rg.RoomOf(playerId)
	delete(rg.byPlayer, playerId)
	if room == nil {
		return nil, nil
	}
	p := room.removePlayer(playerId)
	if p == nil {
		return nil, nil
	}
	return room, p
}

// Remove cancels the room's timers and drops it from every index.
func (rg *Registry) Remove(id string) {
	room, ok := rg.rooms[id]
	if !ok {
		return
	}
	room.stopTimers()
	for _, p := range room.players {
		delete(rg.byPlayer, p.id)
	}
	if room.accessCode != "" {
		delete(rg.byCode, room.accessCode)
	}
	delete(rg.rooms, id)
	rg.order = lo.Without(rg.order, id)
	log.Debug().Str("room", id).Msg("room removed")
}

func (rg *Registry) Len() int {
	return len(rg.rooms)
}

func (rg *Registry) Rooms() []*Room {
	return lo.Map(rg.order, func(id string, _ int) *Room { return rg.rooms[id] })
}

func (rg *Registry) insert(room *Room) {
	rg.rooms[room.id] = room
	rg.order = append(rg.order, room.id)
}

package game

import (
	"time"

	"github.com/samber/lo"
)

type Phase string

const (
	PhaseWaiting      Phase = "waiting"
	PhaseStarting     Phase = "starting"
	PhaseChoosingWord Phase = "choosing-word"
	PhaseInRound      Phase = "in-round"
	PhaseIntermission Phase = "intermission"
	PhaseFinished     Phase = "finished"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Stroke struct {
	Points []Point `json:"points"`
	Color  string  `json:"color"`
	Width  float64 `json:"width"`
}

type Player struct {
	id        string
	name      string
	userId    string
	avatarURL string
	score     int
	guessed   bool
	connected bool
}

func newPlayer(connId, name, userId, avatarURL string) *Player {
	return &Player{
		id:        connId,
		name:      name,
		userId:    userId,
		avatarURL: avatarURL,
		connected: true,
	}
}

func (p *Player) view() PlayerView {
	return PlayerView{
		Id:        p.id,
		Name:      p.name,
		Avatar:    p.avatarURL,
		Score:     p.score,
		Guessed:   p.guessed,
		Connected: p.connected,
	}
}

type Room struct {
	id         string
	accessCode string
	private    bool
	capacity   int

	// players keeps join order; drawer rotation indexes into it.
	players  []*Player
	hostId   string
	drawerId string

	phase          Phase
	round          int
	maxRounds      int
	currentWord    string
	wordChoices    []string
	roundStartedAt time.Time
	strokes        []Stroke

	timers [timerKinds]armedTimer
}

func newRoom(id, accessCode string, private bool, capacity, maxRounds int) *Room {
	return &Room{
		id:         id,
		accessCode: accessCode,
		private:    private,
		capacity:   capacity,
		maxRounds:  maxRounds,
		phase:      PhaseWaiting,
	}
}

func (r *Room) Id() string { return r.id }
func (r *Room) Phase() Phase { return r.phase }
func (r *Room) Round() int { return r.round }
func (r *Room) Len() int { return len(r.players) }
func (r *Room) isFull() bool { return len(r.players) >= r.capacity }
func (r *Room) isEmpty() bool { return len(r.players) == 0 }
func (r *Room) Private() bool { return r.private }
func (r *Room) Code() string { return r.accessCode }
func (r *Room) Drawer() string { return r.drawerId }

func (r *Room) addPlayer(p *Player) error {
	if r.isFull() {
		return ErrRoomFull
	}
	r.players = append(r.players, p)
	if r.hostId == "" {
		r.hostId = p.id
	}
	return nil
}

func (r *Room) removePlayer(id string) *Player {
	_, idx, found := lo.FindIndexOf(r.players, func(p *Player) bool { return p.id == id })
	if !found {
		return nil
	}
	p := r.players[idx]
	r.players = append(r.players[:idx], r.players[idx+1:]...)
	return p
}

func (r *Room) player(id string) *Player {
	p, _ := lo.Find(r.players, func(p *Player) bool { return p.id == id })
	return p
}

func (r *Room) drawer() *Player {
	if r.drawerId == "" {
		return nil
	}
	return r.player(r.drawerId)
}

func (r *Room) guessers() []*Player {
	return lo.Filter(r.players, func(p *Player, _ int) bool { return p.id != r.drawerId })
}

func (r *Room) everyoneGuessed() bool {
	return lo.EveryBy(r.guessers(), func(p *Player) bool { return p.guessed })
}

func (r *Room) resetScores() {
	for _, p := range r.players {
		p.score = 0
	}
}

func (r *Room) resetGuesses() {
	for _, p := range r.players {
		p.guessed = false
	}
}

// reconcilePointers moves host and drawer off players that are gone.
func (r *Room) reconcilePointers() {
	if len(r.players) == 0 {
		r.hostId, r.drawerId = "", ""
		return
	}
	if r.player(r.hostId) == nil {
		r.hostId = r.players[0].id
	}
	if r.drawerId != "" && r.player(r.drawerId) == nil {
		r.drawerId = r.players[0].id
	}
}

func (r *Room) appendStroke(s Stroke) {
	r.strokes = append(r.strokes, s)
}

func (r *Room) undoStroke() bool {
	if len(r.strokes) == 0 {
		return false
	}
	r.strokes = r.strokes[:len(r.strokes)-1]
	return true
}

func (r *Room) clearStrokes() {
	r.strokes = nil
}

func (r *Room) roster() []PlayerView {
	return lo.Map(r.players, func(p *Player, _ int) PlayerView { return p.view() })
}

func (r *Room) scores() []ScoreEntry {
	return lo.Map(r.players, func(p *Player, _ int) ScoreEntry {
		return ScoreEntry{Id: p.id, Name: p.name, Score: p.score}
	})
}

func (r *Room) snapshot(forId string) RoomSnapshot {
	snap := RoomSnapshot{
		RoomId:       r.id,
		Private:      r.private,
		Status:       r.phase,
		Round:        r.round,
		MaxRounds:    r.maxRounds,
		HostId:       r.hostId,
		DrawerId:     r.drawerId,
		YouAreDrawer: forId != "" && forId == r.drawerId,
		YourId:       forId,
		Players:      r.roster(),
		PlayerCount:  len(r.players),
	}
	if r.private {
		snap.AccessCode = r.accessCode
	}
	return snap
}

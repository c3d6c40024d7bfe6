package game

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// maybeStart moves a waiting room into the start countdown once enough players are seated.
func (e *Engine) maybeStart(room *Room) {
	if room.phase != PhaseWaiting || len(room.players) < e.rules.MinPlayers {
		return
	}
	room.round = 0
	room.resetScores()
	room.resetGuesses()
	e.setPhase(room, PhaseStarting)
	e.arm(room, intermissionTimer, e.rules.StartDelay)
	log.Info().Str("room", room.id).Int("players", len(room.players)).Msg("game starting")
}

func (e *Engine) onRoundTimer(room *Room) {
	switch room.phase {
	case PhaseChoosingWord:
		if len(room.wordChoices) == 0 {
			return
		}
		log.Debug().Str("room", room.id).Msg("word choice timed out")
		e.startDrawing(room, room.wordChoices[0])
	case PhaseInRound:
		e.endRound(room)
	}
}

func (e *Engine) onIntermissionTimer(room *Room) {
	switch room.phase {
	case PhaseStarting:
		e.beginRound(room, true)
	case PhaseIntermission:
		if room.round >= room.maxRounds {
			e.finish(room)
			return
		}
		e.beginRound(room, true)
	case PhaseChoosingWord:
		// drawer left before choosing; the same round restarts with a new drawer
		e.beginRound(room, false)
	case PhaseFinished:
		e.closeRoom(room)
	}
}

func (e *Engine) beginRound(room *Room, advance bool) {
	room.stopTimers()
	if room.isEmpty() {
		e.registry.Remove(room.id)
		return
	}
	if advance || room.round == 0 {
		room.round = min(room.round+1, room.maxRounds)
	}

	drawer := room.players[(room.round-1)%len(room.players)]
	room.drawerId = drawer.id
	room.currentWord = ""
	room.roundStartedAt = time.Time{}
	room.clearStrokes()
	room.resetGuesses()
	room.wordChoices = e.words.Generate(e.rules.WordChoices)

	e.setPhase(room, PhaseChoosingWord)
	e.toRoom(room, EventClearCanvas, nil)
	e.toRoom(room, EventRoundStarted, roundStartedData{
		Round:        room.round,
		MaxRounds:    room.maxRounds,
		DrawerId:     drawer.id,
		ChoosingWord: true,
	})
	e.toConn(drawer.id, EventWordChoices, wordChoicesData{Words: room.wordChoices})
	e.broadcastPlayerList(room)
	e.arm(room, roundTimer, e.rules.ChooseWordTimeout)

	log.Debug().Str("room", room.id).Int("round", room.round).Str("drawer", drawer.id).Msg("round started")
}

func (e *Engine) chooseWord(room *Room, connId, word string) error {
	if room.phase != PhaseChoosingWord {
		return ErrWrongPhase
	}
	if connId != room.drawerId {
		return ErrNotDrawer
	}
	if !lo.Contains(room.wordChoices, word) {
		return ErrInvalidWordChoice
	}
	e.startDrawing(room, word)
	return nil
}

func (e *Engine) startDrawing(room *Room, word string) {
	room.currentWord = word
	room.wordChoices = nil
	room.roundStartedAt = e.clock.Now()
	room.resetGuesses()
	if d := room.drawer(); d != nil {
		d.guessed = true
	}

	e.setPhase(room, PhaseInRound)
	e.toRoom(room, EventRoundInProgress, roundInProgressData{
		Round:       room.round,
		DrawerId:    room.drawerId,
		RoundTimeMs: e.rules.RoundDuration.Milliseconds(),
		StartTimeMs: room.roundStartedAt.UnixMilli(),
	})
	e.toConn(room.drawerId, EventSecretWord, secretWordData{Word: word})
	e.broadcastPlayerList(room)
	e.arm(room, roundTimer, e.rules.RoundDuration)
}

func (e *Engine) endRound(room *Room) {
	room.stopTimers()
	word := room.currentWord

	e.setPhase(room, PhaseIntermission)
	e.toRoom(room, EventRoundEnded, roundEndedData{
		Round:  room.round,
		Word:   word,
		Scores: room.scores(),
	})
	room.currentWord = ""
	room.wordChoices = nil
	room.drawerId = ""
	e.broadcastPlayerList(room)
	e.arm(room, intermissionTimer, e.rules.IntermissionDuration)

	log.Debug().Str("room", room.id).Int("round", room.round).Msg("round ended")
}

func (e *Engine) finish(room *Room) {
	room.stopTimers()
	room.currentWord = ""
	room.wordChoices = nil
	room.drawerId = ""

	e.setPhase(room, PhaseFinished)
	e.toRoom(room, EventGameFinished, gameFinishedData{Scores: room.scores()})
	e.recordFinishedGame(room)
	e.arm(room, intermissionTimer, e.rules.FinishedRoomTTL)

	log.Info().Str("room", room.id).Int("players", len(room.players)).Msg("game finished")
}

func (e *Engine) closeRoom(room *Room) {
	e.toRoom(room, EventRoomClosed, roomClosedData{RoomId: room.id})
	for _, p := range append([]*Player{}, room.players...) {
		e.registry.Leave(p.id)
		e.out.LeaveRoom(p.id, room.id)
	}
	e.registry.Remove(room.id)
}

package game

import (
	"strings"
	"time"
)

type guessOutcome struct {
	evaluated   bool
	correct     bool
	points      int
	fastBonus   bool
	drawerBonus int
}

func normalizeGuess(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// scoreGuess mutates scores for a correct guess and reports what happened.
// Guesses outside an active round or from players who already guessed are not evaluated.
func scoreGuess(rules Rules, room *Room, player *Player, rawGuess string, now time.Time) guessOutcome {
	if room.phase != PhaseInRound || player == nil || player.guessed || player.id == room.drawerId {
		return guessOutcome{}
	}
	guess := normalizeGuess(rawGuess)
	if guess == "" {
		return guessOutcome{}
	}
	if guess != normalizeGuess(room.currentWord) {
		return guessOutcome{evaluated: true}
	}

	out := guessOutcome{evaluated: true, correct: true, points: rules.CorrectGuessPoints}
	if now.Sub(room.roundStartedAt) <= rules.FastGuessThreshold {
		out.points += rules.FastGuessBonus
		out.fastBonus = true
	}
	player.guessed = true
	player.score += out.points

	if d := room.drawer(); d != nil {
		d.score += rules.DrawerPointsPerGuess
		out.drawerBonus = rules.DrawerPointsPerGuess
	}
	return out
}

// evaluateGuess scores the guess and relays wrong guesses as chat.
func (e *Engine) evaluateGuess(room *Room, player *Player, rawGuess string) {
	text := strings.TrimSpace(rawGuess)
	if player == nil || text == "" {
		return
	}

	out := scoreGuess(e.rules, room, player, rawGuess, e.clock.Now())
	switch {
	case out.correct:
		e.toRoom(room, EventCorrectGuess, correctGuessData{
			PlayerId:   player.id,
			PlayerName: player.name,
			Scores:     room.scores(),
			FastBonus:  out.fastBonus,
		})
		e.broadcastPlayerList(room)
		if room.everyoneGuessed() {
			e.endRound(room)
		}
	case room.phase == PhaseInRound && player.guessed:
		// players who know the word only talk among themselves
		msg := Outbound{Event: EventChatMessage, Data: chatMessageData{PlayerId: player.id, Name: player.name, Text: text}}
		for _, p := range room.players {
			if p.guessed {
				e.out.ToConn(p.id, msg)
			}
		}
	default:
		e.toRoom(room, EventChatMessage, chatMessageData{PlayerId: player.id, Name: player.name, Text: text})
	}
}

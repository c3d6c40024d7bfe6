package game

import (
	"context"
	"time"

	"github.com/Supp140106/scribe/domain"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// matchOutcomes pairs every identified player with every other identified player.
func matchOutcomes(room *Room, at time.Time) []domain.MatchOutcome {
	identified := lo.Filter(room.players, func(p *Player, _ int) bool { return p.userId != "" })

	var outcomes []domain.MatchOutcome
	for _, subject := range identified {
		for _, opponent := range identified {
			if subject.userId == opponent.userId {
				continue
			}
			outcomes = append(outcomes, domain.MatchOutcome{
				SubjectUserId:  subject.userId,
				OpponentUserId: opponent.userId,
				OpponentName:   opponent.name,
				SubjectScore:   subject.score,
				OpponentScore:  opponent.score,
				Result:         domain.ResultOf(subject.score, opponent.score),
				Timestamp:      at,
				RoomId:         room.id,
			})
		}
	}
	return outcomes
}

func gameSummary(room *Room, at time.Time) domain.GameSummary {
	return domain.GameSummary{
		RoomId:     room.id,
		Private:    room.private,
		Rounds:     room.round,
		FinishedAt: at,
		Scores: lo.Map(room.players, func(p *Player, _ int) domain.FinalScore {
			return domain.FinalScore{PlayerId: p.id, UserId: p.userId, Name: p.name, Score: p.score}
		}),
	}
}

// recordFinishedGame snapshots the results and persists them off the engine goroutine.
func (e *Engine) recordFinishedGame(room *Room) {
	now := e.clock.Now()
	outcomes := matchOutcomes(room, now)
	summary := gameSummary(room, now)
	recorder, publisher := e.recorder, e.publisher

	e.background(func() {
		if recorder != nil && len(outcomes) > 0 {
			ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
			defer cancel()
			if err := recorder.RecordMatch(ctx, outcomes); err != nil {
				log.Error().Err(err).Str("room", summary.RoomId).Msg("failed to record match history")
			}
		}
		if publisher != nil {
			if err := publisher.PublishGameFinished(summary); err != nil {
				log.Error().Err(err).Str("room", summary.RoomId).Msg("failed to publish game result")
			}
		}
	})
}

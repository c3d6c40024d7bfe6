package domain

import "time"

type MatchResult string

const (
	MatchWin  MatchResult = "win"
	MatchLoss MatchResult = "loss"
	MatchDraw MatchResult = "draw"
)

// MatchOutcome is one subject's view of a finished game against one opponent.
// A game with n identified players produces n*(n-1) outcomes.
type MatchOutcome struct {
	SubjectUserId  string      `json:"subjectUserId"`
	OpponentUserId string      `json:"opponentUserId"`
	OpponentName   string      `json:"opponentName"`
	SubjectScore   int         `json:"subjectScore"`
	OpponentScore  int         `json:"opponentScore"`
	Result         MatchResult `json:"result"`
	Timestamp      time.Time   `json:"timestamp"`
	RoomId         string      `json:"roomId"`
}

func ResultOf(subjectScore, opponentScore int) MatchResult {
	switch {
	case subjectScore > opponentScore:
		return MatchWin
	case subjectScore < opponentScore:
		return MatchLoss
	default:
		return MatchDraw
	}
}

type FinalScore struct {
	PlayerId string `json:"playerId"`
	UserId   string `json:"userId,omitempty"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
}

// GameSummary is published once per finished game.
type GameSummary struct {
	RoomId     string       `json:"roomId"`
	Private    bool         `json:"private"`
	Rounds     int          `json:"rounds"`
	FinishedAt time.Time    `json:"finishedAt"`
	Scores     []FinalScore `json:"scores"`
}

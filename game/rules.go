package game

import "time"

// Rules are fixed for a room's whole lifetime.
type Rules struct {
	MinPlayers           int
	MaxPlayers           int
	MaxRounds            int
	WordChoices          int
	RoundDuration        time.Duration
	IntermissionDuration time.Duration
	StartDelay           time.Duration
	DrawerLeftDelay      time.Duration
	ChooseWordTimeout    time.Duration
	FinishedRoomTTL      time.Duration

	CorrectGuessPoints   int
	FastGuessBonus       int
	FastGuessThreshold   time.Duration
	DrawerPointsPerGuess int
}

func DefaultRules() Rules {
	return Rules{
		MinPlayers:           4,
		MaxPlayers:           5,
		MaxRounds:            5,
		WordChoices:          3,
		RoundDuration:        60 * time.Second,
		IntermissionDuration: 6 * time.Second,
		StartDelay:           1500 * time.Millisecond,
		DrawerLeftDelay:      time.Second,
		ChooseWordTimeout:    15 * time.Second,
		FinishedRoomTTL:      time.Minute,

		CorrectGuessPoints:   100,
		FastGuessBonus:       50,
		FastGuessThreshold:   15 * time.Second,
		DrawerPointsPerGuess: 25,
	}
}
